package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"torus-union", "Torus Union"},
		{"csg_demo", "Csg Demo"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := titleCase(tc.input); got != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestParseYAMLSceneMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.yaml",
			content: `# Scene: Glass Cluster
# Variant: High Roughness
# Description: Three glass spheres over a checker plane
# Group: Refraction Variants

properties:
  fresnel: true
`,
			expected: SceneInfo{
				ID:          "yaml:complete_metadata",
				Name:        "Glass Cluster",
				DisplayName: "Glass Cluster - High Roughness",
				Description: "Three glass spheres over a checker plane",
				Group:       "Refraction Variants",
				Type:        "yaml",
				Variant:     "High Roughness",
			},
		},
		{
			name: "partial_metadata.yaml",
			content: `# Scene: Torus Field
properties:
  illumination: true
`,
			expected: SceneInfo{
				ID:          "yaml:partial_metadata",
				Name:        "Torus Field",
				DisplayName: "Torus Field",
				Description: "",
				Group:       "YAML Scenes",
				Type:        "yaml",
			},
		},
		{
			name:    "no_metadata.yaml",
			content: "properties:\n  maxDepth: 4\n",
			expected: SceneInfo{
				ID:          "yaml:no_metadata",
				Name:        "No Metadata",
				DisplayName: "No Metadata",
				Group:       "YAML Scenes",
				Type:        "yaml",
			},
		},
	}

	dir := t.TempDir()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			info, err := ParseYAMLSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseYAMLSceneMetadata returned error: %v", err)
			}

			info.FilePath = ""
			if info != tc.expected {
				t.Errorf("ParseYAMLSceneMetadata(%q) = %+v, want %+v", tc.name, info, tc.expected)
			}
		})
	}
}

func TestListAllScenes_IncludesBuiltins(t *testing.T) {
	resp, err := ListAllScenes()
	if err != nil {
		t.Fatalf("ListAllScenes returned error: %v", err)
	}

	var builtinGroup *SceneGroup
	for i := range resp.Groups {
		if resp.Groups[i].Name == "Built-in Scenes" {
			builtinGroup = &resp.Groups[i]
		}
	}
	if builtinGroup == nil {
		t.Fatal("expected a Built-in Scenes group")
	}
	if len(builtinGroup.Scenes) != len(builtinScenes) {
		t.Errorf("got %d built-in scenes, want %d", len(builtinGroup.Scenes), len(builtinScenes))
	}
}
