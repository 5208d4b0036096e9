package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo describes a discovered scene, whether built into the binary
// or loaded from a YAML scene file on disk.
type SceneInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Group       string `json:"group"`
	Type        string `json:"type"` // "builtin" or "yaml"
	FilePath    string `json:"filePath"`
	Variant     string `json:"variant"`
}

// SceneGroup groups related scenes for display purposes.
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse is the grouped scene listing returned by ListAllScenes.
// The preview server in web/server has no route that serves it.
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// builtinScenes enumerates the scene constructors compiled into the
// binary (see pkg/scene/builtins.go).
var builtinScenes = []SceneInfo{
	{
		ID:          "spheres",
		Name:        "Spheres",
		DisplayName: "Spheres",
		Description: "A handful of spheres with varying materials over a ground plane",
		Group:       "Built-in Scenes",
		Type:        "builtin",
	},
	{
		ID:          "torus-union",
		Name:        "Torus Union",
		DisplayName: "Torus Union",
		Description: "Two interlocking tori joined with a smooth union",
		Group:       "Built-in Scenes",
		Type:        "builtin",
	},
	{
		ID:          "csg-demo",
		Name:        "CSG Demo",
		DisplayName: "CSG Demo",
		Description: "Box with a spherical bite taken out via Difference",
		Group:       "Built-in Scenes",
		Type:        "builtin",
	},
	{
		ID:          "refraction",
		Name:        "Refraction",
		DisplayName: "Refraction",
		Description: "Glass sphere exercising Fresnel reflection/refraction recursion",
		Group:       "Built-in Scenes",
		Type:        "builtin",
	},
}

// ListYAMLScenes scans a scenes directory for *.yaml scene descriptions.
func ListYAMLScenes() ([]SceneInfo, error) {
	possiblePaths := []string{"scenes", "../scenes"}
	var scenesDir string

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			scenesDir = path
			break
		}
	}

	if scenesDir == "" {
		return []SceneInfo{}, nil
	}

	pattern := filepath.Join(scenesDir, "*.yaml")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %v", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		info, err := ParseYAMLSceneMetadata(filePath)
		if err != nil {
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseYAMLSceneMetadata extracts descriptive metadata from the leading
// "# Key: value" comment block of a YAML scene file, the way the teacher's
// scene format did for its own PBRT-derived scenes.
func ParseYAMLSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          fmt.Sprintf("yaml:%s", nameWithoutExt),
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "YAML Scenes",
		Type:        "yaml",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimPrefix(line, "# ")
		switch {
		case strings.HasPrefix(content, "Scene:"):
			info.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Variant:"):
			info.Variant = strings.TrimSpace(strings.TrimPrefix(content, "Variant:"))
		case strings.HasPrefix(content, "Description:"):
			info.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		case strings.HasPrefix(content, "Group:"):
			info.Group = strings.TrimSpace(strings.TrimPrefix(content, "Group:"))
		}
	}

	if info.Variant != "" {
		info.DisplayName = fmt.Sprintf("%s - %s", info.Name, info.Variant)
	} else {
		info.DisplayName = info.Name
	}

	return info, scanner.Err()
}

// ListAllScenes returns built-in and YAML scenes together, grouped for
// display (built-in group first, then alphabetically by group name).
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	yamlScenes, err := ListYAMLScenes()
	if err != nil {
		return response, fmt.Errorf("failed to list YAML scenes: %v", err)
	}

	allScenes := append(append([]SceneInfo{}, builtinScenes...), yamlScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	var groupNames []string
	for name := range groupMap {
		if name != "Built-in Scenes" {
			groupNames = append(groupNames, name)
		}
	}
	sort.Strings(groupNames)

	if builtinGroup, exists := groupMap["Built-in Scenes"]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: "Built-in Scenes", Scenes: builtinGroup})
	}
	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case, e.g.
// "torus-union" -> "Torus Union".
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
