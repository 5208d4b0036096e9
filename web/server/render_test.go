package server

import (
	"testing"
)

func TestResolveScene_BuiltinScene(t *testing.T) {
	sc, err := resolveScene(&RenderRequest{Scene: "spheres"})
	if err != nil {
		t.Fatalf("resolveScene returned error: %v", err)
	}
	if sc.GetActiveCamera() == nil {
		t.Error("expected an active camera")
	}
}

func TestResolveScene_UnknownBuiltin(t *testing.T) {
	if _, err := resolveScene(&RenderRequest{Scene: "nonexistent"}); err == nil {
		t.Error("expected an error for an unknown scene name")
	}
}

func TestResolveScene_NoSceneSpecified(t *testing.T) {
	if _, err := resolveScene(&RenderRequest{}); err == nil {
		t.Error("expected an error when neither scene nor sceneYaml is set")
	}
}

func TestResolveScene_InlineYAML(t *testing.T) {
	req := &RenderRequest{
		SceneYAML: `
camera: {position: [0,0,-3], up: [0,1,0], focalLength: 64}
nodes:
  - id: ball
    type: sphere
    radius: 0.5
roots: [ball]
`,
	}
	sc, err := resolveScene(req)
	if err != nil {
		t.Fatalf("resolveScene returned error: %v", err)
	}
	if len(sc.Roots) != 1 {
		t.Errorf("Roots = %d, want 1", len(sc.Roots))
	}
}

func TestResolveScene_PropertyOverrides(t *testing.T) {
	illum := true
	depth := 6
	req := &RenderRequest{
		Scene:             "spheres",
		PropertyOverrides: &PropertyOverrides{Illumination: &illum, MaxDepth: &depth},
	}
	sc, err := resolveScene(req)
	if err != nil {
		t.Fatalf("resolveScene returned error: %v", err)
	}
	if !sc.Properties.Illumination {
		t.Error("expected Illumination override to apply")
	}
	if sc.Properties.MaxDepth != 6 {
		t.Errorf("MaxDepth = %d, want 6", sc.Properties.MaxDepth)
	}
}

func TestResolveScene_InvalidYAML(t *testing.T) {
	req := &RenderRequest{SceneYAML: "not: valid: yaml: at: all: ["}
	if _, err := resolveScene(req); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
