package sceneio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/K2017/sdfmarch/pkg/camera"
)

const sampleYAML = `
camera:
  position: [0, 0, -3]
  up: [0, 1, 0]
  focalLength: 64

properties:
  illumination: true
  shadowing: true
  maxDepth: 2

lights:
  - position: [-1, -2, -2]
    color: [1, 1, 1]
    intensity: 15

nodes:
  - id: ground
    type: plane
    normal: [0, 1, 0]
    h: 1
  - id: ball
    type: sphere
    radius: 0.6
    material:
      albedo: [0.8, 0.2, 0.2]
      ks: 0.3
  - id: moved
    type: transform
    child: ball
    translate: [0.5, 0, 0]
  - id: scene
    type: union
    a: ground
    b: moved
    smooth: true
    k: 0.1

roots: [scene]
`

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp scene file: %v", err)
	}
	return path
}

func TestLoad_BuildsSceneFromNodeGraph(t *testing.T) {
	path := writeTempYAML(t, sampleYAML)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(s.Roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(s.Roots))
	}
	if len(s.Lights) != 1 {
		t.Fatalf("expected 1 light, got %d", len(s.Lights))
	}
	if !s.Properties.Illumination || !s.Properties.Shadowing {
		t.Error("expected illumination and shadowing to be enabled")
	}
	if s.Properties.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", s.Properties.MaxDepth)
	}

	cam := s.GetActiveCamera()
	if cam == nil {
		t.Fatal("expected an active camera")
	}
	want := camera.New(
		cam.Position, cam.Up, 64,
	)
	if cam.FocalLength != want.FocalLength {
		t.Errorf("FocalLength = %v, want %v", cam.FocalLength, want.FocalLength)
	}
}

func TestLoad_UndefinedNodeReference(t *testing.T) {
	path := writeTempYAML(t, `
camera: {position: [0,0,-3], up: [0,1,0], focalLength: 64}
nodes:
  - id: a
    type: union
    a: missing1
    b: missing2
roots: [a]
`)

	if _, err := Load(path); err == nil {
		t.Error("expected an error for undefined node references, got nil")
	}
}

func TestLoad_CycleDetection(t *testing.T) {
	path := writeTempYAML(t, `
camera: {position: [0,0,-3], up: [0,1,0], focalLength: 64}
nodes:
  - id: a
    type: round
    child: b
    radius: 0.1
  - id: b
    type: round
    child: a
    radius: 0.1
roots: [a]
`)

	if _, err := Load(path); err == nil {
		t.Error("expected a cycle-detection error, got nil")
	}
}

func TestLoad_DuplicateID(t *testing.T) {
	path := writeTempYAML(t, `
camera: {position: [0,0,-3], up: [0,1,0], focalLength: 64}
nodes:
  - id: a
    type: sphere
    radius: 0.5
  - id: a
    type: sphere
    radius: 1.0
roots: [a]
`)

	if _, err := Load(path); err == nil {
		t.Error("expected a duplicate-id error, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/scene.yaml"); err == nil {
		t.Error("expected an error for a missing file, got nil")
	}
}
