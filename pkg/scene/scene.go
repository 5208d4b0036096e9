// Package scene owns the SDF/CSG node forest, lights and cameras that make
// up a renderable scene, and implements the raymarch/shading engine that
// turns a primary ray into a color.
package scene

import (
	"github.com/K2017/sdfmarch/pkg/camera"
	"github.com/K2017/sdfmarch/pkg/core"
	"github.com/K2017/sdfmarch/pkg/light"
	"github.com/K2017/sdfmarch/pkg/sdf"
)

// SceneProperties tunes the shading and sphere-tracing behavior of a
// Scene. The zero value is NOT a usable default — use DefaultSceneProperties.
type SceneProperties struct {
	BackgroundColor  core.Vec3
	Illumination     bool
	Fresnel          bool
	Shadowing        bool
	Absorption       bool
	ShadowIntensity  float64
	MaxRaymarchSteps int
	MaxRaymarchDist  float64
	MaxDepth         int
}

// DefaultSceneProperties returns the documented defaults.
func DefaultSceneProperties() SceneProperties {
	return SceneProperties{
		BackgroundColor:  core.Vec3{},
		ShadowIntensity:  16,
		MaxRaymarchSteps: 500,
		MaxRaymarchDist:  20,
		MaxDepth:         4,
	}
}

// DebugProperties toggles visualization overrides that bypass shading.
type DebugProperties struct {
	Normals bool
	Depth   bool
}

// defaultLight is installed automatically when a Scene with no lights is
// traced, so the ambient term's division by light count is always defined.
var defaultLight = light.New(core.NewVec3(0, -1.0, -0.5), core.NewVec3(1, 1, 1), 10)

// Scene holds the root SDF nodes, lights and cameras for a render. It is
// built once by the caller and is read-only during rendering — every
// field here is safe to read concurrently from multiple worker goroutines
// once construction is finished.
type Scene struct {
	Roots        []sdf.Node
	Lights       []light.Light
	Cameras      []*camera.Camera
	ActiveCamera int
	Properties   SceneProperties
	Debug        DebugProperties
}

// New creates an empty Scene with default properties.
func New() *Scene {
	return &Scene{Properties: DefaultSceneProperties()}
}

// AddRoot adds a root SDF node to the scene.
func (s *Scene) AddRoot(n sdf.Node) {
	s.Roots = append(s.Roots, n)
}

// AddLight adds a light to the scene.
func (s *Scene) AddLight(l light.Light) {
	s.Lights = append(s.Lights, l)
}

// AddCamera adds a camera to the scene without changing the active one.
func (s *Scene) AddCamera(c *camera.Camera) {
	s.Cameras = append(s.Cameras, c)
}

// SetActiveCamera marks c as the active camera, adding it to the scene
// first if it isn't already present.
func (s *Scene) SetActiveCamera(c *camera.Camera) {
	for i, existing := range s.Cameras {
		if existing == c {
			s.ActiveCamera = i
			return
		}
	}
	s.AddCamera(c)
	s.ActiveCamera = len(s.Cameras) - 1
}

// GetActiveCamera returns the active camera, or nil if the scene has none.
func (s *Scene) GetActiveCamera() *camera.Camera {
	if len(s.Cameras) == 0 {
		return nil
	}
	return s.Cameras[s.ActiveCamera]
}

// SetProperties replaces the scene's SceneProperties.
func (s *Scene) SetProperties(p SceneProperties) {
	s.Properties = p
}

// SetDebugProperties replaces the scene's DebugProperties.
func (s *Scene) SetDebugProperties(d DebugProperties) {
	s.Debug = d
}

// effectiveLights returns the scene's lights, or a slice containing just
// the default light if the scene has none.
func (s *Scene) effectiveLights() []light.Light {
	if len(s.Lights) == 0 {
		return []light.Light{defaultLight}
	}
	return s.Lights
}
