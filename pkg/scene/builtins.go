package scene

import (
	"github.com/K2017/sdfmarch/pkg/camera"
	"github.com/K2017/sdfmarch/pkg/core"
	"github.com/K2017/sdfmarch/pkg/light"
	"github.com/K2017/sdfmarch/pkg/material"
	"github.com/K2017/sdfmarch/pkg/sdf"
)

// BuiltinScene constructs one of the scenes listed in builtinScenes by ID.
// Returns nil if id is not recognized.
func BuiltinScene(id string) *Scene {
	switch id {
	case "spheres":
		return spheresScene()
	case "torus-union":
		return torusUnionScene()
	case "csg-demo":
		return csgDemoScene()
	case "refraction":
		return refractionScene()
	default:
		return nil
	}
}

func newDefaultCamera() *camera.Camera {
	return camera.New(core.NewVec3(0, 0, -3), core.NewVec3(0, 1, 0), 64)
}

// spheresScene scatters a few differently-shaded spheres over a ground
// plane, exercising plain Phong shading with no CSG or recursion.
func spheresScene() *Scene {
	s := New()
	s.Properties.Illumination = true
	s.Properties.Shadowing = true

	ground := sdf.NewPlane(core.NewVec3(0, 1, 0), 1, material.Material{
		Albedo: core.NewVec3(0.4, 0.4, 0.45), Kd: 0.9, Ka: 0.1, Ks: 0.1, P: 8, IOR: 1,
	})
	a := sdf.NewTransform(
		sdf.NewSphere(0.6, material.Material{Albedo: core.NewVec3(0.8, 0.2, 0.2), Kd: 0.8, Ka: 0.1, Ks: 0.3, P: 16, IOR: 1}),
		core.NewVec3(-1.2, 0, 0), core.Vec3{}, core.NewVec3(1, 1, 1),
	)
	b := sdf.NewTransform(
		sdf.NewSphere(0.6, material.Material{Albedo: core.NewVec3(0.2, 0.6, 0.8), Kd: 0.8, Ka: 0.1, Ks: 0.3, P: 16, IOR: 1}),
		core.NewVec3(1.2, 0, 0), core.Vec3{}, core.NewVec3(1, 1, 1),
	)

	s.AddRoot(ground)
	s.AddRoot(a)
	s.AddRoot(b)
	s.AddLight(light.New(core.NewVec3(-2, -3, -2), core.NewVec3(1, 1, 1), 20))
	s.SetActiveCamera(newDefaultCamera())
	return s
}

// torusUnionScene smoothly unions two tori, exercising smooth binary ops
// and their material blend.
func torusUnionScene() *Scene {
	s := New()
	s.Properties.Illumination = true

	t1 := sdf.NewTorus(0.8, 0.25, material.Material{Albedo: core.NewVec3(0.9, 0.7, 0.1), Kd: 0.8, Ka: 0.1, Ks: 0.4, P: 24, IOR: 1})
	t2Child := sdf.NewTorus(0.5, 0.2, material.Material{Albedo: core.NewVec3(0.1, 0.7, 0.9), Kd: 0.8, Ka: 0.1, Ks: 0.4, P: 24, IOR: 1})
	t2 := sdf.NewTransform(t2Child, core.NewVec3(0.9, 0, 0), core.NewVec3(1.5708, 0, 0), core.NewVec3(1, 1, 1))

	union := sdf.NewUnion(t1, t2, true, 0.25)

	s.AddRoot(union)
	s.AddLight(light.New(core.NewVec3(-1, -2, -2), core.NewVec3(1, 1, 1), 18))
	s.SetActiveCamera(newDefaultCamera())
	return s
}

// csgDemoScene carves a spherical bite out of a box with a hard
// difference, exercising Difference and Round.
func csgDemoScene() *Scene {
	s := New()
	s.Properties.Illumination = true
	s.Properties.Shadowing = true

	box := sdf.NewRound(sdf.NewBox(core.NewVec3(0.7, 0.7, 0.7), material.Material{
		Albedo: core.NewVec3(0.7, 0.75, 0.8), Kd: 0.9, Ka: 0.1, Ks: 0.1, P: 8, IOR: 1,
	}), 0.05)
	bite := sdf.NewTransform(
		sdf.NewSphere(0.6, material.Default()),
		core.NewVec3(0.5, -0.5, -0.5), core.Vec3{}, core.NewVec3(1, 1, 1),
	)

	diff := sdf.NewDifference(box, bite, false, 0)

	s.AddRoot(diff)
	s.AddLight(light.New(core.NewVec3(-1.5, -2, -1.5), core.NewVec3(1, 1, 1), 18))
	s.SetActiveCamera(newDefaultCamera())
	return s
}

// refractionScene is a single glass sphere exercising Fresnel-weighted
// reflection/refraction recursion, matching the shape of the spec's S5
// golden scenario.
func refractionScene() *Scene {
	s := New()
	s.Properties.Illumination = true
	s.Properties.Fresnel = true
	s.Properties.MaxDepth = 4

	glass := sdf.NewSphere(0.8, material.Material{
		Albedo: core.NewVec3(0.9, 0.95, 1.0), Kd: 0.1, Ka: 0.05, Ks: 1, P: 64,
		IOR: 1.5, Transmittance: 0.9,
	})

	s.AddRoot(glass)
	s.AddLight(light.New(core.NewVec3(-1, -2, -2), core.NewVec3(1, 1, 1), 15))
	s.SetActiveCamera(newDefaultCamera())
	return s
}
