// Package material defines the surface material used by SDF nodes and the
// shader: a fixed set of Blinn/Phong + Fresnel coefficients, not a
// pluggable BRDF interface.
package material

import "github.com/K2017/sdfmarch/pkg/core"

// Material holds the shading coefficients for a surface. All fields are
// exported so CSG nodes can be constructed with struct literals, matching
// the teacher's own struct-field style (see pkg/geometry's shape
// constructors in the example pack).
type Material struct {
	Albedo        core.Vec3 // surface color, components in [0,1]
	Kd            float64   // diffuse coefficient, [0,1]
	Ka            float64   // ambient coefficient, [0,1]
	Ks            float64   // specular coefficient, [0,1]
	P             float64   // specular power, [1,256]
	IOR           float64   // index of refraction; air = 1, glass ~= 1.5
	Transmittance float64   // coefficient of transmittance, [0,1]
	Absorption    float64   // fraction of light absorbed inside the material, [0,1]
}

// Default returns the material assigned to a node when none is specified.
func Default() Material {
	return Material{
		Albedo: core.NewVec3(0.8, 0.8, 0.8),
		Kd:     0.8,
		Ka:     0.1,
		Ks:     0,
		P:      4,
		IOR:    1,
	}
}

// Mix linearly interpolates every field of a and b by t.
func Mix(a, b Material, t float64) Material {
	return Material{
		Albedo:        core.MixVec(a.Albedo, b.Albedo, t),
		Kd:            core.Mix(a.Kd, b.Kd, t),
		Ka:            core.Mix(a.Ka, b.Ka, t),
		Ks:            core.Mix(a.Ks, b.Ks, t),
		P:             core.Mix(a.P, b.P, t),
		IOR:           core.Mix(a.IOR, b.IOR, t),
		Transmittance: core.Mix(a.Transmittance, b.Transmittance, t),
		Absorption:    core.Mix(a.Absorption, b.Absorption, t),
	}
}
