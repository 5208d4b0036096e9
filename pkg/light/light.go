// Package light provides the point light used by the raymarching shader.
package light

import "github.com/K2017/sdfmarch/pkg/core"

// MaxIntensity caps how bright a single light can be specified as.
const MaxIntensity = 100.0

// Light is a point light with position, color and intensity. It has no
// area or direction; falloff is inverse-square from Position.
type Light struct {
	Position  core.Vec3
	Color     core.Vec3
	Intensity float64
}

// New creates a Light, clamping intensity to [0, MaxIntensity].
func New(position, color core.Vec3, intensity float64) Light {
	if intensity > MaxIntensity {
		intensity = MaxIntensity
	}
	if intensity < 0 {
		intensity = 0
	}
	return Light{Position: position, Color: color, Intensity: intensity}
}
