// Package camera implements the pinhole camera and its primary-ray
// construction.
package camera

import "github.com/K2017/sdfmarch/pkg/core"

// Camera is a pinhole camera: a position, a cumulative rotation, and a
// focal length. R is orthonormal up to float drift; FocalLength > 0.
type Camera struct {
	Position    core.Vec3
	Up          core.Vec3
	FocalLength float64
	R           core.Mat4
}

// New creates a Camera at position, looking down +Z with up as the
// reference up vector, and the given focal length.
func New(position, up core.Vec3, focalLength float64) *Camera {
	return &Camera{
		Position:    position,
		Up:          up,
		FocalLength: focalLength,
		R:           core.Identity4(),
	}
}

// Translate moves the camera by (x, y, z). If local is true the offset is
// expressed in the camera's current rotated frame (R applied to the
// offset first); otherwise it is a world-space offset.
func (c *Camera) Translate(x, y, z float64, local bool) {
	offset := core.NewVec3(x, y, z)
	if local {
		offset = c.R.MulDirection(offset)
	}
	c.Position = c.Position.Add(offset)
}

// Rotate composes a rotation of angle radians about axis into the
// camera's cumulative rotation. If local is true the new rotation is
// applied in the camera's current frame (post-multiplied); otherwise it
// is applied in world space (pre-multiplied).
func (c *Camera) Rotate(axis core.Vec3, angle float64, local bool) {
	delta := core.QuaternionFromAxisAngle(axis.Normalize(), angle).Mat4()
	if local {
		c.R = c.R.Mul(delta)
	} else {
		c.R = delta.Mul(c.R)
	}
}

// RayFromView constructs the primary ray through pixel (x, y) of an
// image of size (w, h), preserving the legacy formula from the camera
// model this renderer descends from:
//
//	d = R·(x - w/2, y - h/2, f, 0) - position
//	direction = normalize(d)
func RayFromView(x, y, w, h int, cam *Camera) core.Ray {
	return RayFromViewF(float64(x), float64(y), w, h, cam)
}

// RayFromViewF is RayFromView with a fractional pixel coordinate, used by
// the frame driver to jitter sub-pixel samples for antialiasing across
// progressive passes. RayFromView(x, y, w, h, cam) == RayFromViewF(float64(x),
// float64(y), w, h, cam).
func RayFromViewF(x, y float64, w, h int, cam *Camera) core.Ray {
	local := core.NewVec3(x-float64(w)/2, y-float64(h)/2, cam.FocalLength)
	d := cam.R.MulDirection(local).Subtract(cam.Position)
	return core.NewRay(cam.Position, d.Normalize())
}
