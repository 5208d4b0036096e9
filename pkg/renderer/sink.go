package renderer

import (
	"image"
	"image/color"

	"github.com/K2017/sdfmarch/pkg/core"
)

// PixelSink receives one finished pixel at a time. The frame driver writes
// into a sink as tiles complete; implementations decide how the pixel is
// stored or displayed.
type PixelSink interface {
	SetPixel(x, y int, rgb core.Vec3)
}

// RGBASink is a PixelSink backed by a standard image.RGBA. Raymarcher output
// is never gamma corrected (non-goal), so SetPixel only clamps to [0,1] and
// scales to [0,255], unlike the teacher's vec3ToColor which also applied
// GammaCorrect(2.0).
type RGBASink struct {
	Image *image.RGBA
}

// NewRGBASink allocates a sink backed by a fresh width x height image.
func NewRGBASink(width, height int) *RGBASink {
	return &RGBASink{Image: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// SetPixel implements PixelSink.
func (s *RGBASink) SetPixel(x, y int, rgb core.Vec3) {
	c := rgb.Clamp(0, 1)
	s.Image.SetRGBA(x, y, color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	})
}
