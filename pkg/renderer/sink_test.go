package renderer

import (
	"image/color"
	"testing"

	"github.com/K2017/sdfmarch/pkg/core"
)

func TestRGBASink_SetPixel_ClampsWithoutGamma(t *testing.T) {
	sink := NewRGBASink(2, 2)
	sink.SetPixel(0, 0, core.NewVec3(0.5, 1.5, -0.5))

	got := sink.Image.RGBAAt(0, 0)
	want := color.RGBA{R: 127, G: 255, B: 0, A: 255}
	if got != want {
		t.Errorf("SetPixel clamped color = %v, want %v", got, want)
	}
}

func TestRGBASink_SetPixel_FullWhite(t *testing.T) {
	sink := NewRGBASink(1, 1)
	sink.SetPixel(0, 0, core.NewVec3(1, 1, 1))

	got := sink.Image.RGBAAt(0, 0)
	want := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if got != want {
		t.Errorf("SetPixel(1,1,1) = %v, want %v", got, want)
	}
}
