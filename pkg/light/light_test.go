package light

import (
	"testing"

	"github.com/K2017/sdfmarch/pkg/core"
)

func TestNew_ClampsIntensity(t *testing.T) {
	tests := []struct {
		name      string
		intensity float64
		expected  float64
	}{
		{"within range", 50, 50},
		{"exactly at max", MaxIntensity, MaxIntensity},
		{"above max clamps down", 500, MaxIntensity},
		{"negative clamps to zero", -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1), tt.intensity)
			if l.Intensity != tt.expected {
				t.Errorf("Intensity = %v, want %v", l.Intensity, tt.expected)
			}
		})
	}
}

func TestNew_PreservesPositionAndColor(t *testing.T) {
	pos := core.NewVec3(1, 2, 3)
	color := core.NewVec3(0.5, 0.6, 0.7)
	l := New(pos, color, 10)

	if l.Position != pos {
		t.Errorf("Position = %v, want %v", l.Position, pos)
	}
	if l.Color != color {
		t.Errorf("Color = %v, want %v", l.Color, color)
	}
}
