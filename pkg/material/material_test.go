package material

import (
	"testing"

	"github.com/K2017/sdfmarch/pkg/core"
)

func TestDefault(t *testing.T) {
	m := Default()

	if m.Albedo != core.NewVec3(0.8, 0.8, 0.8) {
		t.Errorf("Albedo = %v, want (0.8,0.8,0.8)", m.Albedo)
	}
	if m.Kd != 0.8 {
		t.Errorf("Kd = %v, want 0.8", m.Kd)
	}
	if m.Ka != 0.1 {
		t.Errorf("Ka = %v, want 0.1", m.Ka)
	}
	if m.Ks != 0 {
		t.Errorf("Ks = %v, want 0", m.Ks)
	}
	if m.P != 4 {
		t.Errorf("P = %v, want 4", m.P)
	}
	if m.IOR != 1 {
		t.Errorf("IOR = %v, want 1", m.IOR)
	}
	if m.Transmittance != 0 {
		t.Errorf("Transmittance = %v, want 0", m.Transmittance)
	}
	if m.Absorption != 0 {
		t.Errorf("Absorption = %v, want 0", m.Absorption)
	}
}

func TestMix(t *testing.T) {
	a := Material{
		Albedo: core.NewVec3(0, 0, 0),
		Kd:     0, Ka: 0, Ks: 0, P: 1, IOR: 1, Transmittance: 0, Absorption: 0,
	}
	b := Material{
		Albedo: core.NewVec3(1, 1, 1),
		Kd:     1, Ka: 1, Ks: 1, P: 9, IOR: 2, Transmittance: 1, Absorption: 1,
	}

	mid := Mix(a, b, 0.5)

	if mid.Albedo != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Albedo = %v, want (0.5,0.5,0.5)", mid.Albedo)
	}
	if mid.Kd != 0.5 {
		t.Errorf("Kd = %v, want 0.5", mid.Kd)
	}
	if mid.P != 5 {
		t.Errorf("P = %v, want 5", mid.P)
	}
	if mid.IOR != 1.5 {
		t.Errorf("IOR = %v, want 1.5", mid.IOR)
	}

	t.Run("t=0 returns a", func(t *testing.T) {
		if got := Mix(a, b, 0); got != a {
			t.Errorf("Mix(a,b,0) = %v, want %v", got, a)
		}
	})

	t.Run("t=1 returns b", func(t *testing.T) {
		if got := Mix(a, b, 1); got != b {
			t.Errorf("Mix(a,b,1) = %v, want %v", got, b)
		}
	})
}
