package sdf

import (
	"math"

	"github.com/K2017/sdfmarch/pkg/core"
	"github.com/K2017/sdfmarch/pkg/material"
)

// smin is the order-3 polynomial smooth minimum of d1 and d2 with blend
// radius k (https://iquilezles.org/www/articles/smin/smin.htm). It returns
// the blended distance and the blend weight (m when d1 < d2, m-1
// otherwise). Union uses only the distance: Union.Sample blends materials
// with its own clamp-based weight, not with this one.
func smin(d1, d2, k float64) (value, weight float64) {
	h := math.Max(k-math.Abs(d1-d2), 0) / k
	m := h * h * h * 0.5
	s := m * k / 3
	if d1 < d2 {
		return d1 - s, m
	}
	return d2 - s, m - 1
}

// Union is the CSG union of two nodes: the closer of the two surfaces.
// When Smooth is true the two surfaces are blended within radius K instead
// of meeting with a hard crease.
type Union struct {
	A, B   Node
	Smooth bool
	K      float64
}

// NewUnion creates a Union operator. If smooth is false, k is unused.
func NewUnion(a, b Node, smooth bool, k float64) *Union {
	return &Union{A: a, B: b, Smooth: smooth, K: k}
}

// Distance returns the union's signed distance at p.
func (u *Union) Distance(p core.Vec3) float64 {
	da := u.A.Distance(p)
	db := u.B.Distance(p)
	if u.Smooth {
		d, _ := smin(da, db, u.K)
		return d
	}
	return math.Min(da, db)
}

// Sample returns the union's distance and blended material at p.
func (u *Union) Sample(p core.Vec3) Sample {
	sa := u.A.Sample(p)
	sb := u.B.Sample(p)

	if u.Smooth {
		d, _ := smin(sa.Value, sb.Value, u.K)
		h := core.Clamp(0.5+0.5*(sb.Value-sa.Value)/u.K, 0, 1)
		return Sample{Value: d, Material: material.Mix(sb.Material, sa.Material, h)}
	}
	if sa.Value < sb.Value {
		return sa
	}
	return sb
}

// Difference is the CSG difference A minus B: everything inside A that is
// not also inside B.
type Difference struct {
	A, B   Node
	Smooth bool
	K      float64
}

// NewDifference creates a Difference operator (A minus B). If smooth is
// false, k is unused.
func NewDifference(a, b Node, smooth bool, k float64) *Difference {
	return &Difference{A: a, B: b, Smooth: smooth, K: k}
}

// Distance returns the difference's signed distance at p.
func (d *Difference) Distance(p core.Vec3) float64 {
	da := d.A.Distance(p)
	db := d.B.Distance(p)
	if d.Smooth {
		h := core.Clamp(0.5-0.5*(da+db)/d.K, 0, 1)
		return core.Mix(da, -db, h) + d.K*h*(1-h)
	}
	return math.Max(-db, da)
}

// Sample returns the difference's distance and material at p. The
// minuend's (A's) material is used for the hard case; smooth blends carry
// the same weight used for the distance.
func (d *Difference) Sample(p core.Vec3) Sample {
	sa := d.A.Sample(p)
	sb := d.B.Sample(p)

	if d.Smooth {
		h := core.Clamp(0.5-0.5*(sa.Value+sb.Value)/d.K, 0, 1)
		value := core.Mix(sa.Value, -sb.Value, h) + d.K*h*(1-h)
		return Sample{Value: value, Material: material.Mix(sa.Material, sb.Material, h)}
	}
	if -sb.Value > sa.Value {
		return Sample{Value: -sb.Value, Material: sa.Material}
	}
	return Sample{Value: sa.Value, Material: sa.Material}
}

// Intersection is the CSG intersection of two nodes: the region common to
// both A and B.
type Intersection struct {
	A, B   Node
	Smooth bool
	K      float64
}

// NewIntersection creates an Intersection operator. If smooth is false, k
// is unused.
func NewIntersection(a, b Node, smooth bool, k float64) *Intersection {
	return &Intersection{A: a, B: b, Smooth: smooth, K: k}
}

// Distance returns the intersection's signed distance at p.
func (i *Intersection) Distance(p core.Vec3) float64 {
	da := i.A.Distance(p)
	db := i.B.Distance(p)
	if i.Smooth {
		h := core.Clamp(0.5-0.5*(da-db)/i.K, 0, 1)
		return core.Mix(da, db, h) + i.K*h*(1-h)
	}
	return math.Max(da, db)
}

// Sample returns the intersection's distance and material at p.
func (i *Intersection) Sample(p core.Vec3) Sample {
	sa := i.A.Sample(p)
	sb := i.B.Sample(p)

	if i.Smooth {
		h := core.Clamp(0.5-0.5*(sa.Value-sb.Value)/i.K, 0, 1)
		value := core.Mix(sa.Value, sb.Value, h) + i.K*h*(1-h)
		return Sample{Value: value, Material: material.Mix(sa.Material, sb.Material, h)}
	}
	if sa.Value > sb.Value {
		return sa
	}
	return sb
}
