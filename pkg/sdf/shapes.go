package sdf

import (
	"math"

	"github.com/K2017/sdfmarch/pkg/core"
	"github.com/K2017/sdfmarch/pkg/material"
)

// primitive holds the material common to every shape, so each shape type
// only needs to implement its own Distance.
type primitive struct {
	Material material.Material
}

func (p primitive) sample(d float64) Sample {
	return Sample{Value: d, Material: p.Material}
}

// withDefaultMaterial returns m, or the default material if m is the zero
// value (the caller passed no material).
func withDefaultMaterial(m material.Material) material.Material {
	if m == (material.Material{}) {
		return material.Default()
	}
	return m
}

// Sphere is the SDF of a sphere of radius R centered at the origin of its
// local frame.
type Sphere struct {
	primitive
	R float64
}

// NewSphere creates a Sphere with the given radius and material. A zero
// material resolves to material.Default().
func NewSphere(radius float64, mat material.Material) *Sphere {
	return &Sphere{primitive: primitive{Material: withDefaultMaterial(mat)}, R: radius}
}

// Distance returns the signed distance from p to the sphere's surface.
func (s *Sphere) Distance(p core.Vec3) float64 {
	return p.Length() - s.R
}

// Sample returns the distance and material at p.
func (s *Sphere) Sample(p core.Vec3) Sample {
	return s.sample(s.Distance(p))
}

// Plane is the SDF of an infinite plane with the given unit normal and
// signed offset h such that Distance(p) = dot(p, Normal) + h.
type Plane struct {
	primitive
	Normal core.Vec3
	H      float64
}

// NewPlane creates a Plane. Normal is not required to be pre-normalized;
// it is normalized on construction.
func NewPlane(normal core.Vec3, h float64, mat material.Material) *Plane {
	return &Plane{
		primitive: primitive{Material: withDefaultMaterial(mat)},
		Normal:    normal.Normalize(),
		H:         h,
	}
}

// Distance returns the signed distance from p to the plane.
func (pl *Plane) Distance(p core.Vec3) float64 {
	return p.Dot(pl.Normal) + pl.H
}

// Sample returns the distance and material at p.
func (pl *Plane) Sample(p core.Vec3) Sample {
	return pl.sample(pl.Distance(p))
}

// Torus is the SDF of a torus lying in the local XZ plane, with major
// radius RMajor (ring radius) and minor radius RMinor (tube radius).
type Torus struct {
	primitive
	RMajor, RMinor float64
}

// NewTorus creates a Torus with the given major/minor radii and material.
func NewTorus(rMajor, rMinor float64, mat material.Material) *Torus {
	return &Torus{primitive: primitive{Material: withDefaultMaterial(mat)}, RMajor: rMajor, RMinor: rMinor}
}

// Distance returns the signed distance from p to the torus's surface.
func (t *Torus) Distance(p core.Vec3) float64 {
	qx := math.Hypot(p.X, p.Z) - t.RMajor
	qy := p.Y
	return math.Hypot(qx, qy) - t.RMinor
}

// Sample returns the distance and material at p.
func (t *Torus) Sample(p core.Vec3) Sample {
	return t.sample(t.Distance(p))
}

// Box is the SDF of an axis-aligned box centered on the origin of its
// local frame, spanning [-HalfExtents, +HalfExtents] per axis.
type Box struct {
	primitive
	HalfExtents core.Vec3
}

// NewBox creates a Box with the given half-extents and material.
func NewBox(halfExtents core.Vec3, mat material.Material) *Box {
	return &Box{primitive: primitive{Material: withDefaultMaterial(mat)}, HalfExtents: halfExtents}
}

// Distance returns the signed distance from p to the box's surface.
func (b *Box) Distance(p core.Vec3) float64 {
	q := p.Abs().Subtract(b.HalfExtents)
	outside := core.MaxVec(q, core.Vec3{}).Length()
	inside := math.Min(q.MaxComponent(), 0)
	return outside + inside
}

// Sample returns the distance and material at p.
func (b *Box) Sample(p core.Vec3) Sample {
	return b.sample(b.Distance(p))
}

// Triangle is the SDF of a single triangle with vertices V0, V1, V2 in
// world space; edge vectors and the face normal are precomputed on
// construction so Distance avoids recomputing them per query.
type Triangle struct {
	primitive
	V0, V1, V2 core.Vec3

	e0, e1, e2    core.Vec3
	c0, c1, c2    core.Vec3
	normal        core.Vec3
	invLen0       float64
	invLen1       float64
	invLen2       float64
	invNormalLen2 float64
}

// NewTriangle creates a Triangle from three world-space vertices.
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	t := &Triangle{
		primitive: primitive{Material: withDefaultMaterial(mat)},
		V0:        v0, V1: v1, V2: v2,
	}
	t.e0 = v1.Subtract(v0)
	t.e1 = v2.Subtract(v1)
	t.e2 = v0.Subtract(v2)
	t.normal = t.e0.Cross(t.e2).Normalize()

	t.c0 = t.e0.Cross(t.normal)
	t.c1 = t.e1.Cross(t.normal)
	t.c2 = t.e2.Cross(t.normal)

	t.invLen0 = 1 / t.e0.Dot(t.e0)
	t.invLen1 = 1 / t.e1.Dot(t.e1)
	t.invLen2 = 1 / t.e2.Dot(t.e2)
	t.invNormalLen2 = 1 / t.normal.Dot(t.normal)

	return t
}

// Distance returns the unsigned distance from p to the triangle surface
// (triangles have no well-defined inside/outside) minus a 0.001 thickness,
// so it is negative only within 0.001 of the triangle.
func (t *Triangle) Distance(p core.Vec3) float64 {
	p0 := p.Subtract(t.V0)
	p1 := p.Subtract(t.V1)
	p2 := p.Subtract(t.V2)

	insideEdges := sign(t.c0.Dot(p0))+sign(t.c1.Dot(p1))+sign(t.c2.Dot(p2)) < 2.0

	var d float64
	if insideEdges {
		d0 := clampedEdgeDist(t.e0, p0, t.invLen0)
		d1 := clampedEdgeDist(t.e1, p1, t.invLen1)
		d2 := clampedEdgeDist(t.e2, p2, t.invLen2)
		d = math.Min(math.Min(d0, d1), d2)
	} else {
		proj := t.normal.Dot(p0)
		d = math.Sqrt(proj * proj * t.invNormalLen2)
	}
	return d - 0.001
}

func clampedEdgeDist(e, p0 core.Vec3, invLen float64) float64 {
	t := core.Clamp(e.Dot(p0)*invLen, 0, 1)
	return e.Multiply(t).Subtract(p0).Length()
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Sample returns the distance and material at p.
func (t *Triangle) Sample(p core.Vec3) Sample {
	return t.sample(t.Distance(p))
}
