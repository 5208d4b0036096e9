package sdf

import (
	"math"

	"github.com/K2017/sdfmarch/pkg/core"
)

// Transform applies a translation, Euler-XYZ rotation and non-uniform
// scale to a child node's local frame. Rotation composes three
// axis-angle quaternions in X, Y, Z order (core.QuaternionFromEulerXYZ).
// Non-uniform scale is approximate: the distance returned is corrected by
// the smallest scale component, a conservative Lipschitz bound.
type Transform struct {
	Child    Node
	inverse  core.Mat4
	Scale    core.Vec3
	minScale float64
}

// NewTransform creates a Transform node. translate and rotate (radians)
// build the rigid world-to-local matrix; scale is applied separately in
// the child's local frame.
func NewTransform(child Node, translate, rotate, scale core.Vec3) *Transform {
	m := core.Translation4(translate).Mul(core.QuaternionFromEulerXYZ(rotate).Mat4())
	return &Transform{
		Child:    child,
		inverse:  m.Inverse(),
		Scale:    scale,
		minScale: math.Min(scale.X, math.Min(scale.Y, scale.Z)),
	}
}

func (t *Transform) transformPoint(p core.Vec3) core.Vec3 {
	scaled := p.Divide(t.Scale)
	return t.inverse.MulPoint(scaled)
}

func (t *Transform) correctDistance(d float64) float64 {
	return d / t.minScale
}

// Distance returns the transformed child's signed distance at p.
func (t *Transform) Distance(p core.Vec3) float64 {
	return t.correctDistance(t.Child.Distance(t.transformPoint(p)))
}

// Sample returns the transformed child's distance and material at p.
// Transform does not rewrite materials.
func (t *Transform) Sample(p core.Vec3) Sample {
	s := t.Child.Sample(t.transformPoint(p))
	s.Value = t.correctDistance(s.Value)
	return s
}

// Round inflates a child's surface outward by Radius, producing filleted
// joins when combined with CSG operators.
type Round struct {
	Child  Node
	Radius float64
}

// NewRound creates a Round node.
func NewRound(child Node, radius float64) *Round {
	return &Round{Child: child, Radius: radius}
}

// Distance returns the rounded child's signed distance at p.
func (r *Round) Distance(p core.Vec3) float64 {
	return r.Child.Distance(p) - r.Radius
}

// Sample returns the rounded child's distance and material at p.
func (r *Round) Sample(p core.Vec3) Sample {
	s := r.Child.Sample(p)
	s.Value -= r.Radius
	return s
}

// Onion carves a shell of the given Thickness out of a child's surface.
type Onion struct {
	Child     Node
	Thickness float64
}

// NewOnion creates an Onion node.
func NewOnion(child Node, thickness float64) *Onion {
	return &Onion{Child: child, Thickness: thickness}
}

// Distance returns the onion shell's signed distance at p.
func (o *Onion) Distance(p core.Vec3) float64 {
	return math.Abs(o.Child.Distance(p)) - o.Thickness
}

// Sample returns the onion shell's distance and material at p.
func (o *Onion) Sample(p core.Vec3) Sample {
	s := o.Child.Sample(p)
	s.Value = o.Distance(p)
	return s
}

// Elongate stretches a child node along each axis by Amount, repeating
// its profile along a flat middle section.
type Elongate struct {
	Child  Node
	Amount core.Vec3
}

// NewElongate creates an Elongate node.
func NewElongate(child Node, amount core.Vec3) *Elongate {
	return &Elongate{Child: child, Amount: amount}
}

func elongatedPoint(p, amount core.Vec3) (q core.Vec3, correction float64) {
	q = p.Abs().Subtract(amount)
	correction = math.Min(q.MaxComponent(), 0)
	return p.Sign().MultiplyVec(core.MaxVec(q, core.Vec3{})), correction
}

// Distance returns the elongated child's signed distance at p.
func (e *Elongate) Distance(p core.Vec3) float64 {
	q, correction := elongatedPoint(p, e.Amount)
	return e.Child.Distance(q) + correction
}

// Sample returns the elongated child's distance and material at p.
func (e *Elongate) Sample(p core.Vec3) Sample {
	q, correction := elongatedPoint(p, e.Amount)
	s := e.Child.Sample(q)
	s.Value += correction
	return s
}
