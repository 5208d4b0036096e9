// Package sdf implements the signed-distance-function node tree: shape
// primitives and the unary/binary CSG operators that combine them.
package sdf

import (
	"math"

	"github.com/K2017/sdfmarch/pkg/core"
	"github.com/K2017/sdfmarch/pkg/material"
)

// Sample is the compound result of evaluating a Node at a point: the
// signed distance and the material in effect there.
type Sample struct {
	Value    float64
	Material material.Material
}

// Node is any shape primitive or CSG operator in the tree. Implementations
// are immutable once constructed; a subtree may be shared by more than one
// parent, so Node values must not carry mutable state.
type Node interface {
	// Distance evaluates the signed distance to the surface at p.
	Distance(p core.Vec3) float64
	// Sample evaluates distance and effective material at p in one call.
	Sample(p core.Vec3) Sample
}

// tetrahedronOffsets are the four sample offsets used by Normal, scaled by
// 0.5773 (1/sqrt(3)) and by the caller-supplied epsilon.
var tetrahedronOffsets = [4]core.Vec3{
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: 1, Z: 1},
}

const tetrahedronScale = 0.5773

// Normal estimates the surface normal of n at p via the tetrahedron trick:
// four finite-difference samples of Distance combined into a gradient
// estimate. p need not lie exactly on the surface. eps defaults to 1e-4 in
// callers that don't have a more specific tolerance.
func Normal(n Node, p core.Vec3, eps float64) core.Vec3 {
	var sum core.Vec3
	for _, offset := range tetrahedronOffsets {
		o := offset.Multiply(tetrahedronScale * eps)
		d := n.Distance(p.Add(o))
		sum = sum.Add(offset.Multiply(d))
	}
	return sum.Normalize()
}

// DefaultNormalEps is the epsilon used when callers don't specify one.
const DefaultNormalEps = 1e-4

// Empty is the identity node for Difference: its distance is always +Inf,
// so subtracting it from anything leaves the other operand unchanged.
type Empty struct{}

// Distance always returns +Inf.
func (Empty) Distance(core.Vec3) float64 {
	return math.Inf(1)
}

// Sample returns +Inf distance and the default material.
func (Empty) Sample(core.Vec3) Sample {
	return Sample{Value: math.Inf(1), Material: material.Default()}
}
