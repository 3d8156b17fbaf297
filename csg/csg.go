// Package csg builds constructive solid geometry expression trees.
//
// A Solid is an opaque node handle: primitives, rigid transforms and
// boolean combinators only record the operation, they never evaluate it.
// Evaluation belongs to an external geometry kernel; the scad package
// serializes a tree for OpenSCAD to evaluate.
package csg

import (
	"strconv"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Solid is a node in a CSG expression tree.
type Solid interface {
	solid()
}

// Op is a boolean combinator kind.
type Op uint8

const (
	OpUnion Op = iota
	OpDifference
	OpIntersection
	OpHull
)

func (op Op) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	case OpIntersection:
		return "intersection"
	case OpHull:
		return "hull"
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Cube is an axis-aligned box primitive.
type Cube struct {
	Size   r3.Vec
	Center bool
}

// Sphere is a sphere primitive centered on the origin.
// Facets overrides the renderer's default faceting when > 0.
type Sphere struct {
	R      float64
	Facets int
}

// Cylinder is a z-axis cone frustum primitive. R1 is the bottom radius,
// R2 the top radius. Facets overrides default faceting when > 0.
type Cylinder struct {
	H      float64
	R1, R2 float64
	Center bool
	Facets int
}

// Polyhedron is an explicit vertex/face solid. Faces index into Points
// and must wind clockwise when viewed from outside.
type Polyhedron struct {
	Points []r3.Vec
	Faces  [][]int
}

// LinearExtrude extrudes a closed 2D profile along +z.
type LinearExtrude struct {
	Profile []r2.Vec
	H       float64
	Center  bool
}

// Bool combines child solids with a boolean operation. For OpDifference
// the first child is the minuend and the rest are subtracted.
type Bool struct {
	Op   Op
	Kids []Solid
}

// Affine applies a rigid transform matrix to a child solid.
type Affine struct {
	M   M44
	Kid Solid
}

// Mirror reflects a child solid through the plane at the origin with
// normal N.
type Mirror struct {
	N   r3.Vec
	Kid Solid
}

func (Cube) solid()          {}
func (Sphere) solid()        {}
func (Cylinder) solid()      {}
func (Polyhedron) solid()    {}
func (LinearExtrude) solid() {}
func (*Bool) solid()         {}
func (*Affine) solid()       {}
func (*Mirror) solid()       {}

func newBool(op Op, kids []Solid) Solid {
	flat := kids[:0:0]
	for i, k := range kids {
		if k == nil {
			panic("nil solid argument (" + strconv.Itoa(i) + ") to " + op.String())
		}
		// Collapse nested combinators of the same associative kind.
		if b, ok := k.(*Bool); ok && b.Op == op && op != OpDifference {
			flat = append(flat, b.Kids...)
			continue
		}
		flat = append(flat, k)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Bool{Op: op, Kids: flat}
}

// Union returns the union of one or more solids.
func Union(kids ...Solid) Solid {
	if len(kids) == 0 {
		panic("union requires at least 1 solid")
	}
	return newBool(OpUnion, kids)
}

// Difference returns the first solid minus the remaining solids.
func Difference(kids ...Solid) Solid {
	if len(kids) < 2 {
		panic("difference requires at least 2 solids")
	}
	return newBool(OpDifference, kids)
}

// Intersection returns the intersection of two or more solids.
func Intersection(kids ...Solid) Solid {
	if len(kids) < 2 {
		panic("intersection requires at least 2 solids")
	}
	return newBool(OpIntersection, kids)
}

// Hull returns the convex hull enclosing the argument solids.
func Hull(kids ...Solid) Solid {
	if len(kids) == 0 {
		panic("hull requires at least 1 solid")
	}
	return newBool(OpHull, kids)
}

// Transform applies a rigid transform to a solid.
func Transform(s Solid, m M44) Solid {
	if s == nil {
		panic("nil solid argument to Transform")
	}
	// Merge stacked transforms into a single matrix node.
	if a, ok := s.(*Affine); ok {
		return &Affine{M: m.Mul(a.M), Kid: a.Kid}
	}
	return &Affine{M: m, Kid: s}
}

// Translate moves a solid by v.
func Translate(s Solid, v r3.Vec) Solid {
	return Transform(s, Translate3d(v))
}

// MirrorYZ reflects a solid through the x=0 plane. Used for producing
// the left-hand half of a symmetric assembly.
func MirrorYZ(s Solid) Solid {
	if s == nil {
		panic("nil solid argument to MirrorYZ")
	}
	return &Mirror{N: r3.Vec{X: 1}, Kid: s}
}
