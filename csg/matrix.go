package csg

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// M44 is a 4x4 rigid transform matrix in row-major order. The geometry
// engine restricts itself to rotations and translations, so the bottom
// row is always [0 0 0 1].
type M44 struct {
	X00, X01, X02, X03 float64
	X10, X11, X12, X13 float64
	X20, X21, X22, X23 float64
	X30, X31, X32, X33 float64
}

// Identity3d returns the identity transform.
func Identity3d() M44 {
	return M44{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1}
}

// Translate3d returns a translation matrix.
func Translate3d(v r3.Vec) M44 {
	return M44{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1}
}

// RotateX returns a matrix rotating by a radians about the x axis.
func RotateX(a float64) M44 {
	s, c := math.Sincos(a)
	return M44{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1}
}

// RotateY returns a matrix rotating by a radians about the y axis.
func RotateY(a float64) M44 {
	s, c := math.Sincos(a)
	return M44{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1}
}

// RotateZ returns a matrix rotating by a radians about the z axis.
func RotateZ(a float64) M44 {
	s, c := math.Sincos(a)
	return M44{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1}
}

// Mul multiplies a by b, so that the returned transform applies b first
// and a second.
func (a M44) Mul(b M44) M44 {
	return M44{
		X00: a.X00*b.X00 + a.X01*b.X10 + a.X02*b.X20 + a.X03*b.X30,
		X01: a.X00*b.X01 + a.X01*b.X11 + a.X02*b.X21 + a.X03*b.X31,
		X02: a.X00*b.X02 + a.X01*b.X12 + a.X02*b.X22 + a.X03*b.X32,
		X03: a.X00*b.X03 + a.X01*b.X13 + a.X02*b.X23 + a.X03*b.X33,
		X10: a.X10*b.X00 + a.X11*b.X10 + a.X12*b.X20 + a.X13*b.X30,
		X11: a.X10*b.X01 + a.X11*b.X11 + a.X12*b.X21 + a.X13*b.X31,
		X12: a.X10*b.X02 + a.X11*b.X12 + a.X12*b.X22 + a.X13*b.X32,
		X13: a.X10*b.X03 + a.X11*b.X13 + a.X12*b.X23 + a.X13*b.X33,
		X20: a.X20*b.X00 + a.X21*b.X10 + a.X22*b.X20 + a.X23*b.X30,
		X21: a.X20*b.X01 + a.X21*b.X11 + a.X22*b.X21 + a.X23*b.X31,
		X22: a.X20*b.X02 + a.X21*b.X12 + a.X22*b.X22 + a.X23*b.X32,
		X23: a.X20*b.X03 + a.X21*b.X13 + a.X22*b.X23 + a.X23*b.X33,
		X30: a.X30*b.X00 + a.X31*b.X10 + a.X32*b.X20 + a.X33*b.X30,
		X31: a.X30*b.X01 + a.X31*b.X11 + a.X32*b.X21 + a.X33*b.X31,
		X32: a.X30*b.X02 + a.X31*b.X12 + a.X32*b.X22 + a.X33*b.X32,
		X33: a.X30*b.X03 + a.X31*b.X13 + a.X32*b.X23 + a.X33*b.X33,
	}
}

// MulPosition applies the transform to a point.
func (a M44) MulPosition(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: a.X00*v.X + a.X01*v.Y + a.X02*v.Z + a.X03,
		Y: a.X10*v.X + a.X11*v.Y + a.X12*v.Z + a.X13,
		Z: a.X20*v.X + a.X21*v.Y + a.X22*v.Z + a.X23,
	}
}

// Inv returns the inverse of a rigid transform: the rotation block is
// transposed and the translation reversed. Results are undefined for
// matrices with scaling or shear.
func (a M44) Inv() M44 {
	return M44{
		X00: a.X00, X01: a.X10, X02: a.X20,
		X10: a.X01, X11: a.X11, X12: a.X21,
		X20: a.X02, X21: a.X12, X22: a.X22,
		X03: -(a.X00*a.X03 + a.X10*a.X13 + a.X20*a.X23),
		X13: -(a.X01*a.X03 + a.X11*a.X13 + a.X21*a.X23),
		X23: -(a.X02*a.X03 + a.X12*a.X13 + a.X22*a.X23),
		X33: 1,
	}
}

// EqualWithin reports whether all elements of a and b agree to within tol.
func (a M44) EqualWithin(b M44, tol float64) bool {
	return math.Abs(a.X00-b.X00) <= tol && math.Abs(a.X01-b.X01) <= tol &&
		math.Abs(a.X02-b.X02) <= tol && math.Abs(a.X03-b.X03) <= tol &&
		math.Abs(a.X10-b.X10) <= tol && math.Abs(a.X11-b.X11) <= tol &&
		math.Abs(a.X12-b.X12) <= tol && math.Abs(a.X13-b.X13) <= tol &&
		math.Abs(a.X20-b.X20) <= tol && math.Abs(a.X21-b.X21) <= tol &&
		math.Abs(a.X22-b.X22) <= tol && math.Abs(a.X23-b.X23) <= tol &&
		math.Abs(a.X30-b.X30) <= tol && math.Abs(a.X31-b.X31) <= tol &&
		math.Abs(a.X32-b.X32) <= tol && math.Abs(a.X33-b.X33) <= tol
}
