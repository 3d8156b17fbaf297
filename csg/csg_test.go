package csg

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-12

func TestRotateQuarterTurns(t *testing.T) {
	got := RotateZ(math.Pi / 2).MulPosition(r3.Vec{X: 1})
	want := r3.Vec{Y: 1}
	if r3.Norm(r3.Sub(got, want)) > 1e-9 {
		t.Errorf("RotateZ(pi/2)*ex = %v, want %v", got, want)
	}
	got = RotateX(math.Pi / 2).MulPosition(r3.Vec{Y: 1})
	want = r3.Vec{Z: 1}
	if r3.Norm(r3.Sub(got, want)) > 1e-9 {
		t.Errorf("RotateX(pi/2)*ey = %v, want %v", got, want)
	}
}

func TestRigidInverse(t *testing.T) {
	m := Translate3d(r3.Vec{X: 3, Y: -2, Z: 7}).
		Mul(RotateZ(0.4)).
		Mul(RotateY(-1.1)).
		Mul(RotateX(0.25))
	id := m.Mul(m.Inv())
	if !id.EqualWithin(Identity3d(), 1e-9) {
		t.Errorf("m*inv(m) != identity:\n%+v", id)
	}
}

func TestMulPositionComposition(t *testing.T) {
	a := RotateY(0.3)
	b := Translate3d(r3.Vec{X: 5})
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	composed := b.Mul(a).MulPosition(p)
	sequential := b.MulPosition(a.MulPosition(p))
	if r3.Norm(r3.Sub(composed, sequential)) > tol {
		t.Errorf("(b*a)p = %v, b(a p) = %v", composed, sequential)
	}
}

func TestUnionFlattens(t *testing.T) {
	a := Cube{Size: r3.Vec{X: 1, Y: 1, Z: 1}}
	b := Sphere{R: 1}
	c := Cylinder{H: 1, R1: 1, R2: 1}
	u := Union(Union(a, b), c)
	bl, ok := u.(*Bool)
	if !ok {
		t.Fatalf("union returned %T, want *Bool", u)
	}
	if bl.Op != OpUnion || len(bl.Kids) != 3 {
		t.Errorf("got op=%v kids=%d, want union with 3 kids", bl.Op, len(bl.Kids))
	}
}

func TestSingleChildCollapse(t *testing.T) {
	a := Sphere{R: 2}
	if got := Union(a); got != Solid(a) {
		t.Errorf("Union of one solid should return it unchanged, got %T", got)
	}
}

func TestDifferenceDoesNotFlatten(t *testing.T) {
	a := Cube{Size: r3.Vec{X: 1, Y: 1, Z: 1}}
	b := Sphere{R: 1}
	c := Sphere{R: 2}
	inner := Difference(a, b)
	outer := Difference(inner, c)
	bl := outer.(*Bool)
	if len(bl.Kids) != 2 {
		t.Errorf("difference flattened a nested difference: kids=%d", len(bl.Kids))
	}
	if bl.Kids[0] != inner {
		t.Errorf("difference minuend was reordered")
	}
}

func TestTransformMerges(t *testing.T) {
	a := RotateZ(0.7)
	b := Translate3d(r3.Vec{Y: 4})
	s := Transform(Transform(Cube{Size: r3.Vec{X: 1, Y: 1, Z: 1}}, a), b)
	aff, ok := s.(*Affine)
	if !ok {
		t.Fatalf("stacked transforms returned %T, want *Affine", s)
	}
	if _, nested := aff.Kid.(*Affine); nested {
		t.Error("stacked transforms were not merged into one node")
	}
	want := b.Mul(a)
	if !aff.M.EqualWithin(want, tol) {
		t.Errorf("merged matrix mismatch:\n got %+v\nwant %+v", aff.M, want)
	}
}

func TestCombinatorPanics(t *testing.T) {
	for _, tc := range []struct {
		name string
		call func()
	}{
		{"empty union", func() { Union() }},
		{"one-arg difference", func() { Difference(Sphere{R: 1}) }},
		{"one-arg intersection", func() { Intersection(Sphere{R: 1}) }},
		{"nil hull arg", func() { Hull(Sphere{R: 1}, nil) }},
		{"nil transform arg", func() { Transform(nil, Identity3d()) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic", tc.name)
				}
			}()
			tc.call()
		})
	}
}
