package scad

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/csg"
)

func testTree() csg.Solid {
	return csg.Difference(
		csg.Union(
			csg.Cube{Size: r3.Vec{X: 1, Y: 2, Z: 3}, Center: true},
			csg.Translate(csg.Sphere{R: 2, Facets: 32}, r3.Vec{X: 1}),
		),
		csg.Cylinder{H: 5, R1: 1, R2: 0.5},
	)
}

func TestGolden(t *testing.T) {
	got, err := String(testTree())
	if err != nil {
		t.Fatal(err)
	}
	want := `difference() {
  union() {
    cube([1, 2, 3], center=true);
    multmatrix([[1, 0, 0, 1], [0, 1, 0, 0], [0, 0, 1, 0], [0, 0, 0, 1]])
      sphere(r=2, $fn=32);
  }
  cylinder(h=5, r1=1, r2=0.5, center=false);
}
`
	if got != want {
		t.Errorf("serialized form mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestDeterministic(t *testing.T) {
	a, err := String(testTree())
	if err != nil {
		t.Fatal(err)
	}
	b, err := String(testTree())
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("two serializations of the same tree differ")
	}
}

func TestExtrudeAndMirror(t *testing.T) {
	profile := []r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}
	s := csg.MirrorYZ(csg.LinearExtrude{Profile: profile, H: 2.5})
	got, err := String(s)
	if err != nil {
		t.Fatal(err)
	}
	want := `mirror([1, 0, 0])
  linear_extrude(height=2.5, center=false)
    polygon(points=[[0, 0], [10, 0], [10, 5]]);
`
	if got != want {
		t.Errorf("serialized form mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPolyhedron(t *testing.T) {
	p := csg.Polyhedron{
		Points: []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}},
		Faces:  [][]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {0, 3, 2}},
	}
	got, err := String(p)
	if err != nil {
		t.Fatal(err)
	}
	want := "polyhedron(points=[[0, 0, 0], [1, 0, 0], [0, 1, 0], [0, 0, 1]], " +
		"faces=[[0, 2, 1], [0, 1, 3], [1, 2, 3], [0, 3, 2]]);\n"
	if got != want {
		t.Errorf("serialized form mismatch:\n got: %q\nwant: %q", got, want)
	}
}
