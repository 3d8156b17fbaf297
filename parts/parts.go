// Package parts builds the cosmetic solids that accompany a case
// render for fit checks: keycaps, switch bodies and a PCB blank. The
// keycap is modelled as a signed distance field and meshed into a
// polyhedron; the rest are plain primitive trees.
package parts

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/csg"
)

// meshCells controls the marching cubes resolution for meshed parts.
const meshCells = 64

// Keycap returns a DSA-profile keycap of the given unit width, meshed
// from a rounded box with a spherical dish cut into the top. The cap
// sits with its skirt bottom at z=0.
func Keycap(unitWidth float64) (csg.Solid, error) {
	const (
		capHeight = 7.4
		roundR    = 1.2
		dishR     = 40.0
		dishDepth = 1.1
	)
	body, err := sdf.Box3D(v3.Vec{X: unitWidth, Y: unitWidth, Z: capHeight}, roundR)
	if err != nil {
		return nil, fmt.Errorf("keycap body: %w", err)
	}
	dish, err := sdf.Sphere3D(dishR)
	if err != nil {
		return nil, fmt.Errorf("keycap dish: %w", err)
	}
	dish = sdf.Transform3D(dish, sdf.Translate3d(v3.Vec{Z: capHeight/2 + dishR - dishDepth}))
	capped := sdf.Difference3D(body, dish)
	capped = sdf.Transform3D(capped, sdf.Translate3d(v3.Vec{Z: capHeight / 2}))
	return toPolyhedron(capped), nil
}

// toPolyhedron meshes an SDF with marching cubes and rebuilds the
// triangle soup as an indexed polyhedron, welding duplicate vertices.
func toPolyhedron(s sdf.SDF3) csg.Solid {
	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(meshCells))

	type vkey [3]int64
	quant := func(v v3.Vec) vkey {
		const res = 1e6
		return vkey{int64(v.X * res), int64(v.Y * res), int64(v.Z * res)}
	}
	index := make(map[vkey]int)
	var points []r3.Vec
	faces := make([][]int, 0, len(tris))
	for _, tri := range tris {
		face := make([]int, 3)
		for j := 0; j < 3; j++ {
			v := tri[j]
			k := quant(v)
			i, ok := index[k]
			if !ok {
				i = len(points)
				index[k] = i
				points = append(points, r3.Vec{X: v.X, Y: v.Y, Z: v.Z})
			}
			face[j] = i
		}
		faces = append(faces, face)
	}
	return csg.Polyhedron{Points: points, Faces: faces}
}

// SwitchBody returns a simplified MX-style switch: lower housing below
// the plate, tapered upper housing above it, and the cross stem. The
// plate top is z=0.
func SwitchBody() csg.Solid {
	lower := csg.Translate(
		csg.Cube{Size: r3.Vec{X: 14, Y: 14, Z: 5}, Center: true},
		r3.Vec{Z: -2.5},
	)
	upperBase := csg.Translate(
		csg.Cube{Size: r3.Vec{X: 15.6, Y: 15.6, Z: 0.8}, Center: true},
		r3.Vec{Z: 0.4},
	)
	upperTop := csg.Translate(
		csg.Cube{Size: r3.Vec{X: 10, Y: 10, Z: 0.8}, Center: true},
		r3.Vec{Z: 6},
	)
	stem := csg.Translate(
		csg.Cylinder{H: 4, R1: 2, R2: 2, Center: true},
		r3.Vec{Z: 8.4},
	)
	return csg.Union(lower, csg.Hull(upperBase, upperTop), stem)
}

// PCB returns a bare board blank of the given footprint and thickness,
// top face at z=0.
func PCB(w, l, t float64) csg.Solid {
	return csg.Translate(
		csg.Cube{Size: r3.Vec{X: w, Y: l, Z: t}, Center: true},
		r3.Vec{Z: -t / 2},
	)
}
