// Package thread generates helical screw thread solids as explicit
// vertex/face polyhedra.
//
// A thread is built from N longitudinal steps, each contributing one
// five-vertex V-profile lobe advancing helically in z. Consecutive
// lobes are stitched with quad faces; the bottom is capped with a fan
// and the top with a conical taper so the solid prints without
// supports. The result is a closed 2-manifold: every edge is shared by
// exactly two faces.
package thread

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/csg"
)

// Spec describes one helical thread solid.
type Spec struct {
	// Diameter is the major (crest) diameter.
	Diameter float64
	// Pitch is the thread-to-thread distance.
	Pitch float64
	// Length of the threaded section.
	Length float64
	// PerTurn is the renderer's angular faceting at the crest radius:
	// the subdivisions-per-turn count a. Zero selects 16.
	PerTurn int
	// Draft substitutes a plain capped cylinder for quick previews.
	Draft bool
}

func (s Spec) perTurn() int {
	if s.PerTurn <= 0 {
		return 16
	}
	return s.PerTurn
}

// Steps returns the longitudinal step count N = floor(2*a*L/P).
func (s Spec) Steps() int {
	return int(2 * float64(s.perTurn()) * s.Length / s.Pitch)
}

// profile is the V-lobe cross section as (radius, z offset) pairs:
// root, lower flank at -3/8 P, crest, upper flank at +3/8 P, mirrored
// root. The closing root-to-root edge forms the inner face.
func (s Spec) profile() [5][2]float64 {
	depth := 0.625 * s.Pitch
	crest := s.Diameter / 2
	root := crest - depth
	flank := crest - 0.75*depth
	p := s.Pitch
	return [5][2]float64{
		{root, -p / 2},
		{flank, -3.0 / 8.0 * p},
		{crest, 0},
		{flank, 3.0 / 8.0 * p},
		{root, p / 2},
	}
}

// Screw returns the external thread solid. The base of the helix sits
// at z=0 and winds upward. Threads shorter than two pitches degenerate;
// they come back as the draft cylinder.
func Screw(s Spec) csg.Solid {
	n := s.Steps()
	if s.Draft || s.Length < 2*s.Pitch || n < 2 {
		cyl := csg.Cylinder{H: s.Length, R1: s.Diameter / 2, R2: s.Diameter / 2, Center: true, Facets: s.perTurn()}
		return csg.Translate(cyl, r3.Vec{Z: s.Length / 2})
	}
	a := s.perTurn()
	prof := s.profile()
	// 2a steps per turn: half a facet of azimuth and half a facet of
	// rise per step.
	dTheta := math.Pi / float64(a)
	dz := s.Pitch / (2 * float64(a))

	points := make([]r3.Vec, 0, 5*n+2)
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(float64(i) * dTheta)
		z := float64(i) * dz
		for _, rz := range prof {
			points = append(points, r3.Vec{X: rz[0] * cos, Y: rz[0] * sin, Z: z + rz[1]})
		}
	}
	// Cap apexes: bottom fan center and raised top taper point.
	bottom := ringCenter(points[:5])
	topRing := points[5*(n-1):]
	top := ringCenter(topRing)
	top.Z += s.Pitch / 2
	points = append(points, bottom, top)
	bi, ti := 5*n, 5*n+1

	var faces [][]int
	for i := 0; i+1 < n; i++ {
		for j := 0; j < 5; j++ {
			k := (j + 1) % 5
			// Outward-facing quad between lobe i and lobe i+1.
			faces = append(faces, []int{5*i + j, 5*i + k, 5*(i+1) + k, 5*(i+1) + j})
		}
	}
	for j := 0; j < 5; j++ {
		k := (j + 1) % 5
		faces = append(faces, []int{bi, k, j})
		faces = append(faces, []int{ti, 5*(n-1) + j, 5*(n-1) + k})
	}
	return csg.Polyhedron{Points: points, Faces: faces}
}

func ringCenter(ring []r3.Vec) r3.Vec {
	var c r3.Vec
	for _, p := range ring {
		c = r3.Add(c, p)
	}
	return r3.Scale(1/float64(len(ring)), c)
}

// Internal returns the subtraction volume for cutting an internal
// thread: the same thread nested slightly larger by the clearance.
func Internal(s Spec, clearance float64) csg.Solid {
	s.Diameter += 2 * clearance
	return Screw(s)
}
