// Package scad serializes csg expression trees into OpenSCAD source.
// The emitted text is deterministic for a given tree, so generated
// files diff cleanly across runs.
package scad

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/csg"
)

// Write serializes the solid to w as an OpenSCAD program.
func Write(w io.Writer, s csg.Solid) error {
	bw := bufio.NewWriter(w)
	e := &emitter{w: bw}
	e.node(s, 0)
	if e.err != nil {
		return e.err
	}
	return bw.Flush()
}

// String serializes the solid to OpenSCAD source text.
func String(s csg.Solid) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, s); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type emitter struct {
	w   *bufio.Writer
	err error
}

func (e *emitter) printf(depth int, format string, args ...any) {
	if e.err != nil {
		return
	}
	for i := 0; i < depth; i++ {
		if _, e.err = e.w.WriteString("  "); e.err != nil {
			return
		}
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *emitter) node(s csg.Solid, depth int) {
	switch n := s.(type) {
	case csg.Cube:
		e.printf(depth, "cube([%s, %s, %s], center=%t);\n",
			num(n.Size.X), num(n.Size.Y), num(n.Size.Z), n.Center)
	case csg.Sphere:
		e.printf(depth, "sphere(r=%s%s);\n", num(n.R), facets(n.Facets))
	case csg.Cylinder:
		e.printf(depth, "cylinder(h=%s, r1=%s, r2=%s, center=%t%s);\n",
			num(n.H), num(n.R1), num(n.R2), n.Center, facets(n.Facets))
	case csg.Polyhedron:
		e.printf(depth, "polyhedron(points=%s, faces=%s);\n",
			points3(n.Points), faceList(n.Faces))
	case csg.LinearExtrude:
		e.printf(depth, "linear_extrude(height=%s, center=%t)\n", num(n.H), n.Center)
		e.printf(depth+1, "polygon(points=%s);\n", points2(n.Profile))
	case *csg.Bool:
		e.printf(depth, "%s() {\n", n.Op)
		for _, k := range n.Kids {
			e.node(k, depth+1)
		}
		e.printf(depth, "}\n")
	case *csg.Affine:
		e.printf(depth, "multmatrix(%s)\n", matrix(n.M))
		e.node(n.Kid, depth+1)
	case *csg.Mirror:
		e.printf(depth, "mirror([%s, %s, %s])\n", num(n.N.X), num(n.N.Y), num(n.N.Z))
		e.node(n.Kid, depth+1)
	default:
		if e.err == nil {
			e.err = fmt.Errorf("scad: cannot serialize node of type %T", s)
		}
	}
}

// num formats a scalar with the shortest exact decimal representation.
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// facets renders a $fn override, or nothing for renderer defaults.
func facets(n int) string {
	if n <= 0 {
		return ""
	}
	return ", $fn=" + strconv.Itoa(n)
}

func points3(pts []r3.Vec) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, p := range pts {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "[%s, %s, %s]", num(p.X), num(p.Y), num(p.Z))
	}
	sb.WriteByte(']')
	return sb.String()
}

func points2(pts []r2.Vec) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, p := range pts {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "[%s, %s]", num(p.X), num(p.Y))
	}
	sb.WriteByte(']')
	return sb.String()
}

func faceList(faces [][]int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, f := range faces {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('[')
		for j, idx := range f {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Itoa(idx))
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
	return sb.String()
}

// matrix renders a 4x4 row-major multmatrix argument.
func matrix(m csg.M44) string {
	rows := [4][4]float64{
		{m.X00, m.X01, m.X02, m.X03},
		{m.X10, m.X11, m.X12, m.X13},
		{m.X20, m.X21, m.X22, m.X23},
		{m.X30, m.X31, m.X32, m.X33},
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, r := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "[%s, %s, %s, %s]", num(r[0]), num(r[1]), num(r[2]), num(r[3]))
	}
	sb.WriteByte(']')
	return sb.String()
}
