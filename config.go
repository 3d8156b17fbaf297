// Package keywell generates the solid geometry of a split ergonomic
// keyboard case: a toroidally curved main key grid, a cylindrically
// curved thumb cluster, fillet webbing between key plates, a perimeter
// wall with screw bosses, a bottom cover and an optional tenting stand.
//
// The package builds csg expression trees only; it never evaluates
// booleans itself. Rendering belongs to an external kernel (see the
// scad package).
package keywell

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Config is the static configuration of one generator run. All lengths
// are millimetres, all angles radians unless noted. A Config is
// immutable once handed to NewGenerator.
type Config struct {
	// Main grid dimensions.
	Columns int `toml:"columns"`
	Rows    int `toml:"rows"`

	// FullHeightColumns lists the main-grid columns that keep their
	// bottom row. All other columns stop at BottomCutoffRow, carving
	// space for the thumb cluster and the palm key.
	FullHeightColumns []int `toml:"full_height_columns"`
	BottomCutoffRow   int   `toml:"bottom_cutoff_row"`

	// Key plate mount footprint and thickness.
	PlateWidth     float64 `toml:"plate_width"`
	PlateLength    float64 `toml:"plate_length"`
	PlateThickness float64 `toml:"plate_thickness"`
	// MountHole is the square switch cutout side length.
	MountHole float64 `toml:"mount_hole"`

	// Inter-key gaps, converted to arc at the local radius.
	GapX float64 `toml:"gap_x"`
	GapY float64 `toml:"gap_y"`

	// Column surface: one radius, phase and offset tweak per column.
	ColumnRadius []float64 `toml:"column_radius"`
	ColumnPhase  []float64 `toml:"column_phase"`
	ColumnOffY   []float64 `toml:"column_off_y"`
	ColumnOffZ   []float64 `toml:"column_off_z"`

	// Row surface: a single radius and constant phase.
	RowRadius float64 `toml:"row_radius"`
	RowPhase  float64 `toml:"row_phase"`

	// CaseHeight lifts the whole assembly off z=0.
	CaseHeight float64 `toml:"case_height"`

	// Palm key tuning (the key at the last column, last row).
	PalmOffset r3.Vec `toml:"palm_offset"`

	// BackCurveDrop is the z step of the back boundary curve past its
	// middle anchor.
	BackCurveDrop float64 `toml:"back_curve_drop"`

	Thumb ThumbConfig `toml:"thumb"`
	Web   WebConfig   `toml:"web"`
	Wall  WallConfig  `toml:"wall"`
	Boss  BossConfig  `toml:"boss"`
	Facet FacetConfig `toml:"facet"`
	Stand StandConfig `toml:"stand"`
}

// ThumbConfig places the thumb cluster on a single-radius cylinder.
type ThumbConfig struct {
	// Radius of the cylindrical sweep surface.
	Radius float64 `toml:"radius"`
	// Pitch is the fixed per-key pitch rotation about x.
	Pitch float64 `toml:"pitch"`
	// Slant brackets the sweep rotation: the cluster is rotated by
	// Slant, swept, then rotated back.
	Slant float64 `toml:"slant"`
	// Phase0 is the sweep angle of the first key; PhaseStep holds the
	// per-row phase increment for each true column index.
	Phase0    float64   `toml:"phase0"`
	PhaseStep []float64 `toml:"phase_step"`
	// Anchor names the main-grid key the cluster hangs off;
	// Offset is a hand-tuned translation applied after anchoring.
	AnchorColumn int    `toml:"anchor_column"`
	AnchorRow    int    `toml:"anchor_row"`
	Offset       r3.Vec `toml:"offset"`
}

// WebConfig controls the connector fillets between key plates.
type WebConfig struct {
	// Thickness of the webbing, also the height of marker posts.
	Thickness float64 `toml:"thickness"`
	// PostSize is the side of the small marker posts that get hulled
	// into fillet patches.
	PostSize float64 `toml:"post_size"`
}

// WallConfig controls the outer case wall.
type WallConfig struct {
	Thickness float64 `toml:"thickness"`
	// ZOffset drops wall outer markers relative to the plate edge.
	ZOffset float64 `toml:"z_offset"`
	// XYOffset pushes wall outer markers outward from the plate edge.
	XYOffset float64 `toml:"xy_offset"`
	// BottomThickness is the bottom cover plate thickness.
	BottomThickness float64 `toml:"bottom_thickness"`
}

// BossConfig describes the screw bosses along the wall.
type BossConfig struct {
	Radius     float64 `toml:"radius"`
	HoleRadius float64 `toml:"hole_radius"`
	Height     float64 `toml:"height"`
	// Countersink head radius and depth for the bottom cover screws.
	HeadRadius float64 `toml:"head_radius"`
	HeadDepth  float64 `toml:"head_depth"`
	// Thread parameters for threaded bosses.
	ThreadPitch     float64 `toml:"thread_pitch"`
	ThreadClearance float64 `toml:"thread_clearance"`
	// Table lists where bosses go; endpoints match wall segment pairs
	// in either order.
	Table []BossDescriptor `toml:"table"`
}

// FacetConfig mirrors the renderer's angular faceting resolution rule:
// a curve of radius r is split into max(min(360/FA, 2πr/FS), 5)
// fragments, or exactly FN fragments when FN > 0.
type FacetConfig struct {
	FN int     `toml:"fn"`
	FA float64 `toml:"fa"`
	FS float64 `toml:"fs"`
}

// Fragments returns the number of facets the renderer would use for a
// circle of radius r.
func (f FacetConfig) Fragments(r float64) int {
	if f.FN > 0 {
		return f.FN
	}
	n := math.Min(360/f.FA, 2*math.Pi*r/f.FS)
	if n < 5 {
		n = 5
	}
	return int(math.Ceil(n))
}

// StandConfig controls the optional tenting stand and boot.
type StandConfig struct {
	Enable bool `toml:"enable"`
	// TentAngle is the total rotational sweep of the stand.
	TentAngle float64 `toml:"tent_angle"`
	// Width of the swept strip either side of the base outline.
	StripWidth float64 `toml:"strip_width"`
	// Sections is the number of angle fractions evaluated; the swept
	// solid hull-stitches adjacent sections.
	Sections int `toml:"sections"`
	// Shape blends each section between pure rotation (0) and straight
	// orthogonal projection (1).
	Shape float64 `toml:"shape"`
	// MinThickness clamps the blended strip edge thickness.
	MinThickness float64 `toml:"min_thickness"`
	// Clearance wedge cut under the tented case.
	ClearanceAngle float64 `toml:"clearance_angle"`
	// Boot liner shell thicknesses.
	BootWall  float64 `toml:"boot_wall"`
	BootFloor float64 `toml:"boot_floor"`
	// Bosses names the subset of the boss table shared with the stand.
	Bosses []string `toml:"bosses"`
}

// DefaultConfig returns the reference keyboard: 6x5 main grid with two
// full-height columns plus the palm column, an 8-key thumb cluster and
// a six-boss wall. The numeric offsets and phases are hand-tuned shape
// constants, not derived values.
func DefaultConfig() Config {
	return Config{
		Columns:           6,
		Rows:              5,
		FullHeightColumns: []int{2, 3, 5},
		BottomCutoffRow:   4,

		PlateWidth:     17.5,
		PlateLength:    17.5,
		PlateThickness: 4.0,
		MountHole:      14.0,
		GapX:           2.0,
		GapY:           2.5,

		ColumnRadius: []float64{70, 70, 66, 66, 72, 85},
		ColumnPhase:  []float64{-0.26, -0.26, -0.32, -0.32, -0.22, -0.16},
		ColumnOffY:   []float64{0, 0, 2.82, 0, -6, -13},
		ColumnOffZ:   []float64{0, 0, -4.5, 0, 5.64, 6.0},

		RowRadius:  85,
		RowPhase:   -0.52,
		CaseHeight: 24.0,

		PalmOffset:    r3.Vec{X: -6.5, Y: -10.0, Z: 7.0},
		BackCurveDrop: 1.8,

		Thumb: ThumbConfig{
			Radius:       62,
			Pitch:        0.21,
			Slant:        0.35,
			Phase0:       0.19,
			PhaseStep:    []float64{-0.26, -0.26, -0.30, -0.34},
			AnchorColumn: 1,
			AnchorRow:    3,
			Offset:       r3.Vec{X: -4.0, Y: -15.5, Z: -5.5},
		},
		Web: WebConfig{
			Thickness: 3.5,
			PostSize:  0.1,
		},
		Wall: WallConfig{
			Thickness:       3.0,
			ZOffset:         -4.5,
			XYOffset:        2.5,
			BottomThickness: 2.6,
		},
		Boss: BossConfig{
			Radius:          4.0,
			HoleRadius:      1.7,
			Height:          11.0,
			HeadRadius:      3.1,
			HeadDepth:       1.8,
			ThreadPitch:     0.75,
			ThreadClearance: 0.3,
			Table:           defaultBossTable(),
		},
		Facet: FacetConfig{FA: 12, FS: 2},
		Stand: StandConfig{
			Enable:         false,
			TentAngle:      0.61,
			StripWidth:     9.0,
			Sections:       64,
			Shape:          0.35,
			MinThickness:   2.4,
			ClearanceAngle: 0.09,
			BootWall:       2.2,
			BootFloor:      2.0,
			Bosses:         []string{"back-left", "back-right", "front-right"},
		},
	}
}

// Validate checks the per-column slices against the grid dimensions and
// the basic positivity constraints.
func (c *Config) Validate() error {
	if c.Columns < 2 || c.Rows < 2 {
		return fmt.Errorf("grid must be at least 2x2, got %dx%d", c.Columns, c.Rows)
	}
	for name, s := range map[string][]float64{
		"column_radius": c.ColumnRadius,
		"column_phase":  c.ColumnPhase,
		"column_off_y":  c.ColumnOffY,
		"column_off_z":  c.ColumnOffZ,
	} {
		if len(s) != c.Columns {
			return fmt.Errorf("%s has %d entries, want %d", name, len(s), c.Columns)
		}
	}
	for _, r := range c.ColumnRadius {
		if r <= c.PlateLength {
			return fmt.Errorf("column radius %g too small for plate length %g", r, c.PlateLength)
		}
	}
	if c.RowRadius <= c.PlateWidth {
		return fmt.Errorf("row radius %g too small for plate width %g", c.RowRadius, c.PlateWidth)
	}
	if c.PlateThickness <= 0 || c.Wall.Thickness <= 0 {
		return fmt.Errorf("plate and wall thickness must be positive")
	}
	if len(c.Thumb.PhaseStep) < thumbRowLen(0) {
		return fmt.Errorf("thumb phase_step has %d entries, want %d", len(c.Thumb.PhaseStep), thumbRowLen(0))
	}
	if c.Facet.FN <= 0 && (c.Facet.FA <= 0 || c.Facet.FS <= 0) {
		return fmt.Errorf("faceting requires fn > 0 or both fa and fs > 0")
	}
	return nil
}
