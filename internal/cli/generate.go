package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell"
	"github.com/keywell/keywell/csg"
	"github.com/keywell/keywell/parts"
	"github.com/keywell/keywell/scad"
)

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		outDir     string
		stand      bool
		fitCheck   bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the case and write one .scad file per part",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if stand {
				cfg.Stand.Enable = true
			}

			asm, err := keywell.Build(cfg)
			if err != nil {
				return fmt.Errorf("build case: %w", err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			outputs := []struct {
				name  string
				solid csg.Solid
			}{
				{"right.scad", asm.Right},
				{"left.scad", asm.Left},
				{"bottom-right.scad", asm.BottomRight},
				{"bottom-left.scad", asm.BottomLeft},
				{"stand.scad", asm.Stand},
				{"boot.scad", asm.Boot},
			}
			for _, p := range outputs {
				if p.solid == nil {
					continue
				}
				path := filepath.Join(outDir, p.name)
				if err := writeSCAD(path, p.solid); err != nil {
					return err
				}
				logger.Info("wrote part", "file", path)
			}
			if fitCheck {
				fit, err := fitCheckSolid(cfg)
				if err != nil {
					return fmt.Errorf("build fit check: %w", err)
				}
				path := filepath.Join(outDir, "fitcheck.scad")
				if err := writeSCAD(path, fit); err != nil {
					return err
				}
				logger.Info("wrote part", "file", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config overriding the reference keyboard")
	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory")
	cmd.Flags().BoolVar(&stand, "stand", false, "also generate the tenting stand and boot")
	cmd.Flags().BoolVar(&fitCheck, "fitcheck", false, "also generate keycaps and switches placed on the right half")
	return cmd
}

// fitCheckSolid places a meshed keycap and a switch body on every key
// of the right half, a visual clearance check against the web and
// walls.
func fitCheckSolid(cfg keywell.Config) (csg.Solid, error) {
	g, err := keywell.NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	cap1u, err := parts.Keycap(cfg.PlateWidth)
	if err != nil {
		return nil, err
	}
	sw := parts.SwitchBody()
	caps := g.PlaceKeys(func(keywell.Coord) csg.Solid {
		return csg.Union(
			csg.Translate(cap1u, r3.Vec{Z: capStandoff}),
			sw,
		)
	})
	return csg.Union(caps...), nil
}

// capStandoff lifts the keycap to its resting height on the stem.
const capStandoff = 6.6

func writeSCAD(path string, s csg.Solid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := scad.Write(f, s); err != nil {
		f.Close()
		return fmt.Errorf("serialize %s: %w", path, err)
	}
	return f.Close()
}
