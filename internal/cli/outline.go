package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/keywell/keywell"
)

func newOutlineCmd() *cobra.Command {
	var (
		configPath string
		outPath    string
	)
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Plot the traced bottom outline, a debug aid for wall tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			g, err := keywell.NewGenerator(cfg)
			if err != nil {
				return err
			}
			pts, err := g.BottomOutline()
			if err != nil {
				return fmt.Errorf("trace perimeter: %w", err)
			}

			p := plot.New()
			p.Title.Text = "bottom outline"
			p.X.Label.Text = "x (mm)"
			p.Y.Label.Text = "y (mm)"

			xys := make(plotter.XYs, len(pts)+1)
			for i, pt := range pts {
				xys[i].X, xys[i].Y = pt.X, pt.Y
			}
			xys[len(pts)] = xys[0] // close the loop

			line, scatter, err := plotter.NewLinePoints(xys)
			if err != nil {
				return err
			}
			p.Add(line, scatter)

			if err := p.Save(6*vg.Inch, 6*vg.Inch, outPath); err != nil {
				return fmt.Errorf("save plot: %w", err)
			}
			logger.Info("wrote outline plot", "file", outPath, "points", len(pts))
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config overriding the reference keyboard")
	cmd.Flags().StringVarP(&outPath, "out", "o", "outline.png", "output image path")
	return cmd
}
