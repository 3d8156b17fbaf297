// Package cli implements the keywell command-line interface: a
// generate command that emits OpenSCAD files for every part of the
// case, and an outline command that plots the traced perimeter for
// debugging wall tables.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/BurntSushi/toml"
	"github.com/keywell/keywell"
)

// Execute runs the keywell CLI and returns an error if any command
// fails. Logging defaults to info level; --verbose switches to debug.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "keywell",
		Short:        "keywell generates a curved split keyboard case as OpenSCAD source",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newOutlineCmd())

	return root.ExecuteContext(context.Background())
}

// loadConfig returns the reference configuration with TOML overrides
// applied when a file is given. Unknown keys are an error, not a
// silent drop.
func loadConfig(path string) (keywell.Config, error) {
	cfg := keywell.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undec[0].String())
	}
	return cfg, nil
}
