// modelinfo is a CLI utility for inspecting PureParts model files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/pureparts/internal/config"
	"github.com/Faultbox/pureparts/internal/logger"
	"github.com/Faultbox/pureparts/pkg/loader"
)

// app carries what every subcommand needs after flags are parsed.
type app struct {
	flags *config.Flags
	cfg   *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "modelinfo",
		Short:         "Inspect PureParts .model and .obj mesh files",
		Long:          `modelinfo loads LOD1/LOD3 binary models and OBJ meshes the way the viewer does and reports their geometry.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.flags)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	a.flags = config.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newInfoCmd(a),
		newScanCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// loader builds a model loader from the parsed configuration.
func (a *app) loader() *loader.Loader {
	return loader.New(a.cfg.Loader, logger.Named("loader"))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
