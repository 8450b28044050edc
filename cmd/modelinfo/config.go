package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	var save bool
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration, optionally saving it",
		Long:  "Print the configuration after defaults, config file and flags are merged. With --save the result is written to the user config directory, or to --path.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, string(data))

			if !save {
				return nil
			}
			if path != "" {
				err = a.cfg.SaveTo(path)
			} else {
				err = a.cfg.Save()
			}
			if err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Write the effective config to disk")
	cmd.Flags().StringVar(&path, "path", "", "Destination for --save (default: user config directory)")
	return cmd
}
