package main

import (
	"fmt"

	"github.com/gojetpack/pyos"
	"github.com/spf13/cobra"

	"agencyscraper/internal/config"
)

func newInitConfigCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init-config [--path FILE] [--force]",
		Short: "Writes the default configuration to a YAML file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pyos.Path.Exist(path) && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			if err := config.Default().SaveConfig(path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Default configuration written to %s\n", path)

			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "agencies.yaml", "Destination file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
