package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"logtap/internal/fixture"
)

func newFixtureCommand(ctx *commandContext) *cobra.Command {
	var name string
	var lines int64

	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Write a synthetic log file into the served directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if lines < 0 {
				return errors.New("--lines must be non-negative")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			path := filepath.Join(cfg.Logs.Dir, name)
			if err := fixture.GenerateFile(path, lines); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d lines to %s\n", lines, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "large.log", "File name to create under logs.dir")
	cmd.Flags().Int64Var(&lines, "lines", 1_000_000, "Number of lines to generate")
	return cmd
}
