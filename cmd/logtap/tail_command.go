package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"logtap/internal/client"
)

func newTailCommand(ctx *commandContext) *cobra.Command {
	var file string
	var total int64
	var keywords []string

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Fetch the latest matching lines from a served log file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			address, err := ctx.serverAddress()
			if err != nil {
				return err
			}
			c, err := client.New(address)
			if err != nil {
				return err
			}
			_, err = c.Logs(cmd.Context(), client.Query{
				File:     file,
				Total:    total,
				Keywords: keywords,
			}, cmd.OutOrStdout())
			if errors.Is(err, client.ErrRejected) {
				return fmt.Errorf("server refused the search: %w", err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Log file name, relative to the served directory")
	cmd.Flags().Int64VarP(&total, "total", "n", 10, "Number of matching lines to fetch")
	cmd.Flags().StringArrayVarP(&keywords, "keyword", "k", nil, "Required substring; repeat for a conjunction")
	return cmd
}
