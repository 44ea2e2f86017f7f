package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio/internal/buildinfo"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\nruntime: %s\n", buildinfo.String(), buildinfo.Runtime())
			return err
		},
	}
}
