// cmd/passivemap/version.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"passivemap/internal/platform/config"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.VersionString(version, commit, date))
		},
	}
}
