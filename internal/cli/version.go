package cli

import (
	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			NewOutput(cfg.Output).Print(VersionInfo{Version: Version})
			return nil
		},
	}
}
