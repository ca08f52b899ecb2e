package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meowcraft/launcher/internal/model"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Download and extract the instance content if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Output != "json" {
				app.Orchestrator.AddObserver(progressPrinter())
			}

			if err := app.Orchestrator.EnsureContent(cmd.Context()); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(InstallResult{
				Instance:  app.Launcher.InstanceName,
				Installed: true,
				Path:      app.Orchestrator.InstanceDir(),
			})
			return nil
		},
	}
}

// progressPrinter renders provisioning progress to stderr so stdout
// stays clean for the command result.
func progressPrinter() model.ProgressObserver {
	var lastLine string
	return model.ProgressFunc(func(ev model.ProgressEvent) {
		line := string(ev.Stage) + ": " + ev.Message
		if ev.Percent >= 0 {
			line = fmt.Sprintf("%s: %s (%d%%)", ev.Stage, ev.Message, ev.Percent)
		}
		if line == lastLine {
			return
		}
		lastLine = line
		fmt.Fprintln(os.Stderr, line)
	})
}
