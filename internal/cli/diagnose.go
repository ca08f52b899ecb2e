package cli

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/meowcraft/launcher/internal/platform"
	"github.com/meowcraft/launcher/internal/profile"
)

func newDiagnoseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Report the launcher environment's condition",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir := app.Launcher.DataDir

			report := DiagnoseReport{Checks: []DiagnoseCheck{
				checkDir("data directory", dataDir),
				checkDir("instances directory", filepath.Join(dataDir, "instances")),
				checkInstance("instance", app.Orchestrator.InstanceDir()),
				checkFile("account registry", filepath.Join(dataDir, profile.AccountsFileName)),
				checkFile("launcher settings", filepath.Join(dataDir, "prismlauncher.cfg")),
				checkFile("launcher executable", platform.LauncherExecutable(app.Launcher.BundleDir)),
			}}

			NewOutput(cfg.Output).Print(report)
			return nil
		},
	}
}

func checkDir(name, path string) DiagnoseCheck {
	info, err := os.Stat(path)
	return DiagnoseCheck{
		Name: name,
		Path: path,
		OK:   err == nil && info.IsDir(),
	}
}

func checkFile(name, path string) DiagnoseCheck {
	info, err := os.Stat(path)
	check := DiagnoseCheck{
		Name: name,
		Path: path,
		OK:   err == nil && !info.IsDir(),
	}
	if check.OK {
		check.Detail = strconv.FormatInt(info.Size(), 10) + " bytes"
	}
	return check
}

func checkInstance(name, path string) DiagnoseCheck {
	check := checkDir(name, path)
	if !check.OK {
		return check
	}

	entries, err := os.ReadDir(path)
	if err == nil {
		check.Detail = strconv.Itoa(len(entries)) + " entries"
	}
	return check
}
