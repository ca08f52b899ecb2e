// Package cli implements the meowcraft command-line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/meowcraft/launcher/internal/config"
	"github.com/meowcraft/launcher/internal/factory"
)

var (
	cfg    *Config
	app    *factory.App
	logger *slog.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "meowcraft",
		Short: "Provision and launch the MeowCraft instance",
		Long: `meowcraft takes a machine from any starting condition to a running
game: it downloads the instance content if missing, materializes the
chosen account into the launcher's registry, and hands off to the
launcher process.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)

			launcherCfg, err := config.Load(cfg.ConfigFile)
			if err != nil {
				return err
			}
			if cfg.DataDir != "" {
				launcherCfg.DataDir = cfg.DataDir
			}

			app, err = factory.New(factory.Config{
				Launcher: launcherCfg,
				Logger:   logger,
			})
			return err
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Config file path (env: MEOWCRAFT_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Launcher data directory (env: MEOWCRAFT_DATA_DIR)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newLaunchCmd())
	rootCmd.AddCommand(newDiagnoseCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
