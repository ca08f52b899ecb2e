// Package factory wires the application's components together.
package factory

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/meowcraft/launcher/internal/account"
	"github.com/meowcraft/launcher/internal/config"
	"github.com/meowcraft/launcher/internal/dependencies/clock"
	"github.com/meowcraft/launcher/internal/dependencies/random"
	"github.com/meowcraft/launcher/internal/fetch"
	"github.com/meowcraft/launcher/internal/identity"
	"github.com/meowcraft/launcher/internal/install"
	"github.com/meowcraft/launcher/internal/launchexec"
	"github.com/meowcraft/launcher/internal/notify"
	"github.com/meowcraft/launcher/internal/platform"
	"github.com/meowcraft/launcher/internal/profile"
	"github.com/meowcraft/launcher/internal/provision"
	"github.com/meowcraft/launcher/internal/web/sse"
)

// App contains all wired application components
type App struct {
	Launcher config.Config

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Components
	ProfileStore     *profile.Store
	Fetcher          *fetch.Fetcher
	Installer        *install.Installer
	Notifier         *notify.Client
	Materializer     *account.Materializer
	Orchestrator     *provision.Orchestrator
	Spawner          launchexec.Spawner
	IdentityProvider identity.Provider
	Hub              *sse.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// Launcher is the loaded launcher configuration
	Launcher config.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// IdentityProvider performs federated logins (optional)
	// If nil, federated login reports unavailable
	IdentityProvider identity.Provider
}

// New creates an application with all dependencies wired. The data
// directory is resolved per platform when not configured, and seeded
// from the bundle on first run.
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	launcherCfg := cfg.Launcher
	if launcherCfg.DataDir == "" {
		dataDir, err := platform.DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolving data directory: %w", err)
		}
		launcherCfg.DataDir = dataDir
	}

	if launcherCfg.BundleDir != "" {
		if err := platform.InitDataDir(launcherCfg.DataDir, launcherCfg.BundleDir); err != nil {
			return nil, fmt.Errorf("seeding data directory: %w", err)
		}
	}

	provider := cfg.IdentityProvider
	if provider == nil {
		provider = identity.Unavailable()
	}

	spawner := launchexec.NewProcessSpawner(
		platform.LauncherExecutable(launcherCfg.BundleDir), logger)

	return newWithDependencies(launcherCfg, os.TempDir(), clock.New(), random.New(), provider, spawner, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	launcherCfg config.Config,
	tempDir string,
	clk clock.Clock,
	rnd random.Random,
	provider identity.Provider,
	spawner launchexec.Spawner,
	logger *slog.Logger,
) *App {
	store := profile.NewStore(launcherCfg.DataDir, logger)
	notifier := notify.NewClient(launcherCfg.Notify, logger)
	fetcher := fetch.NewFetcher(logger)
	installer := install.NewInstaller(logger)
	materializer := account.NewMaterializer(store, clk, notifier, logger)

	hub := sse.NewHub(logger)
	go hub.Run()

	orchestrator := provision.NewOrchestrator(
		provision.Config{
			InstanceName: launcherCfg.InstanceName,
			DownloadURL:  launcherCfg.InstanceURL,
			DataDir:      launcherCfg.DataDir,
			TempDir:      tempDir,
		},
		fetcher,
		installer,
		materializer,
		rnd,
		logger,
	)
	orchestrator.AddObserver(hub)

	return &App{
		Launcher:         launcherCfg,
		Clock:            clk,
		Random:           rnd,
		ProfileStore:     store,
		Fetcher:          fetcher,
		Installer:        installer,
		Notifier:         notifier,
		Materializer:     materializer,
		Orchestrator:     orchestrator,
		Spawner:          spawner,
		IdentityProvider: provider,
		Hub:              hub,
	}
}
