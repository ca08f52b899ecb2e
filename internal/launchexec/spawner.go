// Package launchexec hands a ready instance off to the external
// launcher process.
package launchexec

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/meowcraft/launcher/internal/model"
)

// ErrLauncherNotFound indicates the launcher executable does not exist
// at the configured path.
var ErrLauncherNotFound = errors.New("launcher executable not found")

// Spawner starts the external launcher for a prepared instance.
type Spawner interface {
	Launch(directive model.LaunchDirective) error
}

// ProcessSpawner launches the real executable as a detached process.
// The child outlives this process; no exit status is collected.
type ProcessSpawner struct {
	executable string
	logger     *slog.Logger
}

func NewProcessSpawner(executable string, logger *slog.Logger) *ProcessSpawner {
	return &ProcessSpawner{
		executable: executable,
		logger:     logger.With(slog.String("component", "launchexec")),
	}
}

func (s *ProcessSpawner) Launch(directive model.LaunchDirective) error {
	if _, err := os.Stat(s.executable); err != nil {
		return fmt.Errorf("%w: %s", ErrLauncherNotFound, s.executable)
	}

	cmd := exec.Command(s.executable, "--launch", directive.InstanceName)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting launcher: %w", err)
	}

	s.logger.Info("launcher started",
		slog.String("executable", s.executable),
		slog.String("instance", directive.InstanceName),
		slog.Int("pid", cmd.Process.Pid),
		slog.String("accountID", string(directive.IdentityID)))

	// Fire and forget. Releasing avoids holding the child's handle;
	// the launcher keeps running after we exit.
	return cmd.Process.Release()
}
