package launchexec

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/meowcraft/launcher/internal/model"
	"github.com/meowcraft/launcher/internal/testutil"
)

type SpawnerSuite struct {
	suite.Suite
}

func TestSpawnerSuite(t *testing.T) {
	suite.Run(t, new(SpawnerSuite))
}

func (s *SpawnerSuite) TestLaunchFailsWhenExecutableMissing() {
	spawner := NewProcessSpawner(filepath.Join(s.T().TempDir(), "nope"), testutil.NopLogger())

	err := spawner.Launch(model.LaunchDirective{InstanceName: "Cobblemon"})
	s.ErrorIs(err, ErrLauncherNotFound)
}

func (s *SpawnerSuite) TestLaunchStartsDetachedProcess() {
	if runtime.GOOS == "windows" {
		s.T().Skip("test executable is a shell script")
	}

	script := filepath.Join(s.T().TempDir(), "fake-launcher")
	s.Require().NoError(os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0755))

	spawner := NewProcessSpawner(script, testutil.NopLogger())
	err := spawner.Launch(model.LaunchDirective{InstanceName: "Cobblemon"})
	s.NoError(err)
}
