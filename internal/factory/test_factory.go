package factory

import (
	"os"
	"sync"
	"time"

	"github.com/meowcraft/launcher/internal/config"
	"github.com/meowcraft/launcher/internal/dependencies/mocks"
	"github.com/meowcraft/launcher/internal/identity"
	"github.com/meowcraft/launcher/internal/model"
	"github.com/meowcraft/launcher/internal/testutil"
)

// RecordingSpawner captures launch directives instead of starting a process
type RecordingSpawner struct {
	mu         sync.Mutex
	Directives []model.LaunchDirective
}

func (r *RecordingSpawner) Launch(directive model.LaunchDirective) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Directives = append(r.Directives, directive)
	return nil
}

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MockRandom  *mocks.MockRandom
	SpawnerStub *RecordingSpawner

	cleanup []string
}

// NewTestApp creates an App configured for testing with mocked
// dependencies and throwaway directories.
func NewTestApp(downloadURL string) *TestApp {
	dataDir, _ := os.MkdirTemp("", "meowcraft-data-*")
	tempDir, _ := os.MkdirTemp("", "meowcraft-tmp-*")

	launcherCfg := config.Default()
	launcherCfg.DataDir = dataDir
	launcherCfg.InstanceURL = downloadURL

	mockClock := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	spawner := &RecordingSpawner{}

	app := newWithDependencies(launcherCfg, tempDir, mockClock, mockRandom,
		identity.Unavailable(), spawner, testutil.NopLogger())

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
		SpawnerStub: spawner,
		cleanup:     []string{dataDir, tempDir},
	}
}

// Close tears down the app's background components and directories
func (t *TestApp) Close() {
	t.Hub.Close()
	for _, dir := range t.cleanup {
		_ = os.RemoveAll(dir)
	}
}
