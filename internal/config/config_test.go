package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Cobblemon", cfg.InstanceName)
	assert.NotEmpty(t, cfg.InstanceURL)
	assert.Equal(t, 5*time.Second, cfg.Notify.Timeout)
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launcher.yaml")
	content := `
instance_name: TestPack
instance_url: https://example.com/pack.zip
data_dir: /tmp/launcher-data
notify:
  url: https://example.com/notify
  secret: s3cret
  role_id: "42"
events:
  addr: 127.0.0.1:7751
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "TestPack", cfg.InstanceName)
	assert.Equal(t, "https://example.com/pack.zip", cfg.InstanceURL)
	assert.Equal(t, "/tmp/launcher-data", cfg.DataDir)
	assert.Equal(t, "https://example.com/notify", cfg.Notify.URL)
	assert.Equal(t, "s3cret", cfg.Notify.Secret)
	assert.Equal(t, "42", cfg.Notify.RoleID)
	assert.Equal(t, "127.0.0.1:7751", cfg.Events.Addr)
	// Timeout not set in file; default applies
	assert.Equal(t, 5*time.Second, cfg.Notify.Timeout)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launcher.yaml")
	require.NoError(t, os.WriteFile(path, []byte("instance_name: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launcher.yaml")
	require.NoError(t, os.WriteFile(path, []byte("instance_name: FromFile"), 0644))

	t.Setenv("MEOWCRAFT_INSTANCE", "FromEnv")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", cfg.InstanceName)
}
