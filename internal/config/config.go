// Package config holds the launcher's own configuration: which
// instance to provision, where to fetch it from, and the endpoints of
// its external collaborators. Values come from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level launcher configuration
type Config struct {
	// InstanceName is the logical name of the content package; its
	// presence as a directory under <data>/instances marks it installed
	InstanceName string `yaml:"instance_name"`

	// ServerAddress is the game server players connect to (informational)
	ServerAddress string `yaml:"server_address"`

	// InstanceURL is the HTTPS source of the content package archive
	InstanceURL string `yaml:"instance_url"`

	// DataDir overrides the external launcher's data directory.
	// Empty means resolve per-OS at startup.
	DataDir string `yaml:"data_dir"`

	// BundleDir is where bundled resources (the external launcher
	// binary, base config) live. Defaults to the working directory.
	BundleDir string `yaml:"bundle_dir"`

	Notify NotifyConfig `yaml:"notify"`
	Events EventsConfig `yaml:"events"`
}

// NotifyConfig configures the best-effort login notification webhook
type NotifyConfig struct {
	URL     string        `yaml:"url"` // empty disables notification
	Secret  string        `yaml:"secret"`
	RoleID  string        `yaml:"role_id"`
	Timeout time.Duration `yaml:"timeout"`
}

// EventsConfig configures the local progress event endpoint
type EventsConfig struct {
	Addr string `yaml:"addr"` // e.g. "127.0.0.1:7751"; empty disables
}

// Default returns the stock MeowCraft configuration
func Default() Config {
	return Config{
		InstanceName:  "Cobblemon",
		ServerAddress: "meowcraft.play-network.io",
		InstanceURL:   "https://github.com/hisokaSH/meowcraft_modpack/releases/download/v1/Cobblemon-instance.zip",
		BundleDir:     ".",
		Notify: NotifyConfig{
			Timeout: 5 * time.Second,
		},
	}
}

// Load reads configuration from the given YAML file, falling back to
// defaults when the file does not exist, then applies environment
// overrides. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No config file is fine; defaults apply
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if cfg.Notify.Timeout <= 0 {
		cfg.Notify.Timeout = Default().Notify.Timeout
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.InstanceName, "MEOWCRAFT_INSTANCE")
	setFromEnv(&c.InstanceURL, "MEOWCRAFT_INSTANCE_URL")
	setFromEnv(&c.DataDir, "MEOWCRAFT_DATA_DIR")
	setFromEnv(&c.BundleDir, "MEOWCRAFT_BUNDLE_DIR")
	setFromEnv(&c.Notify.URL, "MEOWCRAFT_NOTIFY_URL")
	setFromEnv(&c.Notify.Secret, "MEOWCRAFT_NOTIFY_SECRET")
	setFromEnv(&c.Notify.RoleID, "MEOWCRAFT_NOTIFY_ROLE_ID")
	setFromEnv(&c.Events.Addr, "MEOWCRAFT_EVENTS_ADDR")
}

func setFromEnv(target *string, key string) {
	if val := os.Getenv(key); val != "" {
		*target = val
	}
}
