package cli

import (
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ConfigFile  string
	DataDir     string
	ServeEvents bool
	Output      string
	Verbose     bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ConfigFile: getEnvOrDefault("MEOWCRAFT_CONFIG", defaultConfigFile()),
		DataDir:    os.Getenv("MEOWCRAFT_DATA_DIR"),
		Output:     "text",
		Verbose:    false,
	}
}

func defaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".meowcraft/config.yaml"
	}
	return filepath.Join(home, ".meowcraft", "config.yaml")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
