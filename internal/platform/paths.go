// Package platform resolves the external launcher's per-OS filesystem
// layout: its data directory, its executable, and the bundled resources
// shipped alongside this front-end.
package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

const (
	launcherDirName   = "PrismLauncher"
	bundledConfigName = "prismlauncher.cfg"
)

// DataDir returns the external launcher's per-user data directory,
// following its own platform conventions.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", launcherDirName), nil
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", launcherDirName), nil
	default:
		return filepath.Join(home, ".local", "share", launcherDirName), nil
	}
}

// LauncherExecutable returns the path of the bundled external launcher
// binary under the given bundle directory.
func LauncherExecutable(bundleDir string) string {
	root := filepath.Join(bundleDir, "prism-launcher")

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(root, "PrismLauncher.exe")
	case "darwin":
		return filepath.Join(root, "PrismLauncher.app", "Contents", "MacOS", "PrismLauncher")
	default:
		return filepath.Join(root, "PrismLauncher")
	}
}

// InitDataDir creates the external launcher's data directory if absent
// and seeds it with the bundled base config on first run. An existing
// config is never overwritten.
func InitDataDir(dataDir, bundleDir string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	src := filepath.Join(bundleDir, "prism-data", bundledConfigName)
	dst := filepath.Join(dataDir, bundledConfigName)

	if _, err := os.Stat(dst); err == nil {
		return nil
	}
	if _, err := os.Stat(src); err != nil {
		// No bundled config shipped; nothing to seed
		return nil
	}

	return copyFile(src, dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", dst, err)
	}
	return out.Close()
}
