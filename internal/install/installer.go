// Package install extracts fetched content archives into the external
// launcher's content directory.
package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ErrCorruptArchive indicates the archive could not be opened or one
// of its entries is unsafe to extract.
var ErrCorruptArchive = errors.New("archive is corrupt or unreadable")

// Installer unpacks zip archives
type Installer struct {
	logger *slog.Logger
}

// NewInstaller creates an Installer
func NewInstaller(logger *slog.Logger) *Installer {
	return &Installer{
		logger: logger.With(slog.String("component", "install")),
	}
}

// Extract unpacks every entry of the archive into destDir, overwriting
// same-named files so a re-install over existing content is
// idempotent. Entries that would escape destDir are rejected.
func (i *Installer) Extract(ctx context.Context, archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}
	defer func() { _ = reader.Close() }()

	for _, entry := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := i.extractEntry(entry, destDir); err != nil {
			return err
		}
	}

	i.logger.Info("archive extracted",
		slog.String("archive", archivePath),
		slog.String("dest", destDir),
		slog.Int("entries", len(reader.File)))
	return nil
}

func (i *Installer) extractEntry(entry *zip.File, destDir string) error {
	target, err := safeTarget(destDir, entry.Name)
	if err != nil {
		return err
	}

	if entry.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", target, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", target, err)
	}

	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("%w: entry %s: %v", ErrCorruptArchive, entry.Name, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, entryMode(entry))
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	return dst.Close()
}

// safeTarget joins the entry name under destDir and rejects names that
// resolve outside it (zip-slip).
func safeTarget(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))

	cleanDest := filepath.Clean(destDir)
	if target != cleanDest && !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: entry %q escapes destination", ErrCorruptArchive, name)
	}
	return target, nil
}

func entryMode(entry *zip.File) fs.FileMode {
	mode := entry.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	return mode
}
