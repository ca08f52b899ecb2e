package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// AccountsFileName is the registry's file name inside the external
// launcher's data directory.
const AccountsFileName = "accounts.json"

// ErrCorruptStore indicates the registry file exists but cannot be
// parsed. The store never merges or repairs malformed state.
var ErrCorruptStore = errors.New("account store file is malformed")

// Store persists the account registry document
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a Store backed by accounts.json under dataDir
func NewStore(dataDir string, logger *slog.Logger) *Store {
	return &Store{
		path:   filepath.Join(dataDir, AccountsFileName),
		logger: logger.With(slog.String("component", "profile")),
	}
}

// Path returns the registry file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the registry. A missing file yields an empty document,
// not an error; a file that exists but fails to parse yields
// ErrCorruptStore.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("read account store: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if doc.Accounts == nil {
		doc.Accounts = []Entry{}
	}
	return &doc, nil
}

// Save writes the full document. The write goes to a temporary file
// that is renamed into place, so a crash mid-write never leaves a
// half-written registry visible to the external launcher. The
// containing directory is created on first write.
func (s *Store) Save(doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	// The external launcher writes this file pretty-printed with
	// two-space indentation; match it.
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode account store: %w", err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write account store: %w", err)
	}

	s.logger.Debug("account store saved",
		slog.String("path", s.path),
		slog.Int("accounts", len(doc.Accounts)))
	return nil
}
