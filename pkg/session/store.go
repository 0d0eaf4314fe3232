// Package session persists named browser sessions on the local file
// system. Each session is a directory under the store root holding the
// Playwright storage state (cookies and local storage) and a small YAML
// metadata file. Session names double as directory names, which is why
// they are validated with cli.IsValidSessionName before touching disk.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/agent-browser/pkg/cli"
)

var ErrNotFound = errors.New("session: not found")
var ErrInvalidName = errors.New("session: invalid name")

const (
	stateFile = "state.json"
	metaFile  = "meta.yaml"
)

// Store is a local file-system store of named sessions.
type Store struct {
	root string
}

// NewStore creates (if needed) and opens a store rooted at dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("session: init store %s: %w", dir, err)
	}
	return &Store{root: dir}, nil
}

// DefaultStore opens the store under the user's home directory.
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("session: resolve home directory: %w", err)
	}
	return NewStore(filepath.Join(home, ".agent-browser", "sessions"))
}

// Root returns the directory the store operates under.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) dir(name string) (string, error) {
	if !cli.IsValidSessionName(name) {
		return "", fmt.Errorf("session: name %q: %w", name, ErrInvalidName)
	}
	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("session: abs root: %w", err)
	}
	resolved := filepath.Join(root, name)
	if !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return "", fmt.Errorf("session: path traversal detected for name %q", name)
	}
	return resolved, nil
}

// StatePath returns the path of the session's storage state file. The
// file may not exist yet; use HasState to check.
func (s *Store) StatePath(name string) (string, error) {
	dir, err := s.dir(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, stateFile), nil
}

// HasState reports whether a storage state file exists for the session.
func (s *Store) HasState(name string) bool {
	path, err := s.StatePath(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Ensure creates the session directory if missing and returns its path.
func (s *Store) Ensure(name string) (string, error) {
	dir, err := s.dir(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("session: init session %s: %w", name, err)
	}
	return dir, nil
}

// SaveMeta persists session metadata atomically via a temporary file.
func (s *Store) SaveMeta(m *Metadata) error {
	dir, err := s.Ensure(m.Name)
	if err != nil {
		return err
	}
	b, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("session: serialize metadata: %w", err)
	}
	path := filepath.Join(dir, metaFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("session: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("session: atomic rename %s: %w", path, err)
	}
	return nil
}

// LoadMeta reads session metadata. It returns ErrNotFound if the
// session has no metadata file.
func (s *Store) LoadMeta(name string) (*Metadata, error) {
	dir, err := s.dir(name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(dir, metaFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: read metadata for %s: %w", name, err)
	}
	var m Metadata
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("session: metadata parse error for %s: %w", name, err)
	}
	return &m, nil
}

// Touch upserts metadata after a session is used: it stamps UpdatedAt,
// preserves CreatedAt across calls, and records lastURL when non-empty.
func (s *Store) Touch(name, lastURL string) error {
	now := time.Now().UTC()
	m, err := s.LoadMeta(name)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		m = &Metadata{Name: name, CreatedAt: now}
	default:
		slog.Debug("session: replacing unreadable metadata", "name", name, "err", err)
		m = &Metadata{Name: name, CreatedAt: now}
	}
	m.UpdatedAt = now
	if lastURL != "" {
		m.LastURL = lastURL
	}
	return s.SaveMeta(m)
}

// List returns metadata for every session in the store, sorted by name.
// Sessions with a missing or corrupt metadata file are synthesized from
// the storage state file; directories with neither are skipped.
func (s *Store) List() ([]*Metadata, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("session: list %s: %w", s.root, err)
	}
	var out []*Metadata
	for _, e := range entries {
		if !e.IsDir() || !cli.IsValidSessionName(e.Name()) {
			continue
		}
		m, err := s.LoadMeta(e.Name())
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				slog.Debug("session: skipping corrupt metadata", "name", e.Name(), "err", err)
			}
			m = s.synthesizeMeta(e.Name())
			if m == nil {
				continue
			}
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// synthesizeMeta rebuilds minimal metadata from the storage state file,
// or returns nil when the session has no state either.
func (s *Store) synthesizeMeta(name string) *Metadata {
	path, err := s.StatePath(name)
	if err != nil {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	mod := info.ModTime().UTC()
	return &Metadata{Name: name, CreatedAt: mod, UpdatedAt: mod}
}

// Remove deletes the session directory and everything in it. It
// returns ErrNotFound if the session does not exist.
func (s *Store) Remove(name string) error {
	dir, err := s.dir(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("session: remove %s: %w", name, err)
	}
	return nil
}
