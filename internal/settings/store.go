package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"shelfscan/internal/services"
)

// TokenEnv is consulted when the stored token is empty.
const TokenEnv = "NOTION_TOKEN"

// Store persists Settings as a TOML file guarded by an advisory file lock.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore returns a store backed by path. The file need not exist.
func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("settings path required")
	}
	return &Store{path: path, lock: flock.New(path + ".lock")}, nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file. It returns nil, nil when no settings have
// been saved.
func (s *Store) Load() (*Settings, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	if err := s.lock.RLock(); err != nil {
		return nil, services.Wrap(services.ErrStorageRead, "settings", "lock", s.path, err)
	}
	defer s.lock.Unlock() //nolint:errcheck

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrStorageRead, "settings", "read", s.path, err)
	}

	var st Settings
	if err := toml.Unmarshal(data, &st); err != nil {
		return nil, services.Wrap(services.ErrStorageRead, "settings", "parse", s.path, err)
	}
	if strings.TrimSpace(st.Token) == "" {
		st.Token = os.Getenv(TokenEnv)
	}
	st = st.Sanitized()
	return &st, nil
}

// Save writes st atomically after sanitizing it. Validation is the caller's
// decision; incomplete settings may be saved while the user is still filling
// them in.
func (s *Store) Save(st Settings) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return services.Wrap(services.ErrStorageWrite, "settings", "lock", s.path, err)
	}
	defer s.lock.Unlock() //nolint:errcheck

	data, err := toml.Marshal(st.Sanitized())
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return services.Wrap(services.ErrStorageWrite, "settings", "write temp file", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return services.Wrap(services.ErrStorageWrite, "settings", "rename temp file", s.path, err)
	}
	return nil
}

// Delete removes the settings file. Deleting absent settings is not an error.
func (s *Store) Delete() error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return services.Wrap(services.ErrStorageWrite, "settings", "lock", s.path, err)
	}
	defer s.lock.Unlock() //nolint:errcheck

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrStorageWrite, "settings", "delete", s.path, err)
	}
	return nil
}

// Validate checks st; see the package-level Validate.
func (s *Store) Validate(st Settings) Result {
	return Validate(st)
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return services.Wrap(services.ErrStorageWrite, "settings", "create directory", filepath.Dir(s.path), err)
	}
	return nil
}
