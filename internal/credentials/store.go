// Package credentials abstracts the secure slot holding the session bearer token.
package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store provides atomic access to one named secret slot. Implementations
// must be safe for concurrent use; the client reads the token fresh on every
// authenticated request so login and logout take effect on the next call.
type Store interface {
	// Token returns the stored bearer token, or ok=false when none is set.
	Token() (token string, ok bool)
	// SetToken replaces the stored token.
	SetToken(token string) error
	// DeleteToken removes the stored token. Deleting an absent token is a no-op.
	DeleteToken() error
}

// MemoryStore keeps the token in process memory. Suitable for tests and
// short-lived sessions.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return new(MemoryStore)
}

// Token implements Store.
func (s *MemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.set
}

// SetToken implements Store.
func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

// DeleteToken implements Store.
func (s *MemoryStore) DeleteToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}

// FileStore persists the token in a single file with owner-only permissions,
// standing in for the platform keychain. Writes go through a temp file plus
// rename so a concurrent reader never observes a partial token.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore constructs a store backed by the file at path.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("credentials: path must not be empty")
	}
	return &FileStore{path: path}, nil
}

// Token implements Store.
func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", false
	}
	return token, true
}

// SetToken implements Store.
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.WriteString(token + "\n"); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	return os.Rename(name, s.path)
}

// DeleteToken implements Store.
func (s *FileStore) DeleteToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
