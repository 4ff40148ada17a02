// Package session owns the login state: cached credentials, the
// derived user record, and the Basic-Auth token installed into the
// HTTP client. State survives restarts through a small JSON file.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/ahakimov/garagedesk/internal/models"
)

// state is the persisted shape: the three durable keys in one file.
type state struct {
	Credentials *models.Credentials `json:"credentials,omitempty"`
	User        *models.SessionUser `json:"user,omitempty"`
	Token       string              `json:"token,omitempty"`
}

// Store persists session state to a JSON file. A missing file means
// an anonymous session; a corrupted file is treated the same way
// rather than surfacing a parse error to callers.
type Store struct {
	path string
	mu   sync.Mutex
	st   state
}

// DefaultPath returns the session file location under the user's
// config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "garagedesk", "session.json"), nil
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads persisted state from disk. Missing or unparseable files
// leave the store empty. A user record without credentials is stale
// and is dropped, so the pairing invariant self-heals on load.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st = state{}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		return
	}
	if st.Credentials == nil || st.Credentials.Email == "" || st.Credentials.Password == "" {
		return
	}
	s.st = st
}

// save writes the current state to disk, creating parent directories
// as needed. The file holds plaintext credentials, hence 0600.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	raw, err := json.Marshal(&s.st)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// SetSession persists credentials, user record, and token together.
func (s *Store) SetSession(creds *models.Credentials, user *models.SessionUser, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = state{Credentials: creds, User: user, Token: token}
	return s.save()
}

// Clear erases all persisted session state. Failure to remove the
// file does not prevent the in-memory state from being cleared.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = state{}
	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Credentials returns the cached credentials, or nil when anonymous.
func (s *Store) Credentials() *models.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.Credentials == nil {
		return nil
	}
	c := *s.st.Credentials
	return &c
}

// User returns the cached session user. Without credentials there is
// no session, so a stale user record is never returned.
func (s *Store) User() *models.SessionUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.Credentials == nil || s.st.User == nil {
		return nil
	}
	u := *s.st.User
	return &u
}

// Token returns the cached Basic-Auth token, empty when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.Credentials == nil {
		return ""
	}
	return s.st.Token
}
