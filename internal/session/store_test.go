package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahakimov/garagedesk/internal/models"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := tempStore(t)
	s.Load()

	assert.Nil(t, s.Credentials())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(path)

	creds := &models.Credentials{Email: "a@b.com", Password: "pass"}
	user := &models.SessionUser{UserID: 1, Username: "a@b.com", Role: "ADMIN"}
	require.NoError(t, s.SetSession(creds, user, "dG9rZW4="))

	// Fresh store reading the same file.
	s2 := NewStore(path)
	s2.Load()

	gotCreds := s2.Credentials()
	require.NotNil(t, gotCreds)
	assert.Equal(t, *creds, *gotCreds)

	gotUser := s2.User()
	require.NotNil(t, gotUser)
	assert.Equal(t, *user, *gotUser)

	assert.Equal(t, "dG9rZW4=", s2.Token())
}

func TestStore_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewStore(path)
	s.Load()

	assert.Nil(t, s.Credentials())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
}

func TestStore_OrphanedUserSelfHeals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	raw, err := json.Marshal(map[string]any{
		"user":  map[string]any{"userId": 9, "username": "stale@b.com"},
		"token": "c3RhbGU=",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	s := NewStore(path)
	s.Load()

	// No credentials means no session, whatever else the file held.
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(path)
	require.NoError(t, s.SetSession(
		&models.Credentials{Email: "a@b.com", Password: "p"},
		&models.SessionUser{UserID: 1, Username: "a@b.com"},
		"t",
	))

	require.NoError(t, s.Clear())
	assert.Nil(t, s.Credentials())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-clean store is fine.
	require.NoError(t, s.Clear())
}
