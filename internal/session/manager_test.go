package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahakimov/garagedesk/internal/api"
	"github.com/ahakimov/garagedesk/internal/models"
)

// fakeBackend routes the authenticate and profile endpoints the way
// the real backend does.
type fakeBackend struct {
	*httptest.Server

	authStatus  int
	authBody    any
	profStatus  int
	profBody    any
	gotAuthHdrs []string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{
		authStatus: http.StatusOK,
		profStatus: http.StatusOK,
	}

	r := chi.NewRouter()
	r.Post("/authenticate", func(w http.ResponseWriter, req *http.Request) {
		writeBody(w, fb.authStatus, fb.authBody)
	})
	r.Get("/users/profile", func(w http.ResponseWriter, req *http.Request) {
		fb.gotAuthHdrs = append(fb.gotAuthHdrs, req.Header.Get("Authorization"))
		writeBody(w, fb.profStatus, fb.profBody)
	})
	r.Post("/signup", func(w http.ResponseWriter, req *http.Request) {
		writeBody(w, fb.authStatus, fb.authBody)
	})

	fb.Server = httptest.NewServer(r)
	t.Cleanup(fb.Close)
	return fb
}

func writeBody(w http.ResponseWriter, status int, body any) {
	if body == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newManager(t *testing.T, baseURL string) (*Manager, *api.Client, *Store) {
	t.Helper()
	client := api.New(baseURL, 0, nil)
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	return NewManager(client, store, nil), client, store
}

func TestLogin_Success(t *testing.T) {
	fb := newFakeBackend(t)
	fb.authBody = map[string]any{"userId": 1, "username": "a@b.com"}
	fb.profBody = map[string]any{"id": 1, "role": "ADMIN"}

	mgr, client, store := newManager(t, fb.URL)
	resp := mgr.Login(context.Background(), "a@b.com", "secret")

	require.True(t, resp.OK(), "login failed: %s", resp.Error)
	user, err := api.Decode[models.SessionUser](resp)
	require.NoError(t, err)
	assert.Equal(t, models.SessionUser{UserID: 1, Username: "a@b.com", Role: "ADMIN"}, user)

	assert.True(t, mgr.IsAuthenticated())
	assert.True(t, client.HasToken())

	cached := store.User()
	require.NotNil(t, cached)
	assert.Equal(t, "ADMIN", cached.Role)

	// The profile fetch must have replayed the derived token.
	wantToken := base64.StdEncoding.EncodeToString([]byte("a@b.com:secret"))
	require.NotEmpty(t, fb.gotAuthHdrs)
	assert.Equal(t, "Basic "+wantToken, fb.gotAuthHdrs[0])
}

func TestLogin_FailureEmptyBody(t *testing.T) {
	fb := newFakeBackend(t)
	fb.authStatus = http.StatusUnauthorized

	mgr, client, _ := newManager(t, fb.URL)
	resp := mgr.Login(context.Background(), "a@b.com", "wrong")

	assert.False(t, resp.OK())
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.False(t, mgr.IsAuthenticated())
	assert.False(t, client.HasToken())
}

func TestLogin_FailureBackendMessage(t *testing.T) {
	fb := newFakeBackend(t)
	fb.authStatus = http.StatusForbidden
	fb.authBody = map[string]string{"message": "account locked"}

	mgr, _, _ := newManager(t, fb.URL)
	resp := mgr.Login(context.Background(), "a@b.com", "secret")

	assert.Equal(t, "account locked", resp.Error)
	assert.Equal(t, http.StatusForbidden, resp.Status)
}

func TestLogin_SuccessWithEmptyBodyIsFailure(t *testing.T) {
	// 200 with no data still cannot establish a session.
	fb := newFakeBackend(t)
	fb.authStatus = http.StatusOK

	mgr, client, _ := newManager(t, fb.URL)
	resp := mgr.Login(context.Background(), "a@b.com", "secret")

	assert.False(t, resp.OK())
	assert.Equal(t, "Invalid email or password", resp.Error)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.False(t, client.HasToken())
}

func TestLogin_ProfileFailureIsSoft(t *testing.T) {
	fb := newFakeBackend(t)
	fb.authBody = map[string]any{"userId": 2, "username": "b@c.com"}
	fb.profStatus = http.StatusForbidden

	mgr, _, _ := newManager(t, fb.URL)
	resp := mgr.Login(context.Background(), "b@c.com", "secret")

	require.True(t, resp.OK())
	user, err := api.Decode[models.SessionUser](resp)
	require.NoError(t, err)
	assert.Empty(t, user.Role, "role stays unset when enrichment fails")
	assert.True(t, mgr.IsAuthenticated())
}

func TestLogin_UserIDFallbackToProfile(t *testing.T) {
	fb := newFakeBackend(t)
	fb.authBody = map[string]any{"username": "c@d.com"}
	fb.profBody = map[string]any{"id": 42, "role": "MECHANIC"}

	mgr, _, _ := newManager(t, fb.URL)
	resp := mgr.Login(context.Background(), "c@d.com", "secret")

	require.True(t, resp.OK())
	user, err := api.Decode[models.SessionUser](resp)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
}

func TestLogin_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	mgr, client, _ := newManager(t, srv.URL)
	resp := mgr.Login(context.Background(), "a@b.com", "secret")

	assert.False(t, resp.OK())
	assert.Equal(t, 0, resp.Status)
	assert.False(t, client.HasToken())
	assert.False(t, mgr.IsAuthenticated())
}

func TestLogout_WorksWithoutNetwork(t *testing.T) {
	fb := newFakeBackend(t)
	fb.authBody = map[string]any{"userId": 1, "username": "a@b.com"}

	mgr, client, _ := newManager(t, fb.URL)
	require.True(t, mgr.Login(context.Background(), "a@b.com", "secret").OK())
	require.True(t, mgr.IsAuthenticated())

	// Kill the backend before logging out.
	fb.Close()
	mgr.Logout()

	assert.False(t, mgr.IsAuthenticated())
	assert.Nil(t, mgr.User())
	assert.False(t, client.HasToken())
}

func TestInitialize_RestoresTokenOffline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	seed := NewStore(path)
	require.NoError(t, seed.SetSession(
		&models.Credentials{Email: "a@b.com", Password: "secret"},
		&models.SessionUser{UserID: 1, Username: "a@b.com", Role: "ADMIN"},
		DeriveToken("a@b.com", "secret"),
	))

	// Base URL points nowhere: Initialize must not need the network.
	client := api.New("http://127.0.0.1:1", 0, nil)
	mgr := NewManager(client, NewStore(path), nil)
	mgr.Initialize()

	assert.True(t, mgr.IsAuthenticated())
	assert.True(t, client.HasToken())
	user := mgr.User()
	require.NotNil(t, user)
	assert.Equal(t, "ADMIN", user.Role)
}

func TestInitialize_AnonymousClearsToken(t *testing.T) {
	client := api.New("http://127.0.0.1:1", 0, nil)
	client.SetToken("leftover")

	mgr := NewManager(client, NewStore(filepath.Join(t.TempDir(), "session.json")), nil)
	mgr.Initialize()

	assert.False(t, mgr.IsAuthenticated())
	assert.False(t, client.HasToken())
}

func TestSignup_ImplicitLogin(t *testing.T) {
	fb := newFakeBackend(t)
	fb.authBody = map[string]any{"userId": 5, "username": "new@b.com"}

	mgr, client, _ := newManager(t, fb.URL)
	resp := mgr.Signup(context.Background(), models.SignupRequest{
		Email:    "new@b.com",
		Password: "longenough",
		Name:     "New",
		Surname:  "User",
	})

	require.True(t, resp.OK())
	assert.True(t, mgr.IsAuthenticated())
	assert.True(t, client.HasToken())

	user := mgr.User()
	require.NotNil(t, user)
	assert.Equal(t, int64(5), user.UserID)
	assert.Empty(t, user.Role, "signup does not run profile enrichment")
}

func TestSignup_ValidationFailsLocally(t *testing.T) {
	// No backend at all: validation must reject before any call.
	mgr, client, _ := newManager(t, "http://127.0.0.1:1")
	resp := mgr.Signup(context.Background(), models.SignupRequest{Email: "not-an-email"})

	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.False(t, client.HasToken())
}

func TestDeriveToken(t *testing.T) {
	got := DeriveToken("a@b.com", "secret")
	want := base64.StdEncoding.EncodeToString([]byte("a@b.com:secret"))
	assert.Equal(t, want, got)
}
