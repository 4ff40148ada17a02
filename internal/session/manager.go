package session

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ahakimov/garagedesk/internal/api"
	"github.com/ahakimov/garagedesk/internal/config"
	"github.com/ahakimov/garagedesk/internal/models"
)

// Backend is the slice of the HTTP client the manager needs: two
// request shapes plus the token cache. Keeping the dependency
// one-directional avoids any coupling back from the client.
type Backend interface {
	Post(ctx context.Context, endpoint string, body any) api.Response
	Get(ctx context.Context, endpoint string, query url.Values) api.Response
	SetToken(token string)
	ClearToken()
}

// Manager drives the login/signup/logout state machine and keeps the
// HTTP client's token in sync with the persisted credentials. Its
// methods never panic; failures come back inside the envelope or,
// for logout and initialization, silently.
type Manager struct {
	backend  Backend
	store    *Store
	log      *zap.Logger
	validate *validator.Validate
}

// NewManager wires the manager to its backend and store.
func NewManager(backend Backend, store *Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		backend:  backend,
		store:    store,
		log:      log,
		validate: validator.New(),
	}
}

// DeriveToken computes the Basic-Auth token for a credential pair.
func DeriveToken(email, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
}

const defaultLoginError = "Invalid email or password"

// Login authenticates against the backend. On success the token is
// installed and the session persisted; the follow-up profile fetch is
// best-effort and a failure there only leaves the role unset.
func (m *Manager) Login(ctx context.Context, email, password string) api.Response {
	resp := m.backend.Post(ctx, config.EndpointAuthenticate, models.LoginRequest{
		Email:    email,
		Password: password,
	})

	if !resp.OK() && resp.Status == 0 {
		// No response at all: connection-level failure.
		m.backend.ClearToken()
		return resp
	}

	if !resp.OK() || resp.Data == nil {
		m.backend.ClearToken()
		msg := resp.Error
		if msg == "" {
			msg = defaultLoginError
		}
		status := resp.Status
		if status == 0 || (status >= 200 && status < 300) {
			status = http.StatusUnauthorized
		}
		return api.Response{Error: msg, Status: status}
	}

	auth, err := api.Decode[models.LoginResponse](resp)
	if err != nil {
		m.backend.ClearToken()
		m.log.Warn("unexpected authenticate response shape", zap.Error(err))
		return api.Response{Error: defaultLoginError, Status: http.StatusUnauthorized}
	}

	token := DeriveToken(email, password)
	m.backend.SetToken(token)

	user := models.SessionUser{
		UserID:   auth.UserID,
		Username: auth.Username,
	}
	if user.Username == "" {
		user.Username = email
	}

	// Role enrichment. The profile endpoint re-checks the Basic-Auth
	// header, so this can fail independently of the login above; the
	// session stays valid either way.
	profile := m.backend.Get(ctx, config.EndpointProfile, nil)
	if profile.OK() && profile.Data != nil {
		if p, err := api.Decode[models.Profile](profile); err == nil {
			user.Role = p.Role
			if user.UserID == 0 {
				user.UserID = p.ID
			}
		}
	} else {
		m.log.Debug("profile fetch failed, role left unset",
			zap.Int("status", profile.Status),
			zap.String("error", profile.Error))
	}

	creds := models.Credentials{Email: email, Password: password}
	if err := m.store.SetSession(&creds, &user, token); err != nil {
		m.log.Warn("failed to persist session", zap.Error(err))
	}

	return api.Response{Data: user, Status: resp.Status}
}

// Signup registers a new account. A successful registration is an
// implicit login: credentials and a minimal user record are cached
// without a profile-enrichment step. The raw backend response is
// returned either way.
func (m *Manager) Signup(ctx context.Context, req models.SignupRequest) api.Response {
	if err := m.validate.Struct(req); err != nil {
		return api.Response{Error: err.Error(), Status: http.StatusBadRequest}
	}

	resp := m.backend.Post(ctx, config.EndpointSignup, req)
	if !resp.OK() {
		return resp
	}

	token := DeriveToken(req.Email, req.Password)
	m.backend.SetToken(token)

	user := models.SessionUser{Username: req.Email}
	if su, err := api.Decode[models.LoginResponse](resp); err == nil {
		if su.UserID != 0 {
			user.UserID = su.UserID
		}
		if su.Username != "" {
			user.Username = su.Username
		}
		user.Role = su.Role
	}

	creds := models.Credentials{Email: req.Email, Password: req.Password}
	if err := m.store.SetSession(&creds, &user, token); err != nil {
		m.log.Warn("failed to persist session", zap.Error(err))
	}

	return resp
}

// Logout erases the cached session and removes the installed token.
// It needs no network and cannot fail.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.log.Warn("failed to remove session file", zap.Error(err))
	}
	m.backend.ClearToken()
}

// Initialize restores a persisted session at startup: when
// credentials are cached the token is recomputed and installed
// without any network call. Whether the backend still accepts the
// credentials is only discovered on the next real request.
func (m *Manager) Initialize() {
	m.store.Load()
	creds := m.store.Credentials()
	if creds == nil {
		m.backend.ClearToken()
		return
	}
	m.backend.SetToken(DeriveToken(creds.Email, creds.Password))
}

// IsAuthenticated reports whether credentials are cached locally.
// This is a non-verifying check.
func (m *Manager) IsAuthenticated() bool {
	return m.store.Credentials() != nil
}

// User returns the cached session user, nil when anonymous.
func (m *Manager) User() *models.SessionUser {
	return m.store.User()
}

// Credentials returns the cached credentials, nil when anonymous.
func (m *Manager) Credentials() *models.Credentials {
	return m.store.Credentials()
}
