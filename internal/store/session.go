package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kbenhlel/TodoKeeper/internal/client/api"
	"github.com/kbenhlel/TodoKeeper/internal/client/storage"
	"github.com/kbenhlel/TodoKeeper/internal/models"
)

// ErrInvalidCredentials is returned by an Authenticator when the
// email/password pair does not match any known user.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Error strings shown to the user by the session store.
const (
	msgInvalidCredentials = "Invalid email or password"
	msgLoginFailed        = "Login failed. Please try again."
)

// Authenticator checks a credential pair and produces a session. The
// two implementations are the fixed local user table and the gateway.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.Session, error)
}

// Credential is one entry of the fixed local user table.
type Credential struct {
	ID       string
	Email    string
	Name     string
	Password string
}

// mockAuthenticator resolves logins against a fixed in-process table by
// exact match. It stands in for a backend during local use.
type mockAuthenticator struct {
	users []Credential
}

// NewMockAuthenticator builds an authenticator over a fixed user table.
func NewMockAuthenticator(users []Credential) Authenticator {
	return &mockAuthenticator{users: users}
}

func (a *mockAuthenticator) Authenticate(_ context.Context, email, password string) (*models.Session, error) {
	for _, u := range a.users {
		if u.Email == email && u.Password == password {
			// The password never makes it into the session.
			return &models.Session{
				ID:        u.ID,
				Email:     u.Email,
				Name:      u.Name,
				LoginTime: time.Now(),
			}, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// gatewayAuthenticator delegates the credential check to the remote
// gateway and carries its token pair into the session.
type gatewayAuthenticator struct {
	client *api.Client
}

// NewGatewayAuthenticator builds an authenticator backed by the gateway.
func NewGatewayAuthenticator(client *api.Client) Authenticator {
	if client == nil {
		panic("store: nil api client")
	}
	return &gatewayAuthenticator{client: client}
}

func (a *gatewayAuthenticator) Authenticate(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &models.Session{
		ID:        resp.User.ID,
		Email:     resp.User.Email,
		Name:      resp.User.Name,
		LoginTime: time.Now(),
		Tokens:    &resp.Tokens,
	}, nil
}

// SessionStore holds at most one authenticated identity plus a loading
// flag and the last login error. Login either fully succeeds (session
// set, error cleared) or fully fails (session untouched, error set).
type SessionStore struct {
	mu      sync.Mutex
	auth    Authenticator
	storage *storage.LocalStorage
	session *models.Session
	loading bool
	err     string
}

// NewSessionStore restores any persisted session from local storage and
// wires future session changes through to it.
func NewSessionStore(auth Authenticator, st *storage.LocalStorage) *SessionStore {
	if auth == nil {
		panic("store: nil authenticator")
	}
	if st == nil {
		panic("store: nil local storage")
	}
	return &SessionStore{
		auth:    auth,
		storage: st,
		session: st.LoadSession(),
	}
}

// Login performs the credential check and, on success, installs and
// persists the session. It reports whether the login succeeded; on
// failure the previous session (if any) is left untouched and Err
// carries a human-readable message.
//
// Concurrent logins are not serialized; the last call to resolve
// determines the final state.
func (s *SessionStore) Login(ctx context.Context, email, password string) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	sess, err := s.auth.Authenticate(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = loginErrorMessage(err)
		return false
	}
	s.session = sess
	s.err = ""
	s.storage.SaveSession(sess)
	return true
}

// Logout clears the session and error and removes the persisted
// session. It always succeeds.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.err = ""
	s.storage.SaveSession(nil)
}

// ClearAllData clears the session and error and purges every storage
// key this application owns. Destructive and irreversible.
func (s *SessionStore) ClearAllData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.err = ""
	s.storage.Clear()
}

// ClearError clears the error string only.
func (s *SessionStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// Session returns a copy of the live session, or nil when logged out.
func (s *SessionStore) Session() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

// Authenticated reports whether a session is live.
func (s *SessionStore) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

// Err returns the last login error string, empty when none.
func (s *SessionStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Loading reports whether a login is outstanding.
func (s *SessionStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// loginErrorMessage maps an authentication failure to the string shown
// to the user.
func loginErrorMessage(err error) string {
	if errors.Is(err, ErrInvalidCredentials) {
		return msgInvalidCredentials
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status != 0 {
			return apiErr.Message
		}
		return msgLoginFailed
	}
	return msgLoginFailed
}

// errorMessage maps a todo repository failure to the string kept on the
// todo store.
func errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
