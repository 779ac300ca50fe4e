package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kbenhlel/TodoKeeper/internal/client/api"
	"github.com/kbenhlel/TodoKeeper/internal/client/storage"
	"github.com/kbenhlel/TodoKeeper/internal/models"
)

var testUsers = []Credential{
	{ID: "u1", Email: "alice@example.com", Name: "Alice", Password: "s3cret!"},
}

func sessionFixture(t *testing.T) (*SessionStore, *storage.LocalStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storage.json")
	ls := storage.New(path, nil, zap.NewNop())
	return NewSessionStore(NewMockAuthenticator(testUsers), ls), ls, path
}

func TestLogin_Success(t *testing.T) {
	s, _, path := sessionFixture(t)

	ok := s.Login(context.Background(), "alice@example.com", "s3cret!")
	require.True(t, ok)

	sess := s.Session()
	require.NotNil(t, sess)
	assert.Equal(t, "u1", sess.ID)
	assert.Equal(t, "alice@example.com", sess.Email)
	assert.Equal(t, "Alice", sess.Name)
	assert.False(t, sess.LoginTime.IsZero())
	assert.Empty(t, s.Err())
	assert.False(t, s.Loading())
	assert.True(t, s.Authenticated())

	// Session is persisted and restorable.
	restored := NewSessionStore(NewMockAuthenticator(testUsers),
		storage.New(path, nil, zap.NewNop()))
	got := restored.Session()
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	s, _, _ := sessionFixture(t)

	ok := s.Login(context.Background(), "alice@example.com", "wrong")
	assert.False(t, ok)
	assert.Nil(t, s.Session())
	assert.Equal(t, "Invalid email or password", s.Err())
	assert.False(t, s.Authenticated())
}

func TestLogin_FailureLeavesExistingSession(t *testing.T) {
	s, _, _ := sessionFixture(t)
	ctx := context.Background()

	require.True(t, s.Login(ctx, "alice@example.com", "s3cret!"))
	require.False(t, s.Login(ctx, "alice@example.com", "oops"))

	sess := s.Session()
	require.NotNil(t, sess, "failed login must not destroy the live session")
	assert.Equal(t, "u1", sess.ID)
	assert.NotEmpty(t, s.Err())
}

func TestLogin_ClearsPriorError(t *testing.T) {
	s, _, _ := sessionFixture(t)
	ctx := context.Background()

	require.False(t, s.Login(ctx, "alice@example.com", "bad"))
	require.NotEmpty(t, s.Err())

	require.True(t, s.Login(ctx, "alice@example.com", "s3cret!"))
	assert.Empty(t, s.Err())
}

func TestLogout(t *testing.T) {
	s, ls, _ := sessionFixture(t)
	ctx := context.Background()

	require.True(t, s.Login(ctx, "alice@example.com", "s3cret!"))
	s.Logout()

	assert.Nil(t, s.Session())
	assert.Empty(t, s.Err())
	assert.Nil(t, ls.LoadSession(), "persisted session must be gone after logout")
	assert.False(t, ls.Authenticated())
}

func TestClearAllData(t *testing.T) {
	s, ls, _ := sessionFixture(t)
	ctx := context.Background()

	require.True(t, s.Login(ctx, "alice@example.com", "s3cret!"))
	ls.SaveTodos([]models.Todo{{ID: "1", Text: "x"}})
	ls.SavePreferences(map[string]any{"theme": "dark"})

	s.ClearAllData()

	assert.Nil(t, s.Session())
	assert.Nil(t, ls.LoadSession())
	assert.Empty(t, ls.LoadTodos())
	assert.Empty(t, ls.LoadPreferences())
}

func TestClearError(t *testing.T) {
	s, _, _ := sessionFixture(t)
	require.False(t, s.Login(context.Background(), "nobody@example.com", "x"))
	require.NotEmpty(t, s.Err())

	s.ClearError()
	assert.Empty(t, s.Err())
	assert.Nil(t, s.Session(), "ClearError changes nothing but the error")
}

func TestGatewayAuthenticator_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"user": {"id": "u9", "email": "bob@example.com", "name": "Bob"},
			"tokens": {"access": {"token": "acc"}, "refresh": {"token": "ref"}}
		}`))
	}))
	defer srv.Close()

	ls := storage.New(filepath.Join(t.TempDir(), "storage.json"), nil, zap.NewNop())
	client := api.New(srv.URL, nil, ls)
	s := NewSessionStore(NewGatewayAuthenticator(client), ls)

	require.True(t, s.Login(context.Background(), "bob@example.com", "pw"))
	sess := s.Session()
	require.NotNil(t, sess)
	require.NotNil(t, sess.Tokens)
	assert.Equal(t, "acc", sess.Tokens.Access.Token)
}

func TestGatewayAuthenticator_ErrorMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Invalid email or password"}`))
	}))
	defer srv.Close()

	ls := storage.New(filepath.Join(t.TempDir(), "storage.json"), nil, zap.NewNop())
	s := NewSessionStore(NewGatewayAuthenticator(api.New(srv.URL, nil, ls)), ls)

	assert.False(t, s.Login(context.Background(), "bob@example.com", "bad"))
	assert.Equal(t, "Invalid email or password", s.Err())
	assert.Nil(t, s.Session())
}

func TestNewSessionStore_NilDeps(t *testing.T) {
	ls := storage.New(filepath.Join(t.TempDir(), "storage.json"), nil, zap.NewNop())
	assert.Panics(t, func() { NewSessionStore(nil, ls) })
	assert.Panics(t, func() { NewSessionStore(NewMockAuthenticator(nil), nil) })
}
