package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kbenhlel/TodoKeeper/internal/client/storage"
	"github.com/kbenhlel/TodoKeeper/internal/models"
)

func testStore(t *testing.T) *storage.LocalStorage {
	t.Helper()
	return storage.New(filepath.Join(t.TempDir(), "storage.json"), nil, zap.NewNop())
}

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"user": {"id": "u1", "email": "a@b.c", "name": "Alice"},
			"tokens": {"access": {"token": "acc"}, "refresh": {"token": "ref"}}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, testStore(t))
	resp, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "acc", resp.Tokens.Access.Token)
}

func TestLogin_ServerMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Invalid email or password"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, testStore(t))
	_, err := c.Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestError_UnparsableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, testStore(t))
	_, err := c.GetTodos(context.Background())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Unknown error", apiErr.Message)
}

func TestGetTodos_WireConversion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "1", "text": "buy milk", "completed": true},
			{"id": "2", "text": "walk dog", "completed": false}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, testStore(t))
	todos, err := c.GetTodos(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, models.Todo{ID: "1", Text: "buy milk", Done: true}, todos[0])
	assert.Equal(t, models.Todo{ID: "2", Text: "walk dog", Done: false}, todos[1])
}

func TestBearerToken_AttachedWhenStored(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	store := testStore(t)
	store.SaveSession(&models.Session{
		ID: "u1", Email: "a@b.c",
		Tokens: &models.TokenPair{Access: models.Token{Token: "tok123"}},
	})

	c := New(srv.URL, nil, store)
	_, err := c.GetTodos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestBearerToken_AbsentWhenLoggedOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, testStore(t))
	_, err := c.GetTodos(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestDeleteTodo_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/todos/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, nil, testStore(t))
	assert.NoError(t, c.DeleteTodo(context.Background(), "42"))
}

func TestToggleTodo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/todos/7/toggle", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": "7", "text": "x", "completed": true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, testStore(t))
	got, err := c.ToggleTodo(context.Background(), "7")
	require.NoError(t, err)
	assert.True(t, got.Done)
}

func TestTransportError(t *testing.T) {
	c := New("http://127.0.0.1:0", nil, testStore(t))
	_, err := c.GetTodos(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}
