// Package api implements the HTTP client for the remote todo gateway.
// Every call is a plain request/response exchange; there is no retry
// and no optimistic state on this side.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kbenhlel/TodoKeeper/internal/client/storage"
	"github.com/kbenhlel/TodoKeeper/internal/models"
)

// Error is a gateway failure: either a transport fault or a non-2xx
// response decoded from the server's JSON error body.
type Error struct {
	// Status is the HTTP status code, 0 for transport failures.
	Status int
	// Message is the server-provided message, or "Unknown error" when
	// the body carried none.
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// LoginResponse is the body of a successful POST /auth/login.
type LoginResponse struct {
	User   models.User      `json:"user"`
	Tokens models.TokenPair `json:"tokens"`
}

// Client talks to the remote todo gateway. When the local storage holds
// a session with an access token, it is attached as a bearer credential
// on every request; otherwise requests go out unauthenticated.
type Client struct {
	baseURL string
	http    *http.Client
	store   *storage.LocalStorage
}

// New constructs a gateway client. httpClient may be nil, in which case
// http.DefaultClient is used. store provides the bearer token and may
// not be nil.
func New(baseURL string, httpClient *http.Client, store *storage.LocalStorage) *Client {
	if store == nil {
		panic("api: nil storage")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient, store: store}
}

// Login exchanges credentials for a user record and a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account on the gateway.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/register", body, nil)
}

// GetTodos fetches the full server-side todo list.
func (c *Client) GetTodos(ctx context.Context) ([]models.Todo, error) {
	var wire []models.APITodo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &wire); err != nil {
		return nil, err
	}
	todos := make([]models.Todo, len(wire))
	for i, w := range wire {
		todos[i] = w.Local()
	}
	return todos, nil
}

// CreateTodo asks the gateway to create a todo with the given text and
// returns the created record.
func (c *Client) CreateTodo(ctx context.Context, text string) (models.Todo, error) {
	var wire models.APITodo
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, "/todos", body, &wire); err != nil {
		return models.Todo{}, err
	}
	return wire.Local(), nil
}

// UpdateTodo sends an arbitrary field subset for the record and returns
// the updated server-side state.
func (c *Client) UpdateTodo(ctx context.Context, id string, fields map[string]any) (models.Todo, error) {
	var wire models.APITodo
	if err := c.do(ctx, http.MethodPut, "/todos/"+id, fields, &wire); err != nil {
		return models.Todo{}, err
	}
	return wire.Local(), nil
}

// DeleteTodo removes the record on the gateway. A 204 is the expected
// success response.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+id, nil, nil)
}

// ToggleTodo flips the completion flag server-side and returns the
// updated record.
func (c *Client) ToggleTodo(ctx context.Context, id string) (models.Todo, error) {
	var wire models.APITodo
	if err := c.do(ctx, http.MethodPatch, "/todos/"+id+"/toggle", nil, &wire); err != nil {
		return models.Todo{}, err
	}
	return wire.Local(), nil
}

// do performs one JSON request/response exchange. A 204 (or any success
// with out == nil) is treated as a valid empty result. Non-2xx responses
// are decoded into Error with the body's "message" field when parsable.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return &Error{Message: err.Error()}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.accessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: "Unknown error"}
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Message: err.Error()}
	}
	return nil
}

// accessToken returns the stored access token, empty when logged out.
func (c *Client) accessToken() string {
	s := c.store.LoadSession()
	if s == nil || s.Tokens == nil {
		return ""
	}
	return s.Tokens.Access.Token
}
