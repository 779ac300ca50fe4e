// Package models defines the core data structures for todos, users and sessions.
package models

import "time"

// Todo represents a single task entry.
type Todo struct {
	// ID is the unique, stable identifier for the todo.
	ID string `json:"id"`
	// Text is the task description. Never empty after trimming.
	Text string `json:"text"`
	// Done indicates whether the task is completed.
	Done bool `json:"done"`
}

// APITodo is the gateway wire representation of a todo. The completion
// flag is named "completed" on the wire and records may carry
// server-assigned timestamps; otherwise it is the same record as Todo.
type APITodo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Local converts the wire record to the local representation.
func (t APITodo) Local() Todo {
	return Todo{ID: t.ID, Text: t.Text, Done: t.Completed}
}

// User represents an application user with credentials on the server side.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Email is the login address of the user.
	Email string `json:"email"`
	// Name is the display name of the user.
	Name string `json:"name"`
	// PasswordHash is the hashed password of the user. Never serialized.
	PasswordHash []byte `json:"-"`
}

// Token is a single bearer credential with its expiry.
type Token struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires,omitempty"`
}

// TokenPair holds the access and refresh tokens issued at login.
type TokenPair struct {
	Access  Token `json:"access"`
	Refresh Token `json:"refresh"`
}

// Session is the authenticated identity stored on the device. At most one
// session is live per store instance. The password is never part of it.
type Session struct {
	// ID is the identifier of the authenticated user.
	ID string `json:"id"`
	// Email is the address the user logged in with.
	Email string `json:"email"`
	// Name is the display name of the authenticated user.
	Name string `json:"name"`
	// LoginTime records when the session was created.
	LoginTime time.Time `json:"loginTime,omitempty"`
	// Tokens holds the bearer credentials for the gateway, if any.
	Tokens *TokenPair `json:"tokens,omitempty"`
}

// Filter defines the set of valid todo list projections.
type Filter string

const (
	// FilterAll selects every todo in store order.
	FilterAll Filter = "all"
	// FilterActive selects todos that are not done.
	FilterActive Filter = "active"
	// FilterCompleted selects todos that are done.
	FilterCompleted Filter = "completed"
)
