package storage

import "github.com/kbenhlel/TodoKeeper/internal/models"

// SaveSession writes the session user record and the authenticated flag.
// A nil session removes both keys instead.
func (ls *LocalStorage) SaveSession(s *models.Session) {
	if s == nil {
		ls.Remove(KeyUser)
		ls.Remove(KeyAuthState)
		return
	}
	ls.Set(KeyUser, s)
	ls.Set(KeyAuthState, true)
}

// LoadSession reads the stored session, or nil when absent or corrupt.
func (ls *LocalStorage) LoadSession() *models.Session {
	var s models.Session
	if !ls.Get(KeyUser, &s) {
		return nil
	}
	return &s
}

// Authenticated reports whether the stored authenticated flag is set.
func (ls *LocalStorage) Authenticated() bool {
	var ok bool
	if !ls.Get(KeyAuthState, &ok) {
		return false
	}
	return ok
}

// SaveTodos overwrites the whole stored todo list snapshot.
func (ls *LocalStorage) SaveTodos(todos []models.Todo) {
	ls.Set(KeyTodos, todos)
}

// LoadTodos reads the stored todo list. Absence or corruption yields an
// empty list, so startup never fails on bad storage.
func (ls *LocalStorage) LoadTodos() []models.Todo {
	var todos []models.Todo
	if !ls.Get(KeyTodos, &todos) {
		return []models.Todo{}
	}
	return todos
}

// SavePreferences overwrites the user preferences mapping.
func (ls *LocalStorage) SavePreferences(prefs map[string]any) {
	ls.Set(KeyPreferences, prefs)
}

// LoadPreferences reads the user preferences mapping, empty when absent.
func (ls *LocalStorage) LoadPreferences() map[string]any {
	prefs := make(map[string]any)
	ls.Get(KeyPreferences, &prefs)
	return prefs
}
