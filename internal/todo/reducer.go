// Package todo implements the pure list transitions for todo records:
// a reducer mapping (current list, action) to the next list, and the
// status filter projection derived from it.
package todo

import "github.com/kbenhlel/TodoKeeper/internal/models"

// Action is a single list transition. Exactly one of the concrete
// action types below is dispatched per mutation.
type Action interface {
	isAction()
}

// Added inserts a new record with the given ID and text. The caller is
// responsible for trimming the text and generating a unique ID before
// dispatch; the reducer itself admits the action as-is.
type Added struct {
	ID   string
	Text string
}

// Changed replaces the record whose ID matches Todo.ID wholesale.
// If no record matches, the list is returned unchanged.
type Changed struct {
	Todo models.Todo
}

// Deleted removes the record with the given ID if present.
type Deleted struct {
	ID string
}

// Toggled flips the Done flag of the record with the given ID,
// leaving every other field untouched.
type Toggled struct {
	ID string
}

func (Added) isAction()   {}
func (Changed) isAction() {}
func (Deleted) isAction() {}
func (Toggled) isAction() {}

// Reduce computes the next todo list from the current one and an action.
// It never mutates its input: every branch returns a freshly allocated
// slice, so the same (todos, action) pair always yields an equal result.
// New records are prepended. Unknown actions return the input unchanged.
func Reduce(todos []models.Todo, action Action) []models.Todo {
	switch a := action.(type) {
	case Added:
		next := make([]models.Todo, 0, len(todos)+1)
		next = append(next, models.Todo{ID: a.ID, Text: a.Text, Done: false})
		return append(next, todos...)

	case Changed:
		next := make([]models.Todo, len(todos))
		for i, t := range todos {
			if t.ID == a.Todo.ID {
				next[i] = a.Todo
			} else {
				next[i] = t
			}
		}
		return next

	case Deleted:
		next := make([]models.Todo, 0, len(todos))
		for _, t := range todos {
			if t.ID != a.ID {
				next = append(next, t)
			}
		}
		return next

	case Toggled:
		next := make([]models.Todo, len(todos))
		for i, t := range todos {
			if t.ID == a.ID {
				t.Done = !t.Done
			}
			next[i] = t
		}
		return next

	default:
		return todos
	}
}
