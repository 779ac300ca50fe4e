package todo

import "github.com/kbenhlel/TodoKeeper/internal/models"

// Apply returns the subsequence of todos matching the filter, in store
// order. It is recomputed on every call and never cached, so it cannot
// drift from the list it projects. An unknown filter behaves like
// FilterAll.
func Apply(todos []models.Todo, f models.Filter) []models.Todo {
	switch f {
	case models.FilterActive:
		out := make([]models.Todo, 0, len(todos))
		for _, t := range todos {
			if !t.Done {
				out = append(out, t)
			}
		}
		return out
	case models.FilterCompleted:
		out := make([]models.Todo, 0, len(todos))
		for _, t := range todos {
			if t.Done {
				out = append(out, t)
			}
		}
		return out
	default:
		return todos
	}
}

// ListStats summarizes a todo list by completion status.
type ListStats struct {
	Total     int
	Active    int
	Completed int
}

// Stats counts the todos in each completion state.
func Stats(todos []models.Todo) ListStats {
	s := ListStats{Total: len(todos)}
	for _, t := range todos {
		if t.Done {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed
	return s
}
