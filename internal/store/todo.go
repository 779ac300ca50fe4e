package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/kbenhlel/TodoKeeper/internal/models"
	"github.com/kbenhlel/TodoKeeper/internal/todo"
)

// ErrEmptyText is returned by Add when the trimmed text is empty.
// Empty-text todos must never reach the reducer.
var ErrEmptyText = errors.New("todo text is empty")

// TodoStore holds the in-memory todo list together with its filter,
// loading flag and last error string. Mutations are delegated to the
// configured TodoRepository; the list is only replaced by what the
// repository returns. A failed mutation leaves the list untouched and
// sets the error string instead.
//
// The mutex serializes state application, not repository calls: two
// overlapping gateway mutations race and the last response wins.
type TodoStore struct {
	mu      sync.Mutex
	repo    TodoRepository
	todos   []models.Todo
	filter  models.Filter
	loading bool
	err     string
}

// NewTodoStore constructs the store around a repository. The list is
// empty until Load is called.
func NewTodoStore(repo TodoRepository) *TodoStore {
	if repo == nil {
		panic("store: nil todo repository")
	}
	return &TodoStore{repo: repo, filter: models.FilterAll, todos: []models.Todo{}}
}

// Load replaces the list with the repository's startup snapshot.
func (s *TodoStore) Load(ctx context.Context) {
	s.begin()
	next, err := s.repo.Load(ctx)
	s.finish(next, err)
}

// Add trims text and creates a new record. Empty text is rejected
// before anything is dispatched.
func (s *TodoStore) Add(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	s.begin()
	cur := s.snapshot()
	next, err := s.repo.Add(ctx, cur, text)
	s.finish(next, err)
	return err
}

// Update replaces the record matching t.ID wholesale. Unknown IDs are a
// soft no-op.
func (s *TodoStore) Update(ctx context.Context, t models.Todo) error {
	s.begin()
	cur := s.snapshot()
	next, err := s.repo.Update(ctx, cur, t)
	s.finish(next, err)
	return err
}

// Delete removes the record with the given id, a no-op when absent.
func (s *TodoStore) Delete(ctx context.Context, id string) error {
	s.begin()
	cur := s.snapshot()
	next, err := s.repo.Delete(ctx, cur, id)
	s.finish(next, err)
	return err
}

// Toggle flips the done flag of the record with the given id.
func (s *TodoStore) Toggle(ctx context.Context, id string) error {
	s.begin()
	cur := s.snapshot()
	next, err := s.repo.Toggle(ctx, cur, id)
	s.finish(next, err)
	return err
}

// Reset empties the in-memory list without touching persistence. Used
// when the session goes away so stale server data is never shown.
func (s *TodoStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = []models.Todo{}
	s.err = ""
	s.loading = false
}

// Todos returns a copy of the full list in store order.
func (s *TodoStore) Todos() []models.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Todo(nil), s.todos...)
}

// Filtered returns the projection of the list under the current filter,
// recomputed on every call.
func (s *TodoStore) Filtered() []models.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return todo.Apply(append([]models.Todo(nil), s.todos...), s.filter)
}

// Stats summarizes the current list by completion status.
func (s *TodoStore) Stats() todo.ListStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return todo.Stats(s.todos)
}

// SetFilter selects the projection mode. Pure UI state.
func (s *TodoStore) SetFilter(f models.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// Filter returns the current projection mode.
func (s *TodoStore) Filter() models.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Err returns the last error string, empty when the last operation
// succeeded.
func (s *TodoStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ClearError clears the error string only.
func (s *TodoStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// Loading reports whether a repository call is outstanding.
func (s *TodoStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *TodoStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *TodoStore) snapshot() []models.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Todo(nil), s.todos...)
}

// finish applies a repository result: on success the list is replaced
// and the error cleared, on failure the list stays as it was.
func (s *TodoStore) finish(next []models.Todo, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorMessage(err)
		return
	}
	if next == nil {
		next = []models.Todo{}
	}
	s.todos = next
	s.err = ""
}
