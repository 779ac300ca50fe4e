// Package store holds the client's two pieces of application state:
// the todo list and the session. Both are explicit objects constructed
// once at startup and passed by handle; there are no package-level
// singletons.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbenhlel/TodoKeeper/internal/client/api"
	"github.com/kbenhlel/TodoKeeper/internal/client/storage"
	"github.com/kbenhlel/TodoKeeper/internal/models"
	"github.com/kbenhlel/TodoKeeper/internal/todo"
)

// TodoRepository computes the next todo list for each mutation. The two
// implementations are interchangeable: localRepository applies the pure
// reducer and writes through to local storage, while remoteRepository
// asks the gateway and only applies its response. Selected at
// construction time.
type TodoRepository interface {
	// Load returns the startup snapshot of the list.
	Load(ctx context.Context) ([]models.Todo, error)
	// Add creates a record for text and returns the next list.
	Add(ctx context.Context, current []models.Todo, text string) ([]models.Todo, error)
	// Update replaces the record matching t.ID wholesale.
	Update(ctx context.Context, current []models.Todo, t models.Todo) ([]models.Todo, error)
	// Delete removes the record with the given id.
	Delete(ctx context.Context, current []models.Todo, id string) ([]models.Todo, error)
	// Toggle flips the done flag of the record with the given id.
	Toggle(ctx context.Context, current []models.Todo, id string) ([]models.Todo, error)
}

// localRepository is the source-of-truth variant: mutations go through
// the reducer and the whole list is persisted on every change. Storage
// faults are logged inside LocalStorage and never surface here, so the
// local variant's mutations cannot fail.
type localRepository struct {
	store *storage.LocalStorage
}

// NewLocalRepository builds the reducer-backed repository on top of the
// given local storage.
func NewLocalRepository(store *storage.LocalStorage) TodoRepository {
	if store == nil {
		panic("store: nil local storage")
	}
	return &localRepository{store: store}
}

func (r *localRepository) Load(_ context.Context) ([]models.Todo, error) {
	return r.store.LoadTodos(), nil
}

func (r *localRepository) Add(_ context.Context, current []models.Todo, text string) ([]models.Todo, error) {
	next := todo.Reduce(current, todo.Added{ID: uuid.NewString(), Text: text})
	r.store.SaveTodos(next)
	return next, nil
}

func (r *localRepository) Update(_ context.Context, current []models.Todo, t models.Todo) ([]models.Todo, error) {
	next := todo.Reduce(current, todo.Changed{Todo: t})
	r.store.SaveTodos(next)
	return next, nil
}

func (r *localRepository) Delete(_ context.Context, current []models.Todo, id string) ([]models.Todo, error) {
	next := todo.Reduce(current, todo.Deleted{ID: id})
	r.store.SaveTodos(next)
	return next, nil
}

func (r *localRepository) Toggle(_ context.Context, current []models.Todo, id string) ([]models.Todo, error) {
	next := todo.Reduce(current, todo.Toggled{ID: id})
	r.store.SaveTodos(next)
	return next, nil
}

// remoteRepository is the gateway-authoritative variant: the list only
// changes from gateway responses, never optimistically. On error the
// current list is returned untouched.
type remoteRepository struct {
	client *api.Client
}

// NewRemoteRepository builds the gateway-backed repository.
func NewRemoteRepository(client *api.Client) TodoRepository {
	if client == nil {
		panic("store: nil api client")
	}
	return &remoteRepository{client: client}
}

func (r *remoteRepository) Load(ctx context.Context) ([]models.Todo, error) {
	return r.client.GetTodos(ctx)
}

func (r *remoteRepository) Add(ctx context.Context, current []models.Todo, text string) ([]models.Todo, error) {
	created, err := r.client.CreateTodo(ctx, text)
	if err != nil {
		return current, err
	}
	next := make([]models.Todo, 0, len(current)+1)
	next = append(next, created)
	return append(next, current...), nil
}

func (r *remoteRepository) Update(ctx context.Context, current []models.Todo, t models.Todo) ([]models.Todo, error) {
	updated, err := r.client.UpdateTodo(ctx, t.ID, map[string]any{"text": t.Text, "completed": t.Done})
	if err != nil {
		return current, err
	}
	return todo.Reduce(current, todo.Changed{Todo: updated}), nil
}

func (r *remoteRepository) Delete(ctx context.Context, current []models.Todo, id string) ([]models.Todo, error) {
	if err := r.client.DeleteTodo(ctx, id); err != nil {
		return current, err
	}
	return todo.Reduce(current, todo.Deleted{ID: id}), nil
}

func (r *remoteRepository) Toggle(ctx context.Context, current []models.Todo, id string) ([]models.Todo, error) {
	updated, err := r.client.ToggleTodo(ctx, id)
	if err != nil {
		return current, err
	}
	return todo.Reduce(current, todo.Changed{Todo: updated}), nil
}
