package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/kbenhlel/TodoKeeper/internal/models"
)

var (
	// ErrTodoNotFound is returned when the record does not exist or
	// belongs to a different user.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrEmptyText is returned when the trimmed todo text is empty.
	ErrEmptyText = errors.New("todo text is empty")
)

// TodoRepository defines the persistence operations required by the
// todo service.
type TodoRepository interface {
	GetTodosByUser(ctx context.Context, userID string) ([]models.APITodo, error)
	GetTodoByID(ctx context.Context, userID, id string) (*models.APITodo, error)
	CreateTodo(ctx context.Context, userID string, t models.APITodo) (*models.APITodo, error)
	UpdateTodo(ctx context.Context, userID string, t models.APITodo) (*models.APITodo, error)
	DeleteTodo(ctx context.Context, userID, id string) error
	ToggleTodo(ctx context.Context, userID, id string) (*models.APITodo, error)
}

// UpdateFields is the arbitrary field subset accepted by Update. Nil
// fields keep their stored value.
type UpdateFields struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// TodoService implements per-user todo operations by delegating to a
// TodoRepository.
type TodoService struct {
	repo TodoRepository
}

// NewTodoService constructs a new TodoService using the provided repository.
func NewTodoService(repo TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// GetTodos returns the user's todos, newest first.
func (s *TodoService) GetTodos(ctx context.Context, userID string) ([]models.APITodo, error) {
	return s.repo.GetTodosByUser(ctx, userID)
}

// CreateTodo validates and stores a new record for the user.
func (s *TodoService) CreateTodo(ctx context.Context, userID, text string) (*models.APITodo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	return s.repo.CreateTodo(ctx, userID, models.APITodo{
		ID:   uuid.NewString(),
		Text: text,
	})
}

// UpdateTodo applies a field subset to an existing record and returns
// the stored state.
func (s *TodoService) UpdateTodo(ctx context.Context, userID, id string, fields UpdateFields) (*models.APITodo, error) {
	current, err := s.repo.GetTodoByID(ctx, userID, id)
	if err != nil {
		return nil, mapNoRows(err)
	}

	if fields.Text != nil {
		text := strings.TrimSpace(*fields.Text)
		if text == "" {
			return nil, ErrEmptyText
		}
		current.Text = text
	}
	if fields.Completed != nil {
		current.Completed = *fields.Completed
	}

	updated, err := s.repo.UpdateTodo(ctx, userID, *current)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return updated, nil
}

// DeleteTodo removes the record.
func (s *TodoService) DeleteTodo(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteTodo(ctx, userID, id); err != nil {
		return mapNoRows(err)
	}
	return nil
}

// ToggleTodo flips the completion flag and returns the stored state.
func (s *TodoService) ToggleTodo(ctx context.Context, userID, id string) (*models.APITodo, error) {
	t, err := s.repo.ToggleTodo(ctx, userID, id)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return t, nil
}

func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTodoNotFound
	}
	return err
}
