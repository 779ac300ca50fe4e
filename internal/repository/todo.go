package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kbenhlel/TodoKeeper/internal/models"
)

// PostgresTodoRepository implements todo persistence against a PostgreSQL database.
type PostgresTodoRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTodoRepository creates a new PostgresTodoRepository using the provided *sql.DB.
func NewPostgresTodoRepository(db *sql.DB) *PostgresTodoRepository {
	return &PostgresTodoRepository{DB: db}
}

// GetTodosByUser fetches all todos for the specified user, newest first,
// matching the client's prepend ordering.
func (r *PostgresTodoRepository) GetTodosByUser(ctx context.Context, userID string) ([]models.APITodo, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, text, completed, created_at, updated_at FROM todos
		WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("GetTodosByUser: %w", err)
	}
	defer rows.Close()

	todos := []models.APITodo{}
	for rows.Next() {
		var t models.APITodo
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// GetTodoByID retrieves a single todo by ID for the given user.
// Returns sql.ErrNoRows when the record does not exist or belongs to
// another user.
func (r *PostgresTodoRepository) GetTodoByID(ctx context.Context, userID, id string) (*models.APITodo, error) {
	var t models.APITodo
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, text, completed, created_at, updated_at FROM todos
		WHERE user_id = $1 AND id = $2
	`, userID, id).Scan(&t.ID, &t.Text, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTodo inserts a new todo for the user and returns the stored
// record with its server-assigned timestamps.
func (r *PostgresTodoRepository) CreateTodo(ctx context.Context, userID string, t models.APITodo) (*models.APITodo, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO todos (id, user_id, text, completed)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, t.ID, userID, t.Text, t.Completed).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("CreateTodo: %w", err)
	}
	return &t, nil
}

// UpdateTodo overwrites text and completed of the record and bumps
// updated_at, returning the stored state. sql.ErrNoRows when absent.
func (r *PostgresTodoRepository) UpdateTodo(ctx context.Context, userID string, t models.APITodo) (*models.APITodo, error) {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE todos SET text = $3, completed = $4, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING created_at, updated_at
	`, userID, t.ID, t.Text, t.Completed).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTodo removes the record. Returns sql.ErrNoRows when nothing was
// deleted.
func (r *PostgresTodoRepository) DeleteTodo(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM todos WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err != nil {
		return fmt.Errorf("DeleteTodo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteTodo: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ToggleTodo flips the completed flag in place and returns the stored
// state. sql.ErrNoRows when absent.
func (r *PostgresTodoRepository) ToggleTodo(ctx context.Context, userID, id string) (*models.APITodo, error) {
	var t models.APITodo
	err := r.DB.QueryRowContext(ctx, `
		UPDATE todos SET completed = NOT completed, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING id, text, completed, created_at, updated_at
	`, userID, id).Scan(&t.ID, &t.Text, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
