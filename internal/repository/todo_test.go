package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kbenhlel/TodoKeeper/internal/models"
)

func setupTodoMock(t *testing.T) (*PostgresTodoRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresTodoRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestGetTodosByUser(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "text", "completed", "created_at", "updated_at"}).
		AddRow("2", "newer", false, now, now).
		AddRow("1", "older", true, now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, text, completed, created_at, updated_at FROM todos
		WHERE user_id = $1 ORDER BY created_at DESC`)).
		WithArgs("u1").
		WillReturnRows(rows)

	todos, err := repo.GetTodosByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(todos) != 2 || todos[0].ID != "2" || todos[1].ID != "1" {
		t.Errorf("unexpected todos: %+v", todos)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetTodosByUser_Empty(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, text, completed, created_at, updated_at FROM todos`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "completed", "created_at", "updated_at"}))

	todos, err := repo.GetTodosByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if todos == nil || len(todos) != 0 {
		t.Errorf("expected empty non-nil slice, got %+v", todos)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateTodo(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO todos (id, user_id, text, completed)`)).
		WithArgs("t1", "u1", "buy milk", false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := repo.CreateTodo(context.Background(), "u1", models.APITodo{ID: "t1", Text: "buy milk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "t1" || created.CreatedAt.IsZero() {
		t.Errorf("unexpected record: %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdateTodo_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE todos SET text = $3, completed = $4, updated_at = now()`)).
		WithArgs("u1", "ghost", "x", true).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateTodo(context.Background(), "u1", models.APITodo{ID: "ghost", Text: "x", Completed: true})
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDeleteTodo(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM todos WHERE user_id = $1 AND id = $2`)).
		WithArgs("u1", "t1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteTodo(context.Background(), "u1", "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDeleteTodo_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM todos WHERE user_id = $1 AND id = $2`)).
		WithArgs("u1", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteTodo(context.Background(), "u1", "ghost"); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestToggleTodo(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE todos SET completed = NOT completed, updated_at = now()`)).
		WithArgs("u1", "t1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "completed", "created_at", "updated_at"}).
			AddRow("t1", "buy milk", true, now, now))

	got, err := repo.ToggleTodo(context.Background(), "u1", "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Completed {
		t.Errorf("expected completed = true, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
