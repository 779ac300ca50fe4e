package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kbenhlel/TodoKeeper/internal/middleware"
	"github.com/kbenhlel/TodoKeeper/internal/models"
	"github.com/kbenhlel/TodoKeeper/internal/service"
)

// TodoService defines the interface for todo operations required by the
// HTTP handlers.
type TodoService interface {
	GetTodos(ctx context.Context, userID string) ([]models.APITodo, error)
	CreateTodo(ctx context.Context, userID, text string) (*models.APITodo, error)
	UpdateTodo(ctx context.Context, userID, id string, fields service.UpdateFields) (*models.APITodo, error)
	DeleteTodo(ctx context.Context, userID, id string) error
	ToggleTodo(ctx context.Context, userID, id string) (*models.APITodo, error)
}

// TodoHandler handles HTTP requests for per-user todo records.
type TodoHandler struct {
	TodoService TodoService
}

// List handles GET /todos, returning the user's todos newest first.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	todos, err := h.TodoService.GetTodos(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// Create handles POST /todos. The body carries {"text": "..."}.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.TodoService.CreateTodo(r.Context(), userID, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrEmptyText) {
			writeError(w, http.StatusBadRequest, "todo text is empty")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /todos/{id}. The body carries an arbitrary subset
// of {"text", "completed"}.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var fields service.UpdateFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.TodoService.UpdateTodo(r.Context(), userID, id, fields)
	if err != nil {
		h.writeTodoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /todos/{id}, responding 204 on success.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.TodoService.DeleteTodo(r.Context(), userID, id); err != nil {
		h.writeTodoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Toggle handles PATCH /todos/{id}/toggle.
func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	toggled, err := h.TodoService.ToggleTodo(r.Context(), userID, id)
	if err != nil {
		h.writeTodoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggled)
}

func (h *TodoHandler) writeTodoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTodoNotFound):
		writeError(w, http.StatusNotFound, "todo not found")
	case errors.Is(err, service.ErrEmptyText):
		writeError(w, http.StatusBadRequest, "todo text is empty")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
