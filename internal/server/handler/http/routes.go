package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kbenhlel/TodoKeeper/internal/middleware"
)

// NewRouter constructs and returns the HTTP handler serving the todo
// gateway API.
//
// Routes:
//
//	POST   /auth/login         → authHandler.Login
//	POST   /auth/register      → authHandler.Register
//	GET    /todos              → todoHandler.List    (bearer auth)
//	POST   /todos              → todoHandler.Create  (bearer auth)
//	PUT    /todos/{id}         → todoHandler.Update  (bearer auth)
//	DELETE /todos/{id}         → todoHandler.Delete  (bearer auth)
//	PATCH  /todos/{id}/toggle  → todoHandler.Toggle  (bearer auth)
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON request bodies
//  2. WithRequestLogging(logger)           — logs incoming requests
//  3. BearerAuth(jwtSecret)                — /todos subtree only
func NewRouter(
	authHandler *AuthHandler,
	todoHandler *TodoHandler,
	logger *zap.Logger,
	jwtSecret []byte,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
	})

	// Protected group: requires a valid bearer token
	r.Route("/todos", func(r chi.Router) {
		r.Use(middleware.BearerAuth(jwtSecret))

		r.Get("/", todoHandler.List)
		r.Post("/", todoHandler.Create)
		r.Put("/{id}", todoHandler.Update)
		r.Delete("/{id}", todoHandler.Delete)
		r.Patch("/{id}/toggle", todoHandler.Toggle)
	})

	return r
}
