// Package main initializes and starts the TodoKeeper gateway server,
// setting up configuration, logging, database connections, repositories,
// services and handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/kbenhlel/TodoKeeper/internal/config"
	"github.com/kbenhlel/TodoKeeper/internal/db"
	"github.com/kbenhlel/TodoKeeper/internal/logger"
	"github.com/kbenhlel/TodoKeeper/internal/repository"
	"github.com/kbenhlel/TodoKeeper/internal/server/handler/http"
	"github.com/kbenhlel/TodoKeeper/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port
	dbName := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT secret is required (flag -s or JWT_SECRET)")
	}
	secret := []byte(options.JWTSecret)

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(dbName)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for users and todos.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	todoRepo := repository.NewPostgresTodoRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, secret)
	todoService := service.NewTodoService(todoRepo)

	// Create HTTP handlers for auth and todo endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	todoHandler := &http.TodoHandler{TodoService: todoService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, todoHandler, zapLogger, secret)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
