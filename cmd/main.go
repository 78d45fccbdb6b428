package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/coursebook/backend/docs"
	"github.com/coursebook/backend/internal/config"
	"github.com/coursebook/backend/internal/handlers"
	"github.com/coursebook/backend/internal/logger"
	"github.com/coursebook/backend/internal/middleware"
	"github.com/coursebook/backend/internal/repositories"
	"github.com/coursebook/backend/internal/services"
	"github.com/coursebook/backend/migrations"
	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Coursebook API
// @version 1.0
// @description API for managing courses and their lessons

// @host localhost:8080
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Coursebook Service", zap.String("storage", cfg.Storage.Driver))

	// Initialize repositories
	var (
		courseRepo services.CourseRepository
		lessonRepo services.LessonRepository
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := repositories.NewMemoryStore()
		courseRepo, lessonRepo = store.Courses(), store.Lessons()
	default:
		db, err := connectDB(cfg.DSN())
		if err != nil {
			logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := migrations.Up(db); err != nil {
			logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		courseRepo = repositories.NewCourseRepository(db, logger.Logger)
		lessonRepo = repositories.NewLessonRepository(db, logger.Logger)
	}

	// Initialize services
	catalogService := services.NewCatalogService(courseRepo, lessonRepo, logger.Logger)
	if cfg.Storage.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := catalogService.Seed(ctx)
		cancel()
		if err != nil {
			logger.Logger.Fatal("Failed to seed catalog", zap.Error(err))
		}
	}

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger.Logger)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewHTTPMetrics(registry)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(httpMetrics.Middleware)
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(cfg.Server.RateLimitPerMinute))
	r.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))
	r.Handle("/metrics", httpMetrics.Handler())

	// Register API routes
	catalogHandler.RegisterRoutes(r)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
