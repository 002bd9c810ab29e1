package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/talentgrid/talentgrid-backend/internal/review/events"
	"github.com/talentgrid/talentgrid-backend/internal/review/handler"
	"github.com/talentgrid/talentgrid-backend/internal/review/repository"
	"github.com/talentgrid/talentgrid-backend/internal/review/session"
	"github.com/talentgrid/talentgrid-backend/pkg/config"
	"github.com/talentgrid/talentgrid-backend/pkg/database"
	"github.com/talentgrid/talentgrid-backend/pkg/httputil"
	"github.com/talentgrid/talentgrid-backend/pkg/logger"
	"github.com/talentgrid/talentgrid-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("review-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("review-service", cfg.Server.Environment)
	log.Info().Msg("starting Review Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publisher
	publisher, err := events.NewReviewEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Initialize repository
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Initialize service
	reviewService := session.NewService(snapshotRepo, publisher, session.Config{
		SearchThreshold:      cfg.Review.SearchThreshold,
		SearchLimit:          cfg.Review.SearchLimit,
		ExclusionSearchLimit: cfg.Review.ExclusionSearchLimit,
	}, log)

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(reviewService, log)
	criteriaHandler := handler.NewCriteriaHandler(reviewService, log)
	moveHandler := handler.NewMoveHandler(reviewService, log)
	employeeHandler := handler.NewEmployeeHandler(reviewService, log)
	searchHandler := handler.NewSearchHandler(reviewService, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "review-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// API routes
	r.Route("/api/v1/review", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Post("/restore", sessionHandler.Restore)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)
				r.Delete("/", sessionHandler.Delete)
				r.Get("/roster", sessionHandler.Roster)
				r.Get("/export", sessionHandler.Export)
				r.Post("/snapshot", sessionHandler.Snapshot)

				r.Get("/criteria", criteriaHandler.Get)
				r.Patch("/criteria", criteriaHandler.Patch)
				r.Post("/criteria/toggle", criteriaHandler.Toggle)

				r.Post("/moves", moveHandler.Create)
				r.Get("/changes", moveHandler.Changes)

				r.Route("/employees/{employeeID}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Get("/history", moveHandler.History)
					r.Get("/chain", employeeHandler.ChainPath)
					r.Patch("/notes", employeeHandler.UpdateNotes)
					r.Patch("/flags", employeeHandler.UpdateFlags)
				})

				r.Get("/search", searchHandler.Search)
				r.Get("/exclusions/search", searchHandler.ExclusionSearch)
				r.Put("/exclusions/{employeeID}", searchHandler.Exclude)
				r.Delete("/exclusions/{employeeID}", searchHandler.Include)
			})
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
