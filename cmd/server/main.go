package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/slotwise/tempo/api/internal/config"
	"github.com/slotwise/tempo/api/internal/database"
	"github.com/slotwise/tempo/api/internal/handler"
	"github.com/slotwise/tempo/api/internal/jobs"
	"github.com/slotwise/tempo/api/internal/middleware"
	"github.com/slotwise/tempo/api/internal/notify"
	"github.com/slotwise/tempo/api/internal/repository"
	"github.com/slotwise/tempo/api/internal/service"
	"github.com/slotwise/tempo/api/internal/store"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env if present, then configuration from the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Select the calendar store backend
	var calendarStore store.CalendarStore
	switch cfg.Store.Backend {
	case config.StoreSurreal:
		db := database.NewSurrealDB(database.Config{
			Host:      cfg.Store.Host,
			Port:      cfg.Store.Port,
			User:      cfg.Store.User,
			Password:  cfg.Store.Password,
			Namespace: cfg.Store.Namespace,
			Database:  cfg.Store.Database,
		})

		if err := db.Connect(context.Background()); err != nil {
			slog.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		slog.Info("connected to database",
			slog.String("host", cfg.Store.Host),
			slog.String("database", cfg.Store.Database),
		)

		calendarStore = repository.NewCalendarRepository(db)
	default:
		slog.Info("using in-memory calendar store")
		calendarStore = store.NewMemoryStore()
	}

	// Initialize services
	availabilityService := service.NewAvailabilityService(service.AvailabilityServiceConfig{
		Store:         calendarStore,
		SearchHorizon: cfg.Scheduling.SearchHorizon,
		CandidateStep: cfg.Scheduling.CandidateStep,
		DayStartHour:  cfg.Scheduling.DayStartHour,
		DayEndHour:    cfg.Scheduling.DayEndHour,
	})

	// Invitations go to an .ics outbox directory when configured,
	// otherwise to the log.
	var inviter service.Inviter
	if cfg.Notify.OutboxDir != "" {
		outbox, err := notify.NewOutboxInviter(cfg.Notify.OutboxDir)
		if err != nil {
			slog.Error("failed to create invitation outbox", slog.String("error", err.Error()))
			os.Exit(1)
		}
		inviter = outbox
	} else {
		inviter = notify.LogInviter{}
	}

	dispatcher := jobs.NewInviteDispatcher(inviter, cfg.Notify.QueueSize)
	dispatcher.Start()
	defer dispatcher.Stop()

	schedulerService := service.NewSchedulerService(service.SchedulerServiceConfig{
		Store:        calendarStore,
		Availability: availabilityService,
		Inviter:      dispatcher,
	})

	// Periodic cleanup of long-past events
	retention := jobs.NewRetentionJob(calendarStore, cfg.Retention.Schedule, cfg.Retention.MaxAge)
	if err := retention.Start(); err != nil {
		slog.Error("failed to start retention job", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer retention.Stop()

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100,
		Window: time.Minute,
		Burst:  20,
	})
	defer rateLimiter.Stop()

	// Initialize handlers
	calendarHandler := handler.NewCalendarHandler(calendarStore)
	meetingHandler := handler.NewMeetingHandler(schedulerService)

	// Create router and register routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)

	mux.HandleFunc("POST /v1/meetings", meetingHandler.ScheduleMeeting)

	mux.HandleFunc("GET /v1/calendars/{identity}", calendarHandler.GetCalendar)
	mux.HandleFunc("POST /v1/calendars/{identity}/events", calendarHandler.CreateEvent)
	mux.HandleFunc("DELETE /v1/calendars/{identity}/events/{eventId}", calendarHandler.DeleteEvent)
	mux.HandleFunc("GET /v1/calendars/{identity}/slots", calendarHandler.GetSlots)

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.APIKey(cfg.Auth.APIKeyHash),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("store", cfg.Store.Backend),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
