package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/codesprint-backend/internal/config"
	"github.com/stemsi/codesprint-backend/internal/database"
	"github.com/stemsi/codesprint-backend/internal/handler"
	"github.com/stemsi/codesprint-backend/internal/logger"
	"github.com/stemsi/codesprint-backend/internal/mailer"
	"github.com/stemsi/codesprint-backend/internal/repository"
	"github.com/stemsi/codesprint-backend/internal/router"
	"github.com/stemsi/codesprint-backend/internal/service"
	"github.com/stemsi/codesprint-backend/internal/validator"
	"github.com/stemsi/codesprint-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("event", cfg.EventName).
		Msg("Starting CodeSprint Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Mail Delivery ─────────────────────────────────────────────────
	sender, err := mailer.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure mail sender")
	}
	if cfg.SMTP.Host == "" {
		log.Warn().Msg("SMTP_HOST not set, mail will only be logged")
	}
	mailQueue := worker.NewMailQueue(rdb, cfg)

	// ─── Initialize Repositories ───────────────────────────────────────
	registrantRepo := repository.NewRegistrantRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	dispatcher := service.NewDispatcher(mailQueue, log)
	authService := service.NewAuthService(cfg, adminRepo, dispatcher)
	registrationService := service.NewRegistrationService(registrantRepo, dispatcher)
	registrantAdminService := service.NewRegistrantAdminService(registrantRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Registration: handler.NewRegistrationHandler(registrationService, log),
		Auth:         handler.NewAuthHandler(authService, log),
		Registrant:   handler.NewRegistrantHandler(registrantAdminService, log),
		Health:       handler.NewHealthHandler(pool, rdb, cfg, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	mailWorker := worker.NewMailWorker(rdb, sender, cfg, log)
	workers.Add(1)
	go func() {
		defer workers.Done()
		mailWorker.Start(workerCtx)
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Let dispatches started by the last requests reach the queue, then
	// stop the mail worker once it has drained it.
	dispatchCtx, dispatchCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if !dispatcher.Wait(dispatchCtx) {
		log.Warn().Msg("Pending notifications did not finish before shutdown")
	}
	dispatchCancel()
	workerCancel()

	drained := make(chan struct{})
	go func() {
		workers.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(30 * time.Second):
		log.Warn().Msg("Mail worker did not drain in time")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
