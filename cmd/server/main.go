// Command server runs the PropertySwipe HTTP API: property listings, renter
// interest review, matches with messaging, viewings, tenancies, and ratings.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/config"
	httpapi "github.com/DavidCraggs/PropertySwipe-sub001/internal/http"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/observability"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/repo"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/scheduler"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/services"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title                      PropertySwipe API
// @version                    1.0
// @description                Two-sided rental matching: landlords list properties, renters express interest, landlords confirm into matches with messaging, viewings, tenancies and ratings.
// @BasePath                   /api/v1
// @schemes                    http https
// @contact.name               API Support
func main() {
	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if sysutil.IsTruthy(os.Getenv("LOG_CALLER")) {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	gin.SetMode(cfg.GinMode)

	db, err := repo.Open(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}

	ver := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)

	ctx := context.Background()
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, ver)
	if err != nil {
		log.Fatal().Err(err).Msg("setup tracing")
	}

	// Background housekeeping: flip overdue pending interests to expired.
	sweepSvc := &services.InterestService{DB: db, TTL: cfg.InterestTTL}
	sched := scheduler.New(cfg, sweepSvc.ExpireDue)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("start scheduler")
	}

	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", ver).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("http server failed")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}
