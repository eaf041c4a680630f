// cmd/activities-server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"mergington-activities/internal/common/config"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
	"mergington-activities/internal/directory"
	"mergington-activities/internal/httpapi"
	"mergington-activities/internal/models"
	"mergington-activities/pkg/roster"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	zapLog.Info("Starting activities server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger with the configured level and format.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New("activities-server")
	defer obs.Shutdown()

	// --- Seed the Directory ---
	seed, err := loadSeed(cfg)
	if err != nil {
		zapLog.Fatal("seed load failed", zap.Error(err))
	}

	store := directory.New(seed, log)
	zapLog.Info("Activity directory seeded",
		zap.Int("activities", store.Len()),
		zap.String("source", seedSource(cfg)),
	)

	// --- HTTP Server ---
	api := httpapi.NewAPI(cfg, store, obs, log)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.Router(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.GetDuration(cfg.Server.IdleTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received, stopping server...", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Activities server stopped gracefully")
}

// loadSeed builds the initial directory contents, preferring a roster file
// when one is configured.
func loadSeed(cfg *config.Config) (map[string]models.Activity, error) {
	if cfg.Seed.Path == "" {
		return directory.DefaultSeed(), nil
	}

	ros, err := roster.LoadRoster(cfg.Seed.Path)
	if err != nil {
		return nil, err
	}

	seed := make(map[string]models.Activity, len(ros.Activities))
	for _, act := range ros.Activities {
		participants := act.Participants
		if participants == nil {
			participants = []string{}
		}
		seed[act.Name] = models.Activity{
			Description:     act.Description,
			Schedule:        act.Schedule,
			MaxParticipants: act.MaxParticipants,
			Participants:    participants,
		}
	}
	return seed, nil
}

func seedSource(cfg *config.Config) string {
	if cfg.Seed.Path == "" {
		return "built-in"
	}
	return cfg.Seed.Path
}
