package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/thislife/planner/internal/api"
	"github.com/thislife/planner/internal/auth"
	"github.com/thislife/planner/internal/config"
	"github.com/thislife/planner/internal/health"
	"github.com/thislife/planner/internal/platform/factory"
	"github.com/thislife/planner/internal/platform/logger"
)

func main() {
	// Optional driver flag override (local | sqlite | postgres)
	dbDriver := flag.String("db-driver", "", "Override THISLIFE_DB_DRIVER (local, sqlite, postgres)")
	flag.Parse()

	// Missing .env is fine; environment variables stand on their own.
	_ = godotenv.Load()

	log := logger.New("planner-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *dbDriver != "" {
		cfg.DBDriver = *dbDriver
		if err := cfg.ResolveDefaults(); err != nil {
			log.Fatal().Err(err).Msg("Invalid db-driver override")
		}
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Bool("richer_backend", cfg.RicherBackend()).
		Msg("Planner service starting…")

	st, err := factory.NewStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Store unavailable")
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	svcHealth := health.StartMonitor(monitorCtx, log, st, 30*time.Second)
	api.BindServiceHealth(svcHealth.IsHealthy)

	router := api.NewRouter(st, auth.NewSharedCode(cfg.AccessCode))
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server…")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
