package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"geodocs/internal/migrate"
	"geodocs/internal/platform/config"
	"geodocs/internal/platform/httpserver"
	"geodocs/internal/platform/logger"
	"geodocs/internal/platform/postgres"
	"geodocs/internal/records"
	recmetrics "geodocs/internal/records/metrics"
	"geodocs/internal/records/vocabulary"
)

// main wires the records core against Postgres and keeps the process
// lifecycle small. The records API itself is a function-call boundary consumed
// by an embedding routing layer; this binary exposes only the operational
// endpoints.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	db, err := postgres.Open(cfg.DatabaseURL, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrate.EnsureSchema(startupCtx, db); err != nil {
		log.Error("ensure schema", "error", err)
		os.Exit(1)
	}

	core, err := records.New(db, log, recmetrics.New())
	if err != nil {
		log.Error("construct records core", "error", err)
		os.Exit(1)
	}
	if err := vocabulary.SeedDefaults(startupCtx, core.Vocabulary); err != nil {
		log.Error("seed vocabularies", "error", err)
		os.Exit(1)
	}

	srv := httpserver.New(cfg.OpsAddr, newOpsRouter(db))

	log.Info("starting geodocs ops endpoints", "addr", cfg.OpsAddr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
