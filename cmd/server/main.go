package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	draftservice "homevest/internal/draft/service"
	draftstore "homevest/internal/draft/store"
	"homevest/internal/events"
	httptransport "homevest/internal/http"
	"homevest/internal/platform/config"
	"homevest/internal/platform/httpserver"
	"homevest/internal/platform/logger"
	platformmetrics "homevest/internal/platform/metrics"
	platformredis "homevest/internal/platform/redis"
	"homevest/internal/platform/token"
	registrymetrics "homevest/internal/registry/metrics"
	registryservice "homevest/internal/registry/service"
	registrystore "homevest/internal/registry/store"
	registryworker "homevest/internal/registry/worker"
	"homevest/internal/submission"
	"homevest/internal/submission/remoteapi"

	drafthandler "homevest/internal/draft/handler"
	registryhandler "homevest/internal/registry/handler"
	submissionhandler "homevest/internal/submission/handler"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()

	appMetrics := platformmetrics.New()
	regMetrics := registrymetrics.New()

	// Draft persistence: Redis when configured, in-memory otherwise.
	var drafts draftstore.Store = draftstore.NewInMemoryStore()
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis unavailable", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		drafts = draftstore.NewRedisStore(redisClient.Client)
		defer redisClient.Close()
	}

	// Registry persistence: Postgres when configured, in-memory otherwise.
	var registry registrystore.Store = registrystore.NewInMemoryStore()
	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			log.Error("postgres unavailable", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		if _, err := db.Exec(registrystore.Schema); err != nil {
			log.Error("apply registry schema", "error", err.Error())
			os.Exit(1)
		}
		registry = registrystore.NewPostgresStore(db)
	}

	bus := events.NewBus(64)
	remote := remoteapi.New(cfg.RemoteAPIURL,
		remoteapi.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		remoteapi.WithMetrics(appMetrics),
	)

	draftSvc := draftservice.New(drafts, bus, log, draftservice.WithMetrics(appMetrics))
	orchestrator := submission.New(draftSvc, remote, log,
		submission.WithMetrics(appMetrics),
		submission.WithUploadParallelism(cfg.UploadParallel),
	)
	registrySvc := registryservice.New(registry, log,
		registryservice.WithMetrics(regMetrics),
		registryservice.WithRemoteDeleter(remote),
	)

	tokens := token.NewService(cfg.JWTSigningKey, "homevest")
	router := httptransport.NewRouter(httptransport.Handlers{
		Draft:      drafthandler.New(draftSvc, log),
		Submission: submissionhandler.New(orchestrator, log),
		Registry:   registryhandler.New(registrySvc, log),
	}, tokens, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := registryworker.New(registrySvc, bus.Events(), log)
	go func() {
		if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("registry worker stopped", "error", err.Error())
		}
	}()

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting homevest", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
