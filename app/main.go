package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/fitbhaskar/app/api"
	"github.com/lysyi3m/fitbhaskar/app/blog"
	"github.com/lysyi3m/fitbhaskar/app/cfg"
	"github.com/lysyi3m/fitbhaskar/app/content"
	"github.com/lysyi3m/fitbhaskar/app/database"
	"github.com/lysyi3m/fitbhaskar/app/feed"
	"github.com/lysyi3m/fitbhaskar/app/gateway"
	"github.com/lysyi3m/fitbhaskar/app/metrics"
	"github.com/lysyi3m/fitbhaskar/app/tasks"
)

func main() {
	cfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg == nil {
		return
	}

	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("Starting FitBhaskar server", "version", cfg.Version, "timezone", time.Local.String())

	site, err := content.NewLoader(cfg.ContentFile).Load()
	if err != nil {
		slog.Error("Failed to load site content", "error", err)
		os.Exit(1)
	}

	registry := metrics.NewRegistry()
	httpClient := &http.Client{}

	client, err := gateway.NewClient(cfg.GatewayURL, httpClient, cfg.UserAgent, cfg.GatewayTimeout, registry)
	if err != nil {
		slog.Error("Failed to create gateway client", "error", err)
		os.Exit(1)
	}

	var outboxRepo *database.OutboxRepository
	if cfg.OutboxEnabled() {
		db, err := database.NewConnection(cfg.DBPath)
		if err != nil {
			slog.Error("Failed to connect to database", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()

		version, dirty, err := database.RunMigrations(db)
		if err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database ready", "path", cfg.DBPath, "version", version, "dirty", dirty)

		outboxRepo = database.NewOutboxRepository(db)
	} else {
		slog.Info("Submission outbox disabled (DB_PATH not set)")
	}

	// A nil *OutboxRepository must not reach the interface fields.
	var outbox blog.Outbox
	var outboxStore tasks.OutboxStore
	var outboxCounter api.OutboxCounter
	var replaySubmitter tasks.PostSubmitter
	if outboxRepo != nil {
		outbox, outboxStore, outboxCounter, replaySubmitter = outboxRepo, outboxRepo, outboxRepo, client
	}

	feedLoader := blog.NewFeedLoader(client, registry)
	sessions := blog.NewSessionStore(cfg.AdminSessionTTL)
	submitter := blog.NewSubmitter(client, outbox, cfg.MaskSubmitFailures, registry)
	moderator := blog.NewModerator(client, sessions, feedLoader, registry)
	videos := feed.NewVideoStore()

	handler := api.NewHandler(api.Deps{
		Site:      site,
		Feed:      feedLoader,
		Submitter: submitter,
		Moderator: moderator,
		Sessions:  sessions,
		Generator: feed.NewGenerator(),
		Videos:    videos,
		Outbox:    outboxCounter,
		Metrics:   registry,
	})

	slog.Info("Starting background scheduler", "workers", cfg.WorkerCount, "interval", cfg.SchedulerInterval)
	scheduler := tasks.NewScheduler(tasks.Deps{
		Site:       site,
		HTTPClient: httpClient,
		Parser:     feed.NewChannelParser(),
		Filterer:   feed.NewFilterer(),
		Videos:     videos,
		Outbox:     outboxStore,
		Submitter:  replaySubmitter,
		Sessions:   sessions,
		Limiters:   handler,
		Metrics:    registry,
	})
	scheduler.Start()
	defer scheduler.Stop()

	server := api.NewServer(handler, cfg.MediaDir)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2*cfg.GatewayTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", cfg.Port)
		slog.Info("Endpoints available",
			"home", fmt.Sprintf("http://localhost:%s/", cfg.Port),
			"blog", fmt.Sprintf("http://localhost:%s/blog", cfg.Port),
			"feed", fmt.Sprintf("http://localhost:%s/blog/feed.xml", cfg.Port),
			"health", fmt.Sprintf("http://localhost:%s/health", cfg.Port),
			"metrics", fmt.Sprintf("http://localhost:%s/metrics", cfg.Port),
		)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("FitBhaskar server shutdown complete")
}
