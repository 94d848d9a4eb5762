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

	"newsprism/app/api"
	"newsprism/app/cfg"
	"newsprism/app/feed"
	"newsprism/app/fetch"
	"newsprism/app/sources"
	"newsprism/app/tasks"
)

func main() {
	// Load configuration from environment variables and command-line flags
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting News Prism server", "version", appCfg.Version)

	// Load source configuration (built-in defaults when no file is given)
	config, err := sources.Load(appCfg.SourcesFile)
	if err != nil {
		slog.Error("Failed to load source configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("Source configuration loaded",
		"sources", len(config.Sources),
		"search_keywords", len(config.SearchKeywords))

	if appCfg.NewsAPIKey == "" {
		slog.Warn("NEWSAPI_KEY not set, keyword-search sources will fail")
	}

	// Shared HTTP client; per-request timeouts are applied via context
	httpClient := &http.Client{}
	fetchTimeout := time.Duration(appCfg.FetchTimeout) * time.Second

	// Initialize core components
	client := fetch.NewClient(httpClient, appCfg.NewsAPIKey, appCfg.UserAgent, fetchTimeout)
	resolver := feed.NewResolver(httpClient, appCfg.UserAgent, fetchTimeout)
	pages := feed.NewPageExtractor(httpClient, appCfg.UserAgent, fetchTimeout)
	builder := feed.NewBuilder(resolver, pages)
	collector := feed.NewCollector(config, client, client, builder, appCfg.FetchConcurrency)
	checker := feed.NewHealthChecker(config, client, client, appCfg.FetchConcurrency)
	snapshot := feed.NewSnapshot()

	// Initialize and start background scheduler
	interval := time.Duration(appCfg.SchedulerInterval) * time.Second
	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval", interval.String())
	scheduler := tasks.NewScheduler(collector, checker, snapshot, appCfg.HoursBack, interval, appCfg.WorkerCount)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP server. Default-parameter requests are served from the
	// snapshot while it is younger than two refresh intervals.
	handler := api.NewHandler(collector, checker, snapshot, config,
		appCfg.HoursBack, 2*interval, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
