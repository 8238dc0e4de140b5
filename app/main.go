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

	"github.com/lysyi3m/feedshelf/app/api"
	"github.com/lysyi3m/feedshelf/app/cfg"
	"github.com/lysyi3m/feedshelf/app/config"
	"github.com/lysyi3m/feedshelf/app/database"
	"github.com/lysyi3m/feedshelf/app/feed"
	"github.com/lysyi3m/feedshelf/app/library"
	"github.com/lysyi3m/feedshelf/app/logging"
	"github.com/lysyi3m/feedshelf/app/tasks"
	"github.com/lysyi3m/feedshelf/app/xmltree"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	logCloser := logging.Setup(logging.Options{
		Debug:      appCfg.Debug,
		File:       appCfg.LogFile,
		MaxSize:    appCfg.LogMaxSize,
		MaxBackups: appCfg.LogMaxBackups,
		MaxAge:     appCfg.LogMaxAge,
	})
	defer logCloser.Close()

	if err := run(appCfg); err != nil {
		slog.Error("Feedshelf stopped with error", "error", err)
		logCloser.Close()
		os.Exit(1)
	}
}

func run(appCfg *cfg.Cfg) error {
	slog.Info("Starting Feedshelf server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	slog.Info("Connected to database", "path", appCfg.DBPath)

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		return err
	}
	slog.Info("Database migrations applied", "version", version, "dirty", dirty)

	httpClient := &http.Client{Timeout: appCfg.FetchTimeout}
	parser := feed.NewParser(feed.NewHTTPFetcher(httpClient, appCfg.UserAgent), xmltree.NewDecoder())

	lib := library.New(parser, database.NewFeedRepository(db), database.NewItemRepository(db))

	scheduler := tasks.NewScheduler(appCfg.WorkerCount, 2*appCfg.FetchTimeout)
	scheduler.Start()
	defer scheduler.Stop()

	subs, err := config.NewLoader(appCfg.FeedsFile).Load()
	if err != nil {
		return fmt.Errorf("failed to load subscriptions: %w", err)
	}
	for _, sub := range subs {
		if err := scheduler.EnqueueTask(tasks.NewImportFeedTask(sub, lib)); err != nil {
			slog.Warn("Failed to enqueue subscription import", "url", sub.URL, "error", err)
		}
	}
	if len(subs) > 0 {
		slog.Info("Subscription import started", "file", appCfg.FeedsFile, "count", len(subs), "workers", appCfg.WorkerCount)
	}

	handler := api.NewHandler(lib, scheduler, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: appCfg.FetchTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	slog.Info("Feedshelf server started successfully")

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal")
	case serveErr = <-serverErrChan:
		slog.Error("Server error", "error", serveErr)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Feedshelf shutdown complete")

	return serveErr
}
