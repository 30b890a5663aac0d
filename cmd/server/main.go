package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xtding233/gacha-forecast/internal/catalog"
	"github.com/xtding233/gacha-forecast/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.SetupLogging(cfg.LogLevel)
	slog.Info("forecast server starting", "addr", cfg.Addr, "catalog", cfg.Catalog, "workers", cfg.Workers)

	loader := catalog.NewLoader()
	if _, err := loader.LoadCatalog(cfg.Catalog); err != nil {
		// the server still answers POST /forecast without a catalog
		slog.Warn("catalog not loaded", "path", cfg.Catalog, "err", err)
	}
	watcher := catalog.NewFileWatcher([]string{cfg.Catalog}, cfg.WatchInterval, func(string) {
		loader.Invalidate()
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(loader, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(gctx)
	})
	g.Go(func() error {
		slog.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
