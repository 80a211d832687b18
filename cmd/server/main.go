package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/config"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/httpapi"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/hub"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/logging"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/maps"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/ws"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	h := hub.NewHub(ctx, slot.NewUUIDGen(), logger)
	defer h.Shutdown()

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, store, ws.Options{
		ClientBuffer: cfg.ClientBuffer,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, logger)
	srv := &http.Server{Addr: cfg.Addr, Handler: handler}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (maps.Store, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("using in-memory map store")
		return maps.NewMemoryStore(maps.Builtin...), nil
	}
	store, err := maps.OpenGorm(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	if err := store.Seed(ctx, maps.Builtin...); err != nil {
		return nil, fmt.Errorf("seed maps: %w", err)
	}
	return store, nil
}
