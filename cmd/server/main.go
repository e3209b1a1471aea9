// Package main initializes and starts the TripWise HTTP server,
// setting up configuration, logging, the slot store, seeding, services,
// events and handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/tripwise/internal/config"
	"github.com/atinyakov/tripwise/internal/logger"
	"github.com/atinyakov/tripwise/internal/repository"
	"github.com/atinyakov/tripwise/internal/seed"
	"github.com/atinyakov/tripwise/internal/server/handler/http"
	"github.com/atinyakov/tripwise/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, options, zapLogger); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, options *config.Options, zapLogger *zap.Logger) error {
	// Open the slot backend and fill absent slots.
	st, closeStore, err := openStore(ctx, options, zapLogger)
	if err != nil {
		return fmt.Errorf("cannot open store: %w", err)
	}
	defer closeStore()

	report, err := seed.Initialize(ctx, st, time.Now())
	if err != nil {
		return fmt.Errorf("cannot seed store: %w", err)
	}
	if report.Any() {
		zapLogger.Info("seeded store", zap.Any("keys", report.Seeded))
	}

	publisher, err := openEvents(options, zapLogger)
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()

	// Initialize business-logic services.
	repo := repository.NewSlotRepository(st, zapLogger)
	opts := service.Options{
		Delays:        service.DefaultDelays().Scale(options.LatencyScale),
		StrictUpdates: options.StrictUpdates,
		Logger:        zapLogger,
		Events:        publisher,
	}
	authService := service.NewAuthService(repo, opts)

	// Create HTTP handlers and build the router.
	handlers := http.Handlers{
		Auth:      &http.AuthHandler{AuthService: authService, Log: zapLogger},
		Catalog:   &http.CatalogHandler{CatalogService: service.NewCatalogService(repo, opts), Log: zapLogger},
		Community: &http.CommunityHandler{CommunityService: service.NewCommunityService(repo, opts), Sessions: authService, Log: zapLogger},
		Planner:   &http.PlannerHandler{PlannerService: service.NewPlannerService(repo, opts), Log: zapLogger},
	}
	router := http.NewRouter(handlers, authService, options.AllowedOrigins(), zapLogger)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port), zap.String("store", options.Store))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zapLogger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
