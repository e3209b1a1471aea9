package main

import (
	"context"
	"fmt"
	"time"

	"github.com/atinyakov/tripwise/internal/config"
	"github.com/atinyakov/tripwise/internal/db"
	"github.com/atinyakov/tripwise/internal/events"
	"github.com/atinyakov/tripwise/internal/store"
	"go.uber.org/zap"
)

// orphanSweepInterval is how often stray Postgres slot rows are removed.
const orphanSweepInterval = time.Hour

// openStore builds the configured slot backend. The returned func releases
// its connections.
func openStore(ctx context.Context, options *config.Options, log *zap.Logger) (store.Store, func(), error) {
	switch options.Store {
	case config.StoreMemory:
		log.Warn("using in-memory store, data is lost on exit")
		return store.NewMemoryStore(), func() {}, nil

	case config.StoreFile:
		fs, err := store.OpenFileStore(options.DataFile)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using file store", zap.String("path", fs.Path()))
		return fs, func() {}, nil

	case config.StorePostgres:
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		keys := make([]string, 0, len(store.Keys()))
		for _, k := range store.Keys() {
			keys = append(keys, string(k))
		}
		db.StartOrphanCleaner(ctx, postgresDB, orphanSweepInterval, keys, log)
		return store.NewPostgresStore(postgresDB), func() { _ = postgresDB.Close() }, nil

	case config.StoreRedis:
		client, err := store.DialRedis(ctx, options.RedisAddr, "", 0)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisStore(client, options.RedisPrefix), func() { _ = client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", options.Store)
}

// openEvents connects to NATS when configured and logs price drops seen on
// the bus. Without a URL events are discarded.
func openEvents(options *config.Options, log *zap.Logger) (events.Publisher, error) {
	if options.NATSURL == "" {
		return events.Nop{}, nil
	}
	bus, err := events.NewNATSBus(options.NATSURL)
	if err != nil {
		return nil, err
	}
	if err := events.WatchPriceDrops(bus, log); err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("subscribe to price changes: %w", err)
	}
	log.Info("publishing events", zap.String("nats", options.NATSURL))
	return bus, nil
}
