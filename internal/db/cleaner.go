package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// StartOrphanCleaner periodically deletes slot rows whose key is not in
// keep, such as rows left behind by older releases. It stops when ctx is
// done.
func StartOrphanCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	keep []string,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cleanOrphans(ctx, db, keep, log)
			}
		}
	}()
}

func cleanOrphans(ctx context.Context, db *sql.DB, keep []string, log *zap.Logger) {
	res, err := db.ExecContext(ctx, `
        DELETE FROM slots
         WHERE NOT (key = ANY($1))
    `, pq.Array(keep))
	if err != nil {
		log.Error("failed to clean orphaned slots", zap.Error(err))
		return
	}
	if rows, _ := res.RowsAffected(); rows > 0 {
		log.Info("cleaned orphaned slots", zap.Int64("removed", rows))
	}
}
