// Package seed performs the first-run population of the TripWise store.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atinyakov/tripwise/internal/models"
	"github.com/atinyakov/tripwise/internal/store"
)

// Report lists the slots written by Initialize.
type Report struct {
	Seeded []store.Key
}

// Any reports whether at least one slot was seeded.
func (r Report) Any() bool {
	return len(r.Seeded) > 0
}

// Initialize writes the default collection into every seedable slot that is
// absent. A slot that exists, even holding an empty collection, is never
// touched, so calling Initialize again is a no-op.
func Initialize(ctx context.Context, st store.Store, now time.Time) (Report, error) {
	defaults := []struct {
		key   store.Key
		value func() any
	}{
		{store.KeySpots, func() any { return DefaultSpots() }},
		{store.KeyHotels, func() any { return DefaultHotels() }},
		{store.KeyCars, func() any { return DefaultCars() }},
		{store.KeyPosts, func() any { return DefaultPosts(now) }},
		{store.KeyUsers, func() any { return []models.User{DefaultAdmin} }},
	}

	var report Report
	for _, d := range defaults {
		_, ok, err := st.Read(ctx, d.key)
		if err != nil {
			return report, fmt.Errorf("check %s: %w", d.key, err)
		}
		if ok {
			continue
		}
		raw, err := json.Marshal(d.value())
		if err != nil {
			return report, fmt.Errorf("encode %s: %w", d.key, err)
		}
		if err := st.Write(ctx, d.key, raw); err != nil {
			return report, fmt.Errorf("seed %s: %w", d.key, err)
		}
		report.Seeded = append(report.Seeded, d.key)
	}
	return report, nil
}
