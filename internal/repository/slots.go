// Package repository maps store slots onto typed TripWise collections.
//
// Reads are forgiving: an absent slot or a slot whose JSON no longer decodes
// yields an empty collection instead of an error, so a damaged store never
// takes the API down. Errors from the store itself are returned.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atinyakov/tripwise/internal/models"
	"github.com/atinyakov/tripwise/internal/store"
	"go.uber.org/zap"
)

// SlotRepository reads and writes whole collections through a store.Store.
type SlotRepository struct {
	// Store is the durable key-value backend.
	Store store.Store
	log   *zap.Logger
}

// NewSlotRepository creates a SlotRepository over st. A nil logger disables
// corruption warnings.
func NewSlotRepository(st store.Store, log *zap.Logger) *SlotRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &SlotRepository{Store: st, log: log}
}

func readSlice[T any](ctx context.Context, r *SlotRepository, key store.Key) ([]T, error) {
	raw, ok, err := r.Store.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	out := []T{}
	if !ok {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		r.log.Warn("discarding undecodable slot", zap.String("key", string(key)), zap.Error(err))
		return []T{}, nil
	}
	if out == nil {
		// the slot held JSON null
		return []T{}, nil
	}
	return out, nil
}

func writeJSON(ctx context.Context, r *SlotRepository, key store.Key, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.Store.Write(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Spots returns the destination collection.
func (r *SlotRepository) Spots(ctx context.Context) ([]models.Spot, error) {
	return readSlice[models.Spot](ctx, r, store.KeySpots)
}

// Hotels returns the hotel collection.
func (r *SlotRepository) Hotels(ctx context.Context) ([]models.Hotel, error) {
	return readSlice[models.Hotel](ctx, r, store.KeyHotels)
}

// SaveHotels replaces the hotel collection.
func (r *SlotRepository) SaveHotels(ctx context.Context, hotels []models.Hotel) error {
	return writeJSON(ctx, r, store.KeyHotels, hotels)
}

// Cars returns the vehicle collection.
func (r *SlotRepository) Cars(ctx context.Context) ([]models.Car, error) {
	return readSlice[models.Car](ctx, r, store.KeyCars)
}

// SaveCars replaces the vehicle collection.
func (r *SlotRepository) SaveCars(ctx context.Context, cars []models.Car) error {
	return writeJSON(ctx, r, store.KeyCars, cars)
}

// Posts returns the community feed, newest first.
func (r *SlotRepository) Posts(ctx context.Context) ([]models.Post, error) {
	return readSlice[models.Post](ctx, r, store.KeyPosts)
}

// SavePosts replaces the community feed.
func (r *SlotRepository) SavePosts(ctx context.Context, posts []models.Post) error {
	return writeJSON(ctx, r, store.KeyPosts, posts)
}

// Users returns the simulated user directory.
func (r *SlotRepository) Users(ctx context.Context) ([]models.User, error) {
	return readSlice[models.User](ctx, r, store.KeyUsers)
}

// SaveUsers replaces the user directory.
func (r *SlotRepository) SaveUsers(ctx context.Context, users []models.User) error {
	return writeJSON(ctx, r, store.KeyUsers, users)
}

// Session returns the logged-in user, or nil when the session slot is empty
// or unreadable.
func (r *SlotRepository) Session(ctx context.Context) (*models.User, error) {
	raw, ok, err := r.Store.Read(ctx, store.KeySession)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", store.KeySession, err)
	}
	if !ok {
		return nil, nil
	}
	var u *models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		r.log.Warn("discarding undecodable session", zap.Error(err))
		return nil, nil
	}
	if u != nil && !u.Role.Valid() {
		r.log.Warn("discarding session with unknown role", zap.String("role", string(u.Role)))
		return nil, nil
	}
	return u, nil
}

// SaveSession stores u as the single active session, replacing any other.
func (r *SlotRepository) SaveSession(ctx context.Context, u models.User) error {
	return writeJSON(ctx, r, store.KeySession, u)
}

// ClearSession empties the session slot.
func (r *SlotRepository) ClearSession(ctx context.Context) error {
	if err := r.Store.Remove(ctx, store.KeySession); err != nil {
		return fmt.Errorf("clear %s: %w", store.KeySession, err)
	}
	return nil
}
