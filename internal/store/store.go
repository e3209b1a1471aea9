// Package store provides the durable key-value boundary every TripWise
// collection lives behind. Values are opaque JSON documents; backends never
// reinterpret them.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Key names one of the fixed storage slots.
type Key string

const (
	KeySpots   Key = "tw_spots"
	KeyHotels  Key = "tw_hotels"
	KeyCars    Key = "tw_cars"
	KeyPosts   Key = "tw_posts"
	KeySession Key = "tw_user_session"
	KeyUsers   Key = "tw_users_db"
)

// ErrUnknownKey is returned for keys outside the fixed namespace.
var ErrUnknownKey = errors.New("unknown storage key")

// Keys returns the full slot namespace.
func Keys() []Key {
	return []Key{KeySpots, KeyHotels, KeyCars, KeyPosts, KeySession, KeyUsers}
}

// Valid reports whether k belongs to the slot namespace.
func (k Key) Valid() bool {
	switch k {
	case KeySpots, KeyHotels, KeyCars, KeyPosts, KeySession, KeyUsers:
		return true
	}
	return false
}

// Store is a key-value persistence boundary over the six slots.
// Read reports ok=false for an absent slot. Implementations are safe for
// concurrent use, but a Read followed by a Write is not atomic.
type Store interface {
	Read(ctx context.Context, key Key) ([]byte, bool, error)
	Write(ctx context.Context, key Key, value []byte) error
	Remove(ctx context.Context, key Key) error
}

func checkKey(key Key) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKey, string(key))
	}
	return nil
}
