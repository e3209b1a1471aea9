// Package service implements the TripWise operations on top of the slot
// repository: catalogue reads and admin price edits, the community feed,
// identity and session handling, and the trip planner.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/atinyakov/tripwise/internal/events"
	"github.com/atinyakov/tripwise/internal/models"
	"go.uber.org/zap"
)

// CatalogRepository defines the persistence operations
// required by the catalogue service.
type CatalogRepository interface {
	Spots(ctx context.Context) ([]models.Spot, error)
	Hotels(ctx context.Context) ([]models.Hotel, error)
	SaveHotels(ctx context.Context, hotels []models.Hotel) error
	Cars(ctx context.Context) ([]models.Car, error)
	SaveCars(ctx context.Context, cars []models.Car) error
}

// CatalogService serves destinations, hotels and vehicles.
type CatalogService struct {
	repo CatalogRepository
	opts Options

	// hotelsMu and carsMu serialize read-modify-write cycles so two
	// concurrent edits in one process cannot lose an update.
	hotelsMu sync.Mutex
	carsMu   sync.Mutex
}

// NewCatalogService constructs a CatalogService using the provided repository.
func NewCatalogService(repo CatalogRepository, opts Options) *CatalogService {
	return &CatalogService{repo: repo, opts: opts.withDefaults()}
}

// Spots returns every destination. Filtering is left to the caller.
func (s *CatalogService) Spots(ctx context.Context) ([]models.Spot, error) {
	if err := wait(ctx, s.opts.Delays.Spots); err != nil {
		return nil, err
	}
	return s.repo.Spots(ctx)
}

// Hotels returns every hotel.
func (s *CatalogService) Hotels(ctx context.Context) ([]models.Hotel, error) {
	if err := wait(ctx, s.opts.Delays.Hotels); err != nil {
		return nil, err
	}
	return s.repo.Hotels(ctx)
}

// Cars returns every rental vehicle.
func (s *CatalogService) Cars(ctx context.Context) ([]models.Car, error) {
	if err := wait(ctx, s.opts.Delays.Cars); err != nil {
		return nil, err
	}
	return s.repo.Cars(ctx)
}

// UpdateHotel replaces the hotel with h.ID by h. An unknown identity is
// ignored unless strict updates are enabled.
func (s *CatalogService) UpdateHotel(ctx context.Context, h models.Hotel) error {
	if err := wait(ctx, s.opts.Delays.UpdateHotel); err != nil {
		return err
	}

	s.hotelsMu.Lock()
	defer s.hotelsMu.Unlock()

	hotels, err := s.repo.Hotels(ctx)
	if err != nil {
		return err
	}
	old, found := replaceByID(hotels, h, func(x models.Hotel) string { return x.ID })
	if !found {
		return s.missing(events.KindHotel, h.ID)
	}
	if err := s.repo.SaveHotels(ctx, hotels); err != nil {
		return err
	}

	if old.PricePerNight != h.PricePerNight {
		s.priceChanged(ctx, events.KindHotel, h.ID, h.Name, old.PricePerNight, h.PricePerNight)
	}
	return nil
}

// UpdateCar replaces the vehicle with c.ID by c. An unknown identity is
// ignored unless strict updates are enabled.
func (s *CatalogService) UpdateCar(ctx context.Context, c models.Car) error {
	if err := wait(ctx, s.opts.Delays.UpdateCar); err != nil {
		return err
	}

	s.carsMu.Lock()
	defer s.carsMu.Unlock()

	cars, err := s.repo.Cars(ctx)
	if err != nil {
		return err
	}
	old, found := replaceByID(cars, c, func(x models.Car) string { return x.ID })
	if !found {
		return s.missing(events.KindCar, c.ID)
	}
	if err := s.repo.SaveCars(ctx, cars); err != nil {
		return err
	}

	if old.PricePerDay != c.PricePerDay {
		s.priceChanged(ctx, events.KindCar, c.ID, c.Model, old.PricePerDay, c.PricePerDay)
	}
	return nil
}

func (s *CatalogService) missing(kind, id string) error {
	if s.opts.StrictUpdates {
		return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	s.opts.Logger.Debug("ignoring update of unknown entity", zap.String("kind", kind), zap.String("id", id))
	return nil
}

func (s *CatalogService) priceChanged(ctx context.Context, kind, id, name string, oldPrice, newPrice float64) {
	publish(ctx, s.opts, events.SubjectPriceChanged, events.PriceChanged{
		Kind:     kind,
		ID:       id,
		Name:     name,
		OldPrice: oldPrice,
		NewPrice: newPrice,
		At:       s.opts.Now(),
	})
}

// replaceByID swaps the first element whose id matches v's id for v in place
// and returns the element it replaced.
func replaceByID[T any](items []T, v T, id func(T) string) (T, bool) {
	want := id(v)
	for i := range items {
		if id(items[i]) == want {
			old := items[i]
			items[i] = v
			return old, true
		}
	}
	var zero T
	return zero, false
}
