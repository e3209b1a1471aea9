package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/atinyakov/tripwise/internal/events"
	"github.com/atinyakov/tripwise/internal/models"
	"github.com/atinyakov/tripwise/internal/seed"
	"github.com/atinyakov/tripwise/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCatalogRepo lets a test replace individual repository calls.
type mockCatalogRepo struct {
	CatalogRepository
	HotelsFunc     func(ctx context.Context) ([]models.Hotel, error)
	SaveHotelsFunc func(ctx context.Context, hotels []models.Hotel) error
}

func (m *mockCatalogRepo) Hotels(ctx context.Context) ([]models.Hotel, error) {
	return m.HotelsFunc(ctx)
}

func (m *mockCatalogRepo) SaveHotels(ctx context.Context, hotels []models.Hotel) error {
	return m.SaveHotelsFunc(ctx, hotels)
}

func TestCatalog_Reads(t *testing.T) {
	repo, _ := seededRepo(t)
	svc := NewCatalogService(repo, Options{})
	ctx := context.Background()

	spots, err := svc.Spots(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.DefaultSpots(), spots)

	hotels, err := svc.Hotels(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.DefaultHotels(), hotels)

	cars, err := svc.Cars(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.DefaultCars(), cars)
}

func TestCatalog_ReadsOnEmptyStore(t *testing.T) {
	svc := NewCatalogService(newRepo(store.NewMemoryStore()), Options{})

	spots, err := svc.Spots(context.Background())
	require.NoError(t, err)
	assert.Empty(t, spots)
}

func TestCatalog_UpdateHotelRoundTrip(t *testing.T) {
	repo, _ := seededRepo(t)
	svc := NewCatalogService(repo, Options{})
	ctx := context.Background()

	before, err := svc.Hotels(ctx)
	require.NoError(t, err)

	updated := before[2]
	updated.PricePerNight = 29750
	updated.Amenities = []string{"wifi"}
	require.NoError(t, svc.UpdateHotel(ctx, updated))

	after, err := svc.Hotels(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range after {
		if after[i].ID == updated.ID {
			assert.Equal(t, updated, after[i])
			continue
		}
		assert.Equal(t, before[i], after[i], "hotel %s must be unchanged", before[i].ID)
	}
}

func TestCatalog_UpdateUnknownHotelIsIgnored(t *testing.T) {
	repo, st := seededRepo(t)
	svc := NewCatalogService(repo, Options{})
	ctx := context.Background()

	before, _, err := st.Read(ctx, store.KeyHotels)
	require.NoError(t, err)

	err = svc.UpdateHotel(ctx, models.Hotel{ID: "does-not-exist", PricePerNight: 1})
	require.NoError(t, err)

	after, _, err := st.Read(ctx, store.KeyHotels)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCatalog_StrictUpdates(t *testing.T) {
	repo, _ := seededRepo(t)
	svc := NewCatalogService(repo, Options{StrictUpdates: true})
	ctx := context.Background()

	err := svc.UpdateHotel(ctx, models.Hotel{ID: "does-not-exist"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.UpdateCar(ctx, models.Car{ID: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_UpdateCar(t *testing.T) {
	repo, _ := seededRepo(t)
	pub := &recordingPublisher{}
	svc := NewCatalogService(repo, Options{Events: pub})
	ctx := context.Background()

	cars, err := svc.Cars(ctx)
	require.NoError(t, err)
	car := cars[0]
	oldPrice := car.PricePerDay
	car.PricePerDay = oldPrice - 1000
	require.NoError(t, svc.UpdateCar(ctx, car))

	cars, err = svc.Cars(ctx)
	require.NoError(t, err)
	assert.Equal(t, car, cars[0])

	evs := pub.all()
	require.Len(t, evs, 1)
	assert.Equal(t, events.SubjectPriceChanged, evs[0].subject)
	ev := evs[0].payload.(events.PriceChanged)
	assert.Equal(t, events.KindCar, ev.Kind)
	assert.Equal(t, oldPrice, ev.OldPrice)
	assert.True(t, ev.Drop())
}

func TestCatalog_NoEventWithoutPriceChange(t *testing.T) {
	repo, _ := seededRepo(t)
	pub := &recordingPublisher{}
	svc := NewCatalogService(repo, Options{Events: pub})
	ctx := context.Background()

	hotels, err := svc.Hotels(ctx)
	require.NoError(t, err)
	h := hotels[0]
	h.Name = "Renamed"
	require.NoError(t, svc.UpdateHotel(ctx, h))
	assert.Empty(t, pub.all())
}

func TestCatalog_PublishFailureDoesNotFailUpdate(t *testing.T) {
	repo, _ := seededRepo(t)
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewCatalogService(repo, Options{Events: pub})
	ctx := context.Background()

	hotels, err := svc.Hotels(ctx)
	require.NoError(t, err)
	h := hotels[0]
	h.PricePerNight++
	assert.NoError(t, svc.UpdateHotel(ctx, h))
	assert.Len(t, pub.all(), 1)
}

func TestCatalog_ConcurrentUpdatesKeepEveryEdit(t *testing.T) {
	repo, _ := seededRepo(t)
	svc := NewCatalogService(repo, Options{})
	ctx := context.Background()

	hotels, err := svc.Hotels(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range hotels {
		h := hotels[i]
		h.PricePerNight = float64(1000 * (i + 1))
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.UpdateHotel(ctx, h))
		}()
	}
	wg.Wait()

	after, err := svc.Hotels(ctx)
	require.NoError(t, err)
	for i, h := range after {
		assert.Equal(t, float64(1000*(i+1)), h.PricePerNight, "edit of %s was lost", h.ID)
	}
}

func TestCatalog_RepositoryErrors(t *testing.T) {
	boom := errors.New("read failed")
	svc := NewCatalogService(&mockCatalogRepo{
		HotelsFunc: func(ctx context.Context) ([]models.Hotel, error) { return nil, boom },
	}, Options{})

	_, err := svc.Hotels(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.UpdateHotel(context.Background(), models.Hotel{ID: "h1"}), boom)

	saveErr := errors.New("write failed")
	svc = NewCatalogService(&mockCatalogRepo{
		HotelsFunc: func(ctx context.Context) ([]models.Hotel, error) {
			return []models.Hotel{{ID: "h1"}}, nil
		},
		SaveHotelsFunc: func(ctx context.Context, hotels []models.Hotel) error { return saveErr },
	}, Options{})
	assert.ErrorIs(t, svc.UpdateHotel(context.Background(), models.Hotel{ID: "h1", PricePerNight: 3}), saveErr)
}

func TestCatalog_CanceledContextSkipsStore(t *testing.T) {
	called := false
	svc := NewCatalogService(&mockCatalogRepo{
		HotelsFunc: func(ctx context.Context) ([]models.Hotel, error) {
			called = true
			return nil, nil
		},
	}, Options{Delays: DefaultDelays()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := svc.UpdateHotel(ctx, models.Hotel{ID: "h1"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
