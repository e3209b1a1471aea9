package service

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/atinyakov/tripwise/internal/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Delays holds the artificial latency applied before each operation. The
// zero value disables every delay.
type Delays struct {
	Login           time.Duration
	Signup          time.Duration
	Logout          time.Duration
	Spots           time.Duration
	Hotels          time.Duration
	UpdateHotel     time.Duration
	Cars            time.Duration
	UpdateCar       time.Duration
	Posts           time.Duration
	CreatePost      time.Duration
	Recommendations time.Duration
	Chat            time.Duration
}

// DefaultDelays returns the latencies the TripWise front end was tuned for.
func DefaultDelays() Delays {
	return Delays{
		Login:           800 * time.Millisecond,
		Signup:          800 * time.Millisecond,
		Logout:          200 * time.Millisecond,
		Spots:           500 * time.Millisecond,
		Hotels:          600 * time.Millisecond,
		UpdateHotel:     500 * time.Millisecond,
		Cars:            600 * time.Millisecond,
		UpdateCar:       500 * time.Millisecond,
		Posts:           400 * time.Millisecond,
		CreatePost:      800 * time.Millisecond,
		Recommendations: 1500 * time.Millisecond,
		Chat:            1200 * time.Millisecond,
	}
}

// NoDelays returns Delays with every latency set to zero.
func NoDelays() Delays {
	return Delays{}
}

// Scale multiplies every delay by f. Non-positive factors disable delays;
// results saturate at the longest representable duration.
func (d Delays) Scale(f float64) Delays {
	if f <= 0 || math.IsNaN(f) {
		return NoDelays()
	}
	s := func(v time.Duration) time.Duration {
		scaled := float64(v) * f
		if scaled >= math.MaxInt64 {
			return time.Duration(math.MaxInt64)
		}
		return time.Duration(scaled)
	}
	return Delays{
		Login:           s(d.Login),
		Signup:          s(d.Signup),
		Logout:          s(d.Logout),
		Spots:           s(d.Spots),
		Hotels:          s(d.Hotels),
		UpdateHotel:     s(d.UpdateHotel),
		Cars:            s(d.Cars),
		UpdateCar:       s(d.UpdateCar),
		Posts:           s(d.Posts),
		CreatePost:      s(d.CreatePost),
		Recommendations: s(d.Recommendations),
		Chat:            s(d.Chat),
	}
}

// Options configures the services. The zero value is usable: no delays,
// lenient updates, no logging, no events, wall clock, UUID identities and
// math/rand noise.
type Options struct {
	Delays Delays
	// StrictUpdates makes updates of an unknown identity fail with
	// ErrNotFound instead of being ignored.
	StrictUpdates bool
	Logger        *zap.Logger
	Events        events.Publisher
	Now           func() time.Time
	NewID         func() string
	// Noise returns a value in [0, 1) used to perturb recommendation scores.
	Noise func() float64
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Events == nil {
		o.Events = events.Nop{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Noise == nil {
		o.Noise = rand.Float64
	}
	return o
}

// wait blocks for d or until ctx is done. A canceled context always wins, so
// an abandoned call never reaches the store.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// publish sends an event and logs, rather than returns, any failure.
func publish(ctx context.Context, o Options, subject string, v any) {
	if err := o.Events.Publish(ctx, subject, v); err != nil {
		o.Logger.Warn("failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
