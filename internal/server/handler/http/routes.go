package http

import (
	"net/http"

	"github.com/atinyakov/tripwise/internal/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Auth      *AuthHandler
	Catalog   *CatalogHandler
	Community *CommunityHandler
	Planner   *PlannerHandler
}

// NewRouter constructs and returns an HTTP handler that serves
// the TripWise API under /api.
//
// Middleware chain (applied in order):
//  1. RequestID, Recoverer
//  2. WithRequestLogging(logger)
//  3. CORS for allowedOrigins
//  4. AllowContentType("application/json") for requests with a body
//
// PUT /api/hotels/{id} and PUT /api/cars/{id} additionally require an
// administrator session.
func NewRouter(h Handlers, sessions middleware.SessionSource, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	// Only allow request bodies with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/signup", h.Auth.Signup)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/session", h.Auth.Session)
		})

		r.Get("/spots", h.Catalog.Spots)
		r.Get("/hotels", h.Catalog.Hotels)
		r.Get("/cars", h.Catalog.Cars)

		// Admin group: requires an administrator session
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(sessions))
			r.Put("/hotels/{id}", h.Catalog.UpdateHotel)
			r.Put("/cars/{id}", h.Catalog.UpdateCar)
		})

		r.Get("/posts", h.Community.Posts)
		r.Post("/posts", h.Community.CreatePost)

		r.Route("/planner", func(r chi.Router) {
			r.Post("/recommendations", h.Planner.Recommend)
			r.Post("/chat", h.Planner.Chat)
		})
	})

	return r
}
