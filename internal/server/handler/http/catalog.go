package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/atinyakov/tripwise/internal/middleware"
	"github.com/atinyakov/tripwise/internal/models"
	"github.com/atinyakov/tripwise/internal/server/response"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogService defines the catalogue operations required by CatalogHandler.
type CatalogService interface {
	Spots(ctx context.Context) ([]models.Spot, error)
	Hotels(ctx context.Context) ([]models.Hotel, error)
	Cars(ctx context.Context) ([]models.Car, error)
	UpdateHotel(ctx context.Context, h models.Hotel) error
	UpdateCar(ctx context.Context, c models.Car) error
}

// CatalogHandler serves destinations, hotels and rental cars.
type CatalogHandler struct {
	CatalogService CatalogService
	Log            *zap.Logger
}

// Spots handles GET /api/spots. The optional q parameter matches a
// substring of the name or any tag, region matches exactly.
func (h *CatalogHandler) Spots(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	region := models.Region(r.URL.Query().Get("region"))
	if region != "" && !region.Valid() {
		response.BadRequest(w, "unknown region")
		return
	}

	spots, err := h.CatalogService.Spots(r.Context())
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}

	out := make([]models.Spot, 0, len(spots))
	for _, s := range spots {
		if region != "" && s.Region != region {
			continue
		}
		if q != "" && !spotMatches(s, q) {
			continue
		}
		out = append(out, s)
	}
	response.JSON(w, http.StatusOK, out)
}

func spotMatches(s models.Spot, q string) bool {
	if strings.Contains(strings.ToLower(s.Name), q) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Hotels handles GET /api/hotels, optionally limited to one location.
func (h *CatalogHandler) Hotels(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")

	hotels, err := h.CatalogService.Hotels(r.Context())
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}

	out := make([]models.Hotel, 0, len(hotels))
	for _, hotel := range hotels {
		if location == "" || strings.EqualFold(hotel.Location, location) {
			out = append(out, hotel)
		}
	}
	response.JSON(w, http.StatusOK, out)
}

// Cars handles GET /api/cars, optionally limited to one vehicle type.
func (h *CatalogHandler) Cars(w http.ResponseWriter, r *http.Request) {
	carType := models.CarType(r.URL.Query().Get("type"))
	if carType != "" && !carType.Valid() {
		response.BadRequest(w, "unknown car type")
		return
	}

	cars, err := h.CatalogService.Cars(r.Context())
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}

	out := make([]models.Car, 0, len(cars))
	for _, c := range cars {
		if carType == "" || c.Type == carType {
			out = append(out, c)
		}
	}
	response.JSON(w, http.StatusOK, out)
}

// UpdateHotel handles PUT /api/hotels/{id} with the full hotel record.
func (h *CatalogHandler) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	var hotel models.Hotel
	if err := json.NewDecoder(r.Body).Decode(&hotel); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}
	if !bindID(w, r, &hotel.ID) {
		return
	}
	if hotel.PricePerNight < 0 {
		response.BadRequest(w, "price must not be negative")
		return
	}

	if err := h.CatalogService.UpdateHotel(r.Context(), hotel); err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	h.logEdit(r, "hotel", hotel.ID, hotel.PricePerNight)
	response.JSON(w, http.StatusOK, hotel)
}

// UpdateCar handles PUT /api/cars/{id} with the full car record.
func (h *CatalogHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	var car models.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}
	if !bindID(w, r, &car.ID) {
		return
	}
	if car.PricePerDay < 0 {
		response.BadRequest(w, "price must not be negative")
		return
	}
	if !car.Type.Valid() {
		response.BadRequest(w, "unknown car type")
		return
	}

	if err := h.CatalogService.UpdateCar(r.Context(), car); err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	h.logEdit(r, "car", car.ID, car.PricePerDay)
	response.JSON(w, http.StatusOK, car)
}

// logEdit records which administrator changed a price.
func (h *CatalogHandler) logEdit(r *http.Request, kind, id string, price float64) {
	if h.Log == nil {
		return
	}
	admin := "unknown"
	if u := middleware.UserFromContext(r.Context()); u != nil {
		admin = u.ID
	}
	h.Log.Info("price edited",
		zap.String("kind", kind),
		zap.String("id", id),
		zap.Float64("price", price),
		zap.String("admin", admin),
	)
}

// bindID fills an empty body id from the path and rejects a mismatch.
func bindID(w http.ResponseWriter, r *http.Request, id *string) bool {
	pathID := chi.URLParam(r, "id")
	if *id == "" {
		*id = pathID
	}
	if *id != pathID {
		response.BadRequest(w, "id in path and body differ")
		return false
	}
	return true
}
