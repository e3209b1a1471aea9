// Package http provides the HTTP handlers and router of the TripWise API.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/tripwise/internal/models"
	"github.com/atinyakov/tripwise/internal/server/response"
	"go.uber.org/zap"
)

// AuthService defines the identity operations required by the HTTP handlers.
type AuthService interface {
	Login(ctx context.Context, email string, admin bool) (models.User, error)
	Signup(ctx context.Context, name, email string) (models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

// AuthHandler handles HTTP requests for login, signup, logout and session lookup.
type AuthHandler struct {
	// AuthService performs the underlying identity operations.
	AuthService AuthService
	Log         *zap.Logger
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email string `json:"email"`
	// Admin asks for the administrator account with this email.
	Admin bool `json:"admin"`
}

// SignupRequest represents the JSON payload for registration.
type SignupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionResponse carries the signed-in user, null when logged out.
type SessionResponse struct {
	User *models.User `json:"user"`
}

// Login handles POST /api/auth/login and returns the signed-in user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}

	u, err := h.AuthService.Login(r.Context(), req.Email, req.Admin)
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, u)
}

// Signup handles POST /api/auth/signup. The new user is signed in and
// returned with 201.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}

	u, err := h.AuthService.Signup(r.Context(), req.Name, req.Email)
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusCreated, u)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context()); err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/auth/session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	u, err := h.AuthService.CurrentUser(r.Context())
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, SessionResponse{User: u})
}
