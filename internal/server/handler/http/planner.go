package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/tripwise/internal/models"
	"github.com/atinyakov/tripwise/internal/server/response"
	"go.uber.org/zap"
)

// PlannerService defines the trip planner operations required by PlannerHandler.
type PlannerService interface {
	Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.Recommendation, error)
	Chat(ctx context.Context, query string) (string, error)
}

// PlannerHandler serves recommendations and the travel assistant.
type PlannerHandler struct {
	PlannerService PlannerService
	Log            *zap.Logger
}

// ChatRequest represents the JSON payload of an assistant question.
type ChatRequest struct {
	Query string `json:"query"`
}

// ChatResponse carries the assistant's answer.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Recommend handles POST /api/planner/recommendations.
func (h *PlannerHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}

	recs, err := h.PlannerService.Recommend(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, recs)
}

// Chat handles POST /api/planner/chat.
func (h *PlannerHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}

	reply, err := h.PlannerService.Chat(r.Context(), req.Query)
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, ChatResponse{Reply: reply})
}
