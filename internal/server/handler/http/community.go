package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/atinyakov/tripwise/internal/middleware"
	"github.com/atinyakov/tripwise/internal/models"
	"github.com/atinyakov/tripwise/internal/server/response"
	"github.com/atinyakov/tripwise/internal/service"
	"go.uber.org/zap"
)

// Posts written without a session are attributed to this guest.
const (
	GuestUserID   = "me"
	GuestUserName = "Guest User"
)

// CommunityService defines the feed operations required by CommunityHandler.
type CommunityService interface {
	Posts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, p service.NewPost) (models.Post, error)
}

// CommunityHandler serves the traveller feed.
type CommunityHandler struct {
	CommunityService CommunityService
	// Sessions identifies the author of new posts.
	Sessions middleware.SessionSource
	Log      *zap.Logger
}

// CreatePostRequest represents the JSON payload of a new post.
type CreatePostRequest struct {
	Content     string `json:"content"`
	Image       string `json:"image,omitempty"`
	LocationTag string `json:"locationTag,omitempty"`
}

// Posts handles GET /api/posts.
func (h *CommunityHandler) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.CommunityService.Posts(r.Context())
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, posts)
}

// CreatePost handles POST /api/posts and answers 201 with the stored post.
func (h *CommunityHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		response.BadRequest(w, "content is required")
		return
	}

	author := models.User{ID: GuestUserID, Name: GuestUserName}
	if h.Sessions != nil {
		u, err := h.Sessions.CurrentUser(r.Context())
		if err != nil {
			writeServiceError(w, h.Log, err)
			return
		}
		if u != nil {
			author = *u
		}
	}

	post, err := h.CommunityService.CreatePost(r.Context(), service.NewPost{
		UserID:      author.ID,
		UserName:    author.Name,
		Content:     req.Content,
		Image:       req.Image,
		LocationTag: req.LocationTag,
	})
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusCreated, post)
}
