package service

import (
	"context"
	"sync"

	"github.com/atinyakov/tripwise/internal/events"
	"github.com/atinyakov/tripwise/internal/models"
)

// CommunityRepository defines the persistence operations
// required by the community service.
type CommunityRepository interface {
	Posts(ctx context.Context) ([]models.Post, error)
	SavePosts(ctx context.Context, posts []models.Post) error
}

// NewPost is the author-supplied part of a community post.
type NewPost struct {
	UserID      string
	UserName    string
	Content     string
	Image       string
	LocationTag string
}

// CommunityService serves the traveller feed.
type CommunityService struct {
	repo CommunityRepository
	opts Options
	mu   sync.Mutex
}

// NewCommunityService constructs a CommunityService using the provided repository.
func NewCommunityService(repo CommunityRepository, opts Options) *CommunityService {
	return &CommunityService{repo: repo, opts: opts.withDefaults()}
}

// Posts returns the feed, newest first.
func (s *CommunityService) Posts(ctx context.Context) ([]models.Post, error) {
	if err := wait(ctx, s.opts.Delays.Posts); err != nil {
		return nil, err
	}
	return s.repo.Posts(ctx)
}

// CreatePost stores p at the head of the feed with a fresh identity, zero
// likes and the current time, and returns the stored record.
func (s *CommunityService) CreatePost(ctx context.Context, p NewPost) (models.Post, error) {
	if err := wait(ctx, s.opts.Delays.CreatePost); err != nil {
		return models.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.repo.Posts(ctx)
	if err != nil {
		return models.Post{}, err
	}

	now := s.opts.Now()
	post := models.Post{
		ID:          s.opts.NewID(),
		UserID:      p.UserID,
		UserName:    p.UserName,
		Content:     p.Content,
		Image:       p.Image,
		Likes:       0,
		Timestamp:   now.UnixMilli(),
		LocationTag: p.LocationTag,
	}

	feed := make([]models.Post, 0, len(posts)+1)
	feed = append(feed, post)
	feed = append(feed, posts...)
	if err := s.repo.SavePosts(ctx, feed); err != nil {
		return models.Post{}, err
	}

	publish(ctx, s.opts, events.SubjectPostCreated, events.PostCreated{ID: post.ID, UserID: post.UserID, At: now})
	return post, nil
}
