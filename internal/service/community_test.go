package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atinyakov/tripwise/internal/events"
	"github.com/atinyakov/tripwise/internal/models"
	"github.com/atinyakov/tripwise/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCommunityRepo struct {
	PostsFunc     func(ctx context.Context) ([]models.Post, error)
	SavePostsFunc func(ctx context.Context, posts []models.Post) error
}

func (m *mockCommunityRepo) Posts(ctx context.Context) ([]models.Post, error) {
	return m.PostsFunc(ctx)
}

func (m *mockCommunityRepo) SavePosts(ctx context.Context, posts []models.Post) error {
	return m.SavePostsFunc(ctx, posts)
}

func TestCommunity_CreatePostPrepends(t *testing.T) {
	repo, _ := seededRepo(t)
	svc := NewCommunityService(repo, Options{NewID: sequentialIDs()})
	ctx := context.Background()

	before, err := svc.Posts(ctx)
	require.NoError(t, err)

	start := time.Now().UnixMilli()
	p1, err := svc.CreatePost(ctx, NewPost{UserID: "u1", UserName: "Ayesha", Content: "first"})
	require.NoError(t, err)
	p2, err := svc.CreatePost(ctx, NewPost{UserID: "u1", UserName: "Ayesha", Content: "second", LocationTag: "Hunza"})
	require.NoError(t, err)

	feed, err := svc.Posts(ctx)
	require.NoError(t, err)
	require.Len(t, feed, len(before)+2)
	assert.Equal(t, p2, feed[0])
	assert.Equal(t, p1, feed[1])
	assert.Equal(t, before, feed[2:])

	assert.NotEqual(t, p1.ID, p2.ID)
	for _, p := range []models.Post{p1, p2} {
		assert.Zero(t, p.Likes)
		assert.GreaterOrEqual(t, p.Timestamp, start)
	}
	assert.Equal(t, "Hunza", p2.LocationTag)
}

func TestCommunity_DefaultIDsAreUnique(t *testing.T) {
	svc := NewCommunityService(newRepo(store.NewMemoryStore()), Options{})
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		p, err := svc.CreatePost(ctx, NewPost{UserID: "me", UserName: "Guest User", Content: "hello"})
		require.NoError(t, err)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestCommunity_UsesClock(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	pub := &recordingPublisher{}
	svc := NewCommunityService(newRepo(store.NewMemoryStore()), Options{
		Now:    func() time.Time { return at },
		NewID:  sequentialIDs(),
		Events: pub,
	})

	p, err := svc.CreatePost(context.Background(), NewPost{UserID: "u9", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, at.UnixMilli(), p.Timestamp)
	assert.Equal(t, "id-1", p.ID)

	evs := pub.all()
	require.Len(t, evs, 1)
	assert.Equal(t, events.SubjectPostCreated, evs[0].subject)
	assert.Equal(t, events.PostCreated{ID: "id-1", UserID: "u9", At: at}, evs[0].payload)
}

func TestCommunity_RepositoryErrors(t *testing.T) {
	readErr := errors.New("read failed")
	svc := NewCommunityService(&mockCommunityRepo{
		PostsFunc: func(ctx context.Context) ([]models.Post, error) { return nil, readErr },
	}, Options{})
	_, err := svc.Posts(context.Background())
	assert.ErrorIs(t, err, readErr)
	_, err = svc.CreatePost(context.Background(), NewPost{Content: "x"})
	assert.ErrorIs(t, err, readErr)

	writeErr := errors.New("write failed")
	pub := &recordingPublisher{}
	svc = NewCommunityService(&mockCommunityRepo{
		PostsFunc:     func(ctx context.Context) ([]models.Post, error) { return nil, nil },
		SavePostsFunc: func(ctx context.Context, posts []models.Post) error { return writeErr },
	}, Options{Events: pub})
	_, err = svc.CreatePost(context.Background(), NewPost{Content: "x"})
	assert.ErrorIs(t, err, writeErr)
	assert.Empty(t, pub.all())
}
