package services_test

import (
	"context"
	"fmt"
	"testing"

	"kicau/internal/apperr"
	"kicau/internal/models"
	"kicau/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Users: A=1 wrote original post 1, B=2 retweeted it as post 2, C=3 acts.
func retweetFixtures(posts *MockPostRepository, ctx context.Context) {
	original := &models.Post{ID: 1, UserID: 1, Content: "original"}
	posts.On("GetByID", ctx, uint(1)).Return(original, nil).Maybe()
	posts.On("GetByID", ctx, uint(2)).Return(&models.Post{
		ID: 2, UserID: 2, Content: models.RetweetContent, RetweetID: uintPtr(1), Retweet: original,
	}, nil).Maybe()
}

func TestRetweetService_ChainCollapsing(t *testing.T) {
	ctx := context.Background()
	posts := new(MockPostRepository)
	events := new(MockPublisher)
	svc := services.NewRetweetService(posts, events)
	retweetFixtures(posts, ctx)

	posts.On("HasRetweet", ctx, uint(3), uint(1)).Return(false, nil).Once()
	posts.On("Create", ctx, mock.AnythingOfType("*models.Post"), []string(nil), []string(nil)).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*models.Post)
			require.NotNil(t, p.RetweetID)
			assert.Equal(t, uint(1), *p.RetweetID, "retweet of a retweet must point at the original")
			assert.Equal(t, uint(3), p.UserID)
			assert.Equal(t, models.RetweetContent, p.Content)
			p.ID = 3
		}).Return(nil).Once()
	posts.On("LoadFullPost", ctx, uint(3)).Return(&models.Post{
		ID: 3, UserID: 3, Content: models.RetweetContent, RetweetID: uintPtr(1),
		User: &models.User{ID: 3, Nickname: "carol"},
		Retweet: &models.Post{
			ID: 1, UserID: 1, Content: "original",
			User:   &models.User{ID: 1, Nickname: "alice"},
			Images: []models.Image{{ID: 4, Src: "/uploads/x.png", PostID: 1}},
		},
	}, nil).Once()
	events.On("PublishEvent", services.EventPostRetweeted, mock.Anything).Return(nil).Once()

	view, err := svc.Retweet(ctx, 3, 2)
	require.NoError(t, err)
	require.NotNil(t, view.RetweetID)
	assert.Equal(t, uint(1), *view.RetweetID)
	require.NotNil(t, view.Retweet)
	assert.Equal(t, models.Author{ID: 1, Nickname: "alice"}, view.Retweet.User)
	require.Len(t, view.Retweet.Images, 1)
	posts.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestRetweetService_Forbidden(t *testing.T) {
	ctx := context.Background()
	posts := new(MockPostRepository)
	svc := services.NewRetweetService(posts, nil)
	retweetFixtures(posts, ctx)

	// own original
	_, err := svc.Retweet(ctx, 1, 1)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// someone's retweet of an original the actor wrote
	_, err = svc.Retweet(ctx, 1, 2)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// own retweet
	_, err = svc.Retweet(ctx, 2, 2)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRetweetService_Duplicate(t *testing.T) {
	ctx := context.Background()
	posts := new(MockPostRepository)
	svc := services.NewRetweetService(posts, nil)
	retweetFixtures(posts, ctx)

	posts.On("HasRetweet", ctx, uint(3), uint(1)).Return(true, nil)
	_, err := svc.Retweet(ctx, 3, 1)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// retweeting B's retweet collapses onto the same original
	_, err = svc.Retweet(ctx, 3, 2)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRetweetService_LostRace(t *testing.T) {
	ctx := context.Background()
	posts := new(MockPostRepository)
	svc := services.NewRetweetService(posts, nil)
	retweetFixtures(posts, ctx)

	posts.On("HasRetweet", ctx, uint(3), uint(1)).Return(false, nil)
	posts.On("Create", ctx, mock.Anything, []string(nil), []string(nil)).
		Return(fmt.Errorf("failed to create post: %w", apperr.ErrConflict))

	_, err := svc.Retweet(ctx, 3, 1)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRetweetService_NotFound(t *testing.T) {
	ctx := context.Background()
	posts := new(MockPostRepository)
	svc := services.NewRetweetService(posts, nil)

	posts.On("GetByID", ctx, uint(50)).Return(nil, fmt.Errorf("post with ID 50: %w", apperr.ErrNotFound))
	_, err := svc.Retweet(ctx, 3, 50)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
