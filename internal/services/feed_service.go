package services

import (
	"context"

	"kicau/internal/models"
	"kicau/internal/repositories"
)

// FeedService pages through posts newest first.
type FeedService struct {
	postRepo repositories.PostRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(postRepo repositories.PostRepository) *FeedService {
	return &FeedService{postRepo: postRepo}
}

// ListFeed returns up to repositories.FeedPageSize posts matching q. Pass the
// smallest id of the previous page as q.BeforeID to load older posts.
func (s *FeedService) ListFeed(ctx context.Context, q repositories.FeedQuery) ([]models.PostView, error) {
	q.Limit = repositories.FeedPageSize
	q.Hashtag = NormalizeHashtag(q.Hashtag)

	posts, err := s.postRepo.ListFeed(ctx, q)
	if err != nil {
		return nil, err
	}
	return models.NewPostViews(posts), nil
}
