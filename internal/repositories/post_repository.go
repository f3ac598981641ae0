package repositories

import (
	"context"

	"kicau/internal/models"
)

// FeedPageSize is the number of posts in one page of the feed.
const FeedPageSize = 10

// FeedQuery narrows a feed page. Zero values disable a filter.
type FeedQuery struct {
	BeforeID uint   // only posts with id < BeforeID
	AuthorID uint   // only posts written by this user
	Hashtag  string // only posts linked to this normalized hashtag
	Limit    int    // FeedPageSize when <= 0
}

// PostRepository defines the interface for post data access.
type PostRepository interface {
	// Create inserts post, find-or-creates the given normalized hashtags,
	// links them and attaches one image per source, all in one transaction.
	Create(ctx context.Context, post *models.Post, hashtags []string, imageSrcs []string) error
	FindOrCreateHashtag(ctx context.Context, name string) (*models.Hashtag, error)
	// GetByID loads a post with its retweet-of relation.
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	LoadFullPost(ctx context.Context, id uint) (*models.Post, error)
	ListFeed(ctx context.Context, q FeedQuery) ([]models.Post, error)
	HasRetweet(ctx context.Context, userID, originalID uint) (bool, error)
	// Delete removes a post written by userID, its dependents and the
	// retweets pointing at it.
	Delete(ctx context.Context, id, userID uint) error
}
