package repositories

import (
	"context"

	"kicau/internal/models"
)

// GraphRepository stores follow and like edges. Adding an existing edge and
// removing a missing one both succeed.
type GraphRepository interface {
	AddFollow(ctx context.Context, followerID, followingID uint) error
	RemoveFollow(ctx context.Context, followerID, followingID uint) error
	ListFollowers(ctx context.Context, userID uint) ([]models.User, error)
	ListFollowings(ctx context.Context, userID uint) ([]models.User, error)
	AddLike(ctx context.Context, userID, postID uint) error
	RemoveLike(ctx context.Context, userID, postID uint) error
}
