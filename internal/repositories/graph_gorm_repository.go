package repositories

import (
	"context"

	"kicau/internal/apperr"
	"kicau/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMGraphRepository is a GORM implementation of GraphRepository.
type GORMGraphRepository struct {
	db *gorm.DB
}

// NewGORMGraphRepository creates a new instance of GORMGraphRepository.
func NewGORMGraphRepository(db *gorm.DB) *GORMGraphRepository {
	return &GORMGraphRepository{db: db}
}

func (r *GORMGraphRepository) AddFollow(ctx context.Context, followerID, followingID uint) error {
	edge := models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
		return apperr.FromDB(err, "failed to add follow %d -> %d", followerID, followingID)
	}
	return nil
}

func (r *GORMGraphRepository) RemoveFollow(ctx context.Context, followerID, followingID uint) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return apperr.FromDB(err, "failed to remove follow %d -> %d", followerID, followingID)
	}
	return nil
}

// ListFollowers returns the users following userID, most recent first.
func (r *GORMGraphRepository) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, apperr.FromDB(err, "failed to list followers of user %d", userID)
	}
	return users, nil
}

// ListFollowings returns the users userID follows, most recent first.
func (r *GORMGraphRepository) ListFollowings(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, apperr.FromDB(err, "failed to list followings of user %d", userID)
	}
	return users, nil
}

func (r *GORMGraphRepository) AddLike(ctx context.Context, userID, postID uint) error {
	edge := models.Like{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
		return apperr.FromDB(err, "failed to like post %d by user %d", postID, userID)
	}
	return nil
}

func (r *GORMGraphRepository) RemoveLike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err != nil {
		return apperr.FromDB(err, "failed to unlike post %d by user %d", postID, userID)
	}
	return nil
}
