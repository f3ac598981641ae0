package repositories

import (
	"context"
	"fmt"

	"kicau/internal/apperr"
	"kicau/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{db: db}
}

func selectAuthor(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "nickname")
}

func newestComments(tx *gorm.DB) *gorm.DB {
	return tx.Order("comments.created_at DESC").Order("comments.id DESC")
}

func imagesInOrder(tx *gorm.DB) *gorm.DB {
	return tx.Order("images.id ASC")
}

// withFullPost preloads everything the full-post projection shows: author,
// images, comments with their authors, likers, hashtags, and the original
// post of a retweet with its author and images.
func withFullPost(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("User", selectAuthor).
		Preload("Images", imagesInOrder).
		Preload("Comments", newestComments).
		Preload("Comments.User", selectAuthor).
		Preload("Likers").
		Preload("Hashtags").
		Preload("Retweet").
		Preload("Retweet.User", selectAuthor).
		Preload("Retweet.Images", imagesInOrder)
}

func (r *GORMPostRepository) Create(ctx context.Context, post *models.Post, hashtags []string, imageSrcs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return apperr.FromDB(err, "failed to create post")
		}

		links := make([]models.PostHashtag, 0, len(hashtags))
		seen := make(map[uint]bool, len(hashtags))
		for _, name := range hashtags {
			tag, err := findOrCreateHashtag(tx, name)
			if err != nil {
				return err
			}
			if seen[tag.ID] {
				continue
			}
			seen[tag.ID] = true
			links = append(links, models.PostHashtag{PostID: post.ID, HashtagID: tag.ID})
		}
		if len(links) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
				return apperr.FromDB(err, "failed to link hashtags to post %d", post.ID)
			}
		}

		if len(imageSrcs) > 0 {
			images := make([]models.Image, 0, len(imageSrcs))
			for _, src := range imageSrcs {
				images = append(images, models.Image{Src: src, PostID: post.ID})
			}
			if err := tx.Create(&images).Error; err != nil {
				return apperr.FromDB(err, "failed to attach images to post %d", post.ID)
			}
		}
		return nil
	})
}

func (r *GORMPostRepository) FindOrCreateHashtag(ctx context.Context, name string) (*models.Hashtag, error) {
	return findOrCreateHashtag(r.db.WithContext(ctx), name)
}

// findOrCreateHashtag inserts name unless it exists and then reads the row
// back. Concurrent callers converge on the row the unique index admitted.
func findOrCreateHashtag(tx *gorm.DB, name string) (*models.Hashtag, error) {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&models.Hashtag{Name: name}).Error
	if err != nil {
		return nil, apperr.FromDB(err, "failed to create hashtag %s", name)
	}

	var tag models.Hashtag
	if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, apperr.FromDB(err, "hashtag %s", name)
	}
	return &tag, nil
}

func (r *GORMPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Retweet").First(&post, id).Error; err != nil {
		return nil, apperr.FromDB(err, "post with ID %d", id)
	}
	return &post, nil
}

func (r *GORMPostRepository) LoadFullPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := withFullPost(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		return nil, apperr.FromDB(err, "post with ID %d", id)
	}
	return &post, nil
}

// ListFeed returns one page of posts, newest first, using id as the keyset
// cursor.
func (r *GORMPostRepository) ListFeed(ctx context.Context, q FeedQuery) ([]models.Post, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = FeedPageSize
	}

	tx := withFullPost(r.db.WithContext(ctx).Model(&models.Post{}))
	if q.BeforeID > 0 {
		tx = tx.Where("posts.id < ?", q.BeforeID)
	}
	if q.AuthorID > 0 {
		tx = tx.Where("posts.user_id = ?", q.AuthorID)
	}
	if q.Hashtag != "" {
		tx = tx.
			Joins("JOIN post_hashtags ON post_hashtags.post_id = posts.id").
			Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
			Where("hashtags.name = ?", q.Hashtag)
	}

	var posts []models.Post
	err := tx.Order("posts.created_at DESC").Order("posts.id DESC").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, apperr.FromDB(err, "failed to list feed")
	}
	return posts, nil
}

func (r *GORMPostRepository) HasRetweet(ctx context.Context, userID, originalID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("user_id = ? AND retweet_id = ?", userID, originalID).
		Count(&count).Error
	if err != nil {
		return false, apperr.FromDB(err, "failed to look up retweet of %d by user %d", originalID, userID)
	}
	return count > 0, nil
}

func (r *GORMPostRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned models.Post
		if err := tx.Select("id").Where("id = ? AND user_id = ?", id, userID).First(&owned).Error; err != nil {
			return apperr.FromDB(err, "post with ID %d by user %d", id, userID)
		}

		var retweetIDs []uint
		if err := tx.Model(&models.Post{}).Where("retweet_id = ?", id).Pluck("id", &retweetIDs).Error; err != nil {
			return fmt.Errorf("failed to load retweets of post %d: %w", id, err)
		}
		ids := append(retweetIDs, id)

		for _, dependent := range []interface{}{&models.Comment{}, &models.Image{}, &models.Like{}, &models.PostHashtag{}} {
			if err := tx.Where("post_id IN ?", ids).Delete(dependent).Error; err != nil {
				return apperr.FromDB(err, "failed to delete dependents of post %d", id)
			}
		}
		if len(retweetIDs) > 0 {
			if err := tx.Where("id IN ?", retweetIDs).Delete(&models.Post{}).Error; err != nil {
				return apperr.FromDB(err, "failed to delete retweets of post %d", id)
			}
		}

		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Post{})
		if res.Error != nil {
			return apperr.FromDB(res.Error, "failed to delete post %d", id)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("post with ID %d by user %d: %w", id, userID, apperr.ErrNotFound)
		}
		return nil
	})
}
