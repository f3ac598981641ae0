package repositories

import (
	"context"

	"kicau/internal/apperr"
	"kicau/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{db: db}
}

// Create inserts a comment. A missing post or author yields
// apperr.ErrConstraintViolation.
func (r *GORMCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return apperr.FromDB(err, "failed to create comment on post %d", comment.PostID)
	}
	return nil
}

func (r *GORMCommentRepository) GetWithAuthor(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User", selectAuthor).First(&comment, id).Error; err != nil {
		return nil, apperr.FromDB(err, "comment with ID %d", id)
	}
	return &comment, nil
}
