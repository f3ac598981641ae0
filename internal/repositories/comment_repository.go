package repositories

import (
	"context"

	"kicau/internal/models"
)

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetWithAuthor(ctx context.Context, id uint) (*models.Comment, error)
}
