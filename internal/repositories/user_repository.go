package repositories

import (
	"context"

	"kicau/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	UpdateNickname(ctx context.Context, id uint, nickname string) error
	GetProfile(ctx context.Context, id uint) (*models.UserProfile, error)
}
