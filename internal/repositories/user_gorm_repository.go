package repositories

import (
	"context"
	"fmt"

	"kicau/internal/apperr"
	"kicau/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a user. A taken email yields apperr.ErrConflict.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return apperr.FromDB(err, "failed to create user %s", user.Email)
	}
	return nil
}

// GetByEmail retrieves a user by their email.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, apperr.FromDB(err, "user with email %s", email)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "user with ID %d", id)
	}
	return &user, nil
}

// UpdateNickname changes the nickname of an existing user.
func (r *GORMUserRepository) UpdateNickname(ctx context.Context, id uint, nickname string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("nickname", nickname)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "failed to update nickname of user %d", id)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// GetProfile loads a user together with the ids of its posts, followers and
// followings.
func (r *GORMUserRepository) GetProfile(ctx context.Context, id uint) (*models.UserProfile, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	var postIDs, followerIDs, followingIDs []uint
	if err := db.Model(&models.Post{}).Where("user_id = ?", id).Order("id DESC").Pluck("id", &postIDs).Error; err != nil {
		return nil, apperr.FromDB(err, "failed to load posts of user %d", id)
	}
	if err := db.Model(&models.Follow{}).Where("following_id = ?", id).Pluck("follower_id", &followerIDs).Error; err != nil {
		return nil, apperr.FromDB(err, "failed to load followers of user %d", id)
	}
	if err := db.Model(&models.Follow{}).Where("follower_id = ?", id).Pluck("following_id", &followingIDs).Error; err != nil {
		return nil, apperr.FromDB(err, "failed to load followings of user %d", id)
	}

	return &models.UserProfile{
		ID:         user.ID,
		Email:      user.Email,
		Nickname:   user.Nickname,
		CreatedAt:  user.CreatedAt,
		Posts:      idRefs(postIDs),
		Followers:  idRefs(followerIDs),
		Followings: idRefs(followingIDs),
	}, nil
}

func idRefs(ids []uint) []models.IDRef {
	refs := make([]models.IDRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, models.IDRef{ID: id})
	}
	return refs
}
