package services

import (
	"context"
	"errors"
	"fmt"

	"kicau/internal/apperr"
	"kicau/internal/models"
	"kicau/internal/monitoring"
	"kicau/internal/repositories"

	"github.com/sirupsen/logrus"
)

// GraphService manages follow and like edges between users and posts.
type GraphService struct {
	graphRepo repositories.GraphRepository
	userRepo  repositories.UserRepository
	postRepo  repositories.PostRepository
	events    EventPublisher
}

// NewGraphService creates a new GraphService. events may be nil.
func NewGraphService(graphRepo repositories.GraphRepository, userRepo repositories.UserRepository, postRepo repositories.PostRepository, events EventPublisher) *GraphService {
	return &GraphService{
		graphRepo: graphRepo,
		userRepo:  userRepo,
		postRepo:  postRepo,
		events:    events,
	}
}

// Follow makes actorID follow targetID. Following twice is a no-op.
func (s *GraphService) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return fmt.Errorf("user %d cannot follow themselves: %w", actorID, apperr.ErrInvalidOperation)
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	if err := s.graphRepo.AddFollow(ctx, actorID, targetID); err != nil && !errors.Is(err, apperr.ErrConflict) {
		return err
	}

	monitoring.Follows.WithLabelValues("follow").Inc()
	logrus.WithFields(logrus.Fields{"follower_id": actorID, "following_id": targetID}).Debug("User followed")
	publish(s.events, EventUserFollowed, map[string]uint{"follower_id": actorID, "following_id": targetID})
	return nil
}

// Unfollow removes the edge actorID -> targetID if it exists.
func (s *GraphService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	if err := s.graphRepo.RemoveFollow(ctx, actorID, targetID); err != nil {
		return err
	}
	monitoring.Follows.WithLabelValues("unfollow").Inc()
	return nil
}

// ListFollowers returns the users following userID.
func (s *GraphService) ListFollowers(ctx context.Context, userID uint) ([]models.Author, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.graphRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return authors(users), nil
}

// ListFollowings returns the users userID follows.
func (s *GraphService) ListFollowings(ctx context.Context, userID uint) ([]models.Author, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.graphRepo.ListFollowings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return authors(users), nil
}

// Like adds actorID to the likers of postID. Liking twice is a no-op.
func (s *GraphService) Like(ctx context.Context, actorID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	if err := s.graphRepo.AddLike(ctx, actorID, postID); err != nil && !errors.Is(err, apperr.ErrConflict) {
		return err
	}

	monitoring.Likes.WithLabelValues("like").Inc()
	publish(s.events, EventPostLiked, map[string]uint{"user_id": actorID, "post_id": postID})
	return nil
}

// Unlike removes actorID from the likers of postID if present.
func (s *GraphService) Unlike(ctx context.Context, actorID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	if err := s.graphRepo.RemoveLike(ctx, actorID, postID); err != nil {
		return err
	}
	monitoring.Likes.WithLabelValues("unlike").Inc()
	return nil
}

func authors(users []models.User) []models.Author {
	out := make([]models.Author, 0, len(users))
	for i := range users {
		out = append(out, models.AuthorOf(&users[i], users[i].ID))
	}
	return out
}
