package services

import (
	"context"
	"fmt"

	"kicau/internal/apperr"
	"kicau/internal/models"
	"kicau/internal/monitoring"
	"kicau/internal/repositories"

	"github.com/sirupsen/logrus"
)

// RetweetService creates retweets. A retweet always points at the original
// post, so retweeting a retweet targets what it retweeted.
type RetweetService struct {
	postRepo repositories.PostRepository
	events   EventPublisher
}

// NewRetweetService creates a new RetweetService. events may be nil.
func NewRetweetService(postRepo repositories.PostRepository, events EventPublisher) *RetweetService {
	return &RetweetService{postRepo: postRepo, events: events}
}

// Retweet makes actorID retweet postID and returns the new post's full
// projection.
func (s *RetweetService) Retweet(ctx context.Context, actorID, postID uint) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID == actorID || (post.Retweet != nil && post.Retweet.UserID == actorID) {
		return nil, fmt.Errorf("user %d cannot retweet own post %d: %w", actorID, postID, apperr.ErrForbidden)
	}

	targetID := post.ID
	if post.RetweetID != nil {
		targetID = *post.RetweetID
	}

	exists, err := s.postRepo.HasRetweet(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("user %d already retweeted post %d: %w", actorID, targetID, apperr.ErrConflict)
	}

	retweet := &models.Post{
		Content:   models.RetweetContent,
		UserID:    actorID,
		RetweetID: &targetID,
	}
	// the (user_id, retweet_id) unique index turns a lost race into ErrConflict
	if err := s.postRepo.Create(ctx, retweet, nil, nil); err != nil {
		return nil, err
	}

	full, err := s.postRepo.LoadFullPost(ctx, retweet.ID)
	if err != nil {
		return nil, err
	}

	monitoring.Retweets.Inc()
	logrus.WithFields(logrus.Fields{
		"post_id":    retweet.ID,
		"retweet_id": targetID,
		"user_id":    actorID,
	}).Info("Post retweeted")
	publish(s.events, EventPostRetweeted, map[string]uint{
		"post_id":    retweet.ID,
		"retweet_id": targetID,
		"user_id":    actorID,
	})

	view := models.NewPostView(full)
	return &view, nil
}
