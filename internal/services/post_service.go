package services

import (
	"context"
	"fmt"
	"strings"

	"kicau/internal/apperr"
	"kicau/internal/models"
	"kicau/internal/monitoring"
	"kicau/internal/repositories"

	"github.com/sirupsen/logrus"
)

const maxImageSrcLength = 200

// PostService composes posts and comments and assembles their projections.
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
	events      EventPublisher
}

// NewPostService creates a new PostService. events may be nil.
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository, events EventPublisher) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		events:      events,
	}
}

// CreatePost stores a post written by authorID, links its hashtags, attaches
// imageSrcs in order and returns the full-post projection.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, content string, imageSrcs []string) (*models.PostView, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("post content is required: %w", apperr.ErrValidation)
	}
	for i, src := range imageSrcs {
		if strings.TrimSpace(src) == "" || len(src) > maxImageSrcLength {
			return nil, fmt.Errorf("image %d must be a path or URL of at most %d bytes: %w", i, maxImageSrcLength, apperr.ErrValidation)
		}
	}
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	hashtags := ExtractHashtags(content)
	post := &models.Post{Content: content, UserID: authorID}
	if err := s.postRepo.Create(ctx, post, hashtags, imageSrcs); err != nil {
		return nil, err
	}

	full, err := s.postRepo.LoadFullPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	monitoring.PostsCreated.Inc()
	logrus.WithFields(logrus.Fields{
		"post_id":  post.ID,
		"user_id":  authorID,
		"hashtags": len(hashtags),
		"images":   len(imageSrcs),
	}).Info("Post created")
	publish(s.events, EventPostCreated, map[string]interface{}{
		"post_id":  post.ID,
		"user_id":  authorID,
		"hashtags": hashtags,
	})

	view := models.NewPostView(full)
	return &view, nil
}

// GetPost returns the full-post projection of postID.
func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.PostView, error) {
	full, err := s.postRepo.LoadFullPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	view := models.NewPostView(full)
	return &view, nil
}

// DeletePost removes postID if actorID wrote it.
func (s *PostService) DeletePost(ctx context.Context, postID, actorID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != actorID {
		return fmt.Errorf("user %d cannot delete post %d: %w", actorID, postID, apperr.ErrForbidden)
	}
	if err := s.postRepo.Delete(ctx, postID, actorID); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"post_id": postID, "user_id": actorID}).Info("Post deleted")
	publish(s.events, EventPostDeleted, map[string]uint{"post_id": postID, "user_id": actorID})
	return nil
}

// CreateComment adds a comment by actorID to postID and returns it with its
// author.
func (s *PostService) CreateComment(ctx context.Context, actorID, postID uint, content string) (*models.CommentView, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("comment content is required: %w", apperr.ErrValidation)
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{Content: content, UserID: actorID, PostID: postID}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	full, err := s.commentRepo.GetWithAuthor(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	monitoring.CommentsCreated.Inc()
	view := models.NewCommentView(full)
	return &view, nil
}
