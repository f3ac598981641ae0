package handlers

import (
	"encoding/json"
	"fmt"

	"kicau/internal/repositories"
	"kicau/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PostHandler serves posts, the feed, comments, retweets and likes.
type PostHandler struct {
	postService    *services.PostService
	feedService    *services.FeedService
	retweetService *services.RetweetService
	graphService   *services.GraphService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService, feedService *services.FeedService, retweetService *services.RetweetService, graphService *services.GraphService) *PostHandler {
	return &PostHandler{
		postService:    postService,
		feedService:    feedService,
		retweetService: retweetService,
		graphService:   graphService,
	}
}

// RegisterRoutes registers the post routes. router must be authenticated.
func (h *PostHandler) RegisterRoutes(router fiber.Router) {
	postRoutes := router.Group("/posts")
	postRoutes.Get("/", h.HandleFeed)
	postRoutes.Post("/", h.HandleCreatePost)
	postRoutes.Get("/:id", h.HandleGetPost)
	postRoutes.Delete("/:id", h.HandleDeletePost)
	postRoutes.Post("/:id/comments", h.HandleCreateComment)
	postRoutes.Post("/:id/retweet", h.HandleRetweet)
	postRoutes.Patch("/:id/like", h.HandleLike)
	postRoutes.Delete("/:id/like", h.HandleUnlike)
}

// ImageSources accepts either a single string or a list of strings.
type ImageSources []string

// UnmarshalJSON accepts either a string or a list of strings.
func (s *ImageSources) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*s = nil
		} else {
			*s = ImageSources{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("image must be a string or a list of strings")
	}
	*s = many
	return nil
}

// CreatePostRequest is the body of POST /posts.
type CreatePostRequest struct {
	Content string       `json:"content"`
	Image   ImageSources `json:"image"`
}

// CommentRequest is the body of POST /posts/:id/comments.
type CommentRequest struct {
	Content string `json:"content"`
}

// HandleFeed returns one page of posts. lastId is the smallest id of the
// previous page; userId and hashtag narrow the feed.
func (h *PostHandler) HandleFeed(c *fiber.Ctx) error {
	beforeID, err := queryID(c, "lastId")
	if err != nil {
		return respondError(c, "Invalid query", err)
	}
	authorID, err := queryID(c, "userId")
	if err != nil {
		return respondError(c, "Invalid query", err)
	}

	posts, err := h.feedService.ListFeed(c.UserContext(), repositories.FeedQuery{
		BeforeID: beforeID,
		AuthorID: authorID,
		Hashtag:  c.Query("hashtag"),
	})
	if err != nil {
		return respondError(c, "Could not load feed", err)
	}
	return c.JSON(posts)
}

func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return respondError(c, "Authentication required", err)
	}
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	post, err := h.postService.CreatePost(c.UserContext(), actor, req.Content, req.Image)
	if err != nil {
		return respondError(c, "Could not create post", err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) HandleGetPost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid post id", err)
	}
	post, err := h.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return respondError(c, fmt.Sprintf("Post with ID %d not available", postID), err)
	}
	return c.JSON(post)
}

func (h *PostHandler) HandleDeletePost(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return respondError(c, "Authentication required", err)
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid post id", err)
	}
	if err := h.postService.DeletePost(c.UserContext(), postID, actor); err != nil {
		return respondError(c, "Could not delete post", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Post %d deleted successfully", postID),
	})
}

func (h *PostHandler) HandleCreateComment(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return respondError(c, "Authentication required", err)
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid post id", err)
	}
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	comment, err := h.postService.CreateComment(c.UserContext(), actor, postID, req.Content)
	if err != nil {
		return respondError(c, "Could not create comment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *PostHandler) HandleRetweet(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return respondError(c, "Authentication required", err)
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid post id", err)
	}
	post, err := h.retweetService.Retweet(c.UserContext(), actor, postID)
	if err != nil {
		return respondError(c, "Could not retweet post", err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// HandleLike records the actor's like. Liking twice is not an error.
func (h *PostHandler) HandleLike(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return respondError(c, "Authentication required", err)
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid post id", err)
	}
	if err := h.graphService.Like(c.UserContext(), actor, postID); err != nil {
		return respondError(c, "Could not like post", err)
	}
	return c.JSON(fiber.Map{"message": "Liked", "post_id": postID})
}

func (h *PostHandler) HandleUnlike(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return respondError(c, "Authentication required", err)
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid post id", err)
	}
	if err := h.graphService.Unlike(c.UserContext(), actor, postID); err != nil {
		return respondError(c, "Could not unlike post", err)
	}
	return c.JSON(fiber.Map{"message": "Unliked", "post_id": postID})
}
