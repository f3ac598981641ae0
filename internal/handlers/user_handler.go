package handlers

import (
	"kicau/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the actor's profile and the follow graph.
type UserHandler struct {
	userService  *services.UserService
	graphService *services.GraphService
	validate     *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, graphService *services.GraphService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		graphService: graphService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the user routes. router must be authenticated.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", h.HandleMe)
	userRoutes.Patch("/me/nickname", h.HandleUpdateNickname)
	userRoutes.Get("/:id/followers", h.HandleFollowers)
	userRoutes.Get("/:id/followings", h.HandleFollowings)
	userRoutes.Patch("/:id/follow", h.HandleFollow)
	userRoutes.Delete("/:id/follow", h.HandleUnfollow)
}

// HandleMe returns the profile of the authenticated user.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return respondError(c, "Authentication required", err)
	}
	profile, err := h.userService.GetProfile(c.UserContext(), actor)
	if err != nil {
		return respondError(c, "Could not load profile", err)
	}
	return c.JSON(profile)
}

// NicknameRequest is the body of PATCH /users/me/nickname.
type NicknameRequest struct {
	Nickname string `json:"nickname" validate:"required,max=30"`
}

func (h *UserHandler) HandleUpdateNickname(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return respondError(c, "Authentication required", err)
	}
	var req NicknameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.userService.UpdateNickname(c.UserContext(), actor, req.Nickname); err != nil {
		return respondError(c, "Could not update nickname", err)
	}
	return c.JSON(fiber.Map{
		"message":  "Nickname updated",
		"nickname": req.Nickname,
	})
}

func (h *UserHandler) HandleFollowers(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid user id", err)
	}
	followers, err := h.graphService.ListFollowers(c.UserContext(), userID)
	if err != nil {
		return respondError(c, "Could not list followers", err)
	}
	return c.JSON(followers)
}

func (h *UserHandler) HandleFollowings(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid user id", err)
	}
	followings, err := h.graphService.ListFollowings(c.UserContext(), userID)
	if err != nil {
		return respondError(c, "Could not list followings", err)
	}
	return c.JSON(followings)
}

// HandleFollow makes the actor follow :id. Following twice is not an error.
func (h *UserHandler) HandleFollow(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return respondError(c, "Authentication required", err)
	}
	targetID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid user id", err)
	}
	if err := h.graphService.Follow(c.UserContext(), actor, targetID); err != nil {
		return respondError(c, "Could not follow user", err)
	}
	return c.JSON(fiber.Map{"message": "Followed", "user_id": targetID})
}

func (h *UserHandler) HandleUnfollow(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return respondError(c, "Authentication required", err)
	}
	targetID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid user id", err)
	}
	if err := h.graphService.Unfollow(c.UserContext(), actor, targetID); err != nil {
		return respondError(c, "Could not unfollow user", err)
	}
	return c.JSON(fiber.Map{"message": "Unfollowed", "user_id": targetID})
}
