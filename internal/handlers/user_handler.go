package handlers

import (
	"errors"

	"github.com/Chakshita2123/Campus-Marketplace/internal/cache"
	"github.com/Chakshita2123/Campus-Marketplace/internal/httpx"
	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/service"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserHandler struct {
	userService *service.UserService
	userCache   *cache.UserCache
}

func NewUserHandler(userService *service.UserService, userCache *cache.UserCache) *UserHandler {
	return &UserHandler{userService: userService, userCache: userCache}
}

// GetCurrentUser returns the authenticated user's profile
func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	return c.JSON(fiber.Map{"user": user.ToResponse()})
}

// GetUser returns another user's public profile
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_user_id", "Invalid user id")
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.NotFound(c, "user_not_found", "User not found")
		}
		return httpx.Internal(c, "get_user_failed")
	}

	resp := user.ToResponse()
	if h.userCache != nil {
		resp.IsOnline = h.userCache.IsUserOnline(user.ID)
	}

	return c.JSON(fiber.Map{"user": resp})
}

// SearchUsers finds users by username or full name
func (h *UserHandler) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return httpx.BadRequest(c, "missing_query", "Search query is required")
	}

	users, err := h.userService.SearchUsers(query, 20)
	if err != nil {
		return httpx.Internal(c, "search_users_failed")
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		resp := users[i].ToResponse()
		if h.userCache != nil {
			resp.IsOnline = h.userCache.IsUserOnline(users[i].ID)
		}
		responses = append(responses, resp)
	}

	return c.JSON(fiber.Map{"users": responses})
}
