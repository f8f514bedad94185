package middleware

import (
	"log"

	"github.com/Chakshita2123/Campus-Marketplace/internal/cache"
	"github.com/Chakshita2123/Campus-Marketplace/internal/httpx"
	"github.com/Chakshita2123/Campus-Marketplace/internal/service"
	"github.com/gofiber/fiber/v2"
)

// EnsureProfile provisions a local profile row from the verified token
// claims the first time an identity shows up, so messages, listings and
// orders always have a user row to reference. A short-TTL Redis marker
// keeps the common path off the database.
func EnsureProfile(userService *service.UserService, userCache *cache.UserCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := httpx.LocalUint(c, "userID")
		if err != nil {
			return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
		}

		if userCache.IsProfileSynced(userID) {
			return c.Next()
		}

		email, _ := c.Locals("email").(string)
		username, _ := c.Locals("username").(string)
		fullName, _ := c.Locals("fullName").(string)
		role, _ := c.Locals("role").(string)

		if err := userService.EnsureProfile(userID, email, username, fullName, role); err != nil {
			return httpx.Internal(c, "profile_sync_failed")
		}
		if err := userCache.MarkProfileSynced(userID); err != nil {
			log.Printf("failed to mark profile synced for user %d: %v", userID, err)
		}

		return c.Next()
	}
}
