package handlers

import (
	"errors"

	"github.com/Chakshita2123/Campus-Marketplace/internal/httpx"
	"github.com/Chakshita2123/Campus-Marketplace/internal/repository"
	"github.com/Chakshita2123/Campus-Marketplace/internal/service"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WishlistHandler struct {
	wishlistService *service.WishlistService
}

func NewWishlistHandler(wishlistService *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// AddToWishlist saves a listing for later. Adding twice is a no-op.
func (h *WishlistHandler) AddToWishlist(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		ProductID uint `json:"product_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	added, err := h.wishlistService.Add(userID, input.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return httpx.NotFound(c, "product_not_found", "Product not found")
		case errors.Is(err, repository.ErrAlreadyWishlisted):
			// Treat as success; the item is on the list either way.
			return c.JSON(fiber.Map{"added": false})
		default:
			return httpx.Internal(c, "wishlist_add_failed")
		}
	}

	status := fiber.StatusOK
	if added {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"added": added})
}

// RemoveFromWishlist drops a listing from the caller's wishlist
func (h *WishlistHandler) RemoveFromWishlist(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	productID, err := paramUint(c, "product_id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_product_id", "Invalid product id")
	}

	removed, err := h.wishlistService.Remove(userID, productID)
	if err != nil {
		return httpx.Internal(c, "wishlist_remove_failed")
	}

	return c.JSON(fiber.Map{"removed": removed > 0})
}

// GetWishlist lists the caller's saved items with listings preloaded
func (h *WishlistHandler) GetWishlist(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	items, err := h.wishlistService.List(userID)
	if err != nil {
		return httpx.Internal(c, "wishlist_list_failed")
	}

	return c.JSON(fiber.Map{"wishlist": items})
}
