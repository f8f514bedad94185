package handlers

import (
	"log"

	"github.com/Chakshita2123/Campus-Marketplace/internal/cache"
	"github.com/Chakshita2123/Campus-Marketplace/internal/handlers/ws"
	"github.com/Chakshita2123/Campus-Marketplace/internal/httpx"
	"github.com/Chakshita2123/Campus-Marketplace/internal/service"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	userService    *service.UserService
	productService *service.ProductService
	orderService   *service.OrderService
	userCache      *cache.UserCache
	hub            *ws.Hub
}

func NewAdminHandler(userService *service.UserService, productService *service.ProductService, orderService *service.OrderService, userCache *cache.UserCache, hub *ws.Hub) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		productService: productService,
		orderService:   orderService,
		userCache:      userCache,
		hub:            hub,
	}
}

// GetStats returns marketplace-wide counters for the admin dashboard.
// Admin role required (enforced by route middleware).
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	users, err := h.userService.CountUsers()
	if err != nil {
		log.Printf("Admin stats: user count failed: %v", err)
		return httpx.Internal(c, "stats_failed")
	}

	activeProducts, err := h.productService.CountActive()
	if err != nil {
		log.Printf("Admin stats: product count failed: %v", err)
		return httpx.Internal(c, "stats_failed")
	}

	stats := fiber.Map{
		"users":           users,
		"active_products": activeProducts,
		"ws_connections":  h.hub.Count(),
	}

	if h.userCache != nil {
		if online, err := h.userCache.GetOnlineCount(); err == nil {
			stats["online_users"] = online
		}
	}

	return c.JSON(stats)
}

// ListAllOrders returns recent orders across all buyers
func (h *AdminHandler) ListAllOrders(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)

	orders, err := h.orderService.ListAll(limit)
	if err != nil {
		return httpx.Internal(c, "list_orders_failed")
	}

	return c.JSON(fiber.Map{"orders": orders})
}
