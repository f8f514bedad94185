package handlers

import (
	"errors"
	"strconv"

	"github.com/Chakshita2123/Campus-Marketplace/internal/httpx"
	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/repository"
	"github.com/Chakshita2123/Campus-Marketplace/internal/service"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct lists a new item for sale
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input service.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	product, err := h.productService.CreateProduct(userID, input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			return httpx.BadRequest(c, "invalid_product", err.Error())
		}
		return httpx.Internal(c, "create_product_failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": product})
}

// ListProducts returns listings, optionally filtered by category, status
// or owner.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Status:   models.ProductStatus(c.Query("status")),
	}
	if owner, err := strconv.ParseUint(c.Query("owner_id", "0"), 10, 32); err == nil {
		filter.OwnerID = uint(owner)
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit", "0"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset", "0"))

	products, err := h.productService.ListProducts(filter)
	if err != nil {
		return httpx.Internal(c, "list_products_failed")
	}

	return c.JSON(fiber.Map{"products": products})
}

// GetProduct returns a single listing by id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_product_id", "Invalid product id")
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.NotFound(c, "product_not_found", "Product not found")
		}
		return httpx.Internal(c, "get_product_failed")
	}

	return c.JSON(fiber.Map{"product": product})
}

// UpdateProduct edits a listing. Only the owner may edit.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	id, err := paramUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_product_id", "Invalid product id")
	}

	var input service.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	product, err := h.productService.UpdateProduct(userID, id, input)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return httpx.NotFound(c, "product_not_found", "Product not found")
		case errors.Is(err, service.ErrNotOwner):
			return httpx.Forbidden(c, "not_owner", "Only the owner can edit this listing")
		case errors.Is(err, service.ErrInvalidProduct):
			return httpx.BadRequest(c, "invalid_product", err.Error())
		default:
			return httpx.Internal(c, "update_product_failed")
		}
	}

	return c.JSON(fiber.Map{"product": product})
}

// DeleteProduct removes a listing. Owner or admin only.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	id, err := paramUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_product_id", "Invalid product id")
	}

	isAdmin := c.Locals("role") == "admin"

	if err := h.productService.DeleteProduct(userID, isAdmin, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return httpx.NotFound(c, "product_not_found", "Product not found")
		case errors.Is(err, service.ErrNotOwner):
			return httpx.Forbidden(c, "not_owner", "Only the owner can delete this listing")
		default:
			return httpx.Internal(c, "delete_product_failed")
		}
	}

	return c.JSON(fiber.Map{"deleted": true})
}
