package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/events"
	"github.com/Chakshita2123/Campus-Marketplace/internal/httpx"
	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/service"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PickupHandler struct {
	pickupService *service.PickupService
	publisher     events.Publisher
}

func NewPickupHandler(pickupService *service.PickupService, publisher events.Publisher) *PickupHandler {
	return &PickupHandler{pickupService: pickupService, publisher: publisher}
}

// SchedulePickup books a meetup for a listing
func (h *PickupHandler) SchedulePickup(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input service.PickupInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	pickup, err := h.pickupService.Schedule(userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			return httpx.BadRequest(c, "missing_fields", err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return httpx.NotFound(c, "product_not_found", "Product not found")
		default:
			return httpx.Internal(c, "schedule_pickup_failed")
		}
	}

	if h.publisher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.publisher.Publish(ctx, "pickup.scheduled", events.Envelope{
			Event:   "pickup.scheduled",
			At:      time.Now().UTC(),
			ActorID: userID,
			Data: map[string]interface{}{
				"pickup_id":  pickup.ID,
				"product_id": pickup.ProductID,
				"time":       pickup.Time,
			},
		}); err != nil {
			log.Printf("Failed to publish pickup.scheduled event: %v", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"pickup": pickup})
}

// ListPickups returns pickups the caller booked as a buyer
func (h *PickupHandler) ListPickups(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	pickups, err := h.pickupService.ListMine(userID)
	if err != nil {
		return httpx.Internal(c, "list_pickups_failed")
	}

	return c.JSON(fiber.Map{"pickups": pickups})
}

// ListSellerPickups returns pickups booked against the caller's listings
func (h *PickupHandler) ListSellerPickups(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	pickups, err := h.pickupService.ListForSeller(userID)
	if err != nil {
		return httpx.Internal(c, "list_pickups_failed")
	}

	return c.JSON(fiber.Map{"pickups": pickups})
}

// CompletePickup marks a pending pickup as done. Buyer or seller only.
func (h *PickupHandler) CompletePickup(c *fiber.Ctx) error {
	return h.transition(c, (*service.PickupService).Complete)
}

// CancelPickup calls off a pending pickup. Buyer or seller only.
func (h *PickupHandler) CancelPickup(c *fiber.Ctx) error {
	return h.transition(c, (*service.PickupService).Cancel)
}

func (h *PickupHandler) transition(c *fiber.Ctx, apply func(*service.PickupService, uint, uint) (*models.Pickup, error)) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	pickupID, err := paramUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_pickup_id", "Invalid pickup id")
	}

	pickup, err := apply(h.pickupService, userID, pickupID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return httpx.NotFound(c, "pickup_not_found", "Pickup not found")
		case errors.Is(err, service.ErrNotOwner):
			return httpx.Forbidden(c, "not_participant", "Only the buyer or seller can change this pickup")
		case errors.Is(err, service.ErrPickupNotPending):
			return httpx.BadRequest(c, "pickup_not_pending", "Pickup is no longer pending")
		default:
			return httpx.Internal(c, "update_pickup_failed")
		}
	}

	return c.JSON(fiber.Map{"pickup": pickup})
}
