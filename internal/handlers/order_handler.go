package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/events"
	"github.com/Chakshita2123/Campus-Marketplace/internal/httpx"
	"github.com/Chakshita2123/Campus-Marketplace/internal/metrics"
	"github.com/Chakshita2123/Campus-Marketplace/internal/service"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderHandler struct {
	orderService *service.OrderService
	publisher    events.Publisher
}

func NewOrderHandler(orderService *service.OrderService, publisher events.Publisher) *OrderHandler {
	return &OrderHandler{orderService: orderService, publisher: publisher}
}

// CreateOrder places a pending order for one or more listings
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		Items []service.OrderItemInput `json:"items"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	order, err := h.orderService.CreateOrder(userID, input.Items)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder):
			return httpx.BadRequest(c, "empty_order", err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return httpx.NotFound(c, "product_not_found", "Product not found")
		default:
			return httpx.Internal(c, "create_order_failed")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": order})
}

// ConfirmPayment settles a pending order with the simulated payment flow.
// Only the buyer can pay, and only once: a settled or cancelled order
// rejects the attempt.
func (h *OrderHandler) ConfirmPayment(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	orderID, err := paramUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_order_id", "Invalid order id")
	}

	var input struct {
		Method string `json:"method"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	order, err := h.orderService.ConfirmPayment(userID, orderID, input.Method)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return httpx.NotFound(c, "order_not_found", "Order not found")
		case errors.Is(err, service.ErrNotOwner):
			return httpx.Forbidden(c, "not_buyer", "Only the buyer can pay for this order")
		case errors.Is(err, service.ErrOrderNotPending):
			return httpx.BadRequest(c, "order_not_pending", "Order is not awaiting payment")
		default:
			return httpx.Internal(c, "confirm_payment_failed")
		}
	}

	metrics.OrdersPaid.Inc()

	if h.publisher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.publisher.Publish(ctx, "order.paid", events.Envelope{
			Event:   "order.paid",
			At:      time.Now().UTC(),
			ActorID: userID,
			Data: map[string]interface{}{
				"order_id": order.ID,
				"amount":   order.Amount,
				"txn_id":   order.PaymentTxnID,
			},
		}); err != nil {
			log.Printf("Failed to publish order.paid event: %v", err)
		}
	}

	return c.JSON(fiber.Map{"order": order})
}

// ListOrders returns the caller's orders, newest first
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	orders, err := h.orderService.ListMine(userID)
	if err != nil {
		return httpx.Internal(c, "list_orders_failed")
	}

	return c.JSON(fiber.Map{"orders": orders})
}
