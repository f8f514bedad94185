package service

import (
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/repository"
	"github.com/google/uuid"
)

type OrderService struct {
	orderRepo   repository.OrderRepositoryInterface
	productRepo repository.ProductRepositoryInterface
}

func NewOrderService(orderRepo repository.OrderRepositoryInterface, productRepo repository.ProductRepositoryInterface) *OrderService {
	return &OrderService{orderRepo: orderRepo, productRepo: productRepo}
}

type OrderItemInput struct {
	ProductID uint `json:"product_id"`
	Qty       int  `json:"qty"`
}

// CreateOrder snapshots the requested listings into a pending order. Prices
// and names come from the store, not the client, so the recorded amount
// cannot be forged.
func (s *OrderService) CreateOrder(userID uint, items []OrderItemInput) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrMissingFields
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	order := &models.Order{UserID: userID, Status: models.OrderPending}
	for _, item := range items {
		if item.ProductID == 0 {
			return nil, ErrEmptyOrder
		}
		qty := item.Qty
		if qty <= 0 {
			qty = 1
		}
		product, err := s.productRepo.FindByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Qty:       qty,
		})
		order.Amount += product.Price * int64(qty)
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ConfirmPayment records the simulated payment outcome: pending -> paid with
// a generated transaction id. No gateway is involved. Only the buyer can
// confirm, and a non-pending order is rejected rather than overwritten.
func (s *OrderService) ConfirmPayment(userID, orderID uint, method string) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotOwner
	}
	if method == "" {
		method = "simulated"
	}

	txnID := uuid.NewString()
	changed, err := s.orderRepo.MarkPaid(orderID, method, txnID, time.Now())
	if err != nil {
		return nil, err
	}
	if changed == 0 {
		return nil, ErrOrderNotPending
	}
	return s.orderRepo.FindByID(orderID)
}

func (s *OrderService) ListMine(userID uint) ([]models.Order, error) {
	if userID == 0 {
		return nil, ErrMissingFields
	}
	return s.orderRepo.ListForUser(userID)
}

func (s *OrderService) ListAll(limit int) ([]models.Order, error) {
	return s.orderRepo.ListAll(limit)
}
