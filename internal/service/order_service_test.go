package service

import (
	"errors"
	"testing"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
)

func newOrderFixture(t *testing.T) (*OrderService, *ProductService) {
	t.Helper()
	productRepo := NewMockProductRepository()
	return NewOrderService(NewMockOrderRepository(), productRepo), NewProductService(productRepo)
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	orders, products := newOrderFixture(t)

	desk, _ := products.CreateProduct(1, ProductInput{Name: "desk", Category: "furniture", Price: 4000, Quantity: 1})
	lamp, _ := products.CreateProduct(1, ProductInput{Name: "lamp", Category: "furniture", Price: 500, Quantity: 2})

	order, err := orders.CreateOrder(2, []OrderItemInput{
		{ProductID: desk.ID, Qty: 1},
		{ProductID: lamp.ID, Qty: 2},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if order.Status != models.OrderPending {
		t.Errorf("expected pending order, got %s", order.Status)
	}
	if order.Amount != 4000+2*500 {
		t.Errorf("expected amount 5000, got %d", order.Amount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	if order.Items[0].Name != "desk" || order.Items[0].Price != 4000 {
		t.Errorf("expected snapshot of desk, got %+v", order.Items[0])
	}

	// A later price change must not rewrite the recorded amount.
	products.UpdateProduct(1, desk.ID, ProductInput{Name: "desk", Category: "furniture", Price: 9999, Quantity: 1})
	if order.Items[0].Price != 4000 {
		t.Errorf("snapshot price changed to %d", order.Items[0].Price)
	}
}

func TestCreateOrderDefaultsQuantity(t *testing.T) {
	orders, products := newOrderFixture(t)
	desk, _ := products.CreateProduct(1, ProductInput{Name: "desk", Category: "furniture", Price: 4000, Quantity: 1})

	order, err := orders.CreateOrder(2, []OrderItemInput{{ProductID: desk.ID}})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if order.Items[0].Qty != 1 {
		t.Errorf("expected qty defaulted to 1, got %d", order.Items[0].Qty)
	}
}

func TestCreateOrderEmpty(t *testing.T) {
	orders, _ := newOrderFixture(t)

	if _, err := orders.CreateOrder(2, nil); !errors.Is(err, ErrEmptyOrder) {
		t.Errorf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestConfirmPaymentHappyPath(t *testing.T) {
	orders, products := newOrderFixture(t)
	desk, _ := products.CreateProduct(1, ProductInput{Name: "desk", Category: "furniture", Price: 4000, Quantity: 1})
	order, _ := orders.CreateOrder(2, []OrderItemInput{{ProductID: desk.ID}})

	paid, err := orders.ConfirmPayment(2, order.ID, "upi")
	if err != nil {
		t.Fatalf("ConfirmPayment failed: %v", err)
	}
	if paid.Status != models.OrderPaid {
		t.Errorf("expected paid order, got %s", paid.Status)
	}
	if paid.PaymentMethod != "upi" {
		t.Errorf("expected method upi, got %s", paid.PaymentMethod)
	}
	if paid.PaymentTxnID == "" {
		t.Error("expected a generated transaction id")
	}
	if paid.PaidAt == nil {
		t.Error("expected paid_at timestamp")
	}
}

func TestConfirmPaymentOnlyBuyer(t *testing.T) {
	orders, products := newOrderFixture(t)
	desk, _ := products.CreateProduct(1, ProductInput{Name: "desk", Category: "furniture", Price: 4000, Quantity: 1})
	order, _ := orders.CreateOrder(2, []OrderItemInput{{ProductID: desk.ID}})

	if _, err := orders.ConfirmPayment(3, order.ID, ""); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for non-buyer, got %v", err)
	}
}

func TestConfirmPaymentNotRepeatable(t *testing.T) {
	orders, products := newOrderFixture(t)
	desk, _ := products.CreateProduct(1, ProductInput{Name: "desk", Category: "furniture", Price: 4000, Quantity: 1})
	order, _ := orders.CreateOrder(2, []OrderItemInput{{ProductID: desk.ID}})

	if _, err := orders.ConfirmPayment(2, order.ID, ""); err != nil {
		t.Fatalf("first payment failed: %v", err)
	}

	if _, err := orders.ConfirmPayment(2, order.ID, ""); !errors.Is(err, ErrOrderNotPending) {
		t.Errorf("expected ErrOrderNotPending on double payment, got %v", err)
	}
}

func TestConfirmPaymentDefaultsMethod(t *testing.T) {
	orders, products := newOrderFixture(t)
	desk, _ := products.CreateProduct(1, ProductInput{Name: "desk", Category: "furniture", Price: 4000, Quantity: 1})
	order, _ := orders.CreateOrder(2, []OrderItemInput{{ProductID: desk.ID}})

	paid, err := orders.ConfirmPayment(2, order.ID, "")
	if err != nil {
		t.Fatalf("ConfirmPayment failed: %v", err)
	}
	if paid.PaymentMethod != "simulated" {
		t.Errorf("expected default method simulated, got %s", paid.PaymentMethod)
	}
}
