package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"gorm.io/gorm"
)

func newPickupFixture(t *testing.T) (*PickupService, *ProductService) {
	t.Helper()
	productRepo := NewMockProductRepository()
	pickupRepo := NewMockPickupRepository(productRepo)
	return NewPickupService(pickupRepo, productRepo), NewProductService(productRepo)
}

func TestSchedulePickup(t *testing.T) {
	pickups, products := newPickupFixture(t)
	desk, _ := products.CreateProduct(1, ProductInput{Name: "desk", Category: "furniture", Price: 4000, Quantity: 1})

	pickup, err := pickups.Schedule(2, PickupInput{
		ProductID: desk.ID,
		Name:      "  Priya  ",
		Location:  "hostel gate 3",
		Time:      time.Now().Add(24 * time.Hour),
		Notes:     "call on arrival",
	})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if pickup.Status != models.PickupPending {
		t.Errorf("expected pending pickup, got %s", pickup.Status)
	}
	if pickup.Name != "Priya" {
		t.Errorf("expected trimmed name, got %q", pickup.Name)
	}
}

func TestSchedulePickupValidation(t *testing.T) {
	pickups, products := newPickupFixture(t)
	desk, _ := products.CreateProduct(1, ProductInput{Name: "desk", Category: "furniture", Price: 4000, Quantity: 1})
	when := time.Now().Add(time.Hour)

	tests := []struct {
		name    string
		input   PickupInput
		wantErr error
	}{
		{"missing product", PickupInput{Name: "a", Location: "b", Time: when}, ErrMissingFields},
		{"missing name", PickupInput{ProductID: desk.ID, Location: "b", Time: when}, ErrMissingFields},
		{"missing location", PickupInput{ProductID: desk.ID, Name: "a", Time: when}, ErrMissingFields},
		{"missing time", PickupInput{ProductID: desk.ID, Name: "a", Location: "b"}, ErrMissingFields},
		{"unknown product", PickupInput{ProductID: 999, Name: "a", Location: "b", Time: when}, gorm.ErrRecordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pickups.Schedule(2, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPickupTransitions(t *testing.T) {
	pickups, products := newPickupFixture(t)
	desk, _ := products.CreateProduct(1, ProductInput{Name: "desk", Category: "furniture", Price: 4000, Quantity: 1})

	pickup, _ := pickups.Schedule(2, PickupInput{
		ProductID: desk.ID,
		Name:      "Priya",
		Location:  "gate 3",
		Time:      time.Now().Add(time.Hour),
	})

	// A stranger may not touch the pickup.
	if _, err := pickups.Complete(9, pickup.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for stranger, got %v", err)
	}

	// The seller may complete it.
	done, err := pickups.Complete(1, pickup.ID)
	if err != nil {
		t.Fatalf("seller Complete failed: %v", err)
	}
	if done.Status != models.PickupCompleted {
		t.Errorf("expected completed, got %s", done.Status)
	}

	// Terminal states stay terminal.
	if _, err := pickups.Cancel(2, pickup.ID); !errors.Is(err, ErrPickupNotPending) {
		t.Errorf("expected ErrPickupNotPending after completion, got %v", err)
	}
}

func TestPickupBuyerCanCancel(t *testing.T) {
	pickups, products := newPickupFixture(t)
	desk, _ := products.CreateProduct(1, ProductInput{Name: "desk", Category: "furniture", Price: 4000, Quantity: 1})

	pickup, _ := pickups.Schedule(2, PickupInput{
		ProductID: desk.ID,
		Name:      "Priya",
		Location:  "gate 3",
		Time:      time.Now().Add(time.Hour),
	})

	cancelled, err := pickups.Cancel(2, pickup.ID)
	if err != nil {
		t.Fatalf("buyer Cancel failed: %v", err)
	}
	if cancelled.Status != models.PickupCancelled {
		t.Errorf("expected cancelled, got %s", cancelled.Status)
	}
}

func TestPickupSellerListing(t *testing.T) {
	pickups, products := newPickupFixture(t)
	desk, _ := products.CreateProduct(1, ProductInput{Name: "desk", Category: "furniture", Price: 4000, Quantity: 1})
	kettle, _ := products.CreateProduct(5, ProductInput{Name: "kettle", Category: "kitchen", Price: 700, Quantity: 1})

	when := time.Now().Add(time.Hour)
	pickups.Schedule(2, PickupInput{ProductID: desk.ID, Name: "a", Location: "x", Time: when})
	pickups.Schedule(2, PickupInput{ProductID: kettle.ID, Name: "a", Location: "x", Time: when})

	selling, err := pickups.ListForSeller(1)
	if err != nil {
		t.Fatalf("ListForSeller failed: %v", err)
	}
	if len(selling) != 1 {
		t.Errorf("expected 1 pickup against seller 1's listings, got %d", len(selling))
	}

	mine, err := pickups.ListMine(2)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 pickups for buyer 2, got %d", len(mine))
	}
}
