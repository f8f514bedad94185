package service

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

func newWishlistFixture(t *testing.T) (*WishlistService, *ProductService) {
	t.Helper()
	productRepo := NewMockProductRepository()
	return NewWishlistService(NewMockWishlistRepository(), productRepo), NewProductService(productRepo)
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	wishlist, products := newWishlistFixture(t)

	product, err := products.CreateProduct(1, ProductInput{Name: "lamp", Category: "furniture", Price: 300, Quantity: 1})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	added, err := wishlist.Add(2, product.ID)
	if err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	if !added {
		t.Error("expected first add to report newly added")
	}

	added, err = wishlist.Add(2, product.ID)
	if err != nil {
		t.Fatalf("second Add failed: %v", err)
	}
	if added {
		t.Error("expected re-add to be a no-op")
	}

	items, err := wishlist.List(2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 wishlist item, got %d", len(items))
	}
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	wishlist, _ := newWishlistFixture(t)

	_, err := wishlist.Add(1, 999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected not found for unknown product, got %v", err)
	}
}

func TestWishlistRemove(t *testing.T) {
	wishlist, products := newWishlistFixture(t)

	product, _ := products.CreateProduct(1, ProductInput{Name: "mug", Category: "kitchen", Price: 100, Quantity: 1})
	wishlist.Add(2, product.ID)

	removed, err := wishlist.Remove(2, product.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}

	// Removing again is quiet.
	removed, err = wishlist.Remove(2, product.ID)
	if err != nil {
		t.Fatalf("second Remove failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected 0 removed on repeat, got %d", removed)
	}
}
