package service

import (
	"errors"
	"testing"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/repository"
	"gorm.io/gorm"
)

func TestCreateProductDerivesStatus(t *testing.T) {
	repo := NewMockProductRepository()
	svc := NewProductService(repo)

	tests := []struct {
		name       string
		quantity   int
		wantStatus models.ProductStatus
	}{
		{"in stock", 3, models.ProductActive},
		{"last one", 1, models.ProductActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := svc.CreateProduct(1, ProductInput{
				Name:     "desk lamp",
				Category: "furniture",
				Price:    1500,
				Quantity: tt.quantity,
			})
			if err != nil {
				t.Fatalf("CreateProduct failed: %v", err)
			}
			if product.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, product.Status)
			}
		})
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(NewMockProductRepository())

	tests := []struct {
		name  string
		input ProductInput
	}{
		{"missing name", ProductInput{Category: "books", Price: 100, Quantity: 1}},
		{"missing category", ProductInput{Name: "textbook", Price: 100, Quantity: 1}},
		{"negative price", ProductInput{Name: "textbook", Category: "books", Price: -5, Quantity: 1}},
		{"negative quantity", ProductInput{Name: "textbook", Category: "books", Price: 100, Quantity: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(1, tt.input)
			if !errors.Is(err, ErrInvalidProduct) {
				t.Errorf("expected ErrInvalidProduct, got %v", err)
			}
		})
	}
}

func TestUpdateProductOwnerOnly(t *testing.T) {
	repo := NewMockProductRepository()
	svc := NewProductService(repo)

	product, err := svc.CreateProduct(1, ProductInput{Name: "bike", Category: "vehicles", Price: 8000, Quantity: 1})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	_, err = svc.UpdateProduct(2, product.ID, ProductInput{Name: "bike", Category: "vehicles", Price: 1, Quantity: 1})
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for stranger edit, got %v", err)
	}

	// Selling out via quantity flips status without touching it directly.
	updated, err := svc.UpdateProduct(1, product.ID, ProductInput{Name: "bike", Category: "vehicles", Price: 8000, Quantity: 0})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Status != models.ProductSoldOut {
		t.Errorf("expected sold_out at zero quantity, got %s", updated.Status)
	}
}

func TestDeleteProductPermissions(t *testing.T) {
	repo := NewMockProductRepository()
	svc := NewProductService(repo)

	product, _ := svc.CreateProduct(1, ProductInput{Name: "chair", Category: "furniture", Price: 500, Quantity: 2})

	if err := svc.DeleteProduct(2, false, product.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for stranger delete, got %v", err)
	}

	// Admin may remove anyone's listing.
	if err := svc.DeleteProduct(2, true, product.ID); err != nil {
		t.Errorf("admin delete failed: %v", err)
	}

	if err := svc.DeleteProduct(1, false, product.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestListProductsFilter(t *testing.T) {
	repo := NewMockProductRepository()
	svc := NewProductService(repo)

	svc.CreateProduct(1, ProductInput{Name: "calc textbook", Category: "books", Price: 900, Quantity: 1})
	svc.CreateProduct(2, ProductInput{Name: "physics textbook", Category: "books", Price: 1100, Quantity: 1})
	svc.CreateProduct(2, ProductInput{Name: "kettle", Category: "kitchen", Price: 700, Quantity: 1})

	books, err := svc.ListProducts(repository.ProductFilter{Category: "books"})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(books) != 2 {
		t.Errorf("expected 2 books, got %d", len(books))
	}

	mine, err := svc.ListProducts(repository.ProductFilter{OwnerID: 2})
	if err != nil {
		t.Fatalf("ListProducts by owner failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 listings for owner 2, got %d", len(mine))
	}
}

func TestCountActive(t *testing.T) {
	repo := NewMockProductRepository()
	svc := NewProductService(repo)

	svc.CreateProduct(1, ProductInput{Name: "a", Category: "misc", Price: 10, Quantity: 1})
	svc.CreateProduct(1, ProductInput{Name: "b", Category: "misc", Price: 10, Quantity: 0})

	count, err := svc.CountActive()
	if err != nil {
		t.Fatalf("CountActive failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 active listing, got %d", count)
	}
}
