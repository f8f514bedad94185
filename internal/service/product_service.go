package service

import (
	"fmt"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/repository"
	"github.com/Chakshita2123/Campus-Marketplace/internal/validation"
)

type ProductService struct {
	productRepo repository.ProductRepositoryInterface
}

func NewProductService(productRepo repository.ProductRepositoryInterface) *ProductService {
	return &ProductService{productRepo: productRepo}
}

type ProductInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

func (s *ProductService) CreateProduct(ownerID uint, input ProductInput) (*models.Product, error) {
	if field := validation.ValidateProductInput(input.Name, input.Category, input.Price, input.Quantity); field != "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProduct, field)
	}

	product := &models.Product{
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		Quantity: input.Quantity,
		OwnerID:  ownerID,
	}
	if input.Image != "" {
		product.Image = input.Image
	}
	product.DeriveStatus()

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *ProductService) ListProducts(filter repository.ProductFilter) ([]models.Product, error) {
	return s.productRepo.List(filter)
}

// UpdateProduct applies seller edits. Only the owner may edit, and status
// is rederived from the new quantity rather than taken from the input.
func (s *ProductService) UpdateProduct(ownerID, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	if field := validation.ValidateProductInput(input.Name, input.Category, input.Price, input.Quantity); field != "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProduct, field)
	}

	product.Name = input.Name
	product.Category = input.Category
	product.Price = input.Price
	product.Quantity = input.Quantity
	if input.Image != "" {
		product.Image = input.Image
	}
	product.DeriveStatus()

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a listing. Admins may remove anyone's.
func (s *ProductService) DeleteProduct(requesterID uint, isAdmin bool, id uint) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return err
	}
	if product.OwnerID != requesterID && !isAdmin {
		return ErrNotOwner
	}
	return s.productRepo.Delete(id)
}

func (s *ProductService) CountActive() (int64, error) {
	return s.productRepo.CountByStatus(models.ProductActive)
}
