package service

import (
	"errors"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/repository"
)

type WishlistService struct {
	wishlistRepo repository.WishlistRepositoryInterface
	productRepo  repository.ProductRepositoryInterface
}

func NewWishlistService(wishlistRepo repository.WishlistRepositoryInterface, productRepo repository.ProductRepositoryInterface) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// Add saves a product to the user's wishlist. The bool reports whether the
// item was newly added; re-adding an already saved product is a no-op.
func (s *WishlistService) Add(userID, productID uint) (bool, error) {
	if userID == 0 || productID == 0 {
		return false, ErrMissingFields
	}
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return false, err
	}

	err := s.wishlistRepo.Add(&models.WishlistItem{UserID: userID, ProductID: productID})
	if errors.Is(err, repository.ErrAlreadyWishlisted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remove drops a product from the wishlist; removing something that was
// never saved reports zero removals and succeeds.
func (s *WishlistService) Remove(userID, productID uint) (int64, error) {
	if userID == 0 || productID == 0 {
		return 0, ErrMissingFields
	}
	return s.wishlistRepo.Remove(userID, productID)
}

func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	if userID == 0 {
		return nil, ErrMissingFields
	}
	return s.wishlistRepo.ListForUser(userID)
}
