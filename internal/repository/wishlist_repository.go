package repository

import (
	"errors"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"gorm.io/gorm"
)

// ErrAlreadyWishlisted reports an add for a product already on the list.
var ErrAlreadyWishlisted = errors.New("product already in wishlist")

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Add inserts a wishlist entry. The (user, product) unique index does the
// dedupe; a duplicate insert surfaces as ErrAlreadyWishlisted.
func (r *WishlistRepository) Add(item *models.WishlistItem) error {
	err := r.db.Create(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyWishlisted
	}
	return err
}

func (r *WishlistRepository) Remove(userID, productID uint) (int64, error) {
	res := r.db.
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	return res.RowsAffected, res.Error
}

// ListForUser returns the wishlist with product details. A user with no
// saved products gets an empty slice, never an error.
func (r *WishlistRepository) ListForUser(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}
