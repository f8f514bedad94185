package models

import (
	"time"
)

// WishlistItem is one saved product on a user's wishlist. The composite
// unique index makes re-adding the same product a no-op at the storage layer.
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID    uint    `gorm:"not null;uniqueIndex:idx_wishlist_user_product,priority:1;index" json:"user_id"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_wishlist_user_product,priority:2" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
}

type WishlistItemResponse struct {
	ID      uint            `json:"id"`
	AddedAt time.Time       `json:"added_at"`
	Product ProductResponse `json:"product"`
}

func (w *WishlistItem) ToResponse() WishlistItemResponse {
	return WishlistItemResponse{
		ID:      w.ID,
		AddedAt: w.CreatedAt,
		Product: w.Product.ToResponse(),
	}
}
