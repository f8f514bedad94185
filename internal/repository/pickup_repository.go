package repository

import (
	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"gorm.io/gorm"
)

type PickupRepository struct {
	db *gorm.DB
}

func NewPickupRepository(db *gorm.DB) *PickupRepository {
	return &PickupRepository{db: db}
}

func (r *PickupRepository) Create(pickup *models.Pickup) error {
	return r.db.Create(pickup).Error
}

func (r *PickupRepository) FindByID(id uint) (*models.Pickup, error) {
	var pickup models.Pickup
	err := r.db.Preload("Product").First(&pickup, id).Error
	return &pickup, err
}

// ListForUser returns the buyer's pickups, soonest first.
func (r *PickupRepository) ListForUser(userID uint) ([]models.Pickup, error) {
	var pickups []models.Pickup
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("time ASC").
		Find(&pickups).Error
	return pickups, err
}

// ListForSeller returns pickups scheduled against the seller's listings.
func (r *PickupRepository) ListForSeller(sellerID uint) ([]models.Pickup, error) {
	var pickups []models.Pickup
	err := r.db.Preload("Product").
		Joins("JOIN products ON products.id = pickups.product_id").
		Where("products.owner_id = ?", sellerID).
		Order("pickups.time ASC").
		Find(&pickups).Error
	return pickups, err
}

// UpdateStatus moves a pending pickup to completed or cancelled. Returns the
// number of rows changed; zero means the pickup was missing or not pending.
func (r *PickupRepository) UpdateStatus(id uint, status models.PickupStatus) (int64, error) {
	res := r.db.Model(&models.Pickup{}).
		Where("id = ? AND status = ?", id, models.PickupPending).
		Update("status", status)
	return res.RowsAffected, res.Error
}
