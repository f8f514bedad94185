package repository

import (
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order together with its item snapshots.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *OrderRepository) FindByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	return &order, err
}

// MarkPaid records the simulated payment. Only a pending order can be paid;
// the conditional update makes the transition race-safe and idempotent
// failures detectable through the returned row count.
func (r *OrderRepository) MarkPaid(id uint, method, txnID string, paidAt time.Time) (int64, error) {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, models.OrderPending).
		Updates(map[string]interface{}{
			"status":         models.OrderPaid,
			"payment_method": method,
			"payment_txn_id": txnID,
			"paid_at":        paidAt,
		})
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) ListForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListAll(limit int) ([]models.Order, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var orders []models.Order
	err := r.db.Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
