package models

import (
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a checkout of one or more listings. Payment is simulated: there
// is no gateway integration, the confirm call just records method + txn id.
type Order struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Items  []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Amount int64       `gorm:"not null" json:"amount"`
	Status OrderStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	PaymentMethod string     `gorm:"type:varchar(30)" json:"payment_method,omitempty"`
	PaymentTxnID  string     `gorm:"type:varchar(64)" json:"payment_txn_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

// OrderItem snapshots a listing at checkout time, so later edits to the
// product do not rewrite order history.
type OrderItem struct {
	ID      uint `gorm:"primarykey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"-"`

	ProductID uint   `gorm:"not null" json:"product_id"`
	Name      string `gorm:"not null" json:"name"`
	Price     int64  `gorm:"not null" json:"price"`
	Qty       int    `gorm:"not null;default:1" json:"qty"`
}

type OrderResponse struct {
	ID            uint        `json:"id"`
	UserID        uint        `json:"user_id"`
	Items         []OrderItem `json:"items"`
	Amount        int64       `json:"amount"`
	Status        OrderStatus `json:"status"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	PaymentTxnID  string      `json:"payment_txn_id,omitempty"`
	PaidAt        *time.Time  `json:"paid_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

func (o *Order) ToResponse() OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         o.Items,
		Amount:        o.Amount,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		PaymentTxnID:  o.PaymentTxnID,
		PaidAt:        o.PaidAt,
		CreatedAt:     o.CreatedAt,
	}
}
