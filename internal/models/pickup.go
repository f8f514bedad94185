package models

import (
	"time"
)

type PickupStatus string

const (
	PickupPending   PickupStatus = "pending"
	PickupCompleted PickupStatus = "completed"
	PickupCancelled PickupStatus = "cancelled"
)

// Pickup is an in-person handover appointment between a buyer and the
// seller of a product. Only pending pickups can be completed or cancelled.
type Pickup struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID    uint    `gorm:"not null;index" json:"user_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`

	Name     string       `gorm:"not null" json:"name"`
	Location string       `gorm:"not null" json:"location"`
	Time     time.Time    `gorm:"not null;index" json:"time"`
	Notes    string       `json:"notes,omitempty"`
	Status   PickupStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
}

type PickupResponse struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	Product   ProductResponse `json:"product"`
	Name      string          `json:"name"`
	Location  string          `json:"location"`
	Time      time.Time       `json:"time"`
	Notes     string          `json:"notes,omitempty"`
	Status    PickupStatus    `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

func (p *Pickup) ToResponse() PickupResponse {
	return PickupResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Product:   p.Product.ToResponse(),
		Name:      p.Name,
		Location:  p.Location,
		Time:      p.Time,
		Notes:     p.Notes,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}
