package models

import (
	"time"

	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductActive  ProductStatus = "active"
	ProductSoldOut ProductStatus = "sold_out"
)

// Product is a marketplace listing owned by one seller. Status is never set
// directly by clients: it is derived from the remaining quantity.
type Product struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string        `gorm:"not null" json:"name"`
	Category string        `gorm:"not null;index" json:"category"`
	Price    int64         `gorm:"not null" json:"price"`
	Quantity int           `gorm:"not null" json:"quantity"`
	Status   ProductStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	Image    string        `gorm:"default:'images/default.jpg'" json:"image"`

	OwnerID uint `gorm:"not null;index" json:"owner_id"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`
}

// DeriveStatus recomputes Status from Quantity.
func (p *Product) DeriveStatus() {
	if p.Quantity <= 0 {
		p.Status = ProductSoldOut
	} else {
		p.Status = ProductActive
	}
}

type ProductResponse struct {
	ID        uint          `json:"id"`
	Name      string        `json:"name"`
	Category  string        `json:"category"`
	Price     int64         `json:"price"`
	Quantity  int           `json:"quantity"`
	Status    ProductStatus `json:"status"`
	Image     string        `json:"image"`
	OwnerID   uint          `json:"owner_id"`
	CreatedAt time.Time     `json:"created_at"`
}

func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Quantity:  p.Quantity,
		Status:    p.Status,
		Image:     p.Image,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt,
	}
}
