package models

import (
	"time"
)

// User is the local profile for an identity supplied by the external auth
// provider. The ID comes from the token claims, not from a local sequence,
// so rows are provisioned with FirstOrCreate rather than plain Create.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email    string     `gorm:"uniqueIndex;not null" json:"email"`
	Username string     `gorm:"uniqueIndex;not null" json:"username"`
	FullName string     `json:"full_name"`
	Avatar   string     `json:"avatar"`
	Role     string     `gorm:"not null;default:user" json:"role"`
	IsOnline bool       `gorm:"default:false" json:"is_online"`
	LastSeen *time.Time `json:"last_seen"`

	Messages []Message `gorm:"foreignKey:SenderID" json:"-"`
	Products []Product `gorm:"foreignKey:OwnerID" json:"-"`
}

type UserResponse struct {
	ID       uint       `json:"id"`
	Username string     `json:"username"`
	FullName string     `json:"full_name"`
	Avatar   string     `json:"avatar"`
	IsOnline bool       `json:"is_online"`
	LastSeen *time.Time `json:"last_seen"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
		IsOnline: u.IsOnline,
		LastSeen: u.LastSeen,
	}
}
