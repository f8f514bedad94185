package repository

import (
	"fmt"
	"os"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() (*gorm.DB, error) {
	// Build connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
	)

	// TranslateError maps driver unique-violation errors to
	// gorm.ErrDuplicatedKey; the thread resolver relies on it.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Thread{},
		&models.Message{},
		&models.Product{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Pickup{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
