package repository

import (
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
)

// UserRepositoryInterface defines the contract for user profile operations
type UserRepositoryInterface interface {
	Upsert(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	FindByIDs(ids []uint) ([]models.User, error)
	UpdateOnlineStatus(userID uint, isOnline bool) error
	SearchUsers(query string, limit int) ([]models.User, error)
	Count() (int64, error)
}

// ThreadRepositoryInterface defines the contract for conversation storage:
// pair resolution, message append, unread computation and read marking.
type ThreadRepositoryInterface interface {
	FindByPair(userID1, userID2 uint) (*models.Thread, error)
	FindOrCreate(userID1, userID2 uint) (*models.Thread, bool, error)
	ListForUser(userID uint) ([]models.Thread, error)
	AppendMessage(message *models.Message) error
	MessagesForThread(threadID uint, limit int) ([]models.Message, error)
	UnreadTotal(userID uint) (int64, error)
	UnreadByThread(userID uint) ([]models.ThreadUnread, error)
	ListConversations(userID uint) ([]ConversationRow, error)
	MarkThreadRead(threadID, counterpartID uint) (int64, error)
}

// ProductRepositoryInterface defines the contract for listing storage
type ProductRepositoryInterface interface {
	Create(product *models.Product) error
	FindByID(id uint) (*models.Product, error)
	List(filter ProductFilter) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
	CountByStatus(status models.ProductStatus) (int64, error)
}

// WishlistRepositoryInterface defines the contract for wishlist storage
type WishlistRepositoryInterface interface {
	Add(item *models.WishlistItem) error
	Remove(userID, productID uint) (int64, error)
	ListForUser(userID uint) ([]models.WishlistItem, error)
}

// OrderRepositoryInterface defines the contract for order storage
type OrderRepositoryInterface interface {
	Create(order *models.Order) error
	FindByID(id uint) (*models.Order, error)
	MarkPaid(id uint, method, txnID string, paidAt time.Time) (int64, error)
	ListForUser(userID uint) ([]models.Order, error)
	ListAll(limit int) ([]models.Order, error)
}

// PickupRepositoryInterface defines the contract for pickup storage
type PickupRepositoryInterface interface {
	Create(pickup *models.Pickup) error
	FindByID(id uint) (*models.Pickup, error)
	ListForUser(userID uint) ([]models.Pickup, error)
	ListForSeller(sellerID uint) ([]models.Pickup, error)
	UpdateStatus(id uint, status models.PickupStatus) (int64, error)
}
