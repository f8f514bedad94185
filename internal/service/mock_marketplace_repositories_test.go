package service

import (
	"sort"
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/repository"
	"gorm.io/gorm"
)

// MockProductRepository is an in-memory ProductRepositoryInterface
type MockProductRepository struct {
	products map[uint]*models.Product
	nextID   uint
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]*models.Product),
		nextID:   1,
	}
}

func (m *MockProductRepository) Create(product *models.Product) error {
	product.ID = m.nextID
	m.nextID++
	product.CreatedAt = time.Now()
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) FindByID(id uint) (*models.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockProductRepository) List(filter repository.ProductFilter) ([]models.Product, error) {
	var result []models.Product
	for _, p := range m.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.OwnerID != 0 && p.OwnerID != filter.OwnerID {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (m *MockProductRepository) Update(product *models.Product) error {
	if _, ok := m.products[product.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) Delete(id uint) error {
	if _, ok := m.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *MockProductRepository) CountByStatus(status models.ProductStatus) (int64, error) {
	var count int64
	for _, p := range m.products {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

// MockWishlistRepository is an in-memory WishlistRepositoryInterface
type MockWishlistRepository struct {
	items  map[uint]*models.WishlistItem
	nextID uint
}

func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{
		items:  make(map[uint]*models.WishlistItem),
		nextID: 1,
	}
}

func (m *MockWishlistRepository) Add(item *models.WishlistItem) error {
	for _, existing := range m.items {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			return repository.ErrAlreadyWishlisted
		}
	}
	item.ID = m.nextID
	m.nextID++
	item.CreatedAt = time.Now()
	m.items[item.ID] = item
	return nil
}

func (m *MockWishlistRepository) Remove(userID, productID uint) (int64, error) {
	var removed int64
	for id, item := range m.items {
		if item.UserID == userID && item.ProductID == productID {
			delete(m.items, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MockWishlistRepository) ListForUser(userID uint) ([]models.WishlistItem, error) {
	var result []models.WishlistItem
	for _, item := range m.items {
		if item.UserID == userID {
			result = append(result, *item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MockOrderRepository is an in-memory OrderRepositoryInterface
type MockOrderRepository struct {
	orders map[uint]*models.Order
	nextID uint
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[uint]*models.Order),
		nextID: 1,
	}
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	order.ID = m.nextID
	m.nextID++
	order.CreatedAt = time.Now()
	if order.Status == "" {
		order.Status = models.OrderPending
	}
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) FindByID(id uint) (*models.Order, error) {
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockOrderRepository) MarkPaid(id uint, method, txnID string, paidAt time.Time) (int64, error) {
	o, ok := m.orders[id]
	if !ok || o.Status != models.OrderPending {
		return 0, nil
	}
	o.Status = models.OrderPaid
	o.PaymentMethod = method
	o.PaymentTxnID = txnID
	o.PaidAt = &paidAt
	return 1, nil
}

func (m *MockOrderRepository) ListForUser(userID uint) ([]models.Order, error) {
	var result []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *MockOrderRepository) ListAll(limit int) ([]models.Order, error) {
	var result []models.Order
	for _, o := range m.orders {
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// MockPickupRepository is an in-memory PickupRepositoryInterface
type MockPickupRepository struct {
	pickups  map[uint]*models.Pickup
	products *MockProductRepository
	nextID   uint
}

func NewMockPickupRepository(products *MockProductRepository) *MockPickupRepository {
	return &MockPickupRepository{
		pickups:  make(map[uint]*models.Pickup),
		products: products,
		nextID:   1,
	}
}

func (m *MockPickupRepository) Create(pickup *models.Pickup) error {
	pickup.ID = m.nextID
	m.nextID++
	pickup.CreatedAt = time.Now()
	m.pickups[pickup.ID] = pickup
	return nil
}

func (m *MockPickupRepository) FindByID(id uint) (*models.Pickup, error) {
	p, ok := m.pickups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// Preload the product like the real repository does.
	if m.products != nil {
		if product, err := m.products.FindByID(p.ProductID); err == nil {
			p.Product = *product
		}
	}
	return p, nil
}

func (m *MockPickupRepository) ListForUser(userID uint) ([]models.Pickup, error) {
	var result []models.Pickup
	for _, p := range m.pickups {
		if p.UserID == userID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *MockPickupRepository) ListForSeller(sellerID uint) ([]models.Pickup, error) {
	var result []models.Pickup
	for _, p := range m.pickups {
		if m.products == nil {
			continue
		}
		product, err := m.products.FindByID(p.ProductID)
		if err != nil || product.OwnerID != sellerID {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (m *MockPickupRepository) UpdateStatus(id uint, status models.PickupStatus) (int64, error) {
	p, ok := m.pickups[id]
	if !ok || p.Status != models.PickupPending {
		return 0, nil
	}
	p.Status = status
	return 1, nil
}
