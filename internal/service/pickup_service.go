package service

import (
	"strings"
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/repository"
)

type PickupService struct {
	pickupRepo  repository.PickupRepositoryInterface
	productRepo repository.ProductRepositoryInterface
}

func NewPickupService(pickupRepo repository.PickupRepositoryInterface, productRepo repository.ProductRepositoryInterface) *PickupService {
	return &PickupService{pickupRepo: pickupRepo, productRepo: productRepo}
}

type PickupInput struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Time      time.Time `json:"time"`
	Notes     string    `json:"notes"`
}

// Schedule books a pending pickup for a listing. All fields except notes
// are required and checked before anything is written.
func (s *PickupService) Schedule(userID uint, input PickupInput) (*models.Pickup, error) {
	if userID == 0 || input.ProductID == 0 ||
		strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Location) == "" ||
		input.Time.IsZero() {
		return nil, ErrMissingFields
	}
	if _, err := s.productRepo.FindByID(input.ProductID); err != nil {
		return nil, err
	}

	pickup := &models.Pickup{
		UserID:    userID,
		ProductID: input.ProductID,
		Name:      strings.TrimSpace(input.Name),
		Location:  strings.TrimSpace(input.Location),
		Time:      input.Time,
		Notes:     strings.TrimSpace(input.Notes),
		Status:    models.PickupPending,
	}
	if err := s.pickupRepo.Create(pickup); err != nil {
		return nil, err
	}
	return pickup, nil
}

func (s *PickupService) ListMine(userID uint) ([]models.Pickup, error) {
	if userID == 0 {
		return nil, ErrMissingFields
	}
	return s.pickupRepo.ListForUser(userID)
}

func (s *PickupService) ListForSeller(sellerID uint) ([]models.Pickup, error) {
	if sellerID == 0 {
		return nil, ErrMissingFields
	}
	return s.pickupRepo.ListForSeller(sellerID)
}

// Complete moves a pending pickup to completed. The buyer or the listing's
// seller may complete it.
func (s *PickupService) Complete(requesterID, pickupID uint) (*models.Pickup, error) {
	return s.transition(requesterID, pickupID, models.PickupCompleted)
}

// Cancel moves a pending pickup to cancelled.
func (s *PickupService) Cancel(requesterID, pickupID uint) (*models.Pickup, error) {
	return s.transition(requesterID, pickupID, models.PickupCancelled)
}

func (s *PickupService) transition(requesterID, pickupID uint, status models.PickupStatus) (*models.Pickup, error) {
	pickup, err := s.pickupRepo.FindByID(pickupID)
	if err != nil {
		return nil, err
	}
	if pickup.UserID != requesterID && pickup.Product.OwnerID != requesterID {
		return nil, ErrNotOwner
	}

	changed, err := s.pickupRepo.UpdateStatus(pickupID, status)
	if err != nil {
		return nil, err
	}
	if changed == 0 {
		return nil, ErrPickupNotPending
	}
	return s.pickupRepo.FindByID(pickupID)
}
