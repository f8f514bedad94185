package service

import (
	"strings"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/repository"
	"github.com/Chakshita2123/Campus-Marketplace/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepositoryInterface
}

func NewUserService(userRepo repository.UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

// EnsureProfile provisions or refreshes the local profile row for an
// identity asserted by the auth provider's token claims.
func (s *UserService) EnsureProfile(userID uint, email, username, fullName, role string) error {
	if userID == 0 {
		return ErrMissingFields
	}
	email = validation.NormalizeEmail(email)
	username = strings.TrimSpace(username)
	if username == "" && email != "" {
		// Claims without a username fall back to the mailbox name.
		username = strings.SplitN(email, "@", 2)[0]
	}
	if role == "" {
		role = "user"
	}

	return s.userRepo.Upsert(&models.User{
		ID:       userID,
		Email:    email,
		Username: username,
		FullName: fullName,
		Role:     role,
	})
}

func (s *UserService) GetUser(userID uint) (*models.User, error) {
	return s.userRepo.FindByID(userID)
}

func (s *UserService) GetUsersByIDs(ids []uint) ([]models.User, error) {
	return s.userRepo.FindByIDs(ids)
}

func (s *UserService) SearchUsers(query string, limit int) ([]models.User, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < 2 {
		return []models.User{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.userRepo.SearchUsers(query, limit)
}

func (s *UserService) SetUserOnline(userID uint) error {
	return s.userRepo.UpdateOnlineStatus(userID, true)
}

func (s *UserService) SetUserOffline(userID uint) error {
	return s.userRepo.UpdateOnlineStatus(userID, false)
}

func (s *UserService) CountUsers() (int64, error) {
	return s.userRepo.Count()
}
