package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	"github.com/zatekoja/shortstay/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

// maxHostCodeAttempts bounds host code regeneration on collision
const maxHostCodeAttempts = 5

// HostService handles promotion of users to hosts and host maintenance
type HostService struct {
	repo     repositories.HostRepository
	users    repositories.UserRepository
	bookings repositories.BookingRepository
	newCode  func() string
}

// NewHostService creates a new host service
func NewHostService(
	repo repositories.HostRepository,
	users repositories.UserRepository,
	bookings repositories.BookingRepository,
) *HostService {
	return &HostService{
		repo:     repo,
		users:    users,
		bookings: bookings,
		newCode:  entities.NewHostCode,
	}
}

// PromoteUser turns an existing user into a host with a fresh host code
func (s *HostService) PromoteUser(ctx context.Context, userID int64) (*entities.Host, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return nil, apperrors.NewConflictError(fmt.Sprintf("user %d is already a host", userID))
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	code, err := s.uniqueHostCode(ctx)
	if err != nil {
		return nil, err
	}

	host := &entities.Host{
		UserID:   userID,
		HostCode: code,
	}
	if err := s.repo.Create(ctx, host); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, host.ID)
}

func (s *HostService) uniqueHostCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxHostCodeAttempts; attempt++ {
		code := s.newCode()
		_, err := s.repo.GetByHostCode(ctx, code)
		if apperrors.IsNotFound(err) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", apperrors.NewConflictError("could not generate a unique host code")
}

// GetByID retrieves a host by ID
func (s *HostService) GetByID(ctx context.Context, id int64) (*entities.Host, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByHostCode retrieves a host by host code
func (s *HostService) GetByHostCode(ctx context.Context, hostCode string) (*entities.Host, error) {
	return s.repo.GetByHostCode(ctx, hostCode)
}

// List retrieves every host
func (s *HostService) List(ctx context.Context) ([]*entities.Host, error) {
	return s.repo.List(ctx)
}

// ListSuperHosts retrieves every super-host
func (s *HostService) ListSuperHosts(ctx context.Context) ([]*entities.Host, error) {
	return s.repo.ListSuperHosts(ctx)
}

// Update writes the user-derived fields of a host back to its user.
// The host code and super-host flag cannot be changed here.
func (s *HostService) Update(ctx context.Context, host *entities.Host) (*entities.Host, error) {
	current, err := s.repo.GetByID(ctx, host.ID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, current.UserID)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(host.Email)
	if email == "" {
		return nil, apperrors.NewValidationError("email is required")
	}
	if email != user.Email {
		existing, err := s.users.GetByEmail(ctx, email)
		if err == nil && existing.ID != user.ID {
			return nil, apperrors.NewConflictError(fmt.Sprintf("user with email %s already exists", email))
		}
		if err != nil && !apperrors.IsNotFound(err) {
			return nil, err
		}
	}

	user.FirstName = host.FirstName
	user.LastName = host.LastName
	user.Email = email
	user.Address = host.Address
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, current.ID)
}

// Delete deletes a host. The underlying user is kept.
func (s *HostService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// DeleteAll deletes every host
func (s *HostService) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}

// CountBookingsByHostCode counts bookings across the host's residences
func (s *HostService) CountBookingsByHostCode(ctx context.Context, hostCode string) (int64, error) {
	if _, err := s.repo.GetByHostCode(ctx, hostCode); err != nil {
		return 0, err
	}
	return s.bookings.CountByHostCode(ctx, hostCode)
}
