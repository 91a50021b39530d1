package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	"github.com/zatekoja/shortstay/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

// UserService handles user registration and maintenance
type UserService struct {
	repo   repositories.UserRepository
	hasher *PasswordHasher
	now    func() time.Time
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository, hasher *PasswordHasher) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		now:    time.Now,
	}
}

// Create registers a user. The email must be unused.
func (s *UserService) Create(ctx context.Context, user *entities.User, password string) error {
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return apperrors.NewValidationError("email is required")
	}

	if err := s.ensureEmailFree(ctx, user.Email, 0); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if user.RegistrationDate.IsZero() {
		user.RegistrationDate = s.now().UTC()
	}

	return s.repo.Create(ctx, user)
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperrors.NewConflictError(fmt.Sprintf("user with email %s already exists", email))
	}
	return nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// List retrieves every user
func (s *UserService) List(ctx context.Context) ([]*entities.User, error) {
	return s.repo.List(ctx)
}

// Update replaces a user. A non-empty password is re-hashed; otherwise the
// stored hash is kept.
func (s *UserService) Update(ctx context.Context, user *entities.User, password string) error {
	current, err := s.repo.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}

	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return apperrors.NewValidationError("email is required")
	}
	if user.Email != current.Email {
		if err := s.ensureEmailFree(ctx, user.Email, user.ID); err != nil {
			return err
		}
	}

	user.PasswordHash = current.PasswordHash
	if password != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}
	user.RegistrationDate = current.RegistrationDate

	return s.repo.Update(ctx, user)
}

// Delete deletes a user
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// DeleteByEmail deletes a user by email
func (s *UserService) DeleteByEmail(ctx context.Context, email string) error {
	return s.repo.DeleteByEmail(ctx, email)
}

// DeleteAll deletes every user
func (s *UserService) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}

// MostBookedDays returns the user with the most booked days
func (s *UserService) MostBookedDays(ctx context.Context) (*entities.UserBookedDays, error) {
	return s.repo.MostBookedDays(ctx)
}

// VerifyPassword checks a password against the stored hash of the user
// with the given email
func (s *UserService) VerifyPassword(ctx context.Context, email, password string) (bool, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return s.hasher.Verify(user.PasswordHash, password), nil
}
