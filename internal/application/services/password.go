package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

// PasswordHasher hashes and verifies user passwords with bcrypt
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher. A cost outside bcrypt's range falls
// back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of password
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", apperrors.NewValidationError("password is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.NewValidationError("password must be at most 72 bytes")
		}
		return "", apperrors.NewInternalError("failed to hash password", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash
func (h *PasswordHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
