package repositories

import (
	"context"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts a user and sets its ID
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// List retrieves every user
	List(ctx context.Context) ([]*entities.User, error)

	// Update replaces a user's stored fields
	Update(ctx context.Context, user *entities.User) error

	// Delete deletes a user
	Delete(ctx context.Context, id int64) error

	// DeleteByEmail deletes a user by email
	DeleteByEmail(ctx context.Context, email string) error

	// DeleteAll deletes every user and returns how many were removed
	DeleteAll(ctx context.Context) (int64, error)

	// MostBookedDays returns the user with the highest total of booked days
	MostBookedDays(ctx context.Context) (*entities.UserBookedDays, error)
}
