package repositories

import (
	"context"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
)

// BookingCheck inspects the current bookings of the target residence before
// a write. Returning an error aborts the write.
type BookingCheck func(existing []*entities.Booking) error

// BookingRepository defines the interface for booking data operations.
//
// CreateExclusive and UpdateExclusive hold an exclusive per-residence scope
// for the whole read-check-write sequence, so concurrent writers on the same
// residence cannot both pass the check.
type BookingRepository interface {
	// CreateExclusive runs check against the residence's bookings and inserts
	// the booking (setting ID and CreatedAt) when check passes
	CreateExclusive(ctx context.Context, booking *entities.Booking, check BookingCheck) error

	// UpdateExclusive runs check against the target residence's bookings and
	// replaces the stored booking when check passes
	UpdateExclusive(ctx context.Context, booking *entities.Booking, check BookingCheck) error

	GetByID(ctx context.Context, id int64) (*entities.Booking, error)
	List(ctx context.Context) ([]*entities.Booking, error)
	ListByResidence(ctx context.Context, residenceID int64) ([]*entities.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.Booking, error)

	// LastByUser returns the user's booking with the latest start
	LastByUser(ctx context.Context, userID int64) (*entities.Booking, error)

	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)

	// CountByHostCode counts bookings across every residence owned by the host
	CountByHostCode(ctx context.Context, hostCode string) (int64, error)
}
