package repositories

import (
	"context"
	"time"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
)

// ResidenceRepository defines the interface for residence data operations
type ResidenceRepository interface {
	// Create inserts a residence and sets its ID
	Create(ctx context.Context, residence *entities.Residence) error

	// GetByID retrieves a residence by ID
	GetByID(ctx context.Context, id int64) (*entities.Residence, error)

	// GetByAddressAndFloor retrieves a residence by its natural key
	GetByAddressAndFloor(ctx context.Context, address string, floor int) (*entities.Residence, error)

	// List retrieves every residence
	List(ctx context.Context) ([]*entities.Residence, error)

	// ListByHostID retrieves residences owned by a host
	ListByHostID(ctx context.Context, hostID int64) ([]*entities.Residence, error)

	// ListByHostCode retrieves residences owned by the host with the given code
	ListByHostCode(ctx context.Context, hostCode string) ([]*entities.Residence, error)

	// Update replaces a residence's stored fields
	Update(ctx context.Context, residence *entities.Residence) error

	// Delete deletes a residence
	Delete(ctx context.Context, id int64) error

	// DeleteAll deletes every residence and returns how many were removed
	DeleteAll(ctx context.Context) (int64, error)

	// MostPopularSince returns the residence with the most bookings starting
	// at or after since
	MostPopularSince(ctx context.Context, since time.Time) (*entities.ResidencePopularity, error)
}
