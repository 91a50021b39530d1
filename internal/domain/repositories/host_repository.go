package repositories

import (
	"context"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
)

// HostRepository defines the interface for host data operations.
// Read methods return hosts joined with their user and with TotalBookings
// computed from the bookings of the host's residences.
type HostRepository interface {
	// Create inserts the host row (user id, host code, super-host flag) and sets ID
	Create(ctx context.Context, host *entities.Host) error

	GetByID(ctx context.Context, id int64) (*entities.Host, error)
	GetByUserID(ctx context.Context, userID int64) (*entities.Host, error)
	GetByHostCode(ctx context.Context, hostCode string) (*entities.Host, error)

	List(ctx context.Context) ([]*entities.Host, error)
	ListSuperHosts(ctx context.Context) ([]*entities.Host, error)

	// UpdateSuperHostStatus writes only the super-host flag
	UpdateSuperHostStatus(ctx context.Context, id int64, isSuperHost bool) error

	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}
