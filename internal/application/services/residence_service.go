package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	"github.com/zatekoja/shortstay/backend/internal/domain/repositories"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

// ResidenceService handles residence listings
type ResidenceService struct {
	repo       repositories.ResidenceRepository
	hosts      repositories.HostRepository
	hostStatus *HostStatusService
	now        func() time.Time
}

// NewResidenceService creates a new residence service. hostStatus may be nil.
func NewResidenceService(
	repo repositories.ResidenceRepository,
	hosts repositories.HostRepository,
	hostStatus *HostStatusService,
) *ResidenceService {
	return &ResidenceService{
		repo:       repo,
		hosts:      hosts,
		hostStatus: hostStatus,
		now:        time.Now,
	}
}

func validateResidence(residence *entities.Residence) error {
	residence.Name = strings.TrimSpace(residence.Name)
	residence.Address = strings.TrimSpace(residence.Address)

	switch {
	case residence.Name == "":
		return apperrors.NewValidationError("name is required")
	case residence.Address == "":
		return apperrors.NewValidationError("address is required")
	case residence.PricePerNight < 0:
		return apperrors.NewValidationError("price per night must not be negative")
	case residence.Rooms < 1:
		return apperrors.NewValidationError("rooms must be at least 1")
	case residence.MaxGuests < 1:
		return apperrors.NewValidationError("max guests must be at least 1")
	case !residence.HasValidAvailability():
		return apperrors.NewValidationError("available from must not be after available to")
	}
	return nil
}

// Create adds a residence owned by hostID
func (s *ResidenceService) Create(ctx context.Context, hostID int64, residence *entities.Residence) error {
	if _, err := s.hosts.GetByID(ctx, hostID); err != nil {
		return err
	}
	residence.HostID = hostID

	if err := validateResidence(residence); err != nil {
		return err
	}
	if err := s.ensureLocationFree(ctx, residence.Address, residence.Floor, 0); err != nil {
		return err
	}

	return s.repo.Create(ctx, residence)
}

func (s *ResidenceService) ensureLocationFree(ctx context.Context, address string, floor int, selfID int64) error {
	existing, err := s.repo.GetByAddressAndFloor(ctx, address, floor)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperrors.NewConflictError(fmt.Sprintf("residence at %s floor %d already exists", address, floor))
	}
	return nil
}

// GetByID retrieves a residence by ID
func (s *ResidenceService) GetByID(ctx context.Context, id int64) (*entities.Residence, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByAddressAndFloor retrieves a residence by address and floor
func (s *ResidenceService) GetByAddressAndFloor(ctx context.Context, address string, floor int) (*entities.Residence, error) {
	return s.repo.GetByAddressAndFloor(ctx, address, floor)
}

// List retrieves every residence
func (s *ResidenceService) List(ctx context.Context) ([]*entities.Residence, error) {
	return s.repo.List(ctx)
}

// ListByHostID retrieves residences of a host; NotFound when the host is unknown
func (s *ResidenceService) ListByHostID(ctx context.Context, hostID int64) ([]*entities.Residence, error) {
	if _, err := s.hosts.GetByID(ctx, hostID); err != nil {
		return nil, err
	}
	return s.repo.ListByHostID(ctx, hostID)
}

// ListByHostCode retrieves residences of the host with hostCode
func (s *ResidenceService) ListByHostCode(ctx context.Context, hostCode string) ([]*entities.Residence, error) {
	if _, err := s.hosts.GetByHostCode(ctx, hostCode); err != nil {
		return nil, err
	}
	return s.repo.ListByHostCode(ctx, hostCode)
}

// Update replaces a residence. Moving it to another host recomputes the
// status of both hosts.
func (s *ResidenceService) Update(ctx context.Context, residence *entities.Residence) error {
	current, err := s.repo.GetByID(ctx, residence.ID)
	if err != nil {
		return err
	}

	if err := validateResidence(residence); err != nil {
		return err
	}
	if residence.Address != current.Address || residence.Floor != current.Floor {
		if err := s.ensureLocationFree(ctx, residence.Address, residence.Floor, residence.ID); err != nil {
			return err
		}
	}
	if residence.HostID != current.HostID {
		if _, err := s.hosts.GetByID(ctx, residence.HostID); err != nil {
			return err
		}
	}

	if err := s.repo.Update(ctx, residence); err != nil {
		return err
	}

	if residence.HostID != current.HostID {
		s.recompute(ctx, current.HostID, residence.HostID)
	}
	return nil
}

// Delete deletes a residence
func (s *ResidenceService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// DeleteAll deletes every residence and recomputes every host's status
func (s *ResidenceService) DeleteAll(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	if s.hostStatus != nil {
		if err := s.hostStatus.RecomputeAll(ctx); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to recompute host status")
		}
	}
	return removed, nil
}

// MostPopularLastMonth returns the residence with the most bookings that
// start within the last month
func (s *ResidenceService) MostPopularLastMonth(ctx context.Context) (*entities.ResidencePopularity, error) {
	since := s.now().UTC().AddDate(0, -1, 0)
	return s.repo.MostPopularSince(ctx, since)
}

func (s *ResidenceService) recompute(ctx context.Context, hostIDs ...int64) {
	if s.hostStatus == nil {
		return
	}
	for _, hostID := range hostIDs {
		if err := s.hostStatus.Recompute(ctx, hostID); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Int64("host_id", hostID).Msg("failed to recompute host status")
		}
	}
}
