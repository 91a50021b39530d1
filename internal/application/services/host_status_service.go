package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	"github.com/zatekoja/shortstay/backend/internal/domain/repositories"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/observability"
)

// HostStatusService keeps a host's super-host flag in line with its booking count
type HostStatusService struct {
	hosts     repositories.HostRepository
	bookings  repositories.BookingRepository
	threshold int
	metrics   *observability.Metrics
}

// NewHostStatusService creates a new host status service. A non-positive
// threshold falls back to entities.DefaultSuperHostThreshold.
func NewHostStatusService(
	hosts repositories.HostRepository,
	bookings repositories.BookingRepository,
	threshold int,
	metrics *observability.Metrics,
) *HostStatusService {
	if threshold <= 0 {
		threshold = entities.DefaultSuperHostThreshold
	}
	return &HostStatusService{
		hosts:     hosts,
		bookings:  bookings,
		threshold: threshold,
		metrics:   metrics,
	}
}

// Threshold returns the booking count at which a host becomes a super-host
func (s *HostStatusService) Threshold() int {
	return s.threshold
}

// Recompute re-derives the super-host flag of one host and writes it when
// it changed
func (s *HostStatusService) Recompute(ctx context.Context, hostID int64) error {
	host, err := s.hosts.GetByID(ctx, hostID)
	if err != nil {
		return err
	}
	return s.apply(ctx, host)
}

// RecomputeAll recomputes every host, continuing past individual failures
func (s *HostStatusService) RecomputeAll(ctx context.Context) error {
	hosts, err := s.hosts.List(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, host := range hosts {
		if err := s.apply(ctx, host); err != nil {
			errs = append(errs, fmt.Errorf("host %d: %w", host.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (s *HostStatusService) apply(ctx context.Context, host *entities.Host) error {
	count, err := s.bookings.CountByHostCode(ctx, host.HostCode)
	if err != nil {
		return err
	}

	superHost := entities.QualifiesAsSuperHost(count, s.threshold)
	if superHost == host.IsSuperHost {
		return nil
	}

	if err := s.hosts.UpdateSuperHostStatus(ctx, host.ID, superHost); err != nil {
		return err
	}
	host.IsSuperHost = superHost
	host.TotalBookings = count

	observability.RecordSuperHostChange(ctx, s.metrics, superHost)
	observability.LoggerFromContext(ctx).Info().
		Int64("host_id", host.ID).
		Int64("total_bookings", count).
		Bool("super_host", superHost).
		Msg("super-host status changed")
	return nil
}
