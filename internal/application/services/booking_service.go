package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	"github.com/zatekoja/shortstay/backend/internal/domain/providers"
	"github.com/zatekoja/shortstay/backend/internal/domain/repositories"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

// ErrMsgBookingOverlap is returned when a booking collides with an existing one
const ErrMsgBookingOverlap = "a booking already exists for the selected period"

// BookingService handles the booking lifecycle
type BookingService struct {
	repo       repositories.BookingRepository
	residences repositories.ResidenceRepository
	users      repositories.UserRepository
	hostStatus *HostStatusService
	eventBus   providers.EventBus
	metrics    *observability.Metrics
}

// NewBookingService creates a new booking service. hostStatus, eventBus and
// metrics may be nil.
func NewBookingService(
	repo repositories.BookingRepository,
	residences repositories.ResidenceRepository,
	users repositories.UserRepository,
	hostStatus *HostStatusService,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *BookingService {
	return &BookingService{
		repo:       repo,
		residences: residences,
		users:      users,
		hostStatus: hostStatus,
		eventBus:   eventBus,
		metrics:    metrics,
	}
}

// overlapCheck rejects candidate when any existing booking other than
// itself overlaps it
func overlapCheck(candidate *entities.Booking) repositories.BookingCheck {
	return func(existing []*entities.Booking) error {
		if entities.FindOverlap(candidate, existing) != nil {
			return apperrors.NewConflictError(ErrMsgBookingOverlap)
		}
		return nil
	}
}

func validatePeriod(booking *entities.Booking) error {
	if booking.StartDate.IsZero() || booking.EndDate.IsZero() {
		return apperrors.NewValidationError("start date and end date are required")
	}
	if !booking.HasValidPeriod() {
		return apperrors.NewValidationError("end date must be after start date")
	}
	return nil
}

// Create books a residence for a user when the period is free
func (s *BookingService) Create(ctx context.Context, booking *entities.Booking) error {
	ctx, span := observability.StartSpan(ctx, "BookingService.Create")
	defer span.End()
	observability.SetSpanAttributes(span,
		attribute.Int64("booking.residence_id", booking.ResidenceID),
		attribute.Int64("booking.user_id", booking.UserID),
	)

	if err := validatePeriod(booking); err != nil {
		return err
	}

	residence, err := s.residences.GetByID(ctx, booking.ResidenceID)
	if err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, booking.UserID); err != nil {
		return err
	}

	booking.ID = 0
	if err := s.repo.CreateExclusive(ctx, booking, overlapCheck(booking)); err != nil {
		if apperrors.IsConflict(err) {
			observability.RecordBookingConflict(ctx, s.metrics, booking.ResidenceID)
		} else {
			observability.RecordError(span, err)
		}
		return err
	}

	observability.RecordBookingCreated(ctx, s.metrics, booking.ResidenceID)
	s.bookingsChanged(ctx, entities.BookingEventTypeCreated, booking, residence.HostID)
	return nil
}

// Update replaces a booking, re-running the overlap check against every
// other booking of the target residence
func (s *BookingService) Update(ctx context.Context, booking *entities.Booking) error {
	ctx, span := observability.StartSpan(ctx, "BookingService.Update")
	defer span.End()
	observability.SetSpanAttributes(span, attribute.Int64("booking.id", booking.ID))

	current, err := s.repo.GetByID(ctx, booking.ID)
	if err != nil {
		return err
	}

	if err := validatePeriod(booking); err != nil {
		return err
	}

	residence, err := s.residences.GetByID(ctx, booking.ResidenceID)
	if err != nil {
		return err
	}
	if booking.UserID != current.UserID {
		if _, err := s.users.GetByID(ctx, booking.UserID); err != nil {
			return err
		}
	}
	booking.CreatedAt = current.CreatedAt

	if err := s.repo.UpdateExclusive(ctx, booking, overlapCheck(booking)); err != nil {
		if apperrors.IsConflict(err) {
			observability.RecordBookingConflict(ctx, s.metrics, booking.ResidenceID)
		} else {
			observability.RecordError(span, err)
		}
		return err
	}

	hostIDs := []int64{residence.HostID}
	if current.ResidenceID != booking.ResidenceID {
		if previous, err := s.residences.GetByID(ctx, current.ResidenceID); err == nil {
			if previous.HostID != residence.HostID {
				hostIDs = append(hostIDs, previous.HostID)
			}
		} else {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Int64("residence_id", current.ResidenceID).
				Msg("failed to resolve previous residence owner")
		}
	}

	s.bookingsChanged(ctx, entities.BookingEventTypeUpdated, booking, hostIDs...)
	return nil
}

// Delete deletes a booking
func (s *BookingService) Delete(ctx context.Context, id int64) error {
	ctx, span := observability.StartSpan(ctx, "BookingService.Delete")
	defer span.End()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		observability.RecordError(span, err)
		return err
	}

	residence, err := s.residences.GetByID(ctx, current.ResidenceID)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Int64("residence_id", current.ResidenceID).
			Msg("failed to resolve residence owner")
		s.bookingsChanged(ctx, entities.BookingEventTypeDeleted, current)
		return nil
	}

	s.bookingsChanged(ctx, entities.BookingEventTypeDeleted, current, residence.HostID)
	return nil
}

// DeleteAll deletes every booking and recomputes every host's status
func (s *BookingService) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := observability.StartSpan(ctx, "BookingService.DeleteAll")
	defer span.End()

	removed, err := s.repo.DeleteAll(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return 0, err
	}

	s.bookingsChanged(ctx, entities.BookingEventTypeCleared, nil)
	return removed, nil
}

// GetByID retrieves a booking by ID
func (s *BookingService) GetByID(ctx context.Context, id int64) (*entities.Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves every booking
func (s *BookingService) List(ctx context.Context) ([]*entities.Booking, error) {
	return s.repo.List(ctx)
}

// ListByResidence retrieves a residence's bookings. An unknown residence is
// NotFound; a residence without bookings yields an empty list.
func (s *BookingService) ListByResidence(ctx context.Context, residenceID int64) ([]*entities.Booking, error) {
	if _, err := s.residences.GetByID(ctx, residenceID); err != nil {
		return nil, err
	}
	return s.repo.ListByResidence(ctx, residenceID)
}

// ListByUser retrieves a user's bookings
func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]*entities.Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// LastByUser retrieves the user's booking with the latest start
func (s *BookingService) LastByUser(ctx context.Context, userID int64) (*entities.Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.LastByUser(ctx, userID)
}

// bookingsChanged is the single follow-up for every booking mutation. Host
// status is recomputed synchronously but failures only get logged; the
// mutation itself has already succeeded.
func (s *BookingService) bookingsChanged(ctx context.Context, eventType entities.BookingEventType, booking *entities.Booking, hostIDs ...int64) {
	logger := observability.LoggerFromContext(ctx)

	if s.hostStatus != nil {
		if eventType == entities.BookingEventTypeCleared {
			if err := s.hostStatus.RecomputeAll(ctx); err != nil {
				logger.Warn().Err(err).Msg("failed to recompute host status")
			}
		}
		for _, hostID := range hostIDs {
			if err := s.hostStatus.Recompute(ctx, hostID); err != nil {
				logger.Warn().Err(err).Int64("host_id", hostID).Msg("failed to recompute host status")
			}
		}
	}

	if s.eventBus == nil {
		return
	}

	var hostID int64
	if len(hostIDs) > 0 {
		hostID = hostIDs[0]
	}
	event := entities.NewBookingEvent(eventType, booking, hostID)
	if err := s.eventBus.Publish(ctx, providers.EventChannelBookings, event); err != nil {
		logger.Warn().Err(err).Str("event_type", string(eventType)).Msg("failed to publish booking event")
	}
}
