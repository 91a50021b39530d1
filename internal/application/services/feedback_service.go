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

// FeedbackService handles feedback submissions.
type FeedbackService struct {
	repo     repositories.FeedbackRepository
	bookings repositories.BookingRepository
	users    repositories.UserRepository
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(
	repo repositories.FeedbackRepository,
	bookings repositories.BookingRepository,
	users repositories.UserRepository,
) *FeedbackService {
	return &FeedbackService{repo: repo, bookings: bookings, users: users}
}

func validateFeedback(feedback *entities.Feedback) error {
	feedback.Title = strings.TrimSpace(feedback.Title)
	if feedback.Title == "" {
		return apperrors.NewValidationError("title is required")
	}
	if feedback.Rating < entities.MinRating || feedback.Rating > entities.MaxRating {
		return apperrors.NewValidationError(
			fmt.Sprintf("rating must be between %d and %d", entities.MinRating, entities.MaxRating))
	}
	return nil
}

func (s *FeedbackService) resolveRefs(ctx context.Context, feedback *entities.Feedback) error {
	if _, err := s.bookings.GetByID(ctx, feedback.BookingID); err != nil {
		return err
	}
	_, err := s.users.GetByID(ctx, feedback.UserID)
	return err
}

func (s *FeedbackService) ensureFirstFeedback(ctx context.Context, userID, bookingID, selfID int64) error {
	existing, err := s.repo.GetByUserAndBooking(ctx, userID, bookingID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperrors.NewConflictError(
			fmt.Sprintf("user %d already left feedback for booking %d", userID, bookingID))
	}
	return nil
}

// Create stores feedback. A user may leave one feedback per booking.
func (s *FeedbackService) Create(ctx context.Context, feedback *entities.Feedback) error {
	if err := validateFeedback(feedback); err != nil {
		return err
	}
	if err := s.resolveRefs(ctx, feedback); err != nil {
		return err
	}
	if err := s.ensureFirstFeedback(ctx, feedback.UserID, feedback.BookingID, 0); err != nil {
		return err
	}

	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, feedback)
}

// GetByID retrieves feedback by ID
func (s *FeedbackService) GetByID(ctx context.Context, id int64) (*entities.Feedback, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUserAndBooking retrieves the feedback a user left on a booking
func (s *FeedbackService) GetByUserAndBooking(ctx context.Context, userID, bookingID int64) (*entities.Feedback, error) {
	return s.repo.GetByUserAndBooking(ctx, userID, bookingID)
}

// List retrieves all feedback
func (s *FeedbackService) List(ctx context.Context) ([]*entities.Feedback, error) {
	return s.repo.List(ctx)
}

// ListByUser retrieves a user's feedback; NotFound when the user is unknown
func (s *FeedbackService) ListByUser(ctx context.Context, userID int64) ([]*entities.Feedback, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// ListByBooking retrieves a booking's feedback; NotFound when the booking is unknown
func (s *FeedbackService) ListByBooking(ctx context.Context, bookingID int64) ([]*entities.Feedback, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.repo.ListByBooking(ctx, bookingID)
}

// Update replaces feedback
func (s *FeedbackService) Update(ctx context.Context, feedback *entities.Feedback) error {
	current, err := s.repo.GetByID(ctx, feedback.ID)
	if err != nil {
		return err
	}

	if err := validateFeedback(feedback); err != nil {
		return err
	}
	if feedback.UserID != current.UserID || feedback.BookingID != current.BookingID {
		if err := s.resolveRefs(ctx, feedback); err != nil {
			return err
		}
		if err := s.ensureFirstFeedback(ctx, feedback.UserID, feedback.BookingID, feedback.ID); err != nil {
			return err
		}
	}
	feedback.CreatedAt = current.CreatedAt

	return s.repo.Update(ctx, feedback)
}

// Delete deletes feedback
func (s *FeedbackService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// DeleteAll deletes all feedback
func (s *FeedbackService) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}
