package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	"github.com/zatekoja/shortstay/backend/internal/domain/repositories"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

var feedbackColumns = []interface{}{
	"id", "booking_id", "user_id", "title", "rating", "comment", "created_at",
}

// FeedbackAdapter implements feedback persistence in Postgres.
type FeedbackAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFeedbackAdapter creates a new feedback adapter.
func NewFeedbackAdapter(client *postgres.Client) repositories.FeedbackRepository {
	return &FeedbackAdapter{
		client: client,
		db:     newGoquDB(client),
	}
}

// Create inserts a feedback record.
func (a *FeedbackAdapter) Create(ctx context.Context, feedback *entities.Feedback) error {
	if feedback == nil {
		return apperrors.NewInternalError("feedback is nil", fmt.Errorf("feedback is nil"))
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"booking_id": feedback.BookingID,
		"user_id":    feedback.UserID,
		"title":      feedback.Title,
		"rating":     feedback.Rating,
		"comment":    feedback.Comment,
		"created_at": feedback.CreatedAt,
	}

	query, args, err := a.db.Insert("feedbacks").Rows(record).Returning("id").Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build feedback insert query", err)
	}

	if err := a.client.X().QueryRowxContext(ctx, query, args...).Scan(&feedback.ID); err != nil {
		return mapWriteError(err, "failed to create feedback")
	}

	return nil
}

func (a *FeedbackAdapter) getOne(ctx context.Context, where goqu.Ex, notFound string) (*entities.Feedback, error) {
	query, args, err := a.db.From("feedbacks").Select(feedbackColumns...).Where(where).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	feedback := &entities.Feedback{}
	if err := a.client.X().GetContext(ctx, feedback, query, args...); err != nil {
		return nil, mapReadError(err, notFound, "failed to get feedback")
	}
	return feedback, nil
}

// GetByID retrieves feedback by ID
func (a *FeedbackAdapter) GetByID(ctx context.Context, id int64) (*entities.Feedback, error) {
	return a.getOne(ctx, goqu.Ex{"id": id}, fmt.Sprintf("feedback with id %d not found", id))
}

// GetByUserAndBooking retrieves the feedback a user left on a booking
func (a *FeedbackAdapter) GetByUserAndBooking(ctx context.Context, userID, bookingID int64) (*entities.Feedback, error) {
	return a.getOne(ctx,
		goqu.Ex{"user_id": userID, "booking_id": bookingID},
		fmt.Sprintf("feedback of user %d for booking %d not found", userID, bookingID),
	)
}

// List retrieves all feedback
func (a *FeedbackAdapter) List(ctx context.Context) ([]*entities.Feedback, error) {
	return a.list(ctx, nil)
}

// ListByUser retrieves feedback written by a user
func (a *FeedbackAdapter) ListByUser(ctx context.Context, userID int64) ([]*entities.Feedback, error) {
	return a.list(ctx, goqu.Ex{"user_id": userID})
}

// ListByBooking retrieves feedback left on a booking
func (a *FeedbackAdapter) ListByBooking(ctx context.Context, bookingID int64) ([]*entities.Feedback, error) {
	return a.list(ctx, goqu.Ex{"booking_id": bookingID})
}

func (a *FeedbackAdapter) list(ctx context.Context, where goqu.Ex) ([]*entities.Feedback, error) {
	ds := a.db.From("feedbacks").Select(feedbackColumns...).Order(goqu.I("id").Asc())
	if where != nil {
		ds = ds.Where(where)
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	feedbacks := make([]*entities.Feedback, 0)
	if err := a.client.X().SelectContext(ctx, &feedbacks, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list feedback", err)
	}
	return feedbacks, nil
}

// Update replaces a feedback record
func (a *FeedbackAdapter) Update(ctx context.Context, feedback *entities.Feedback) error {
	query, args, err := a.db.Update("feedbacks").Set(goqu.Record{
		"booking_id": feedback.BookingID,
		"user_id":    feedback.UserID,
		"title":      feedback.Title,
		"rating":     feedback.Rating,
		"comment":    feedback.Comment,
	}).Where(goqu.Ex{"id": feedback.ID}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "failed to update feedback")
	}
	return requireAffected(result, fmt.Sprintf("feedback with id %d not found", feedback.ID))
}

// Delete deletes feedback by ID
func (a *FeedbackAdapter) Delete(ctx context.Context, id int64) error {
	query, args, err := a.db.Delete("feedbacks").Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "failed to delete feedback")
	}
	return requireAffected(result, fmt.Sprintf("feedback with id %d not found", id))
}

// DeleteAll deletes every feedback record
func (a *FeedbackAdapter) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := a.db.Delete("feedbacks").Prepared(true).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapWriteError(err, "failed to delete feedback")
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to get rows affected", err)
	}
	return removed, nil
}
