package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	"github.com/zatekoja/shortstay/backend/internal/domain/repositories"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

// lockResidenceSQL serializes writers of one residence until the
// surrounding transaction ends.
const lockResidenceSQL = "SELECT pg_advisory_xact_lock($1)"

var bookingColumns = []interface{}{
	"id", "residence_id", "user_id", "start_date", "end_date", "created_at",
}

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     newGoquDB(client),
	}
}

// CreateExclusive inserts a booking after check accepted the residence's
// current calendar, all under the residence's advisory lock.
func (a *BookingAdapter) CreateExclusive(ctx context.Context, booking *entities.Booking, check repositories.BookingCheck) error {
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	return a.client.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := a.lockAndCheck(ctx, tx, booking.ResidenceID, check); err != nil {
			return err
		}

		query, args, err := a.db.Insert("bookings").Rows(goqu.Record{
			"residence_id": booking.ResidenceID,
			"user_id":      booking.UserID,
			"start_date":   booking.StartDate,
			"end_date":     booking.EndDate,
			"created_at":   booking.CreatedAt,
		}).Returning("id").Prepared(true).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}

		if err := tx.QueryRowxContext(ctx, query, args...).Scan(&booking.ID); err != nil {
			return mapWriteError(err, "failed to create booking")
		}
		return nil
	})
}

// UpdateExclusive replaces a booking after check accepted the target
// residence's calendar, under that residence's advisory lock.
func (a *BookingAdapter) UpdateExclusive(ctx context.Context, booking *entities.Booking, check repositories.BookingCheck) error {
	return a.client.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := a.lockAndCheck(ctx, tx, booking.ResidenceID, check); err != nil {
			return err
		}

		query, args, err := a.db.Update("bookings").Set(goqu.Record{
			"residence_id": booking.ResidenceID,
			"user_id":      booking.UserID,
			"start_date":   booking.StartDate,
			"end_date":     booking.EndDate,
		}).Where(goqu.Ex{"id": booking.ID}).Prepared(true).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build update query", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return mapWriteError(err, "failed to update booking")
		}
		return requireAffected(result, fmt.Sprintf("booking with id %d not found", booking.ID))
	})
}

func (a *BookingAdapter) lockAndCheck(ctx context.Context, tx *sqlx.Tx, residenceID int64, check repositories.BookingCheck) error {
	if _, err := tx.ExecContext(ctx, lockResidenceSQL, residenceID); err != nil {
		return apperrors.NewInternalError("failed to lock residence calendar", err)
	}

	if check == nil {
		return nil
	}

	query, args, err := a.byResidence(residenceID).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build list query", err)
	}

	existing := make([]*entities.Booking, 0)
	if err := tx.SelectContext(ctx, &existing, query, args...); err != nil {
		return apperrors.NewInternalError("failed to list residence bookings", err)
	}

	return check(existing)
}

func (a *BookingAdapter) byResidence(residenceID int64) *goqu.SelectDataset {
	return a.db.From("bookings").
		Select(bookingColumns...).
		Where(goqu.Ex{"residence_id": residenceID}).
		Order(goqu.I("start_date").Asc())
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id int64) (*entities.Booking, error) {
	query, args, err := a.db.From("bookings").Select(bookingColumns...).Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking := &entities.Booking{}
	if err := a.client.X().GetContext(ctx, booking, query, args...); err != nil {
		return nil, mapReadError(err, fmt.Sprintf("booking with id %d not found", id), "failed to get booking")
	}
	return booking, nil
}

// List retrieves all bookings
func (a *BookingAdapter) List(ctx context.Context) ([]*entities.Booking, error) {
	return a.list(ctx, a.db.From("bookings").Select(bookingColumns...).Order(goqu.I("id").Asc()))
}

// ListByResidence retrieves a residence's bookings ordered by start
func (a *BookingAdapter) ListByResidence(ctx context.Context, residenceID int64) ([]*entities.Booking, error) {
	return a.list(ctx, a.byResidence(residenceID))
}

// ListByUser retrieves a user's bookings ordered by start
func (a *BookingAdapter) ListByUser(ctx context.Context, userID int64) ([]*entities.Booking, error) {
	return a.list(ctx, a.db.From("bookings").
		Select(bookingColumns...).
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("start_date").Asc()))
}

func (a *BookingAdapter) list(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Booking, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	bookings := make([]*entities.Booking, 0)
	if err := a.client.X().SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	return bookings, nil
}

// LastByUser returns the user's booking with the latest start
func (a *BookingAdapter) LastByUser(ctx context.Context, userID int64) (*entities.Booking, error) {
	query, args, err := a.db.From("bookings").
		Select(bookingColumns...).
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("start_date").Desc(), goqu.I("id").Desc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking := &entities.Booking{}
	if err := a.client.X().GetContext(ctx, booking, query, args...); err != nil {
		return nil, mapReadError(err, fmt.Sprintf("user %d has no bookings", userID), "failed to get last booking")
	}
	return booking, nil
}

// Delete deletes a booking
func (a *BookingAdapter) Delete(ctx context.Context, id int64) error {
	query, args, err := a.db.Delete("bookings").Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "failed to delete booking")
	}
	return requireAffected(result, fmt.Sprintf("booking with id %d not found", id))
}

// DeleteAll deletes every booking
func (a *BookingAdapter) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := a.db.Delete("bookings").Prepared(true).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapWriteError(err, "failed to delete bookings")
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to get rows affected", err)
	}
	return removed, nil
}

// CountByHostCode counts bookings across every residence of a host
func (a *BookingAdapter) CountByHostCode(ctx context.Context, hostCode string) (int64, error) {
	query, args, err := a.db.From(goqu.T("bookings").As("b")).
		Join(goqu.T("residences").As("r"), goqu.On(goqu.I("r.id").Eq(goqu.I("b.residence_id")))).
		Join(goqu.T("hosts").As("h"), goqu.On(goqu.I("h.id").Eq(goqu.I("r.host_id")))).
		Where(goqu.I("h.host_code").Eq(hostCode)).
		Select(goqu.COUNT("*")).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int64
	if err := a.client.X().GetContext(ctx, &count, query, args...); err != nil {
		return 0, apperrors.NewInternalError("failed to count host bookings", err)
	}
	return count, nil
}
