package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/shortstay/backend/internal/adapters/database"
	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

var bookingRowColumns = []string{"id", "residence_id", "user_id", "start_date", "end_date", "created_at"}

func setupMockDB(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { _ = mockDB.Close() })
	return postgres.NewClientFromDB(mockDB), mock
}

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestUserAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns the generated id", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		user := &entities.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
		err := database.NewUserAdapter(client).Create(ctx, user)

		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err := database.NewUserAdapter(client).Create(ctx, &entities.User{Email: "ada@example.com"})

		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectQuery(`SELECT (.+) FROM "users"`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "password_hash", "address", "registration_date"}))

		user, err := database.NewUserAdapter(client).GetByID(ctx, 42)

		assert.Nil(t, user)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("empty list is not an error", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectQuery(`SELECT (.+) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "password_hash", "address", "registration_date"}))

		users, err := database.NewUserAdapter(client).List(ctx)

		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("delete of unknown id is not found", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectExec(`DELETE FROM "users"`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := database.NewUserAdapter(client).Delete(ctx, 9)

		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("delete all reports removed rows", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectExec(`DELETE FROM "users"`).WillReturnResult(sqlmock.NewResult(0, 3))

		removed, err := database.NewUserAdapter(client).DeleteAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(3), removed)
	})

	t.Run("most booked days scans the report row", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectQuery(`SELECT (.+) FROM "users" AS "u" INNER JOIN "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "first_name", "last_name", "email", "password_hash", "address", "registration_date", "booked_days",
			}).AddRow(3, "Grace", "Hopper", "grace@example.com", "hash", "1 Navy Way", day(1), 12))

		report, err := database.NewUserAdapter(client).MostBookedDays(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(3), report.ID)
		assert.Equal(t, int64(12), report.BookedDays)
	})
}

func TestHostAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("super-host update writes only the flag", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectExec(`UPDATE "hosts" SET "is_super_host"=`).
			WithArgs(true, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := database.NewHostAdapter(client).UpdateSuperHostStatus(ctx, 3, true)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lookup by code returns the joined host", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectQuery(`SELECT (.+) FROM "hosts" AS "h" INNER JOIN "users"`).
			WithArgs("HOST-0A1B2C3D").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "host_code", "is_super_host", "created_at",
				"first_name", "last_name", "email", "address", "total_bookings",
			}).AddRow(2, 5, "HOST-0A1B2C3D", false, day(1), "Lin", "Chen", "lin@example.com", "Main St", 99))

		host, err := database.NewHostAdapter(client).GetByHostCode(ctx, "HOST-0A1B2C3D")

		require.NoError(t, err)
		assert.Equal(t, int64(99), host.TotalBookings)
		assert.Equal(t, "lin@example.com", host.Email)
	})
}

func TestResidenceAdapter_MostPopularSince(t *testing.T) {
	ctx := context.Background()

	t.Run("no bookings in window is not found", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectQuery(`SELECT (.+) FROM "residences" AS "r" INNER JOIN "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "booking_count"}))

		report, err := database.NewResidenceAdapter(client).MostPopularSince(ctx, day(1))

		assert.Nil(t, report)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("address and floor collision is a conflict", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectQuery(`INSERT INTO "residences"`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "residences_address_floor_key"})

		err := database.NewResidenceAdapter(client).Create(ctx, &entities.Residence{Address: "Main St", Floor: 2})

		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestBookingAdapter_CreateExclusive(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts under the residence lock", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns))
		mock.ExpectQuery(`INSERT INTO "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectCommit()

		booking := &entities.Booking{ResidenceID: 5, UserID: 1, StartDate: day(1), EndDate: day(5)}
		var seen int
		err := database.NewBookingAdapter(client).CreateExclusive(ctx, booking, func(existing []*entities.Booking) error {
			seen = len(existing)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 0, seen)
		assert.Equal(t, int64(11), booking.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejected check rolls back", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns).AddRow(1, 5, 2, day(1), day(5), day(1)))
		mock.ExpectRollback()

		booking := &entities.Booking{ResidenceID: 5, UserID: 1, StartDate: day(3), EndDate: day(7)}
		err := database.NewBookingAdapter(client).CreateExclusive(ctx, booking, func(existing []*entities.Booking) error {
			if entities.FindOverlap(booking, existing) != nil {
				return apperrors.NewConflictError("a booking already exists for the selected period")
			}
			return nil
		})

		assert.True(t, apperrors.IsConflict(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exclusion violation is a conflict", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).WillReturnRows(sqlmock.NewRows(bookingRowColumns))
		mock.ExpectQuery(`INSERT INTO "bookings"`).
			WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})
		mock.ExpectRollback()

		booking := &entities.Booking{ResidenceID: 5, UserID: 1, StartDate: day(1), EndDate: day(5)}
		err := database.NewBookingAdapter(client).CreateExclusive(ctx, booking, func([]*entities.Booking) error { return nil })

		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Contains(t, err.Error(), "a booking already exists for the selected period")
	})
}

func TestBookingAdapter_UpdateExclusive_NotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).WillReturnRows(sqlmock.NewRows(bookingRowColumns))
	mock.ExpectExec(`UPDATE "bookings"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	booking := &entities.Booking{ID: 77, ResidenceID: 5, UserID: 1, StartDate: day(1), EndDate: day(5)}
	err := database.NewBookingAdapter(client).UpdateExclusive(context.Background(), booking, func([]*entities.Booking) error { return nil })

	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingAdapter_CountByHostCode(t *testing.T) {
	client, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "bookings" AS "b"`).
		WithArgs("HOST-0A1B2C3D").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := database.NewBookingAdapter(client).CountByHostCode(context.Background(), "HOST-0A1B2C3D")

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestFeedbackAdapter_GetByUserAndBooking_NotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "feedbacks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "user_id", "title", "rating", "comment", "created_at"}))

	feedback, err := database.NewFeedbackAdapter(client).GetByUserAndBooking(context.Background(), 1, 2)

	assert.Nil(t, feedback)
	assert.True(t, apperrors.IsNotFound(err))
}
