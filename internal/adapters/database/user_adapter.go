package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	"github.com/zatekoja/shortstay/backend/internal/domain/repositories"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

var userColumns = []interface{}{
	"id", "first_name", "last_name", "email", "password_hash", "address", "registration_date",
}

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     newGoquDB(client),
	}
}

// Create creates a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	record := goqu.Record{
		"first_name":        user.FirstName,
		"last_name":         user.LastName,
		"email":             user.Email,
		"password_hash":     user.PasswordHash,
		"address":           user.Address,
		"registration_date": user.RegistrationDate,
	}

	query, args, err := a.db.Insert("users").Rows(record).Returning("id").Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.X().QueryRowxContext(ctx, query, args...).Scan(&user.ID); err != nil {
		return mapWriteError(err, "failed to create user")
	}

	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return a.getOne(ctx, goqu.Ex{"id": id}, fmt.Sprintf("user with id %d not found", id))
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.getOne(ctx, goqu.Ex{"email": email}, fmt.Sprintf("user with email %s not found", email))
}

func (a *UserAdapter) getOne(ctx context.Context, where goqu.Ex, notFound string) (*entities.User, error) {
	query, args, err := a.db.From("users").Select(userColumns...).Where(where).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user := &entities.User{}
	if err := a.client.X().GetContext(ctx, user, query, args...); err != nil {
		return nil, mapReadError(err, notFound, "failed to get user")
	}
	return user, nil
}

// List retrieves all users ordered by ID
func (a *UserAdapter) List(ctx context.Context) ([]*entities.User, error) {
	query, args, err := a.db.From("users").Select(userColumns...).Order(goqu.I("id").Asc()).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	users := make([]*entities.User, 0)
	if err := a.client.X().SelectContext(ctx, &users, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	return users, nil
}

// Update updates a user
func (a *UserAdapter) Update(ctx context.Context, user *entities.User) error {
	record := goqu.Record{
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"address":       user.Address,
	}

	query, args, err := a.db.Update("users").Set(record).Where(goqu.Ex{"id": user.ID}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "failed to update user")
	}

	return requireAffected(result, fmt.Sprintf("user with id %d not found", user.ID))
}

// Delete deletes a user
func (a *UserAdapter) Delete(ctx context.Context, id int64) error {
	return a.deleteWhere(ctx, goqu.Ex{"id": id}, fmt.Sprintf("user with id %d not found", id))
}

// DeleteByEmail deletes a user by email
func (a *UserAdapter) DeleteByEmail(ctx context.Context, email string) error {
	return a.deleteWhere(ctx, goqu.Ex{"email": email}, fmt.Sprintf("user with email %s not found", email))
}

func (a *UserAdapter) deleteWhere(ctx context.Context, where goqu.Ex, notFound string) error {
	query, args, err := a.db.Delete("users").Where(where).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "failed to delete user")
	}

	return requireAffected(result, notFound)
}

// DeleteAll deletes every user
func (a *UserAdapter) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := a.db.Delete("users").Prepared(true).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapWriteError(err, "failed to delete users")
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to get rows affected", err)
	}
	return removed, nil
}

// MostBookedDays returns the user whose bookings cover the most calendar days
func (a *UserAdapter) MostBookedDays(ctx context.Context) (*entities.UserBookedDays, error) {
	query, args, err := a.db.From(goqu.T("users").As("u")).
		Join(goqu.T("bookings").As("b"), goqu.On(goqu.I("b.user_id").Eq(goqu.I("u.id")))).
		Select(
			goqu.I("u.id"), goqu.I("u.first_name"), goqu.I("u.last_name"), goqu.I("u.email"),
			goqu.I("u.password_hash"), goqu.I("u.address"), goqu.I("u.registration_date"),
			goqu.SUM(goqu.L(`"b"."end_date"::date - "b"."start_date"::date`)).As("booked_days"),
		).
		GroupBy(goqu.I("u.id")).
		Order(goqu.I("booked_days").Desc(), goqu.I("u.id").Asc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build report query", err)
	}

	report := &entities.UserBookedDays{}
	if err := a.client.X().GetContext(ctx, report, query, args...); err != nil {
		return nil, mapReadError(err, "no bookings recorded for any user", "failed to compute most booked days")
	}
	return report, nil
}
