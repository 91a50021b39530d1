package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	"github.com/zatekoja/shortstay/backend/internal/domain/repositories"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

// HostAdapter implements the HostRepository interface
type HostAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHostAdapter creates a new host adapter
func NewHostAdapter(client *postgres.Client) repositories.HostRepository {
	return &HostAdapter{
		client: client,
		db:     newGoquDB(client),
	}
}

// Create inserts the host row
func (a *HostAdapter) Create(ctx context.Context, host *entities.Host) error {
	if host.CreatedAt.IsZero() {
		host.CreatedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"user_id":       host.UserID,
		"host_code":     host.HostCode,
		"is_super_host": host.IsSuperHost,
		"created_at":    host.CreatedAt,
	}

	query, args, err := a.db.Insert("hosts").Rows(record).Returning("id").Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.X().QueryRowxContext(ctx, query, args...).Scan(&host.ID); err != nil {
		return mapWriteError(err, "failed to create host")
	}
	return nil
}

// selectHosts joins hosts with their user and counts bookings across the
// host's residences
func (a *HostAdapter) selectHosts() *goqu.SelectDataset {
	totalBookings := a.db.From(goqu.T("bookings").As("b")).
		Join(goqu.T("residences").As("r"), goqu.On(goqu.I("r.id").Eq(goqu.I("b.residence_id")))).
		Where(goqu.I("r.host_id").Eq(goqu.I("h.id"))).
		Select(goqu.COUNT("*"))

	return a.db.From(goqu.T("hosts").As("h")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("h.user_id")))).
		Select(
			goqu.I("h.id"), goqu.I("h.user_id"), goqu.I("h.host_code"), goqu.I("h.is_super_host"),
			goqu.I("h.created_at"), goqu.I("u.first_name"), goqu.I("u.last_name"),
			goqu.I("u.email"), goqu.I("u.address"),
			totalBookings.As("total_bookings"),
		)
}

func (a *HostAdapter) getOne(ctx context.Context, where exp.Expression, notFound string) (*entities.Host, error) {
	query, args, err := a.selectHosts().Where(where).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	host := &entities.Host{}
	if err := a.client.X().GetContext(ctx, host, query, args...); err != nil {
		return nil, mapReadError(err, notFound, "failed to get host")
	}
	return host, nil
}

// GetByID retrieves a host by ID
func (a *HostAdapter) GetByID(ctx context.Context, id int64) (*entities.Host, error) {
	return a.getOne(ctx, goqu.I("h.id").Eq(id), fmt.Sprintf("host with id %d not found", id))
}

// GetByUserID retrieves the host record of a user
func (a *HostAdapter) GetByUserID(ctx context.Context, userID int64) (*entities.Host, error) {
	return a.getOne(ctx, goqu.I("h.user_id").Eq(userID), fmt.Sprintf("user %d is not a host", userID))
}

// GetByHostCode retrieves a host by host code
func (a *HostAdapter) GetByHostCode(ctx context.Context, hostCode string) (*entities.Host, error) {
	return a.getOne(ctx, goqu.I("h.host_code").Eq(hostCode), fmt.Sprintf("host with code %s not found", hostCode))
}

// List retrieves all hosts
func (a *HostAdapter) List(ctx context.Context) ([]*entities.Host, error) {
	return a.list(ctx, nil)
}

// ListSuperHosts retrieves hosts currently flagged as super-hosts
func (a *HostAdapter) ListSuperHosts(ctx context.Context) ([]*entities.Host, error) {
	return a.list(ctx, goqu.I("h.is_super_host").IsTrue())
}

func (a *HostAdapter) list(ctx context.Context, where exp.Expression) ([]*entities.Host, error) {
	ds := a.selectHosts().Order(goqu.I("h.id").Asc())
	if where != nil {
		ds = ds.Where(where)
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	hosts := make([]*entities.Host, 0)
	if err := a.client.X().SelectContext(ctx, &hosts, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list hosts", err)
	}
	return hosts, nil
}

// UpdateSuperHostStatus writes the super-host flag only
func (a *HostAdapter) UpdateSuperHostStatus(ctx context.Context, id int64, isSuperHost bool) error {
	query, args, err := a.db.Update("hosts").
		Set(goqu.Record{"is_super_host": isSuperHost}).
		Where(goqu.Ex{"id": id}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "failed to update super-host status")
	}
	return requireAffected(result, fmt.Sprintf("host with id %d not found", id))
}

// Delete deletes a host
func (a *HostAdapter) Delete(ctx context.Context, id int64) error {
	query, args, err := a.db.Delete("hosts").Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "failed to delete host")
	}
	return requireAffected(result, fmt.Sprintf("host with id %d not found", id))
}

// DeleteAll deletes every host
func (a *HostAdapter) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := a.db.Delete("hosts").Prepared(true).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapWriteError(err, "failed to delete hosts")
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to get rows affected", err)
	}
	return removed, nil
}
