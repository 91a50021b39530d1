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

var residenceColumns = []interface{}{
	goqu.I("r.id"), goqu.I("r.name"), goqu.I("r.address"), goqu.I("r.price_per_night"),
	goqu.I("r.rooms"), goqu.I("r.max_guests"), goqu.I("r.floor"),
	goqu.I("r.available_from"), goqu.I("r.available_to"), goqu.I("r.host_id"),
}

// ResidenceAdapter implements the ResidenceRepository interface
type ResidenceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewResidenceAdapter creates a new residence adapter
func NewResidenceAdapter(client *postgres.Client) repositories.ResidenceRepository {
	return &ResidenceAdapter{
		client: client,
		db:     newGoquDB(client),
	}
}

func residenceRecord(residence *entities.Residence) goqu.Record {
	return goqu.Record{
		"name":            residence.Name,
		"address":         residence.Address,
		"price_per_night": residence.PricePerNight,
		"rooms":           residence.Rooms,
		"max_guests":      residence.MaxGuests,
		"floor":           residence.Floor,
		"available_from":  residence.AvailableFrom,
		"available_to":    residence.AvailableTo,
		"host_id":         residence.HostID,
	}
}

// Create creates a new residence
func (a *ResidenceAdapter) Create(ctx context.Context, residence *entities.Residence) error {
	query, args, err := a.db.Insert("residences").
		Rows(residenceRecord(residence)).
		Returning("id").
		Prepared(true).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.X().QueryRowxContext(ctx, query, args...).Scan(&residence.ID); err != nil {
		return mapWriteError(err, "failed to create residence")
	}
	return nil
}

func (a *ResidenceAdapter) selectResidences() *goqu.SelectDataset {
	return a.db.From(goqu.T("residences").As("r")).Select(residenceColumns...)
}

func (a *ResidenceAdapter) getOne(ctx context.Context, where exp.Expression, notFound string) (*entities.Residence, error) {
	query, args, err := a.selectResidences().Where(where).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	residence := &entities.Residence{}
	if err := a.client.X().GetContext(ctx, residence, query, args...); err != nil {
		return nil, mapReadError(err, notFound, "failed to get residence")
	}
	return residence, nil
}

// GetByID retrieves a residence by ID
func (a *ResidenceAdapter) GetByID(ctx context.Context, id int64) (*entities.Residence, error) {
	return a.getOne(ctx, goqu.I("r.id").Eq(id), fmt.Sprintf("residence with id %d not found", id))
}

// GetByAddressAndFloor retrieves a residence by address and floor
func (a *ResidenceAdapter) GetByAddressAndFloor(ctx context.Context, address string, floor int) (*entities.Residence, error) {
	return a.getOne(ctx,
		goqu.And(goqu.I("r.address").Eq(address), goqu.I("r.floor").Eq(floor)),
		fmt.Sprintf("residence at %s floor %d not found", address, floor),
	)
}

// List retrieves all residences
func (a *ResidenceAdapter) List(ctx context.Context) ([]*entities.Residence, error) {
	return a.list(ctx, a.selectResidences())
}

// ListByHostID retrieves residences owned by a host
func (a *ResidenceAdapter) ListByHostID(ctx context.Context, hostID int64) ([]*entities.Residence, error) {
	return a.list(ctx, a.selectResidences().Where(goqu.I("r.host_id").Eq(hostID)))
}

// ListByHostCode retrieves residences owned by the host with the given code
func (a *ResidenceAdapter) ListByHostCode(ctx context.Context, hostCode string) ([]*entities.Residence, error) {
	ds := a.selectResidences().
		Join(goqu.T("hosts").As("h"), goqu.On(goqu.I("h.id").Eq(goqu.I("r.host_id")))).
		Where(goqu.I("h.host_code").Eq(hostCode))
	return a.list(ctx, ds)
}

func (a *ResidenceAdapter) list(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Residence, error) {
	query, args, err := ds.Order(goqu.I("r.id").Asc()).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	residences := make([]*entities.Residence, 0)
	if err := a.client.X().SelectContext(ctx, &residences, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list residences", err)
	}
	return residences, nil
}

// Update updates a residence
func (a *ResidenceAdapter) Update(ctx context.Context, residence *entities.Residence) error {
	query, args, err := a.db.Update("residences").
		Set(residenceRecord(residence)).
		Where(goqu.Ex{"id": residence.ID}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "failed to update residence")
	}
	return requireAffected(result, fmt.Sprintf("residence with id %d not found", residence.ID))
}

// Delete deletes a residence
func (a *ResidenceAdapter) Delete(ctx context.Context, id int64) error {
	query, args, err := a.db.Delete("residences").Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "failed to delete residence")
	}
	return requireAffected(result, fmt.Sprintf("residence with id %d not found", id))
}

// DeleteAll deletes every residence
func (a *ResidenceAdapter) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := a.db.Delete("residences").Prepared(true).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapWriteError(err, "failed to delete residences")
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to get rows affected", err)
	}
	return removed, nil
}

// MostPopularSince returns the residence with the most bookings starting
// at or after since. Ties go to the lowest residence id.
func (a *ResidenceAdapter) MostPopularSince(ctx context.Context, since time.Time) (*entities.ResidencePopularity, error) {
	columns := append([]interface{}{}, residenceColumns...)
	columns = append(columns, goqu.COUNT(goqu.I("b.id")).As("booking_count"))

	query, args, err := a.db.From(goqu.T("residences").As("r")).
		Join(goqu.T("bookings").As("b"), goqu.On(goqu.I("b.residence_id").Eq(goqu.I("r.id")))).
		Select(columns...).
		Where(goqu.I("b.start_date").Gte(since)).
		GroupBy(goqu.I("r.id")).
		Order(goqu.I("booking_count").Desc(), goqu.I("r.id").Asc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build report query", err)
	}

	report := &entities.ResidencePopularity{}
	if err := a.client.X().GetContext(ctx, report, query, args...); err != nil {
		return nil, mapReadError(err, "no residence was booked in the last month", "failed to compute most popular residence")
	}
	return report, nil
}
