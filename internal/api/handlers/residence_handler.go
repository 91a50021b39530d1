package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

// ResidenceService defines the residence operations used by the handler
type ResidenceService interface {
	Create(ctx context.Context, hostID int64, residence *entities.Residence) error
	GetByID(ctx context.Context, id int64) (*entities.Residence, error)
	GetByAddressAndFloor(ctx context.Context, address string, floor int) (*entities.Residence, error)
	List(ctx context.Context) ([]*entities.Residence, error)
	ListByHostID(ctx context.Context, hostID int64) ([]*entities.Residence, error)
	ListByHostCode(ctx context.Context, hostCode string) ([]*entities.Residence, error)
	Update(ctx context.Context, residence *entities.Residence) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	MostPopularLastMonth(ctx context.Context) (*entities.ResidencePopularity, error)
}

// ResidenceHandler handles residence requests
type ResidenceHandler struct {
	service ResidenceService
}

// NewResidenceHandler creates a new residence handler
func NewResidenceHandler(service ResidenceService) *ResidenceHandler {
	return &ResidenceHandler{service: service}
}

type createResidenceRequest struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Address       string  `json:"address" validate:"required,max=255"`
	PricePerNight float64 `json:"pricePerNight" validate:"gte=0"`
	Rooms         int     `json:"rooms" validate:"gte=1"`
	MaxGuests     int     `json:"maxGuests" validate:"gte=1"`
	Floor         int     `json:"floor"`
	AvailableFrom *Date   `json:"availableFrom" validate:"required"`
	AvailableTo   *Date   `json:"availableTo" validate:"required"`
}

type updateResidenceRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Address       *string  `json:"address" validate:"omitempty,min=1,max=255"`
	PricePerNight *float64 `json:"pricePerNight" validate:"omitempty,gte=0"`
	Rooms         *int     `json:"rooms" validate:"omitempty,gte=1"`
	MaxGuests     *int     `json:"maxGuests" validate:"omitempty,gte=1"`
	Floor         *int     `json:"floor"`
	AvailableFrom *Date    `json:"availableFrom"`
	AvailableTo   *Date    `json:"availableTo"`
	HostID        *int64   `json:"hostId" validate:"omitempty,gt=0"`
}

// CreateResidence handles POST /api/v1/residences/{hostId}
func (h *ResidenceHandler) CreateResidence(w http.ResponseWriter, r *http.Request) {
	hostID, err := pathID(r, "hostId")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var req createResidenceRequest
	if err := decodeRequest(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	residence := &entities.Residence{
		Name:          req.Name,
		Address:       req.Address,
		PricePerNight: req.PricePerNight,
		Rooms:         req.Rooms,
		MaxGuests:     req.MaxGuests,
		Floor:         req.Floor,
		AvailableFrom: req.AvailableFrom.Time,
		AvailableTo:   req.AvailableTo.Time,
	}
	if err := h.service.Create(r.Context(), hostID, residence); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, residence)
}

// ListResidences handles GET /api/v1/residences
func (h *ResidenceHandler) ListResidences(w http.ResponseWriter, r *http.Request) {
	residences, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, residences)
}

// GetResidence handles GET /api/v1/residences/{id}
func (h *ResidenceHandler) GetResidence(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	residence, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, residence)
}

// GetResidenceByAddressAndFloor handles
// GET /api/v1/residences/address/{address}/floor/{floor}
func (h *ResidenceHandler) GetResidenceByAddressAndFloor(w http.ResponseWriter, r *http.Request) {
	floor, err := strconv.Atoi(r.PathValue("floor"))
	if err != nil {
		respondWithAppError(w, r, apperrors.NewValidationError("invalid floor"))
		return
	}

	residence, err := h.service.GetByAddressAndFloor(r.Context(), r.PathValue("address"), floor)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, residence)
}

// ListResidencesByOwner handles GET /api/v1/residences/owner/{ownerId}
func (h *ResidenceHandler) ListResidencesByOwner(w http.ResponseWriter, r *http.Request) {
	hostID, err := pathID(r, "ownerId")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	residences, err := h.service.ListByHostID(r.Context(), hostID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, residences)
}

// ListResidencesByOwnerCode handles GET /api/v1/residences/owner/host_code/{code}
func (h *ResidenceHandler) ListResidencesByOwnerCode(w http.ResponseWriter, r *http.Request) {
	residences, err := h.service.ListByHostCode(r.Context(), r.PathValue("code"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, residences)
}

// GetMostPopularLastMonth handles GET /api/v1/residences/stats/mprlm
func (h *ResidenceHandler) GetMostPopularLastMonth(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.MostPopularLastMonth(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// UpdateResidence handles PUT /api/v1/residences/{id}
func (h *ResidenceHandler) UpdateResidence(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var req updateResidenceRequest
	if err := decodeRequest(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	residence, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	req.apply(residence)

	if err := h.service.Update(r.Context(), residence); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, residence)
}

func (req *updateResidenceRequest) apply(residence *entities.Residence) {
	if req.Name != nil {
		residence.Name = *req.Name
	}
	if req.Address != nil {
		residence.Address = *req.Address
	}
	if req.PricePerNight != nil {
		residence.PricePerNight = *req.PricePerNight
	}
	if req.Rooms != nil {
		residence.Rooms = *req.Rooms
	}
	if req.MaxGuests != nil {
		residence.MaxGuests = *req.MaxGuests
	}
	if req.Floor != nil {
		residence.Floor = *req.Floor
	}
	if req.AvailableFrom != nil {
		residence.AvailableFrom = req.AvailableFrom.Time
	}
	if req.AvailableTo != nil {
		residence.AvailableTo = req.AvailableTo.Time
	}
	if req.HostID != nil {
		residence.HostID = *req.HostID
	}
}

// DeleteResidence handles DELETE /api/v1/residences/{id}
func (h *ResidenceHandler) DeleteResidence(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllResidences handles DELETE /api/v1/residences
func (h *ResidenceHandler) DeleteAllResidences(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.DeleteAll(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondDeleted(w, removed)
}
