package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
)

// BookingService defines the booking operations used by the handler
type BookingService interface {
	Create(ctx context.Context, booking *entities.Booking) error
	GetByID(ctx context.Context, id int64) (*entities.Booking, error)
	List(ctx context.Context) ([]*entities.Booking, error)
	ListByResidence(ctx context.Context, residenceID int64) ([]*entities.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.Booking, error)
	LastByUser(ctx context.Context, userID int64) (*entities.Booking, error)
	Update(ctx context.Context, booking *entities.Booking) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

// BookingHandler handles booking requests
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	ResidenceID int64 `json:"residenceId" validate:"required,gt=0"`
	UserID      int64 `json:"userId" validate:"required,gt=0"`
	StartDate   *Date `json:"startDate" validate:"required"`
	EndDate     *Date `json:"endDate" validate:"required"`
}

type updateBookingRequest struct {
	ResidenceID *int64 `json:"residenceId" validate:"omitempty,gt=0"`
	UserID      *int64 `json:"userId" validate:"omitempty,gt=0"`
	StartDate   *Date  `json:"startDate"`
	EndDate     *Date  `json:"endDate"`
}

// CreateBooking handles POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := decodeRequest(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	booking := &entities.Booking{
		ResidenceID: req.ResidenceID,
		UserID:      req.UserID,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
	}
	if err := h.service.Create(r.Context(), booking); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, booking)
}

// ListBookings handles GET /api/v1/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, bookings)
}

// GetBooking handles GET /api/v1/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

// ListBookingsByResidence handles GET /api/v1/bookings/residence/{id}
func (h *BookingHandler) ListBookingsByResidence(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	bookings, err := h.service.ListByResidence(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, bookings)
}

// ListBookingsByUser handles GET /api/v1/bookings/user/{id}
func (h *BookingHandler) ListBookingsByUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	bookings, err := h.service.ListByUser(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, bookings)
}

// GetLastBookingByUser handles GET /api/v1/bookings/user/{id}/last
func (h *BookingHandler) GetLastBookingByUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	booking, err := h.service.LastByUser(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

// UpdateBooking handles PUT /api/v1/bookings/{id}. The merged booking is
// checked for overlaps again by the service.
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var req updateBookingRequest
	if err := decodeRequest(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if req.ResidenceID != nil {
		booking.ResidenceID = *req.ResidenceID
	}
	if req.UserID != nil {
		booking.UserID = *req.UserID
	}
	if req.StartDate != nil {
		booking.StartDate = req.StartDate.Time
	}
	if req.EndDate != nil {
		booking.EndDate = req.EndDate.Time
	}

	if err := h.service.Update(r.Context(), booking); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

// DeleteBooking handles DELETE /api/v1/bookings/{id}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
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

// DeleteAllBookings handles DELETE /api/v1/bookings
func (h *BookingHandler) DeleteAllBookings(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.DeleteAll(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondDeleted(w, removed)
}
