package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
)

// FeedbackService defines the feedback operations used by the handler.
type FeedbackService interface {
	Create(ctx context.Context, feedback *entities.Feedback) error
	GetByID(ctx context.Context, id int64) (*entities.Feedback, error)
	GetByUserAndBooking(ctx context.Context, userID, bookingID int64) (*entities.Feedback, error)
	List(ctx context.Context) ([]*entities.Feedback, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.Feedback, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]*entities.Feedback, error)
	Update(ctx context.Context, feedback *entities.Feedback) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

// FeedbackHandler handles feedback submissions.
type FeedbackHandler struct {
	service FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(service FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type feedbackRequest struct {
	BookingID int64  `json:"bookingId" validate:"required,gt=0"`
	UserID    int64  `json:"userId" validate:"required,gt=0"`
	Title     string `json:"title" validate:"required,max=200"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=1000"`
}

type updateFeedbackRequest struct {
	BookingID *int64  `json:"bookingId" validate:"omitempty,gt=0"`
	UserID    *int64  `json:"userId" validate:"omitempty,gt=0"`
	Title     *string `json:"title" validate:"omitempty,min=1,max=200"`
	Rating    *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment   *string `json:"comment" validate:"omitempty,max=1000"`
}

// SubmitFeedback handles POST /api/v1/feedbacks
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var payload feedbackRequest
	if err := decodeRequest(r, &payload); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	feedback := &entities.Feedback{
		BookingID: payload.BookingID,
		UserID:    payload.UserID,
		Title:     strings.TrimSpace(payload.Title),
		Rating:    payload.Rating,
		Comment:   strings.TrimSpace(payload.Comment),
	}
	if err := h.service.Create(r.Context(), feedback); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, feedback)
}

// ListFeedback handles GET /api/v1/feedbacks
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, feedbacks)
}

// GetFeedback handles GET /api/v1/feedbacks/{id}
func (h *FeedbackHandler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	feedback, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, feedback)
}

// ListFeedbackByUser handles GET /api/v1/feedbacks/user/{id}
func (h *FeedbackHandler) ListFeedbackByUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	feedbacks, err := h.service.ListByUser(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, feedbacks)
}

// ListFeedbackByBooking handles GET /api/v1/feedbacks/booking/{id}
func (h *FeedbackHandler) ListFeedbackByBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	feedbacks, err := h.service.ListByBooking(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, feedbacks)
}

// GetFeedbackByUserAndBooking handles
// GET /api/v1/feedbacks/user/{userId}/booking/{bookingId}
func (h *FeedbackHandler) GetFeedbackByUserAndBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	feedback, err := h.service.GetByUserAndBooking(r.Context(), userID, bookingID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, feedback)
}

// UpdateFeedback handles PUT /api/v1/feedbacks/{id}
func (h *FeedbackHandler) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var payload updateFeedbackRequest
	if err := decodeRequest(r, &payload); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	feedback, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if payload.BookingID != nil {
		feedback.BookingID = *payload.BookingID
	}
	if payload.UserID != nil {
		feedback.UserID = *payload.UserID
	}
	if payload.Title != nil {
		feedback.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Rating != nil {
		feedback.Rating = *payload.Rating
	}
	if payload.Comment != nil {
		feedback.Comment = strings.TrimSpace(*payload.Comment)
	}

	if err := h.service.Update(r.Context(), feedback); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, feedback)
}

// DeleteFeedback handles DELETE /api/v1/feedbacks/{id}
func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
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

// DeleteAllFeedback handles DELETE /api/v1/feedbacks
func (h *FeedbackHandler) DeleteAllFeedback(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.DeleteAll(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondDeleted(w, removed)
}
