package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
)

// UserService defines the user operations used by the handler
type UserService interface {
	Create(ctx context.Context, user *entities.User, password string) error
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	Update(ctx context.Context, user *entities.User, password string) error
	Delete(ctx context.Context, id int64) error
	DeleteByEmail(ctx context.Context, email string) error
	DeleteAll(ctx context.Context) (int64, error)
	MostBookedDays(ctx context.Context) (*entities.UserBookedDays, error)
}

// UserHandler handles user requests
type UserHandler struct {
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Address   string `json:"address" validate:"max=255"`
}

type updateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=72"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
}

// CreateUser handles POST /api/v1/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeRequest(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	user := &entities.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Address:   req.Address,
	}
	if err := h.service.Create(r.Context(), user, req.Password); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

// GetUser handles GET /api/v1/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// GetUserByEmail handles GET /api/v1/users/email/{email}
func (h *UserHandler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// GetMostBookedDays handles GET /api/v1/users/stats/most-booked-days
func (h *UserHandler) GetMostBookedDays(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.MostBookedDays(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// UpdateUser handles PUT /api/v1/users/{id}. Only fields present in the
// body overwrite the stored user.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var req updateUserRequest
	if err := decodeRequest(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	password := ""
	if req.Password != nil {
		password = *req.Password
	}

	if err := h.service.Update(r.Context(), user, password); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/v1/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
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

// DeleteUserByEmail handles DELETE /api/v1/users/email/{email}
func (h *UserHandler) DeleteUserByEmail(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteByEmail(r.Context(), r.PathValue("email")); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllUsers handles DELETE /api/v1/users
func (h *UserHandler) DeleteAllUsers(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.DeleteAll(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondDeleted(w, removed)
}
