package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
)

// HostService defines the host operations used by the handler
type HostService interface {
	PromoteUser(ctx context.Context, userID int64) (*entities.Host, error)
	GetByID(ctx context.Context, id int64) (*entities.Host, error)
	GetByHostCode(ctx context.Context, hostCode string) (*entities.Host, error)
	List(ctx context.Context) ([]*entities.Host, error)
	ListSuperHosts(ctx context.Context) ([]*entities.Host, error)
	Update(ctx context.Context, host *entities.Host) (*entities.Host, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	CountBookingsByHostCode(ctx context.Context, hostCode string) (int64, error)
}

// HostHandler handles host requests
type HostHandler struct {
	service HostService
}

// NewHostHandler creates a new host handler
func NewHostHandler(service HostService) *HostHandler {
	return &HostHandler{service: service}
}

type updateHostRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
}

// PromoteUser handles POST /api/v1/hosts/{userId}
func (h *HostHandler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	host, err := h.service.PromoteUser(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, host)
}

// ListHosts handles GET /api/v1/hosts
func (h *HostHandler) ListHosts(w http.ResponseWriter, r *http.Request) {
	hosts, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, hosts)
}

// ListSuperHosts handles GET /api/v1/hosts/super
func (h *HostHandler) ListSuperHosts(w http.ResponseWriter, r *http.Request) {
	hosts, err := h.service.ListSuperHosts(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, hosts)
}

// GetHost handles GET /api/v1/hosts/{id}
func (h *HostHandler) GetHost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	host, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, host)
}

// GetHostByCode handles GET /api/v1/hosts/code/{code}
func (h *HostHandler) GetHostByCode(w http.ResponseWriter, r *http.Request) {
	host, err := h.service.GetByHostCode(r.Context(), r.PathValue("code"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, host)
}

// CountBookings handles GET /api/v1/hosts/code/{code}/bookings/count
func (h *HostHandler) CountBookings(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	count, err := h.service.CountBookingsByHostCode(r.Context(), code)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hostCode":      code,
		"totalBookings": count,
	})
}

// UpdateHost handles PUT /api/v1/hosts/{id}. The host code cannot change.
func (h *HostHandler) UpdateHost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var req updateHostRequest
	if err := decodeRequest(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	host, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if req.FirstName != nil {
		host.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		host.LastName = *req.LastName
	}
	if req.Email != nil {
		host.Email = *req.Email
	}
	if req.Address != nil {
		host.Address = *req.Address
	}

	updated, err := h.service.Update(r.Context(), host)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// DeleteHost handles DELETE /api/v1/hosts/{id}
func (h *HostHandler) DeleteHost(w http.ResponseWriter, r *http.Request) {
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

// DeleteAllHosts handles DELETE /api/v1/hosts
func (h *HostHandler) DeleteAllHosts(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.DeleteAll(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondDeleted(w, removed)
}
