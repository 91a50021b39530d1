package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/zatekoja/shortstay/backend/internal/api/handlers"
	"github.com/zatekoja/shortstay/backend/internal/api/middleware"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/observability"
)

// APIPrefix is the version prefix shared by every resource route
const APIPrefix = "/api/v1"

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	userHandler      *handlers.UserHandler
	hostHandler      *handlers.HostHandler
	residenceHandler *handlers.ResidenceHandler
	bookingHandler   *handlers.BookingHandler
	feedbackHandler  *handlers.FeedbackHandler

	db             Pinger
	metrics        *observability.Metrics
	allowedOrigins []string
}

// NewRouter creates a new router
func NewRouter(
	userHandler *handlers.UserHandler,
	hostHandler *handlers.HostHandler,
	residenceHandler *handlers.ResidenceHandler,
	bookingHandler *handlers.BookingHandler,
	feedbackHandler *handlers.FeedbackHandler,
	db Pinger,
	metrics *observability.Metrics,
	allowedOrigins []string,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		userHandler:      userHandler,
		hostHandler:      hostHandler,
		residenceHandler: residenceHandler,
		bookingHandler:   bookingHandler,
		feedbackHandler:  feedbackHandler,
		db:               db,
		metrics:          metrics,
		allowedOrigins:   allowedOrigins,
	}
}

// handle registers "METHOD /path" under APIPrefix
func (r *Router) handle(pattern string, handler http.HandlerFunc) {
	method, path, _ := strings.Cut(pattern, " ")
	r.mux.HandleFunc(method+" "+APIPrefix+path, handler)
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.health)

	// User endpoints
	r.handle("POST /users", r.userHandler.CreateUser)
	r.handle("GET /users", r.userHandler.ListUsers)
	r.handle("GET /users/{id}", r.userHandler.GetUser)
	r.handle("GET /users/email/{email}", r.userHandler.GetUserByEmail)
	r.handle("GET /users/stats/most-booked-days", r.userHandler.GetMostBookedDays)
	r.handle("PUT /users/{id}", r.userHandler.UpdateUser)
	r.handle("DELETE /users/{id}", r.userHandler.DeleteUser)
	r.handle("DELETE /users/email/{email}", r.userHandler.DeleteUserByEmail)
	r.handle("DELETE /users", r.userHandler.DeleteAllUsers)

	// Host endpoints
	r.handle("POST /hosts/{userId}", r.hostHandler.PromoteUser)
	r.handle("GET /hosts", r.hostHandler.ListHosts)
	r.handle("GET /hosts/super", r.hostHandler.ListSuperHosts)
	r.handle("GET /hosts/{id}", r.hostHandler.GetHost)
	r.handle("GET /hosts/code/{code}", r.hostHandler.GetHostByCode)
	r.handle("GET /hosts/code/{code}/bookings/count", r.hostHandler.CountBookings)
	r.handle("PUT /hosts/{id}", r.hostHandler.UpdateHost)
	r.handle("DELETE /hosts/{id}", r.hostHandler.DeleteHost)
	r.handle("DELETE /hosts", r.hostHandler.DeleteAllHosts)

	// Residence endpoints
	r.handle("POST /residences/{hostId}", r.residenceHandler.CreateResidence)
	r.handle("GET /residences", r.residenceHandler.ListResidences)
	r.handle("GET /residences/{id}", r.residenceHandler.GetResidence)
	r.handle("GET /residences/address/{address}/floor/{floor}", r.residenceHandler.GetResidenceByAddressAndFloor)
	r.handle("GET /residences/owner/{ownerId}", r.residenceHandler.ListResidencesByOwner)
	r.handle("GET /residences/owner/host_code/{code}", r.residenceHandler.ListResidencesByOwnerCode)
	r.handle("GET /residences/stats/mprlm", r.residenceHandler.GetMostPopularLastMonth)
	r.handle("PUT /residences/{id}", r.residenceHandler.UpdateResidence)
	r.handle("DELETE /residences/{id}", r.residenceHandler.DeleteResidence)
	r.handle("DELETE /residences", r.residenceHandler.DeleteAllResidences)

	// Booking endpoints
	r.handle("POST /bookings", r.bookingHandler.CreateBooking)
	r.handle("GET /bookings", r.bookingHandler.ListBookings)
	r.handle("GET /bookings/{id}", r.bookingHandler.GetBooking)
	r.handle("GET /bookings/residence/{id}", r.bookingHandler.ListBookingsByResidence)
	r.handle("GET /bookings/user/{id}", r.bookingHandler.ListBookingsByUser)
	r.handle("GET /bookings/user/{id}/last", r.bookingHandler.GetLastBookingByUser)
	r.handle("PUT /bookings/{id}", r.bookingHandler.UpdateBooking)
	r.handle("DELETE /bookings/{id}", r.bookingHandler.DeleteBooking)
	r.handle("DELETE /bookings", r.bookingHandler.DeleteAllBookings)

	// Feedback endpoints
	r.handle("POST /feedbacks", r.feedbackHandler.SubmitFeedback)
	r.handle("GET /feedbacks", r.feedbackHandler.ListFeedback)
	r.handle("GET /feedbacks/{id}", r.feedbackHandler.GetFeedback)
	r.handle("GET /feedbacks/user/{id}", r.feedbackHandler.ListFeedbackByUser)
	r.handle("GET /feedbacks/booking/{id}", r.feedbackHandler.ListFeedbackByBooking)
	r.handle("GET /feedbacks/user/{userId}/booking/{bookingId}", r.feedbackHandler.GetFeedbackByUserAndBooking)
	r.handle("PUT /feedbacks/{id}", r.feedbackHandler.UpdateFeedback)
	r.handle("DELETE /feedbacks/{id}", r.feedbackHandler.DeleteFeedback)
	r.handle("DELETE /feedbacks", r.feedbackHandler.DeleteAllFeedback)

	// Observability sits directly on the mux so it sees the matched pattern.
	// CORS is outermost so preflights never reach the handlers.
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}

func (r *Router) health(w http.ResponseWriter, req *http.Request) {
	status := map[string]string{"status": "ok", "database": "ok"}
	code := http.StatusOK

	if r.db != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.db.Ping(ctx); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("health check failed")
			status["status"] = "unavailable"
			status["database"] = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		return
	}
}
