package entities

import (
	"time"

	"github.com/google/uuid"
)

// BookingEventType represents what happened to a residence's calendar
type BookingEventType string

const (
	BookingEventTypeCreated BookingEventType = "booking_created"
	BookingEventTypeUpdated BookingEventType = "booking_updated"
	BookingEventTypeDeleted BookingEventType = "booking_deleted"
	BookingEventTypeCleared BookingEventType = "bookings_cleared"
)

// BookingEvent is published whenever the set of bookings changes.
// BookingID and ResidenceID are zero for BookingEventTypeCleared.
type BookingEvent struct {
	ID          string           `json:"id"`
	EventType   BookingEventType `json:"eventType"`
	BookingID   int64            `json:"bookingId,omitempty"`
	ResidenceID int64            `json:"residenceId,omitempty"`
	HostID      int64            `json:"hostId,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

// NewBookingEvent creates a new booking event
func NewBookingEvent(eventType BookingEventType, booking *Booking, hostID int64) *BookingEvent {
	event := &BookingEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		HostID:    hostID,
		Timestamp: time.Now().UTC(),
	}
	if booking != nil {
		event.BookingID = booking.ID
		event.ResidenceID = booking.ResidenceID
	}
	return event
}
