package entities

import "time"

// Rating bounds for feedback
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is a user's review of one of their bookings
type Feedback struct {
	ID        int64     `json:"id" db:"id"`
	BookingID int64     `json:"bookingId" db:"booking_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Rating    int       `json:"rating" db:"rating"` // 1-5
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
