package entities

import (
	"time"
)

// User represents a registered guest of the marketplace
type User struct {
	ID               int64     `json:"id" db:"id"`
	FirstName        string    `json:"firstName" db:"first_name"`
	LastName         string    `json:"lastName" db:"last_name"`
	Email            string    `json:"email" db:"email"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	Address          string    `json:"address" db:"address"`
	RegistrationDate time.Time `json:"registrationDate" db:"registration_date"`
}

// Equal reports identity equality, keyed by id and email
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.ID == other.ID && u.Email == other.Email
}

// UserBookedDays is the report row for the user with the most booked days
type UserBookedDays struct {
	User
	BookedDays int64 `json:"bookedDays" db:"booked_days"`
}
