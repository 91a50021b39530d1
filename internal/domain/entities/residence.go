package entities

import "time"

// Residence is a bookable unit owned by a host
type Residence struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Address       string    `json:"address" db:"address"`
	PricePerNight float64   `json:"pricePerNight" db:"price_per_night"`
	Rooms         int       `json:"rooms" db:"rooms"`
	MaxGuests     int       `json:"maxGuests" db:"max_guests"`
	Floor         int       `json:"floor" db:"floor"`
	AvailableFrom time.Time `json:"availableFrom" db:"available_from"`
	AvailableTo   time.Time `json:"availableTo" db:"available_to"`
	HostID        int64     `json:"hostId" db:"host_id"`
}

// HasValidAvailability reports whether available_from <= available_to
func (r *Residence) HasValidAvailability() bool {
	return !r.AvailableFrom.After(r.AvailableTo)
}

// ResidencePopularity is the report row for the most booked residence
type ResidencePopularity struct {
	Residence
	BookingCount int64 `json:"bookingCount" db:"booking_count"`
}
