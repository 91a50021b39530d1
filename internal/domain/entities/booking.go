package entities

import "time"

// Booking is a reserved [StartDate, EndDate) window on a residence
type Booking struct {
	ID          int64     `json:"id" db:"id"`
	ResidenceID int64     `json:"residenceId" db:"residence_id"`
	UserID      int64     `json:"userId" db:"user_id"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// HasValidPeriod reports whether the end is strictly after the start
func (b *Booking) HasValidPeriod() bool {
	return b.EndDate.After(b.StartDate)
}

// Overlaps applies the half-open rule: [s1,e1) and [s2,e2) overlap iff
// s1 < e2 and e1 > s2. Adjacent windows do not overlap.
func (b *Booking) Overlaps(other *Booking) bool {
	return b.StartDate.Before(other.EndDate) && b.EndDate.After(other.StartDate)
}

// FindOverlap returns the first booking in existing that overlaps candidate.
// A booking with the candidate's own id is skipped, so updates can be
// checked against the current calendar.
func FindOverlap(candidate *Booking, existing []*Booking) *Booking {
	for _, other := range existing {
		if other == nil {
			continue
		}
		if candidate.ID != 0 && other.ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(other) {
			return other
		}
	}
	return nil
}
