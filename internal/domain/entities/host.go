package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultSuperHostThreshold is the lifetime booking count at which a host
// becomes a super-host.
const DefaultSuperHostThreshold = 100

// HostCodePrefix prefixes every generated host code
const HostCodePrefix = "HOST-"

// Host is a user promoted to rent out residences. The user-derived fields
// are read through a join and are not stored on the host row.
// TotalBookings is computed on read.
type Host struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	HostCode      string    `json:"hostCode" db:"host_code"`
	IsSuperHost   bool      `json:"isSuperHost" db:"is_super_host"`
	TotalBookings int64     `json:"totalBookings" db:"total_bookings"`
	FirstName     string    `json:"firstName" db:"first_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	Email         string    `json:"email" db:"email"`
	Address       string    `json:"address" db:"address"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// NewHostCode returns "HOST-" followed by 8 random upper-case hex characters
func NewHostCode() string {
	id := uuid.New()
	return HostCodePrefix + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

// QualifiesAsSuperHost reports whether a booking count reaches the threshold.
// The boundary is inclusive.
func QualifiesAsSuperHost(totalBookings int64, threshold int) bool {
	return totalBookings >= int64(threshold)
}
