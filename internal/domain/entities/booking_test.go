package entities

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func window(t *testing.T, id int64, start, end string) *Booking {
	return &Booking{ID: id, ResidenceID: 1, StartDate: mustTime(t, start), EndDate: mustTime(t, end)}
}

func TestBooking_Overlaps_JuneScenario(t *testing.T) {
	existing := window(t, 1, "2025-06-01T14:00", "2025-06-05T10:00")

	overlapping := window(t, 0, "2025-06-04T10:00", "2025-06-08T10:00")
	adjacent := window(t, 0, "2025-06-05T10:00", "2025-06-08T10:00")

	assert.True(t, overlapping.Overlaps(existing))
	assert.False(t, adjacent.Overlaps(existing))
	assert.False(t, existing.Overlaps(adjacent))
}

func TestBooking_Overlaps(t *testing.T) {
	base := window(t, 1, "2025-07-10T12:00", "2025-07-15T12:00")

	tests := []struct {
		name     string
		start    string
		end      string
		expected bool
	}{
		{"strictly before", "2025-07-01T12:00", "2025-07-05T12:00", false},
		{"ends at start", "2025-07-05T12:00", "2025-07-10T12:00", false},
		{"starts at end", "2025-07-15T12:00", "2025-07-20T12:00", false},
		{"strictly after", "2025-07-16T12:00", "2025-07-20T12:00", false},
		{"contained", "2025-07-11T12:00", "2025-07-12T12:00", true},
		{"contains", "2025-07-09T12:00", "2025-07-16T12:00", true},
		{"identical", "2025-07-10T12:00", "2025-07-15T12:00", true},
		{"tail overlap", "2025-07-14T12:00", "2025-07-18T12:00", true},
		{"head overlap", "2025-07-08T12:00", "2025-07-10T12:01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := window(t, 0, tt.start, tt.end)
			assert.Equal(t, tt.expected, candidate.Overlaps(base))
			assert.Equal(t, tt.expected, base.Overlaps(candidate), "overlap must be symmetric")
		})
	}
}

func TestBooking_HasValidPeriod(t *testing.T) {
	assert.True(t, window(t, 0, "2025-07-10T12:00", "2025-07-10T12:01").HasValidPeriod())
	assert.False(t, window(t, 0, "2025-07-10T12:00", "2025-07-10T12:00").HasValidPeriod())
	assert.False(t, window(t, 0, "2025-07-10T12:00", "2025-07-09T12:00").HasValidPeriod())
}

func TestFindOverlap_SkipsOwnRecord(t *testing.T) {
	existing := []*Booking{
		window(t, 1, "2025-06-01T14:00", "2025-06-05T10:00"),
		window(t, 2, "2025-06-10T14:00", "2025-06-12T10:00"),
	}

	moved := window(t, 1, "2025-06-02T14:00", "2025-06-06T10:00")
	assert.Nil(t, FindOverlap(moved, existing))

	clash := window(t, 1, "2025-06-09T14:00", "2025-06-11T10:00")
	assert.Equal(t, int64(2), FindOverlap(clash, existing).ID)

	fresh := window(t, 0, "2025-06-04T10:00", "2025-06-08T10:00")
	assert.Equal(t, int64(1), FindOverlap(fresh, existing).ID)
}

// Accepting a random stream of requests through FindOverlap must always
// leave a pairwise non-overlapping calendar.
func TestFindOverlap_AcceptedCalendarStaysDisjoint(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	origin := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var accepted []*Booking
	for i := 0; i < 500; i++ {
		start := origin.Add(time.Duration(rng.Intn(24*90)) * time.Hour)
		end := start.Add(time.Duration(1+rng.Intn(24*7)) * time.Hour)
		candidate := &Booking{ResidenceID: 1, StartDate: start, EndDate: end}
		if FindOverlap(candidate, accepted) == nil {
			candidate.ID = int64(len(accepted) + 1)
			accepted = append(accepted, candidate)
		}
	}

	assert.NotEmpty(t, accepted)
	for i := range accepted {
		for j := i + 1; j < len(accepted); j++ {
			assert.False(t, accepted[i].Overlaps(accepted[j]), "bookings %d and %d overlap", accepted[i].ID, accepted[j].ID)
		}
	}
}
