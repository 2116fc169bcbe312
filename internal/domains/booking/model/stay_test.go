package model_test

import (
	"testing"
	"time"

	"hotel/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jan(day int) time.Time {
	return time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC)
}

func stay(in, out int) model.Stay {
	return model.Stay{CheckIn: jan(in), CheckOut: jan(out)}
}

func TestStay_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		existing model.Stay
		proposed model.Stay
		expected bool
	}{
		{
			name:     "touching boundary turns the room over",
			existing: stay(10, 12),
			proposed: stay(12, 14),
			expected: false,
		},
		{
			name:     "touching boundary before",
			existing: stay(12, 14),
			proposed: stay(10, 12),
			expected: false,
		},
		{
			name:     "existing contains proposed",
			existing: stay(10, 20),
			proposed: stay(12, 14),
			expected: true,
		},
		{
			name:     "proposed contains existing",
			existing: stay(12, 14),
			proposed: stay(10, 20),
			expected: true,
		},
		{
			name:     "partial overlap",
			existing: stay(10, 15),
			proposed: stay(12, 18),
			expected: true,
		},
		{
			name:     "identical range",
			existing: stay(10, 12),
			proposed: stay(10, 12),
			expected: true,
		},
		{
			name:     "disjoint",
			existing: stay(1, 3),
			proposed: stay(20, 25),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.existing.Overlaps(tt.proposed))
			assert.Equal(t, tt.expected, tt.proposed.Overlaps(tt.existing), "overlap must be symmetric")
		})
	}
}

func TestStay_OverlapsIsSymmetricForAllRanges(t *testing.T) {
	var stays []model.Stay
	for in := 1; in <= 8; in++ {
		for out := in + 1; out <= 9; out++ {
			stays = append(stays, stay(in, out))
		}
	}

	for _, a := range stays {
		for _, b := range stays {
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "a=%v b=%v", a, b)
		}
	}
}

func TestStay_Nights(t *testing.T) {
	assert.Equal(t, 3, stay(20, 23).Nights())
	assert.Equal(t, 1, stay(20, 21).Nights())

	acrossMonths := model.Stay{
		CheckIn:  time.Date(2025, time.December, 30, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 3, acrossMonths.Nights())
}

func TestStay_IsValid(t *testing.T) {
	assert.True(t, stay(10, 11).IsValid())
	assert.False(t, stay(10, 10).IsValid())
	assert.False(t, stay(11, 10).IsValid())
}

func TestParseStay(t *testing.T) {
	parsed, err := model.ParseStay("2025-12-01", "2025-12-04")
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.Nights())

	_, err = model.ParseStay("2025-12-01", "tomorrow")
	assert.Error(t, err)

	_, err = model.ParseStay("12/01/2025", "2025-12-04")
	assert.Error(t, err)
}

func TestBooking_Helpers(t *testing.T) {
	code := "AB12CD34"
	booking := model.Booking{
		FirstName:        "Ayu",
		LastName:         "Lestari",
		CheckIn:          jan(5),
		CheckOut:         jan(7),
		VerificationCode: &code,
	}

	assert.Equal(t, "Ayu Lestari", booking.GuestName())
	assert.Equal(t, "AB12CD34", booking.Code())
	assert.Equal(t, stay(5, 7), booking.Stay())
	assert.False(t, booking.IsCheckedIn())

	assert.Equal(t, "", model.Booking{}.Code())
	assert.Equal(t, "bookings", model.TableName)
	assert.Equal(t, "JOIN rooms ON rooms.id = bookings.room_id", model.BookingDetail{}.GetJoinQuery())
}
