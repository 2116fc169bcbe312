package timezone_test

import (
	"testing"
	"time"

	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "calendar date",
			input:    "2025-11-20",
			expected: time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "leap day",
			input:    "2024-02-29",
			expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "timestamp is rejected",
			input:   "2025-11-20T10:00:00Z",
			wantErr: true,
		},
		{
			name:    "impossible date",
			input:   "2025-02-30",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := timezone.ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(date))
			assert.Equal(t, tt.input, timezone.FormatDate(date))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{
			name:     "three nights",
			start:    time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2025, 11, 23, 0, 0, 0, 0, time.UTC),
			expected: 3,
		},
		{
			name:     "across month end",
			start:    time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC),
			expected: 3,
		},
		{
			name:     "partial day rounds up",
			start:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2025, 3, 2, 1, 0, 0, 0, time.UTC),
			expected: 2,
		},
		{
			name:     "same day",
			start:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "beyond the duration range",
			start:    time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
			end:      time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
			expected: 2912484,
		},
		{
			name:     "reversed range is negative",
			start:    time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			expected: -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timezone.DaysBetween(tt.start, tt.end))
		})
	}
}

func TestClockToday(t *testing.T) {
	clock := timezone.FixedClock(time.Date(2025, 12, 1, 15, 30, 0, 0, time.UTC))

	today := clock.Today()

	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, time.UTC, today.Location())
	assert.Equal(t, clock().In(timezone.Location()).Day(), today.Day())
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	instant := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	date := timezone.DateOf(instant)
	local := instant.In(timezone.Location())

	assert.Equal(t, local.Year(), date.Year())
	assert.Equal(t, local.Month(), date.Month())
	assert.Equal(t, local.Day(), date.Day())
	assert.Equal(t, 0, date.Hour()+date.Minute()+date.Second())
}
