package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"hotel/internal/domains/booking/model"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConflictFilter(t *testing.T) {
	stay := model.Stay{
		CheckIn:  time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
	}

	filter := ConflictFilter("room-1", stay)
	where, args := filter.GetWhereClause()

	assert.Equal(t,
		"(bookings.room_id = :room_id AND bookings.check_in < :stay_check_out AND bookings.check_out > :stay_check_in "+
			"AND bookings.status IN (:conflict_status_0, :conflict_status_1))",
		where,
	)
	assert.Equal(t, map[string]any{
		"room_id":           "room-1",
		"stay_check_out":    stay.CheckOut,
		"stay_check_in":     stay.CheckIn,
		"conflict_status_0": "pending",
		"conflict_status_1": "confirmed",
	}, args)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "AB12CD34", NormalizeCode("  ab12cd34 "))
	assert.Equal(t, "", NormalizeCode(""))
}

func TestMapConstraintError(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{
			name:   "exclusion violation on overlap constraint",
			err:    fmt.Errorf("failed to insert data (booking): %w", &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"}),
			target: ErrRoomUnavailable,
		},
		{
			name:   "unique violation on verification code",
			err:    &pq.Error{Code: "23505", Constraint: "bookings_verification_code_key"},
			target: ErrVerificationCodeTaken,
		},
		{
			name:   "unique violation on another constraint",
			err:    &pq.Error{Code: "23505", Constraint: "bookings_pkey"},
			target: nil,
		},
		{
			name:   "non postgres error",
			err:    plain,
			target: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapConstraintError(tt.err)

			if tt.target == nil {
				assert.Equal(t, tt.err, got)

				return
			}

			assert.ErrorIs(t, got, tt.target)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}
