package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody response.Error
	}{
		{
			name:         "kinded failure",
			err:          failure.ConflictKind(failure.KindRoomUnavailable, "Room is not available for the selected dates"),
			expectedCode: http.StatusConflict,
			expectedBody: response.Error{Error: failure.KindRoomUnavailable, Message: "Room is not available for the selected dates"},
		},
		{
			name:         "wrapped failure keeps its kind",
			err:          fmt.Errorf("check in: %w", failure.Invalid(failure.KindEarlyCheckIn, "Check-in is scheduled for 2025-12-01")),
			expectedCode: http.StatusBadRequest,
			expectedBody: response.Error{Error: failure.KindEarlyCheckIn, Message: "Check-in is scheduled for 2025-12-01"},
		},
		{
			name:         "update failed is not masked",
			err:          failure.Internal(failure.KindUpdateFailed, "Failed to update booking status"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: response.Error{Error: failure.KindUpdateFailed, Message: "Failed to update booking status"},
		},
		{
			name:         "upstream failure keeps its message",
			err:          failure.New(http.StatusBadGateway, failure.KindServerError, "Reply could not be sent. Please try again."),
			expectedCode: http.StatusBadGateway,
			expectedBody: response.Error{Error: failure.KindServerError, Message: "Reply could not be sent. Please try again."},
		},
		{
			name:         "plain error is hidden",
			err:          errors.New("pq: connection refused"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: response.Error{Error: failure.KindServerError, Message: "An unexpected error occurred, please try again later"},
		},
		{
			name:         "internal error message is hidden",
			err:          failure.InternalError(errors.New("pq: deadlock detected")),
			expectedCode: http.StatusInternalServerError,
			expectedBody: response.Error{Error: failure.KindServerError, Message: "An unexpected error occurred, please try again later"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body response.Error
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]any{"id": "b-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"b-1"}}`, rec.Body.String())
}
