package model_test

import (
	"testing"

	"hotel/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[model.Status][]model.Status{
		model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
		model.StatusConfirmed: {model.StatusCancelled, model.StatusCompleted},
	}

	for _, from := range model.Statuses {
		for _, to := range model.Statuses {
			expected := false
			for _, candidate := range allowed[from] {
				if candidate == to {
					expected = true
				}
			}

			assert.Equal(t, expected, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, model.StatusPending.IsTerminal())
	assert.False(t, model.StatusConfirmed.IsTerminal())
	assert.True(t, model.StatusCancelled.IsTerminal())
	assert.True(t, model.StatusCompleted.IsTerminal())
	assert.False(t, model.Status("archived").IsTerminal())
}

func TestStatus_BlocksRoom(t *testing.T) {
	assert.True(t, model.StatusPending.BlocksRoom())
	assert.True(t, model.StatusConfirmed.BlocksRoom())
	assert.False(t, model.StatusCancelled.BlocksRoom())
	assert.False(t, model.StatusCompleted.BlocksRoom())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected model.Status
		wantErr  bool
	}{
		{input: "pending", expected: model.StatusPending},
		{input: "confirmed", expected: model.StatusConfirmed},
		{input: "cancelled", expected: model.StatusCancelled},
		{input: "completed", expected: model.StatusCompleted},
		{input: "CONFIRMED", wantErr: true},
		{input: "", wantErr: true},
		{input: "refunded", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, err := model.ParseStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}
