package model_test

import (
	"bytes"
	"regexp"
	"testing"

	"hotel/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestNewCodeGenerator(t *testing.T) {
	generate := model.NewCodeGenerator()

	seen := map[string]struct{}{}

	for range 50 {
		code, err := generate()

		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)

		seen[code] = struct{}{}
	}

	assert.Greater(t, len(seen), 1)
}

func TestRandomCode(t *testing.T) {
	t.Run("maps bytes onto the alphabet", func(t *testing.T) {
		code, err := model.RandomCode(bytes.NewReader([]byte{0, 1, 25, 26, 35, 36, 61, 251}))

		require.NoError(t, err)
		assert.Equal(t, "ABZ09AZ9", code)
	})

	t.Run("skips biased bytes", func(t *testing.T) {
		code, err := model.RandomCode(bytes.NewReader([]byte{252, 255, 0, 0, 0, 0, 0, 0, 0, 0}))

		require.NoError(t, err)
		assert.Equal(t, "AAAAAAAA", code)
	})

	t.Run("short source", func(t *testing.T) {
		_, err := model.RandomCode(bytes.NewReader([]byte{1, 2}))

		assert.Error(t, err)
	})
}
