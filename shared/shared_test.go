package shared_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/shared"
	"hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: &yes},
		{input: "1", expected: &yes},
		{input: "T", expected: &yes},
		{input: "FALSE", expected: &no},
		{input: "0", expected: &no},
		{input: "yes", expected: nil},
		{input: "trash", expected: nil},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{name: "plain number", input: "4", expected: 4},
		{name: "surrounding spaces", input: " 12 ", expected: 12},
		{name: "negative", input: "-3", expected: -3},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "two", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := shared.ConvertStringToInt(tt.input)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name         string
		total, limit int
		expected     int
	}{
		{name: "no rows still has one page", total: 0, limit: 10, expected: 1},
		{name: "missing limit", total: 25, limit: 0, expected: 1},
		{name: "negative limit", total: 25, limit: -5, expected: 1},
		{name: "exact", total: 20, limit: 10, expected: 2},
		{name: "remainder rounds up", total: 21, limit: 10, expected: 3},
		{name: "limit above total", total: 3, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type roomPatch struct {
		Name      *string `db:"name"`
		Capacity  *int    `db:"capacity"`
		Available *bool   `db:"is_available"`
		Note      string  `db:"note"`
		Internal  string  `db:"-"`
		Untagged  string
	}

	now := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	name := "Garden Suite"
	unavailable := false

	t.Run("keeps set fields only", func(t *testing.T) {
		result := shared.TransformFields(roomPatch{
			Name:      &name,
			Available: &unavailable,
			Internal:  "skip",
			Untagged:  "skip",
		}, "admin-1", now)

		assert.Equal(t, map[string]any{
			"name":                   &name,
			"is_available":           &unavailable,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: "admin-1",
		}, result)
	})

	t.Run("empty patch carries metadata", func(t *testing.T) {
		result := shared.TransformFields(roomPatch{}, "guest", now)

		assert.Len(t, result, 2)
		assert.Equal(t, now, result[constant.FieldModifiedAt])
		assert.Equal(t, "guest", result[constant.FieldModifiedBy])
	})
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("b-1", "id", "bookings")

	require.Len(t, filter.Filters, 1)

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "b-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "rate:1.2.3.4:curl", shared.BuildCacheKey("rate", "1.2.3.4", "curl"))
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "name", SortDir: dto.SortDirAsc}
	filterA := shared.FilterByID("room-1", "id", "rooms")
	filterB := shared.FilterByID("room-1", "id", "rooms")
	filterC := shared.FilterByID("room-2", "id", "rooms")

	keyA := shared.BuildCacheKeyWithQuery("room:gets", params, filterA)
	keyB := shared.BuildCacheKeyWithQuery("room:gets", params, filterB)
	keyC := shared.BuildCacheKeyWithQuery("room:gets", params, filterC)

	assert.Equal(t, keyA, keyB)
	assert.NotEqual(t, keyA, keyC)
	assert.Equal(t, "room:gets:", keyA[:len("room:gets:")])

	otherPage := params
	otherPage.Page = 2
	assert.NotEqual(t, keyA, shared.BuildCacheKeyWithQuery("room:gets", otherPage, filterA))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisCache := mocks.NewMockRedisCache(ctrl)

	t.Run("clears by prefix pattern", func(t *testing.T) {
		redisCache.EXPECT().Clear(gomock.Any(), "room:gets:*").Return(nil)

		shared.InvalidateCaches(context.Background(), redisCache, "room:gets")
	})

	t.Run("swallows cache errors", func(t *testing.T) {
		redisCache.EXPECT().Clear(gomock.Any(), "room:count:*").Return(errors.New("redis down"))

		shared.InvalidateCaches(context.Background(), redisCache, "room:count")
	})
}

func TestActorFromContext(t *testing.T) {
	assert.Equal(t, "guest", shared.ActorFromContext(context.Background()))
	assert.Equal(t, "user-1", shared.ActorFromContext(context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")))
	assert.Equal(t, "guest", shared.ActorFromContext(context.WithValue(context.Background(), constant.ContextKeyUserID, "")))
}
