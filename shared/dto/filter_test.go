package dto_test

import (
	"testing"

	"hotel/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equal with table",
			filter:    dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.status = :status",
			wantArgs:  map[string]any{"status": "pending"},
		},
		{
			name:      "strictly less with arg name",
			filter:    dto.Filter{ArgName: "stay_end", Field: "check_in", Value: 10, Operator: dto.FilterOperatorLess},
			wantWhere: "check_in < :stay_end",
			wantArgs:  map[string]any{"stay_end": 10},
		},
		{
			name:      "strictly greater",
			filter:    dto.Filter{Field: "check_out", Value: 3, Operator: dto.FilterOperatorGreater},
			wantWhere: "check_out > :check_out",
			wantArgs:  map[string]any{"check_out": 3},
		},
		{
			name:      "not in slice",
			filter:    dto.Filter{Field: "status", Value: []string{"cancelled", "completed"}, Operator: dto.FilterOperatorNotIn},
			wantWhere: "status NOT IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "cancelled", "status_1": "completed"},
		},
		{
			name:      "in slice",
			filter:    dto.Filter{Field: "status", Value: []string{"pending"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0)",
			wantArgs:  map[string]any{"status_0": "pending"},
		},
		{
			name:      "in scalar is bound",
			filter:    dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status)",
			wantArgs:  map[string]any{"status": "pending"},
		},
		{
			name:      "like lowers both sides",
			filter:    dto.Filter{Field: "name", Value: "Suite", Operator: dto.FilterOperatorLike, Table: "rooms"},
			wantWhere: "LOWER(rooms.name) LIKE LOWER(:name)",
			wantArgs:  map[string]any{"name": "%Suite%"},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "name", Value: "x", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "deleted_at", Operator: dto.FilterIsNull},
			wantWhere: "deleted_at IS NULL",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_DefaultsToAnd(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "a", Value: 1, Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "b", Value: 2, Operator: dto.FilterOperatorEq},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(a = :a AND b = :b)", where)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, args)
}

func TestFilterGroup_Nested(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "a", Value: 1, Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "b", Value: 2, Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "c", Value: 3, Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, _ := group.GetWhereClause()

	assert.Equal(t, "(a = :a AND (b = :b OR c = :c))", where)
}

func TestFilterGroup_SkipsUnknownEntries(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			"not a filter",
			dto.Filter{Field: "a", Value: 1, Operator: "between"},
			dto.Filter{Field: "b", Value: 2, Operator: dto.FilterOperatorEq},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(b = :b)", where)
	assert.Equal(t, map[string]any{"b": 2}, args)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
