package domain_test

import (
	"testing"
	"time"

	"github.com/euroblaze/ear-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

// Wednesday 2025-06-18 is the reference point for all window tests.
var refNow = time.Date(2025, time.June, 18, 15, 42, 10, 0, time.UTC)

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		code  string
		since string
		until string
		label string
	}{
		{"7d", "2025-06-11", "2025-06-18", "Past 7 Days"},
		{"14d", "2025-06-04", "2025-06-18", "Past 14 Days"},
		{"week", "2025-06-16", "2025-06-18", "This Week"},
		{"month", "2025-06-01", "2025-06-18", "This Month"},
		{"lastmonth", "2025-05-01", "2025-05-31", "Last Month"},
		{"quarter", "2025-04-01", "2025-06-18", "This Quarter (Q2)"},
		{"year", "2025-01-01", "2025-06-18", "This Year"},
		{"lastweek", "2025-06-09", "2025-06-15", "Last Week"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			p := domain.ResolvePeriod(tt.code, refNow)
			assert.Equal(t, tt.since, p.SinceDate())
			assert.Equal(t, tt.until, p.UntilDate())
			assert.Equal(t, tt.label, p.Label)
		})
	}

	t.Run("unknown code falls back to last week", func(t *testing.T) {
		p := domain.ResolvePeriod("fortnight", refNow)
		assert.Equal(t, "lastweek", p.Code)
		assert.Equal(t, "2025-06-09", p.SinceDate())
		assert.Equal(t, "2025-06-15", p.UntilDate())
	})

	t.Run("last week window on a Monday", func(t *testing.T) {
		monday := time.Date(2025, time.June, 16, 8, 0, 0, 0, time.UTC)
		p := domain.ResolvePeriod("lastweek", monday)
		assert.Equal(t, "2025-06-09", p.SinceDate())
		assert.Equal(t, "2025-06-15", p.UntilDate())
	})
}

func TestWeekStart(t *testing.T) {
	t.Run("midweek resolves to the preceding Monday", func(t *testing.T) {
		got := domain.WeekStart(domain.DayStart(refNow))
		assert.Equal(t, "2025-06-16", got.Format(domain.DateOnly))
	})

	t.Run("Sunday belongs to the week started six days earlier", func(t *testing.T) {
		sunday := time.Date(2025, time.June, 22, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "2025-06-16", domain.WeekStart(sunday).Format(domain.DateOnly))
	})

	t.Run("Monday is its own week start", func(t *testing.T) {
		monday := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "2025-06-16", domain.WeekStart(monday).Format(domain.DateOnly))
	})
}

func TestFilterHelpers(t *testing.T) {
	filter := domain.Filter{
		{Field: domain.FieldAssignee, Op: domain.OpEq, Value: int64(7)},
		{Field: domain.FieldWriteDate, Op: domain.OpGte, Value: "2025-06-01"},
		{Field: domain.FieldWriteDate, Op: domain.OpLt, Value: "2025-06-18"},
	}

	t.Run("HasField", func(t *testing.T) {
		assert.True(t, filter.HasField(domain.FieldAssignee))
		assert.False(t, filter.HasField(domain.FieldPriority))
	})

	t.Run("First returns the earliest condition", func(t *testing.T) {
		c, ok := filter.First(domain.FieldWriteDate)
		assert.True(t, ok)
		assert.Equal(t, domain.OpGte, c.Op)
	})

	t.Run("Without removes every condition on the field", func(t *testing.T) {
		trimmed := filter.Without(domain.FieldWriteDate)
		assert.Len(t, trimmed, 1)
		assert.Equal(t, domain.FieldAssignee, trimmed[0].Field)
		// The original filter is untouched.
		assert.Len(t, filter, 3)
	})
}
