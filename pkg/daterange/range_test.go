package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end string) Range {
	t.Helper()
	r, err := ParseRange(start, end)
	require.NoError(t, err)
	return r
}

// 🧪 TestNewRange tests range validation
func TestNewRange(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r, err := New(
			time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, "2024-12-15 00:00:00 .. 2024-12-31 23:59:59", r.String())
	})

	t.Run("inverted", func(t *testing.T) {
		_, err := New(
			time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("instant", func(t *testing.T) {
		at := time.Date(2024, 12, 15, 12, 0, 0, 0, time.UTC)
		_, err := New(at, at)
		assert.NoError(t, err, "start == end is a valid single-instant range")
	})

	t.Run("unparseable_start", func(t *testing.T) {
		_, err := ParseRange("garbage", "2024-12-31 00:00:00")
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("unparseable_end", func(t *testing.T) {
		_, err := ParseRange("2024-12-15 00:00:00", "garbage")
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

// 🧪 TestOverlaps tests the inclusive span-intersection rule used for
// timeline items
func TestOverlaps(t *testing.T) {
	r := mustRange(t, "2024-12-15 00:00:00", "2024-12-31 23:59:59")

	tests := []struct {
		name        string
		start       string
		end         string
		want        bool
		description string
	}{
		{
			name:        "straddles_range_start",
			start:       "2024-12-14 10:00:00",
			end:         "2024-12-15 02:00:00",
			want:        true,
			description: "an item ending just inside the range overlaps",
		},
		{
			name:        "fully_before",
			start:       "2024-11-01 00:00:00",
			end:         "2024-11-02 00:00:00",
			want:        false,
			description: "an item entirely before the range is excluded",
		},
		{
			name:        "fully_after",
			start:       "2025-01-02 00:00:00",
			end:         "2025-01-03 00:00:00",
			want:        false,
			description: "an item entirely after the range is excluded",
		},
		{
			name:        "contains_whole_range",
			start:       "2024-12-01 00:00:00",
			end:         "2025-01-15 00:00:00",
			want:        true,
			description: "overlap, not containment: a superset span counts",
		},
		{
			name:        "touches_range_end_exactly",
			start:       "2024-12-31 23:59:59",
			end:         "2025-01-01 04:00:00",
			want:        true,
			description: "item.start == range.end is inclusive",
		},
		{
			name:        "touches_range_start_exactly",
			start:       "2024-12-14 00:00:00",
			end:         "2024-12-15 00:00:00",
			want:        true,
			description: "item.end == range.start is inclusive",
		},
		{
			name:        "ends_one_second_early",
			start:       "2024-12-14 00:00:00",
			end:         "2024-12-14 23:59:59",
			want:        false,
			description: "a one-second gap before the range is a miss",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, ok := Parse(tt.start)
			require.True(t, ok)
			end, ok := Parse(tt.end)
			require.True(t, ok)
			assert.Equal(t, tt.want, r.Overlaps(start, end), tt.description)
		})
	}
}

// 🧪 TestContains tests the inclusive instant-in-range rule used for
// locomotion samples
func TestContains(t *testing.T) {
	r := mustRange(t, "2024-12-15 00:00:00", "2024-12-31 23:59:59")

	tests := []struct {
		name        string
		at          string
		want        bool
		description string
	}{
		{"inside", "2024-12-20 12:00:00", true, "a sample inside the range is kept"},
		{"at_start", "2024-12-15 00:00:00", true, "range.start itself is included"},
		{"at_end", "2024-12-31 23:59:59", true, "range.end itself is included"},
		{"before", "2024-12-14 23:59:59", false, "one second before the start is out"},
		{"after", "2025-01-01 00:00:00", false, "one second past the end is out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at, ok := Parse(tt.at)
			require.True(t, ok)
			assert.Equal(t, tt.want, r.Contains(at), tt.description)
		})
	}
}

// 🧪 TestMonthKeys tests the inclusive month-file sequence
func TestMonthKeys(t *testing.T) {
	tests := []struct {
		name        string
		start       string
		end         string
		want        []string
		description string
	}{
		{
			name:        "single_month",
			start:       "2024-12-05 00:00:00",
			end:         "2024-12-20 00:00:00",
			want:        []string{"2024-12"},
			description: "a range within one month visits one file",
		},
		{
			name:        "year_boundary",
			start:       "2024-12-20 00:00:00",
			end:         "2025-01-05 00:00:00",
			want:        []string{"2024-12", "2025-01"},
			description: "a range across new year visits both months in order",
		},
		{
			name:        "several_months",
			start:       "2024-10-31 23:00:00",
			end:         "2025-01-01 00:00:00",
			want:        []string{"2024-10", "2024-11", "2024-12", "2025-01"},
			description: "every month touched by the range appears exactly once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRange(t, tt.start, tt.end)
			assert.Equal(t, tt.want, r.MonthKeys(), tt.description)
		})
	}
}
