package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/locofilter/pkg/daterange"
)

// 🧪 TestResolveRange tests the three range-selection modes
func TestResolveRange(t *testing.T) {
	now := time.Date(2024, 12, 31, 15, 42, 0, 0, time.UTC)

	tests := []struct {
		name        string
		flags       rangeFlags
		wantStart   string
		wantEnd     string
		wantErr     string
		description string
	}{
		{
			name:        "explicit_start_end",
			flags:       rangeFlags{start: "2024-12-15 00:00:00", end: "2024-12-31 23:59:59"},
			wantStart:   "2024-12-15 00:00:00",
			wantEnd:     "2024-12-31 23:59:59",
			description: "explicit timestamps pass through",
		},
		{
			name:        "start_without_end",
			flags:       rangeFlags{start: "2024-12-15 00:00:00"},
			wantErr:     "--end is required",
			description: "start alone is an invalid combination",
		},
		{
			name:        "single_date",
			flags:       rangeFlags{date: "2024-12-25"},
			wantStart:   "2024-12-25 00:00:00",
			wantEnd:     "2024-12-25 23:59:59",
			description: "a single date expands to the full day",
		},
		{
			name:        "days_back",
			flags:       rangeFlags{days: 7},
			wantStart:   "2024-12-24 00:00:00",
			wantEnd:     "2024-12-31 23:59:59",
			description: "days mode anchors on today at day precision",
		},
		{
			name:        "no_mode",
			flags:       rangeFlags{},
			wantErr:     "must specify",
			description: "at least one mode is required",
		},
		{
			name:        "inverted_range",
			flags:       rangeFlags{start: "2024-12-31 00:00:00", end: "2024-12-15 00:00:00"},
			wantErr:     "invalid date range",
			description: "an inverted range is rejected up front",
		},
		{
			name:        "garbage_date",
			flags:       rangeFlags{date: "christmas"},
			wantErr:     "invalid date range",
			description: "unparseable dates are rejected up front",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveRange(tt.flags, now)
			if tt.wantErr != "" {
				require.Error(t, err, tt.description)
				assert.ErrorContains(t, err, tt.wantErr, tt.description)
				return
			}
			require.NoError(t, err, tt.description)

			wantStart, ok := daterange.Parse(tt.wantStart)
			require.True(t, ok)
			wantEnd, ok := daterange.Parse(tt.wantEnd)
			require.True(t, ok)
			assert.True(t, got.Start.Equal(wantStart), "%s: start %s", tt.description, got.Start)
			assert.True(t, got.End.Equal(wantEnd), "%s: end %s", tt.description, got.End)
		})
	}
}
