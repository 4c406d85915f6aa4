package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInclusive(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		days  int
	}{
		{"same day", "2026-06-01", "2026-06-01", 1},
		{"consecutive days", "2026-06-01", "2026-06-02", 2},
		{"full week", "2026-06-01", "2026-06-07", 7},
		{"across month boundary", "2026-01-30", "2026-02-02", 4},
		{"across year boundary", "2025-12-30", "2026-01-02", 4},
		{"leap february", "2028-02-28", "2028-03-01", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days, err := DaysInclusive(day(tc.start), day(tc.end))
			require.NoError(t, err)
			assert.Equal(t, tc.days, days)
		})
	}
}

func TestDaysInclusiveIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 6, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2026, 6, 2, 0, 1, 0, 0, time.UTC)
	days, err := DaysInclusive(start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, days)
}

func TestDaysInclusiveInvertedRange(t *testing.T) {
	_, err := DaysInclusive(day("2026-06-05"), day("2026-06-01"))
	var rangeErr *InvalidRangeError
	require.ErrorAs(t, err, &rangeErr)
}

func TestResolveAnchor(t *testing.T) {
	anchors := map[int]float64{2: 1, 3: 1, 7: 1, 30: 1}

	cases := []struct {
		days   int
		anchor int
	}{
		{1, 2},  // below all anchors: smallest
		{2, 2},  // exact match
		{3, 3},  // exact match
		{5, 3},  // between 3 and 7: nearest lower
		{7, 7},  // exact match
		{29, 7}, // just under the next anchor
		{30, 30},
		{90, 30}, // above all anchors: largest
	}
	for _, tc := range cases {
		assert.Equal(t, tc.anchor, ResolveAnchor(tc.days, anchors), "days=%d", tc.days)
	}
}

func TestResolveAnchorMonotonic(t *testing.T) {
	anchors := map[int]float64{2: 1, 5: 1, 7: 1, 30: 1}
	prev := 0
	for days := 1; days <= 60; days++ {
		anchor := ResolveAnchor(days, anchors)
		assert.GreaterOrEqual(t, anchor, prev, "days=%d", days)
		prev = anchor
	}
}
