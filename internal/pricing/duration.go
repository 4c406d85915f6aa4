package pricing

import (
	"sort"
	"time"
)

// DaysInclusive counts the days in a range with both endpoints included, so a
// same-day rental is 1 day. Time-of-day is ignored.
func DaysInclusive(start, end time.Time) (int, error) {
	s := dateOnly(start)
	e := dateOnly(end)
	if e.Before(s) {
		return 0, &InvalidRangeError{Start: start, End: end}
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ResolveAnchor picks the largest anchor day-count not exceeding days, or the
// smallest anchor present when days falls below all of them. The selection is
// monotonic: more days never resolves to a smaller anchor.
func ResolveAnchor(days int, anchors map[int]float64) int {
	keys := make([]int, 0, len(anchors))
	for k := range anchors {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	anchor := keys[0]
	for _, k := range keys {
		if k <= days {
			anchor = k
		} else {
			break
		}
	}
	return anchor
}
