package market

import (
	"sort"
	"time"

	"market-pulse/internal/types"
)

// toDate strips any time-of-day component, keeping the calendar date in UTC.
func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Normalize converts raw provider points into the canonical shape: dates
// truncated to calendar days, sorted ascending, duplicate dates keeping
// the last value seen.
func Normalize(points []types.SeriesPoint) []types.SeriesPoint {
	if len(points) == 0 {
		return nil
	}

	byDate := make(map[time.Time]float64, len(points))
	for _, p := range points {
		byDate[toDate(p.Date)] = p.Close
	}

	out := make([]types.SeriesPoint, 0, len(byDate))
	for d, close := range byDate {
		out = append(out, types.SeriesPoint{Date: d, Close: close})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
