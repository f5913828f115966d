// Package report derives cumulative trend series from a history snapshot.
//
// Every function here is pure: it allocates a fresh result, never fails and
// never touches shared state, so callers may invoke them concurrently.
package report

import (
	"sort"
	"time"

	"tally/internal/core"
)

// Series maps a 0-based chronological bucket index to the cumulative net
// value (income minus expenses, in cents) up to and including that bucket.
type Series map[int]core.Money

// Weekly buckets the current calendar week, Monday through Sunday, one
// bucket per day. Entries before the week are invisible: the running sum
// starts from zero at Monday, showing the net change within the week
// rather than the account's full trajectory.
func Weekly(entries []core.Entry, now time.Time) Series {
	return dailyCumulative(entries, weekStart(now), 7)
}

// Rolling30 buckets the last 30 calendar days, oldest first, with today as
// the final bucket. Same window-relative baseline as Weekly.
func Rolling30(entries []core.Entry, now time.Time) Series {
	return dailyCumulative(entries, now.AddDate(0, 0, -29), 30)
}

// AllTime buckets by calendar month, one bucket per month that actually
// appears in the history, chronologically ascending. An empty history
// yields an empty series, distinguishing "no data" from "all zero".
func AllTime(entries []core.Entry) Series {
	byMonth := make(map[string]int64)
	for _, e := range entries {
		byMonth[e.Timestamp.Format("2006-01")] += e.Signed()
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	// Lexicographic order is chronological for zero-padded YYYY-MM keys.
	sort.Strings(keys)

	series := make(Series, len(keys))
	var running int64
	for i, k := range keys {
		running += byMonth[k]
		series[i] = core.Money{Cents: running}
	}
	return series
}

func dailyCumulative(entries []core.Entry, start time.Time, days int) Series {
	series := make(Series, days)
	var running int64
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		for _, e := range entries {
			if sameDay(e.Timestamp, day) {
				running += e.Signed()
			}
		}
		series[i] = core.Money{Cents: running}
	}
	return series
}

// weekStart returns the Monday of now's week (ISO week start).
func weekStart(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	return now.AddDate(0, 0, -offset)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
