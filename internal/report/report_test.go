package report

import (
	"testing"
	"time"

	"tally/internal/core"
)

// Wednesday 2024-06-05; the week runs Monday 06-03 .. Sunday 06-09.
var wednesday = time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)

func income(cents int64, ts time.Time) core.Entry {
	return core.Entry{Amount: core.Money{Cents: cents}, Kind: core.Income, Timestamp: ts}
}

func expense(cents int64, ts time.Time) core.Entry {
	return core.Entry{Amount: core.Money{Cents: cents}, Kind: core.Expense, Timestamp: ts}
}

func TestWeeklyEmptyHistory(t *testing.T) {
	series := Weekly(nil, wednesday)
	if len(series) != 7 {
		t.Fatalf("bucket count = %d, want 7", len(series))
	}
	for i := 0; i < 7; i++ {
		if series[i].Cents != 0 {
			t.Errorf("bucket %d = %d, want 0", i, series[i].Cents)
		}
	}
}

func TestWeeklySingleEntryCarriesForward(t *testing.T) {
	// One income of 5.00 on Wednesday (bucket 2).
	series := Weekly([]core.Entry{income(500, wednesday)}, wednesday)
	for i := 0; i < 7; i++ {
		want := int64(0)
		if i >= 2 {
			want = 500
		}
		if series[i].Cents != want {
			t.Errorf("bucket %d = %d, want %d", i, series[i].Cents, want)
		}
	}
}

func TestWeeklyNetAndZeroDayBuckets(t *testing.T) {
	monday := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	entries := []core.Entry{
		income(1000, monday),
		expense(400, monday),  // Monday nets +600
		income(300, tuesday),  // Tuesday +300
		expense(300, tuesday), // Tuesday nets 0: bucket keeps prior value
	}
	series := Weekly(entries, wednesday)
	wants := []int64{600, 600, 600, 600, 600, 600, 600}
	for i, want := range wants {
		if series[i].Cents != want {
			t.Errorf("bucket %d = %d, want %d", i, series[i].Cents, want)
		}
	}
}

func TestWeeklyIgnoresEntriesBeforeWindow(t *testing.T) {
	lastMonth := wednesday.AddDate(0, -1, 0)
	series := Weekly([]core.Entry{income(9999, lastMonth)}, wednesday)
	if series[6].Cents != 0 {
		t.Fatalf("pre-window entry leaked into weekly series: %d", series[6].Cents)
	}
}

func TestWeeklyWindowBoundsAcrossSunday(t *testing.T) {
	sunday := time.Date(2024, 6, 9, 23, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 6, 3, 0, 30, 0, 0, time.UTC)
	entries := []core.Entry{income(100, monday), income(200, sunday)}

	// Viewed from Sunday, Monday is still bucket 0 of the same week.
	series := Weekly(entries, sunday)
	if series[0].Cents != 100 {
		t.Fatalf("bucket 0 = %d, want 100", series[0].Cents)
	}
	if series[6].Cents != 300 {
		t.Fatalf("bucket 6 = %d, want 300", series[6].Cents)
	}
}

func TestRolling30Window(t *testing.T) {
	now := time.Date(2024, 6, 30, 10, 0, 0, 0, time.UTC)
	entries := []core.Entry{
		income(1000, now),                    // today: bucket 29
		expense(250, now.AddDate(0, 0, -29)), // window start: bucket 0
		income(7777, now.AddDate(0, 0, -30)), // one day before the window
	}
	series := Rolling30(entries, now)
	if len(series) != 30 {
		t.Fatalf("bucket count = %d, want 30", len(series))
	}
	if series[0].Cents != -250 {
		t.Fatalf("bucket 0 = %d, want -250", series[0].Cents)
	}
	if series[28].Cents != -250 {
		t.Fatalf("bucket 28 = %d, want -250 carried forward", series[28].Cents)
	}
	if series[29].Cents != 750 {
		t.Fatalf("bucket 29 = %d, want 750", series[29].Cents)
	}
}

func TestAllTimeEmptyHistory(t *testing.T) {
	series := AllTime(nil)
	if series == nil || len(series) != 0 {
		t.Fatalf("empty history should yield an empty (non-nil) series, got %v", series)
	}
}

func TestAllTimeTwoMonths(t *testing.T) {
	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)
	entries := []core.Entry{
		expense(5000, march), // March nets -50.00
		income(20000, april), // April nets +200.00
	}
	series := AllTime(entries)
	if len(series) != 2 {
		t.Fatalf("bucket count = %d, want 2", len(series))
	}
	if series[0].Cents != -5000 {
		t.Fatalf("bucket 0 = %d, want -5000", series[0].Cents)
	}
	if series[1].Cents != 15000 {
		t.Fatalf("bucket 1 = %d, want 15000 (cumulative)", series[1].Cents)
	}
}

func TestAllTimeMonthKeySortingAcrossYears(t *testing.T) {
	entries := []core.Entry{
		income(300, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		income(100, time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)),
		income(200, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)),
	}
	series := AllTime(entries)
	wants := []int64{100, 300, 600}
	for i, want := range wants {
		if series[i].Cents != want {
			t.Errorf("bucket %d = %d, want %d", i, series[i].Cents, want)
		}
	}
}

func TestAllTimeZeroNetMonthStillAppears(t *testing.T) {
	jan := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	entries := []core.Entry{
		income(1000, jan),
		income(500, feb),
		expense(500, feb), // February nets exactly zero
	}
	series := AllTime(entries)
	if len(series) != 2 {
		t.Fatalf("bucket count = %d, want 2 (zero-net month kept)", len(series))
	}
	if series[1].Cents != 1000 {
		t.Fatalf("bucket 1 = %d, want prior cumulative 1000", series[1].Cents)
	}
}

func TestReportsArePure(t *testing.T) {
	entries := []core.Entry{
		income(100, wednesday),
		expense(40, wednesday.AddDate(0, 0, -1)),
	}
	a := Weekly(entries, wednesday)
	b := Weekly(entries, wednesday)
	if len(a) != len(b) {
		t.Fatalf("repeated calls differ in size")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bucket %d differs between calls: %v vs %v", i, a[i], b[i])
		}
	}

	c := AllTime(entries)
	c[0] = core.Money{Cents: -1} // mutating a result must not leak
	d := AllTime(entries)
	if d[0].Cents == -1 {
		t.Fatalf("AllTime shares state between calls")
	}
}
