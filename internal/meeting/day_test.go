package meeting

import (
	"testing"
	"time"
)

func TestClipToDay(t *testing.T) {
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		m         Meeting
		wantOK    bool
		wantStart int
		wantEnd   int
	}{
		{
			name:      "inside day",
			m:         Meeting{StartsAt: at(6, 9, 0), EndsAt: at(6, 10, 30)},
			wantOK:    true,
			wantStart: 540,
			wantEnd:   630,
		},
		{
			name:      "starts previous day",
			m:         Meeting{StartsAt: at(5, 22, 0), EndsAt: at(6, 1, 0)},
			wantOK:    true,
			wantStart: 0,
			wantEnd:   60,
		},
		{
			name:      "ends next day",
			m:         Meeting{StartsAt: at(6, 23, 0), EndsAt: at(7, 2, 0)},
			wantOK:    true,
			wantStart: 1380,
			wantEnd:   1440,
		},
		{
			name:   "ends at midnight before",
			m:      Meeting{StartsAt: at(5, 23, 0), EndsAt: at(6, 0, 0)},
			wantOK: false,
		},
		{
			name:   "starts at next midnight",
			m:      Meeting{StartsAt: at(7, 0, 0), EndsAt: at(7, 1, 0)},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := ClipToDay(tt.m, day)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if ev.StartMin != tt.wantStart || ev.EndMin != tt.wantEnd {
				t.Errorf("got [%d,%d], want [%d,%d]", ev.StartMin, ev.EndMin, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestWeekEvents(t *testing.T) {
	weekStart := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	ms := []Meeting{
		{ID: "mon", StartsAt: at(6, 9, 0), EndsAt: at(6, 10, 0)},
		{ID: "overnight", StartsAt: at(8, 22, 0), EndsAt: at(9, 2, 0)},
		{ID: "next-week", StartsAt: at(13, 9, 0), EndsAt: at(13, 10, 0)},
	}

	days := WeekEvents(ms, weekStart)
	if len(days[0]) != 1 || days[0][0].ID != "mon" {
		t.Errorf("monday: %+v", days[0])
	}
	if len(days[2]) != 1 || len(days[3]) != 1 {
		t.Fatalf("overnight meeting should appear on wednesday and thursday: %d, %d", len(days[2]), len(days[3]))
	}
	if days[3][0].DayIndex != 3 || days[3][0].StartMin != 0 || days[3][0].EndMin != 120 {
		t.Errorf("thursday part: %+v", days[3][0])
	}
	total := 0
	for _, d := range days {
		total += len(d)
	}
	if total != 3 {
		t.Errorf("total day events = %d, want 3", total)
	}
}

func TestClipToDayInViewLocation(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)
	// 22:30 UTC is 01:30 the next day in Moscow.
	m := Meeting{StartsAt: time.Date(2025, 1, 6, 22, 30, 0, 0, time.UTC), EndsAt: time.Date(2025, 1, 6, 23, 30, 0, 0, time.UTC)}

	if _, ok := ClipToDay(m, time.Date(2025, 1, 6, 0, 0, 0, 0, msk)); ok {
		t.Error("meeting should not be on Jan 6 in Moscow")
	}
	ev, ok := ClipToDay(m, time.Date(2025, 1, 7, 0, 0, 0, 0, msk))
	if !ok {
		t.Fatal("meeting should be on Jan 7 in Moscow")
	}
	if ev.StartMin != 90 || ev.EndMin != 150 {
		t.Errorf("got [%d,%d], want [90,150]", ev.StartMin, ev.EndMin)
	}
}
