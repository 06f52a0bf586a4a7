package nowline

import (
	"testing"
	"time"
)

func TestCompute(t *testing.T) {
	weekStart := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		now         time.Time
		wantVisible bool
		want        Marker
	}{
		{
			name:        "wednesday morning",
			now:         time.Date(2025, 1, 8, 9, 30, 15, 0, time.UTC),
			wantVisible: true,
			want:        Marker{DayIndex: 2, Minutes: 570, Top: 456, Label: "09:30"},
		},
		{
			name:        "week start",
			now:         weekStart,
			wantVisible: true,
			want:        Marker{DayIndex: 0, Minutes: 0, Top: 0, Label: "00:00"},
		},
		{
			name:        "last minute of sunday",
			now:         time.Date(2025, 1, 12, 23, 59, 0, 0, time.UTC),
			wantVisible: true,
			want:        Marker{DayIndex: 6, Minutes: 1439, Top: 1151.2, Label: "23:59"},
		},
		{
			name: "next monday",
			now:  time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "previous sunday",
			now:  time.Date(2025, 1, 5, 23, 59, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compute(tt.now, weekStart, 48)
			if ok != tt.wantVisible {
				t.Fatalf("visible = %v, want %v", ok, tt.wantVisible)
			}
			if !ok {
				return
			}
			if got.DayIndex != tt.want.DayIndex || got.Minutes != tt.want.Minutes || got.Label != tt.want.Label {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if diff := got.Top - tt.want.Top; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Top = %v, want %v", got.Top, tt.want.Top)
			}
		})
	}
}

func TestComputeUsesWeekLocation(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)
	weekStart := time.Date(2025, 1, 6, 0, 0, 0, 0, msk)
	// Sunday 22:00 UTC is Monday 01:00 in Moscow.
	now := time.Date(2025, 1, 5, 22, 0, 0, 0, time.UTC)

	got, ok := Compute(now, weekStart, 48)
	if !ok {
		t.Fatal("expected marker to be visible")
	}
	if got.DayIndex != 0 || got.Label != "01:00" {
		t.Errorf("got %+v", got)
	}
}

func TestIndicatorTick(t *testing.T) {
	weekStart := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	ind := NewIndicator(weekStart, 2)

	ind.Tick(time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC))
	m, ok := ind.Marker()
	if !ok || m.DayIndex != 1 || m.Top != 20 {
		t.Fatalf("got %+v, %v", m, ok)
	}

	ind.SetWeek(weekStart.AddDate(0, 0, 7))
	if _, ok := ind.Marker(); !ok {
		t.Error("marker should stay until the next tick")
	}

	ind.Tick(time.Date(2025, 1, 7, 10, 1, 0, 0, time.UTC))
	if _, ok := ind.Marker(); ok {
		t.Error("marker should be hidden outside the displayed week")
	}
	if ind.Clock() != "10:01" {
		t.Errorf("clock = %q, want 10:01", ind.Clock())
	}
}
