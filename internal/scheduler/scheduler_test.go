package scheduler

import (
	"testing"
	"time"

	"github.com/IMNJL/AI-chef/internal/meeting"
)

func newWeekdays(t *testing.T) *Scheduler {
	t.Helper()
	s, err := New([]string{"monday", "tuesday", "wednesday", "thursday", "friday"}, "09:00", "17:00")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 1, day, hour, minute, 0, 0, time.UTC) // Jan 6 2025 is a Monday
}

func busy(start, end time.Time) meeting.Meeting {
	return meeting.Meeting{ID: start.Format("1504"), Title: "busy", StartsAt: start, EndsAt: end}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		workdays []string
		start    string
		end      string
	}{
		{"unknown day", []string{"funday"}, "09:00", "17:00"},
		{"no days", nil, "09:00", "17:00"},
		{"bad start", []string{"mon"}, "9am", "17:00"},
		{"bad end", []string{"mon"}, "09:00", "25:00"},
		{"start after end", []string{"mon"}, "17:00", "09:00"},
		{"empty day", []string{"mon"}, "09:00", "09:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.workdays, tt.start, tt.end); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestNew_ShortNamesAndMidnight(t *testing.T) {
	s, err := New([]string{"Sat", "SUNDAY"}, "20:00", "24:00")
	if err != nil {
		t.Fatal(err)
	}
	if !s.IsWorkday(at(11, 0, 0)) || !s.IsWorkday(at(12, 0, 0)) || s.IsWorkday(at(13, 0, 0)) {
		t.Error("weekend days not parsed")
	}
	if !s.IsWithinWorkHours(at(11, 23, 59)) {
		t.Error("23:59 should be inside hours ending at 24:00")
	}
}

func TestIsWithinWorkHours(t *testing.T) {
	s := newWeekdays(t)
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"before", at(6, 8, 59), false},
		{"opening", at(6, 9, 0), true},
		{"afternoon", at(8, 16, 59), true},
		{"closing", at(8, 17, 0), false},
		{"saturday", at(11, 12, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsWithinWorkHours(tt.t); got != tt.want {
				t.Errorf("IsWithinWorkHours(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestNextAvailableStart(t *testing.T) {
	s := newWeekdays(t)
	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
	}{
		{"before work hours", at(6, 7, 30), at(6, 9, 0)},
		{"during work hours rounds up", at(7, 10, 7), at(7, 10, 15)},
		{"on a boundary", at(7, 10, 30), at(7, 10, 30)},
		{"after work hours", at(7, 18, 0), at(8, 9, 0)},
		{"last quarter rounds past close", at(7, 16, 50), at(8, 9, 0)},
		{"friday evening skips weekend", at(10, 17, 30), at(13, 9, 0)},
		{"saturday", at(11, 12, 0), at(13, 9, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := s.NextAvailableStart(tt.now)
			if !slot.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", slot.Start, tt.wantStart)
			}
			if slot.End.Hour() != 17 || slot.End.Day() != slot.Start.Day() {
				t.Errorf("end = %v, want 17:00 the same day", slot.End)
			}
		})
	}
}

func TestFindFree(t *testing.T) {
	s := newWeekdays(t)
	tests := []struct {
		name    string
		from    time.Time
		busy    []meeting.Meeting
		minutes int
		want    time.Time
	}{
		{
			name:    "empty calendar",
			from:    at(6, 8, 0),
			minutes: 60,
			want:    at(6, 9, 0),
		},
		{
			name:    "after a meeting",
			from:    at(6, 8, 0),
			busy:    []meeting.Meeting{busy(at(6, 9, 0), at(6, 10, 10))},
			minutes: 30,
			want:    at(6, 10, 15),
		},
		{
			name: "gap too small",
			from: at(6, 9, 0),
			busy: []meeting.Meeting{
				busy(at(6, 11, 0), at(6, 12, 0)),
				busy(at(6, 9, 0), at(6, 10, 30)),
			},
			minutes: 45,
			want:    at(6, 12, 0),
		},
		{
			name:    "fits exactly before a meeting",
			from:    at(6, 9, 0),
			busy:    []meeting.Meeting{busy(at(6, 10, 0), at(6, 17, 0))},
			minutes: 60,
			want:    at(6, 9, 0),
		},
		{
			name:    "day full rolls over",
			from:    at(6, 9, 0),
			busy:    []meeting.Meeting{busy(at(6, 8, 0), at(6, 16, 30))},
			minutes: 60,
			want:    at(7, 9, 0),
		},
		{
			name:    "overnight meeting blocks the morning",
			from:    at(10, 16, 0),
			busy:    []meeting.Meeting{busy(at(10, 16, 0), at(13, 9, 30))},
			minutes: 30,
			want:    at(13, 9, 30),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, ok := s.FindFree(tt.from, tt.busy, tt.minutes, 14)
			if !ok {
				t.Fatal("no slot found")
			}
			if !slot.Start.Equal(tt.want) {
				t.Errorf("start = %v, want %v", slot.Start, tt.want)
			}
			if slot.Minutes() != tt.minutes {
				t.Errorf("slot is %d minutes, want %d", slot.Minutes(), tt.minutes)
			}
		})
	}
}

func TestFindFree_NoRoom(t *testing.T) {
	s := newWeekdays(t)
	if _, ok := s.FindFree(at(6, 9, 0), nil, 9*60, 14); ok {
		t.Error("a slot longer than the working day cannot fit")
	}
	week := busy(at(6, 0, 0), at(13, 0, 0))
	if _, ok := s.FindFree(at(6, 9, 0), []meeting.Meeting{week}, 30, 5); ok {
		t.Error("horizon should stop the search")
	}
}
