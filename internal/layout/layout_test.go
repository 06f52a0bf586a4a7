package layout

import (
	"math/rand/v2"
	"reflect"
	"testing"
	"time"

	"github.com/IMNJL/AI-chef/internal/meeting"
)

func ev(id string, start, end int) meeting.DayEvent {
	return meeting.DayEvent{Meeting: meeting.Meeting{ID: id}, StartMin: start, EndMin: end}
}

func lanesByID(res Result) map[string]int {
	out := make(map[string]int, len(res.Events))
	for _, e := range res.Events {
		out[e.ID] = e.Lane
	}
	return out
}

func TestAssign(t *testing.T) {
	tests := []struct {
		name      string
		events    []meeting.DayEvent
		wantLanes map[string]int
		wantMax   int
	}{
		{
			name:      "empty day",
			events:    nil,
			wantLanes: map[string]int{},
			wantMax:   1,
		},
		{
			name:      "single event",
			events:    []meeting.DayEvent{ev("a", 540, 600)},
			wantLanes: map[string]int{"a": 0},
			wantMax:   1,
		},
		{
			name: "A B C chain",
			events: []meeting.DayEvent{
				ev("C", 600, 660),
				ev("A", 540, 600),
				ev("B", 570, 630),
			},
			wantLanes: map[string]int{"A": 0, "B": 1, "C": 0},
			wantMax:   2,
		},
		{
			name: "back to back share a lane",
			events: []meeting.DayEvent{
				ev("a", 540, 600),
				ev("b", 600, 660),
				ev("c", 660, 720),
			},
			wantLanes: map[string]int{"a": 0, "b": 0, "c": 0},
			wantMax:   1,
		},
		{
			name: "three concurrent",
			events: []meeting.DayEvent{
				ev("a", 540, 720),
				ev("b", 560, 700),
				ev("c", 580, 600),
				ev("d", 610, 620),
			},
			wantLanes: map[string]int{"a": 0, "b": 1, "c": 2, "d": 2},
			wantMax:   3,
		},
		{
			name: "freed lower lane is reused",
			events: []meeting.DayEvent{
				ev("a", 540, 570),
				ev("b", 550, 700),
				ev("c", 580, 600),
			},
			wantLanes: map[string]int{"a": 0, "b": 1, "c": 0},
			wantMax:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Assign(tt.events)
			if res.MaxLanes != tt.wantMax {
				t.Errorf("MaxLanes = %d, want %d", res.MaxLanes, tt.wantMax)
			}
			if got := lanesByID(res); !reflect.DeepEqual(got, tt.wantLanes) {
				t.Errorf("lanes = %v, want %v", got, tt.wantLanes)
			}
		})
	}
}

func TestAssignDoesNotMutateInput(t *testing.T) {
	in := []meeting.DayEvent{ev("b", 600, 660), ev("a", 540, 620)}
	Assign(in)
	if in[0].ID != "b" || in[0].Lane != 0 || in[1].Lane != 0 {
		t.Errorf("input modified: %+v", in)
	}
}

func randomDay(r *rand.Rand, n int) []meeting.DayEvent {
	out := make([]meeting.DayEvent, n)
	for i := range out {
		start := r.IntN(meeting.DayMinutes - 15)
		end := start + 5 + r.IntN(180)
		out[i] = ev(string(rune('a'+i%26))+string(rune('0'+i/26)), start, min(end, meeting.DayMinutes))
	}
	return out
}

func maxConcurrency(events []meeting.DayEvent) int {
	best := 0
	for _, probe := range events {
		n := 0
		for _, e := range events {
			if e.StartMin <= probe.StartMin && probe.StartMin < e.EndMin {
				n++
			}
		}
		best = max(best, n)
	}
	return best
}

func TestAssignProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 200; round++ {
		events := randomDay(r, 1+r.IntN(12))
		res := Assign(events)

		for i, a := range res.Events {
			for _, b := range res.Events[i+1:] {
				overlap := a.StartMin < b.EndMin && b.StartMin < a.EndMin
				if overlap && a.Lane == b.Lane {
					t.Fatalf("round %d: %s and %s overlap in lane %d", round, a.ID, b.ID, a.Lane)
				}
			}
			if a.Lane >= res.MaxLanes {
				t.Fatalf("round %d: lane %d >= MaxLanes %d", round, a.Lane, res.MaxLanes)
			}
		}
		if c := maxConcurrency(events); res.MaxLanes < c {
			t.Fatalf("round %d: MaxLanes %d < concurrency %d", round, res.MaxLanes, c)
		}

		again := Assign(events)
		if !reflect.DeepEqual(res, again) {
			t.Fatalf("round %d: assignment not deterministic", round)
		}
	}
}

func TestPlace(t *testing.T) {
	m := DefaultMetrics()

	tests := []struct {
		name     string
		ev       meeting.DayEvent
		maxLanes int
		want     Box
	}{
		{
			name:     "one hour at nine",
			ev:       meeting.DayEvent{StartMin: 540, EndMin: 600},
			maxLanes: 1,
			want:     Box{Top: 432, Height: 48, LeftPct: 0, WidthPct: 100},
		},
		{
			name:     "short event gets min height",
			ev:       meeting.DayEvent{StartMin: 60, EndMin: 65},
			maxLanes: 1,
			want:     Box{Top: 48, Height: 22, LeftPct: 0, WidthPct: 100},
		},
		{
			name:     "second of two lanes",
			ev:       meeting.DayEvent{StartMin: 0, EndMin: 90, Lane: 1},
			maxLanes: 2,
			want:     Box{Top: 0, Height: 72, LeftPct: 50, WidthPct: 50},
		},
		{
			name:     "zero lanes treated as one",
			ev:       meeting.DayEvent{StartMin: 0, EndMin: 60},
			maxLanes: 0,
			want:     Box{Top: 0, Height: 48, LeftPct: 0, WidthPct: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Place(tt.ev, tt.maxLanes, m); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDay(t *testing.T) {
	placed, lanes := Day([]meeting.DayEvent{ev("a", 540, 600), ev("b", 570, 630)}, DefaultMetrics())
	if lanes != 2 || len(placed) != 2 {
		t.Fatalf("lanes=%d placed=%d", lanes, len(placed))
	}
	if placed[1].Box.LeftPct != 50 {
		t.Errorf("second event LeftPct = %v, want 50", placed[1].Box.LeftPct)
	}
}

func TestMonthGrid(t *testing.T) {
	anchor := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	day := func(d, h int) time.Time { return time.Date(2025, 2, d, h, 0, 0, 0, time.UTC) }

	var ms []meeting.Meeting
	for h := 8; h < 13; h++ {
		ms = append(ms, meeting.Meeting{ID: "m", StartsAt: day(3, h), EndsAt: day(3, h+1)})
	}
	ms = append(ms, meeting.Meeting{ID: "out", StartsAt: day(28, 9).AddDate(0, 1, 0), EndsAt: day(28, 10).AddDate(0, 1, 0)})

	cells := MonthGrid(anchor, ms, now)

	if !cells[0].Date.Equal(time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC)) || cells[0].InMonth {
		t.Errorf("first cell: %+v", cells[0])
	}
	feb3 := CellAt(anchor, day(3, 0))
	if feb3 != 7 {
		t.Fatalf("CellAt(Feb 3) = %d, want 7", feb3)
	}
	if len(cells[feb3].Chips) != MaxChips || cells[feb3].Overflow != 2 {
		t.Errorf("Feb 3: %d chips, %d overflow", len(cells[feb3].Chips), cells[feb3].Overflow)
	}
	if !cells[CellAt(anchor, now)].Today {
		t.Error("today flag missing")
	}
	if CellAt(anchor, day(28, 0).AddDate(0, 1, 0)) != -1 {
		t.Error("March 28 should be off the grid")
	}
}
