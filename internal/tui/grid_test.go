package tui

import (
	"testing"
	"time"

	"github.com/IMNJL/AI-chef/internal/meeting"
)

func TestWeekGridAt(t *testing.T) {
	g := newWeekGrid(testWidth, testHeight, 2, 0)

	tests := []struct {
		name string
		x, y int
		day  int
		line int
		ok   bool
	}{
		{"gutter", 3, 10, 0, 0, false},
		{"title", 20, 0, 0, 0, false},
		{"monday top", gutterWidth, gridTop, 0, 0, true},
		{"tuesday 09:00", standupX, standupY, 1, 18, true},
		{"sunday last line", testWidth - 1, gridTop + 47, 6, 47, true},
		{"below grid", 20, gridTop + 48, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, line, ok := g.at(tt.x, tt.y)
			if ok != tt.ok || (ok && (day != tt.day || line != tt.line)) {
				t.Errorf("at(%d, %d) = %d, %d, %v; want %d, %d, %v", tt.x, tt.y, day, line, ok, tt.day, tt.line, tt.ok)
			}
		})
	}
}

func TestWeekGridScroll(t *testing.T) {
	// 10 visible lines of 48.
	g := newWeekGrid(testWidth, gridTop+10+footerLines, 2, 100)
	if g.scroll != 38 {
		t.Fatalf("scroll = %d, want 38", g.scroll)
	}
	if y, ok := g.screenY(38); !ok || y != gridTop {
		t.Errorf("screenY(38) = %d, %v", y, ok)
	}
	if _, ok := g.screenY(37); ok {
		t.Error("line above the viewport reported visible")
	}
	if g.clampScroll(-3) != 0 {
		t.Error("negative scroll not clamped")
	}
}

func TestWeekBlocksSplitsLanes(t *testing.T) {
	weekStart := time.Date(2025, 1, 6, 0, 0, 0, 0, utc3)
	a := standup()
	b := standup()
	b.ID, b.Title = "m-2", "Review"
	b.StartsAt = b.StartsAt.Add(30 * time.Minute)
	b.EndsAt = b.EndsAt.Add(30 * time.Minute)

	g := newWeekGrid(testWidth, testHeight, 2, 0)
	blocks := weekBlocks(meeting.WeekEvents([]meeting.Meeting{a, b}, weekStart), g)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks", len(blocks))
	}
	left, right := blocks[0], blocks[1]
	if left.ev.ID != "m-1" || right.ev.ID != "m-2" {
		left, right = right, left
	}
	if left.x >= right.x || left.x+left.w > right.x {
		t.Errorf("lanes overlap: left %+v right %+v", left, right)
	}
	if left.y != 18 || left.h != 2 || right.y != 19 || right.h != 2 {
		t.Errorf("vertical placement: left y=%d h=%d, right y=%d h=%d", left.y, left.h, right.y, right.h)
	}

	got, line, ok := hit(blocks, g, right.x, standupY+1)
	if !ok || got.ev.ID != "m-2" || line != 19 {
		t.Errorf("hit = %v %d %v", got.ev.ID, line, ok)
	}
	if _, _, ok := hit(blocks, g, right.x, standupY+4); ok {
		t.Error("hit an empty cell")
	}
	if !left.onHandle(19) || left.onHandle(18) {
		t.Error("handle should be the last line")
	}
}

func TestWeekBlocksCrossMidnight(t *testing.T) {
	weekStart := time.Date(2025, 1, 6, 0, 0, 0, 0, utc3)
	late := meeting.Meeting{
		ID:       "late",
		Title:    "Deploy",
		StartsAt: time.Date(2025, 1, 7, 23, 0, 0, 0, utc3),
		EndsAt:   time.Date(2025, 1, 8, 1, 0, 0, 0, utc3),
	}
	g := newWeekGrid(testWidth, testHeight, 2, 0)
	blocks := weekBlocks(meeting.WeekEvents([]meeting.Meeting{late}, weekStart), g)
	if len(blocks) != 2 {
		t.Fatalf("got %d fragments, want 2", len(blocks))
	}
	if blocks[0].ev.DayIndex != 1 || blocks[0].y != 46 || blocks[0].h != 2 {
		t.Errorf("first fragment = %+v", blocks[0])
	}
	if blocks[1].ev.DayIndex != 2 || blocks[1].y != 0 || blocks[1].h != 2 {
		t.Errorf("second fragment = %+v", blocks[1])
	}
}

func TestMonthGridChipRows(t *testing.T) {
	g := monthGrid{cellW: 12, cellH: 4} // day number plus three chip lines

	tests := []struct {
		n, overflow int
		shown, more int
	}{
		{0, 0, 0, 0},
		{3, 0, 3, 0},
		{3, 2, 2, 3},
		{2, 1, 2, 1},
	}
	for _, tt := range tests {
		shown, more := g.chipRows(tt.n, tt.overflow)
		if shown != tt.shown || more != tt.more {
			t.Errorf("chipRows(%d, %d) = %d, %d; want %d, %d", tt.n, tt.overflow, shown, more, tt.shown, tt.more)
		}
	}
}

func TestMonthGridAt(t *testing.T) {
	g := newMonthGrid(testWidth, testHeight)
	x, y := g.cellOrigin(9)
	idx, line, ok := g.at(x+3, y+2)
	if !ok || idx != 9 || line != 2 {
		t.Errorf("at = %d, %d, %v", idx, line, ok)
	}
	if _, _, ok := g.at(0, gridTop-1); ok {
		t.Error("weekday header mapped to a cell")
	}
}
