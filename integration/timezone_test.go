package integration

import (
	"context"
	"testing"
	"time"

	"github.com/IMNJL/AI-chef/internal/api"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/viewstate"
)

// A meeting written with a +03:00 offset must land on the right days for a
// viewer in another zone, and keep its instant through the whole stack.
func TestOffsetSurvivesStack(t *testing.T) {
	client, _, _ := stack(t, api.Credentials{TelegramID: 42})
	ctx := context.Background()

	// 01:30-02:30 Wednesday in Moscow is 17:30-18:30 Tuesday in New York
	// (UTC-5 in January).
	nyc := time.FixedZone("EST", -5*3600)
	start := time.Date(2025, 1, 8, 1, 30, 0, 0, msk)
	m := createMeeting(t, client, "Late sync", start, 60)

	ms, err := client.List(ctx, time.Date(2025, 1, 6, 0, 0, 0, 0, msk), time.Date(2025, 1, 12, 0, 0, 0, 0, msk))
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 1 || !ms[0].StartsAt.Equal(m.StartsAt) {
		t.Fatalf("list = %+v", ms)
	}
	if _, off := ms[0].StartsAt.Zone(); off != 3*3600 {
		t.Errorf("offset = %d, want the offset it was written with", off)
	}

	svc := newService(client, nyc)
	st := viewstate.New(viewstate.ModeWeek, svc.Now())
	st = viewstate.Update(st, svc.Load(ctx, st))
	if len(st.Meetings) != 1 {
		t.Fatalf("viewer sees %d meetings", len(st.Meetings))
	}

	days := meeting.WeekEvents(st.Meetings, st.WeekStart)
	if len(days[1]) != 1 || len(days[2]) != 0 {
		t.Fatalf("Tuesday %d, Wednesday %d fragments", len(days[1]), len(days[2]))
	}
	if ev := days[1][0]; ev.StartMin != 17*60+30 || ev.EndMin != 18*60+30 {
		t.Errorf("fragment %d-%d, want 17:30-18:30", ev.StartMin, ev.EndMin)
	}
}

// Moving a meeting by whole days keeps its wall clock time in the display
// zone.
func TestMoveAcrossDaysKeepsWallClock(t *testing.T) {
	client, store, _ := stack(t, api.Credentials{TelegramID: 42})
	svc := newService(client, msk)
	ctx := context.Background()

	m := createMeeting(t, client, "Retro", time.Date(2025, 1, 10, 16, 0, 0, 0, msk), 45)
	if _, err := svc.Move(ctx, *m, 3, 0); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	local := got.StartsAt.In(msk)
	if local.Day() != 13 || local.Hour() != 16 || got.DurationMinutes() != 45 {
		t.Errorf("moved to %v (%d minutes)", local, got.DurationMinutes())
	}
}
