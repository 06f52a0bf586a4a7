package interaction

import (
	"math"
	"time"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/layout"
	"github.com/IMNJL/AI-chef/internal/meeting"
)

// Kind selects the machine a session runs.
type Kind int

const (
	KindMove Kind = iota
	KindResize
)

func (k Kind) String() string {
	if k == KindResize {
		return "resize"
	}
	return "move"
}

// Target is what the pointer went down on.
type Target struct {
	Event      meeting.DayEvent // the rendered fragment, with its Day
	Geometry   Geometry
	BaseHeight float64 // rendered height, used by resize previews
}

// Preview is the transient visual state of a session. Nothing in it is
// persisted.
type Preview struct {
	DX, DY       float64 // translation of the dragged box (move only)
	Height       float64 // previewed height (resize only)
	DeltaDays    int
	DeltaMinutes int
}

// Mutation is a change to send to the store.
type Mutation struct {
	MeetingID string
	Kind      Kind
	Patch     meeting.Patch
	Before    meeting.Meeting
	After     meeting.Meeting
}

// Outcome is the result of releasing the pointer.
type Outcome struct {
	State    State
	Moved    bool
	Final    Preview   // preview at release time
	Mutation *Mutation // nil unless State is StateCommitted
}

// Session is one pointer interaction on one meeting. It exists from pointer
// down until release or cancel.
type Session struct {
	Kind      Kind
	PointerID int64
	OriginX   float64
	OriginY   float64
	Moved     bool
	Subject   meeting.DayEvent
	Geometry  Geometry
	Base      float64
	StartedAt time.Time

	cfg     Config
	machine *machine
	preview Preview
}

func newSession(kind Kind, p PointerEvent, t Target, cfg Config, now time.Time) *Session {
	table := moveTable
	if kind == KindResize {
		table = resizeTable
	}
	if t.Event.Day.IsZero() {
		t.Event.Day = dateutil.StartOfDay(t.Event.StartsAt)
	}
	return &Session{
		Kind:      kind,
		PointerID: p.ID,
		OriginX:   p.X,
		OriginY:   p.Y,
		Subject:   t.Event,
		Geometry:  t.Geometry,
		Base:      t.BaseHeight,
		StartedAt: now,
		cfg:       cfg,
		machine:   newMachine(table),
		preview:   Preview{Height: t.BaseHeight},
	}
}

// State returns the machine state.
func (s *Session) State() State { return s.machine.state }

// Preview returns the current preview.
func (s *Session) Preview() Preview { return s.preview }

func (s *Session) crossed(dx, dy float64) bool {
	if s.Kind == KindResize {
		return math.Abs(dy) >= s.cfg.Threshold
	}
	return math.Hypot(dx, dy) >= s.cfg.Threshold
}

// move feeds a pointer sample into the machine and refreshes the preview.
func (s *Session) move(p PointerEvent) error {
	dx, dy := p.X-s.OriginX, p.Y-s.OriginY

	ev := EventMove
	if !s.Moved && s.crossed(dx, dy) {
		ev = EventThreshold
	}
	if err := s.machine.fire(ev); err != nil {
		return err
	}
	if ev == EventThreshold {
		s.Moved = true
	}

	s.preview.DeltaMinutes = DeltaMinutes(dy, s.Geometry, s.cfg.SnapMinutes)
	if !s.Moved {
		return nil
	}
	switch s.Kind {
	case KindMove:
		s.preview.DX, s.preview.DY = dx, dy
		s.preview.DeltaDays = DeltaDays(dx, s.Geometry)
	case KindResize:
		s.preview.Height = math.Max(s.cfg.MinHeight,
			s.Base+layout.MinutesToOffset(s.preview.DeltaMinutes, s.Geometry.RowHeight))
	}
	return nil
}

// release finishes the session with the final pointer sample.
func (s *Session) release(p PointerEvent) (Outcome, error) {
	if s.Moved {
		if err := s.move(p); err != nil {
			return Outcome{}, err
		}
	}

	var mut *Mutation
	if s.Moved {
		switch s.Kind {
		case KindMove:
			mut = s.moveMutation()
		case KindResize:
			mut = s.resizeMutation()
		}
	}

	ev := EventRelease
	if mut != nil {
		ev = EventCommit
	}
	if err := s.machine.fire(ev); err != nil {
		return Outcome{}, err
	}
	final := s.preview
	s.preview = Preview{Height: s.Base}
	return Outcome{State: s.machine.state, Moved: s.Moved, Final: final, Mutation: mut}, nil
}

func (s *Session) cancel() error {
	if err := s.machine.fire(EventCancel); err != nil {
		return err
	}
	s.preview = Preview{Height: s.Base}
	return nil
}

// moveMutation shifts both bounds by the column correction, the dragged day
// columns and the snapped minutes.
func (s *Session) moveMutation() *Mutation {
	days := s.preview.DeltaDays
	minutes := s.preview.DeltaMinutes
	if days == 0 && minutes == 0 {
		return nil
	}

	orig := s.Subject.Meeting
	loc := s.Subject.Day.Location()
	correction := dateutil.DaysBetween(dateutil.StartOfDay(orig.StartsAt.In(loc)), s.Subject.Day)
	return ShiftMutation(orig, correction+days, minutes, loc)
}

func (s *Session) resizeMutation() *Mutation {
	return ResizeMutation(s.Subject.Meeting, s.preview.DeltaMinutes, s.cfg.MinDuration)
}

// ShiftMutation moves both bounds of m by days (wall clock, in loc) and then
// by minutes. It returns nil when nothing changes or the result is invalid.
func ShiftMutation(m meeting.Meeting, days, minutes int, loc *time.Location) *Mutation {
	if days == 0 && minutes == 0 {
		return nil
	}
	start, end := m.StartsAt.In(loc), m.EndsAt.In(loc)
	nextStart := dateutil.AddMinutes(dateutil.AddDays(start, days), minutes)
	nextEnd := dateutil.AddMinutes(dateutil.AddDays(end, days), minutes)
	if !nextEnd.After(nextStart) {
		return nil
	}

	p := meeting.TimePatch(nextStart, nextEnd)
	return &Mutation{MeetingID: m.ID, Kind: KindMove, Patch: p, Before: m, After: p.Apply(m)}
}

// ResizeMutation changes the duration of m by delta minutes, keeping at
// least minDuration. Only the end moves. It returns nil when the duration
// would not change.
func ResizeMutation(m meeting.Meeting, delta, minDuration int) *Mutation {
	if delta == 0 {
		return nil
	}
	current := m.DurationMinutes()
	next := max(minDuration, current+delta)
	if next == current {
		return nil
	}

	p := meeting.EndPatch(dateutil.AddMinutes(m.StartsAt, next))
	return &Mutation{MeetingID: m.ID, Kind: KindResize, Patch: p, Before: m, After: p.Apply(m)}
}
