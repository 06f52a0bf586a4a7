package interaction

import (
	"errors"
	"sync"
	"time"
)

// Controller errors.
var (
	ErrNotPrimary      = errors.New("only the primary button starts an interaction")
	ErrPointerCaptured = errors.New("pointer already captured")
	ErrNoSession       = errors.New("no interaction for pointer")
	ErrCommitPending   = errors.New("a change to this meeting is still being saved")
)

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source used for the click cooldown.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// Controller owns the active sessions, keyed by pointer id, and the set of
// meetings whose commit has not been answered by the store yet.
type Controller struct {
	mu            sync.Mutex
	cfg           Config
	now           func() time.Time
	sessions      map[int64]*Session
	pending       map[string]struct{}
	suppressUntil time.Time
}

// NewController creates a controller.
func NewController(cfg Config, opts ...Option) *Controller {
	c := &Controller{
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[int64]*Session),
		pending:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the controller configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Down starts a session on target. The geometry in target is used for the
// whole session.
func (c *Controller) Down(kind Kind, p PointerEvent, target Target) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p.Button != ButtonPrimary {
		return nil, ErrNotPrimary
	}
	if _, ok := c.sessions[p.ID]; ok {
		return nil, ErrPointerCaptured
	}
	if _, ok := c.pending[target.Event.ID]; ok {
		return nil, ErrCommitPending
	}

	s := newSession(kind, p, target, c.cfg, c.now())
	if err := s.machine.fire(EventDown); err != nil {
		return nil, err
	}
	c.sessions[p.ID] = s
	return s, nil
}

// Move feeds a pointer sample to the session of p.ID.
func (c *Controller) Move(p PointerEvent) (Preview, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[p.ID]
	if !ok {
		return Preview{}, ErrNoSession
	}
	if err := s.move(p); err != nil {
		return Preview{}, err
	}
	return s.preview, nil
}

// Up ends the session of p.ID. A committed outcome carries the mutation to
// send; the meeting stays pending until Resolve is called for it.
func (c *Controller) Up(p PointerEvent) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[p.ID]
	if !ok {
		return Outcome{}, ErrNoSession
	}
	delete(c.sessions, p.ID)

	out, err := s.release(p)
	if err != nil {
		return Outcome{}, err
	}

	if c.suppresses(s.Kind, out) {
		c.suppressUntil = c.now().Add(c.cfg.ClickCooldown)
	}
	if out.Mutation != nil {
		c.pending[out.Mutation.MeetingID] = struct{}{}
	}
	return out, nil
}

// suppresses reports whether the release should swallow the click that
// follows it. A move does so whenever it left the armed state; a resize only
// when it produced a change.
func (c *Controller) suppresses(kind Kind, out Outcome) bool {
	if !out.Moved {
		return false
	}
	if kind == KindResize {
		return out.Final.DeltaMinutes != 0
	}
	return true
}

// Cancel discards the session of pointerID without any request.
func (c *Controller) Cancel(pointerID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[pointerID]
	if !ok {
		return ErrNoSession
	}
	delete(c.sessions, pointerID)
	return s.cancel()
}

// CancelAll discards every active session.
func (c *Controller) CancelAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, s := range c.sessions {
		if s.machine.can(EventCancel) {
			_ = s.cancel()
		}
		delete(c.sessions, id)
	}
}

// Reserve marks meetingID as pending for a commit that did not come from a
// pointer session, such as a keyboard shift.
func (c *Controller) Reserve(meetingID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pending[meetingID]; ok {
		return ErrCommitPending
	}
	c.pending[meetingID] = struct{}{}
	return nil
}

// Resolve marks the commit for meetingID as answered by the store.
func (c *Controller) Resolve(meetingID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, meetingID)
}

// Pending reports whether a commit for meetingID is in flight.
func (c *Controller) Pending(meetingID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[meetingID]
	return ok
}

// ClickAllowed reports whether a click should open the meeting, i.e. no
// drag ended within the cooldown window.
func (c *Controller) ClickAllowed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.now().Before(c.suppressUntil)
}

// Session returns the active session of pointerID.
func (c *Controller) Session(pointerID int64) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[pointerID]
	return s, ok
}

// Active returns the session currently past the threshold, if any.
func (c *Controller) Active() (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.sessions {
		if s.Moved {
			return s, true
		}
	}
	return nil, false
}

// Busy reports whether any pointer is captured.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions) > 0
}
