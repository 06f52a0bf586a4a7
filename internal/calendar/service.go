// Package calendar connects the view state, the interaction machines and a
// meeting store: it fetches the visible range, commits drags and saves the
// meeting form.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/interaction"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/viewstate"
)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for store calls.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// WithLocation sets the location meetings are displayed and edited in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service runs calendar operations against a store.
type Service struct {
	store meeting.Store
	loc   *time.Location
	now   func() time.Time
	log   zerolog.Logger
}

// NewService creates a service over store.
func NewService(store meeting.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		loc:   time.Local,
		now:   time.Now,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the display location.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Now returns the current time in the display location.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// Fetch lists the meetings of the inclusive date range, sorted by start and
// converted to the display location.
func (s *Service) Fetch(ctx context.Context, r dateutil.DateRange) ([]meeting.Meeting, error) {
	ms, err := s.store.List(ctx, r.Start, r.End)
	if err != nil {
		s.log.Warn().Err(err).
			Str("from", dateutil.FormatDate(r.Start)).
			Str("to", dateutil.FormatDate(r.End)).
			Msg("fetching meetings failed")
		return nil, err
	}
	for i := range ms {
		ms[i].StartsAt = ms[i].StartsAt.In(s.loc)
		ms[i].EndsAt = ms[i].EndsAt.In(s.loc)
	}
	meeting.SortByStart(ms)
	s.log.Debug().Int("count", len(ms)).
		Str("from", dateutil.FormatDate(r.Start)).
		Msg("fetched meetings")
	return ms, nil
}

// Load fetches the range of st and returns the action to apply. A failed
// fetch never returns an error: it degrades to an empty working set with a
// status line.
func (s *Service) Load(ctx context.Context, st viewstate.State) viewstate.Action {
	ms, err := s.Fetch(ctx, st.Range())
	if err != nil {
		return viewstate.LoadFailed{Err: err}
	}
	return viewstate.Loaded{Meetings: ms}
}

// Apply sends a drag or resize commit to the store.
func (s *Service) Apply(ctx context.Context, mut interaction.Mutation) error {
	if err := mut.Patch.ValidateAgainst(mut.Before); err != nil {
		return err
	}
	if err := s.store.Update(ctx, mut.MeetingID, mut.Patch); err != nil {
		s.log.Warn().Err(err).Str("meeting", mut.MeetingID).Stringer("kind", mut.Kind).Msg("commit failed")
		return fmt.Errorf("updating meeting: %w", err)
	}
	s.log.Info().Str("meeting", mut.MeetingID).Stringer("kind", mut.Kind).
		Time("starts_at", mut.After.StartsAt).
		Time("ends_at", mut.After.EndsAt).
		Msg("meeting updated")
	return nil
}

// Create validates and stores a draft.
func (s *Service) Create(ctx context.Context, d meeting.Draft) (*meeting.Meeting, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	m, err := s.store.Create(ctx, d)
	if err != nil {
		s.log.Warn().Err(err).Str("title", d.Title).Msg("create failed")
		return nil, fmt.Errorf("creating meeting: %w", err)
	}
	s.log.Info().Str("meeting", m.ID).Str("title", m.Title).Msg("meeting created")
	return m, nil
}

// Save creates or updates the meeting described by f. current is the
// working set the form was opened from.
func (s *Service) Save(ctx context.Context, f Form, current []meeting.Meeting) error {
	if !f.IsEdit() {
		d, err := f.Draft(s.loc)
		if err != nil {
			return err
		}
		_, err = s.Create(ctx, d)
		return err
	}

	m, ok := meeting.Find(current, f.EditingID)
	if !ok {
		return meeting.ErrNotFound
	}
	p, err := f.Patch(m, s.loc)
	if err != nil {
		return err
	}
	if p.IsEmpty() {
		return nil
	}
	if err := s.store.Update(ctx, m.ID, p); err != nil {
		s.log.Warn().Err(err).Str("meeting", m.ID).Msg("save failed")
		return fmt.Errorf("updating meeting: %w", err)
	}
	s.log.Info().Str("meeting", m.ID).Msg("meeting saved")
	return nil
}

// Delete cancels a meeting.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return meeting.ErrMissingFields
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("meeting", id).Msg("delete failed")
		return fmt.Errorf("deleting meeting: %w", err)
	}
	s.log.Info().Str("meeting", id).Msg("meeting deleted")
	return nil
}

// Find looks a meeting up by id, or by id prefix of at least four
// characters, within r.
func (s *Service) Find(ctx context.Context, id string, r dateutil.DateRange) (meeting.Meeting, error) {
	ms, err := s.Fetch(ctx, r)
	if err != nil {
		return meeting.Meeting{}, err
	}
	if m, ok := meeting.Find(ms, id); ok {
		return m, nil
	}

	var match []meeting.Meeting
	if len(id) >= 4 {
		for _, m := range ms {
			if len(m.ID) > len(id) && m.ID[:len(id)] == id {
				match = append(match, m)
			}
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return meeting.Meeting{}, meeting.ErrNotFound
	default:
		return meeting.Meeting{}, fmt.Errorf("%w: id prefix %q is ambiguous", meeting.ErrValidation, id)
	}
}

// Move shifts m by days and minutes, like a drag on the grid.
func (s *Service) Move(ctx context.Context, m meeting.Meeting, days, minutes int) (*interaction.Mutation, error) {
	mut := interaction.ShiftMutation(m, days, minutes, s.loc)
	if mut == nil {
		return nil, ErrNoChange
	}
	return mut, s.Apply(ctx, *mut)
}

// Resize changes the duration of m by delta minutes, like the resize handle.
func (s *Service) Resize(ctx context.Context, m meeting.Meeting, delta int) (*interaction.Mutation, error) {
	mut := interaction.ResizeMutation(m, delta, interaction.DefaultMinDuration)
	if mut == nil {
		return nil, ErrNoChange
	}
	return mut, s.Apply(ctx, *mut)
}

// ErrNoChange is returned when a move or resize would not change anything.
var ErrNoChange = errors.New("nothing to change")
