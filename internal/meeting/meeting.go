// Package meeting defines the core domain types for aichef: meetings, the
// partial updates applied to them and the store they live in.
package meeting

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// UntitledPlaceholder is shown for meetings without a title.
const UntitledPlaceholder = "(untitled)"

// Error taxonomy. Every error returned by a Store or by local validation
// matches exactly one of these with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNetwork      = errors.New("network error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStore        = errors.New("store rejected request")
)

// Validation errors.
var (
	ErrMissingFields  = fmt.Errorf("%w: missing required fields", ErrValidation)
	ErrEmptyTitle     = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrEndBeforeStart = fmt.Errorf("%w: end must be after start", ErrValidation)
	ErrEmptyPatch     = fmt.Errorf("%w: nothing to update", ErrValidation)
)

// ErrNotFound is returned when a meeting id is unknown to the store.
var ErrNotFound = fmt.Errorf("%w: meeting not found", ErrStore)

// StoreError is a rejection reported by a remote store.
type StoreError struct {
	Status int
	Body   string
}

func (e *StoreError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("store error (%d)", e.Status)
	}
	return fmt.Sprintf("store error (%d): %s", e.Status, body)
}

// Unwrap lets errors.Is match ErrStore, and ErrNotFound for 404 answers.
func (e *StoreError) Unwrap() []error {
	if e.Status == 404 {
		return []error{ErrStore, ErrNotFound}
	}
	return []error{ErrStore}
}

// Meeting is a timed calendar entry owned by the store.
type Meeting struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	StartsAt     time.Time `json:"startsAt"`
	EndsAt       time.Time `json:"endsAt"`
	Location     string    `json:"location,omitempty"`
	ExternalLink string    `json:"externalLink,omitempty"`
}

// DisplayTitle returns the title or a placeholder when it is blank.
func (m Meeting) DisplayTitle() string {
	if t := strings.TrimSpace(m.Title); t != "" {
		return t
	}
	return UntitledPlaceholder
}

// Duration returns the length of the meeting.
func (m Meeting) Duration() time.Duration {
	return m.EndsAt.Sub(m.StartsAt)
}

// DurationMinutes returns the length of the meeting in whole minutes,
// rounded to the nearest minute.
func (m Meeting) DurationMinutes() int {
	return int(m.Duration().Round(time.Minute) / time.Minute)
}

// Validate checks the time invariant.
func (m Meeting) Validate() error {
	return validateBounds(m.StartsAt, m.EndsAt)
}

// Overlaps reports whether two meetings share any instant.
// Intervals are half-open, so back-to-back meetings do not overlap.
func (m Meeting) Overlaps(other Meeting) bool {
	return m.StartsAt.Before(other.EndsAt) && other.StartsAt.Before(m.EndsAt)
}

func validateBounds(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrMissingFields
	}
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	return nil
}

// Draft holds the fields of a meeting to be created.
type Draft struct {
	Title        string
	StartsAt     time.Time
	EndsAt       time.Time
	Location     string
	ExternalLink string
}

// Validate checks that a draft can be sent to the store.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	return validateBounds(d.StartsAt, d.EndsAt)
}

// Meeting converts the draft into a meeting with the given id.
func (d Draft) Meeting(id string) Meeting {
	return Meeting{
		ID:           id,
		Title:        strings.TrimSpace(d.Title),
		StartsAt:     d.StartsAt,
		EndsAt:       d.EndsAt,
		Location:     d.Location,
		ExternalLink: d.ExternalLink,
	}
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Title        *string
	StartsAt     *time.Time
	EndsAt       *time.Time
	Location     *string
	ExternalLink *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.StartsAt == nil && p.EndsAt == nil &&
		p.Location == nil && p.ExternalLink == nil
}

// Apply returns m with the patch applied. A blank title is ignored.
func (p Patch) Apply(m Meeting) Meeting {
	if p.Title != nil {
		if t := strings.TrimSpace(*p.Title); t != "" {
			m.Title = t
		}
	}
	if p.StartsAt != nil {
		m.StartsAt = *p.StartsAt
	}
	if p.EndsAt != nil {
		m.EndsAt = *p.EndsAt
	}
	if p.Location != nil {
		m.Location = *p.Location
	}
	if p.ExternalLink != nil {
		m.ExternalLink = *p.ExternalLink
	}
	return m
}

// ValidateAgainst checks that applying the patch to current keeps the
// meeting valid.
func (p Patch) ValidateAgainst(current Meeting) error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	return p.Apply(current).Validate()
}

// TimePatch builds a patch that moves both bounds.
func TimePatch(start, end time.Time) Patch {
	return Patch{StartsAt: &start, EndsAt: &end}
}

// EndPatch builds a patch that only moves the end.
func EndPatch(end time.Time) Patch {
	return Patch{EndsAt: &end}
}

// Diff returns the patch turning from into to. Unchanged fields stay nil.
func Diff(from, to Meeting) Patch {
	var p Patch
	if from.Title != to.Title {
		p.Title = &to.Title
	}
	if !from.StartsAt.Equal(to.StartsAt) {
		p.StartsAt = &to.StartsAt
	}
	if !from.EndsAt.Equal(to.EndsAt) {
		p.EndsAt = &to.EndsAt
	}
	if from.Location != to.Location {
		p.Location = &to.Location
	}
	if from.ExternalLink != to.ExternalLink {
		p.ExternalLink = &to.ExternalLink
	}
	return p
}
