package api

import (
	"fmt"
	"strings"

	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/timecodec"
)

// MeetingJSON is a meeting as exchanged with the mini-app API.
type MeetingJSON struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	StartsAt     string  `json:"startsAt"`
	EndsAt       string  `json:"endsAt"`
	Location     *string `json:"location"`
	ExternalLink *string `json:"externalLink"`
}

// FromMeeting converts a meeting to its wire form.
func FromMeeting(m meeting.Meeting) MeetingJSON {
	return MeetingJSON{
		ID:           m.ID,
		Title:        m.Title,
		StartsAt:     timecodec.Encode(m.StartsAt),
		EndsAt:       timecodec.Encode(m.EndsAt),
		Location:     optional(m.Location),
		ExternalLink: optional(m.ExternalLink),
	}
}

// Meeting decodes the wire form.
func (w MeetingJSON) Meeting() (meeting.Meeting, error) {
	start, err := timecodec.Parse(w.StartsAt)
	if err != nil {
		return meeting.Meeting{}, fmt.Errorf("meeting %s startsAt: %w", w.ID, err)
	}
	end, err := timecodec.Parse(w.EndsAt)
	if err != nil {
		return meeting.Meeting{}, fmt.Errorf("meeting %s endsAt: %w", w.ID, err)
	}
	return meeting.Meeting{
		ID:           w.ID,
		Title:        w.Title,
		StartsAt:     start,
		EndsAt:       end,
		Location:     deref(w.Location),
		ExternalLink: deref(w.ExternalLink),
	}, nil
}

// UpdateRequest is the body of create and update calls. Null fields are
// left unchanged by an update.
type UpdateRequest struct {
	Title        *string `json:"title,omitempty"`
	StartsAt     *string `json:"startsAt,omitempty"`
	EndsAt       *string `json:"endsAt,omitempty"`
	Location     *string `json:"location,omitempty"`
	ExternalLink *string `json:"externalLink,omitempty"`
}

// FromDraft builds a create request.
func FromDraft(d meeting.Draft) UpdateRequest {
	title := strings.TrimSpace(d.Title)
	start := timecodec.Encode(d.StartsAt)
	end := timecodec.Encode(d.EndsAt)
	return UpdateRequest{
		Title:        &title,
		StartsAt:     &start,
		EndsAt:       &end,
		Location:     optional(d.Location),
		ExternalLink: optional(d.ExternalLink),
	}
}

// FromPatch builds an update request carrying only the patched fields.
func FromPatch(p meeting.Patch) UpdateRequest {
	var r UpdateRequest
	r.Title = p.Title
	if p.StartsAt != nil {
		s := timecodec.Encode(*p.StartsAt)
		r.StartsAt = &s
	}
	if p.EndsAt != nil {
		s := timecodec.Encode(*p.EndsAt)
		r.EndsAt = &s
	}
	r.Location = p.Location
	r.ExternalLink = p.ExternalLink
	return r
}

// Patch decodes an update request.
func (r UpdateRequest) Patch() (meeting.Patch, error) {
	p := meeting.Patch{
		Title:        r.Title,
		Location:     r.Location,
		ExternalLink: r.ExternalLink,
	}
	if r.StartsAt != nil {
		t, err := timecodec.Parse(*r.StartsAt)
		if err != nil {
			return meeting.Patch{}, fmt.Errorf("%w: startsAt: %v", meeting.ErrValidation, err)
		}
		p.StartsAt = &t
	}
	if r.EndsAt != nil {
		t, err := timecodec.Parse(*r.EndsAt)
		if err != nil {
			return meeting.Patch{}, fmt.Errorf("%w: endsAt: %v", meeting.ErrValidation, err)
		}
		p.EndsAt = &t
	}
	return p, nil
}

// Draft decodes a create request. Title and both bounds are required.
func (r UpdateRequest) Draft() (meeting.Draft, error) {
	if r.Title == nil || strings.TrimSpace(*r.Title) == "" || r.StartsAt == nil || r.EndsAt == nil {
		return meeting.Draft{}, meeting.ErrMissingFields
	}
	p, err := r.Patch()
	if err != nil {
		return meeting.Draft{}, err
	}
	d := meeting.Draft{
		Title:        strings.TrimSpace(*r.Title),
		StartsAt:     *p.StartsAt,
		EndsAt:       *p.EndsAt,
		Location:     deref(r.Location),
		ExternalLink: deref(r.ExternalLink),
	}
	return d, d.Validate()
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
