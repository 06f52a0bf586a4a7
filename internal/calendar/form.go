package calendar

import (
	"strings"
	"time"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/timecodec"
)

const (
	// DefaultDurationMinutes is the length of a new meeting.
	DefaultDurationMinutes = 60
	seedStepMinutes        = 15
)

// Form holds the raw field values of the create/edit dialog.
// Start and End use the timecodec input layout.
type Form struct {
	EditingID string
	Title     string
	Start     string
	End       string
	Location  string
	Link      string
}

// NewForm seeds a create form at the next quarter hour after seed, lasting
// one hour.
func NewForm(seed time.Time, loc *time.Location) Form {
	start := dateutil.RoundUpToStep(seed.In(loc), seedStepMinutes)
	end := dateutil.AddMinutes(start, DefaultDurationMinutes)
	return Form{
		Start: timecodec.FormatInput(start, loc),
		End:   timecodec.FormatInput(end, loc),
	}
}

// EditForm fills the form with an existing meeting.
func EditForm(m meeting.Meeting, loc *time.Location) Form {
	return Form{
		EditingID: m.ID,
		Title:     m.Title,
		Start:     timecodec.FormatInput(m.StartsAt, loc),
		End:       timecodec.FormatInput(m.EndsAt, loc),
		Location:  m.Location,
		Link:      m.ExternalLink,
	}
}

// IsEdit reports whether the form edits an existing meeting.
func (f Form) IsEdit() bool {
	return f.EditingID != ""
}

// Draft validates the form and converts it into a draft.
// Missing title or times yield meeting.ErrMissingFields.
func (f Form) Draft(loc *time.Location) (meeting.Draft, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" || strings.TrimSpace(f.Start) == "" || strings.TrimSpace(f.End) == "" {
		return meeting.Draft{}, meeting.ErrMissingFields
	}
	start, err := timecodec.ParseInput(f.Start, loc)
	if err != nil {
		return meeting.Draft{}, meeting.ErrMissingFields
	}
	end, err := timecodec.ParseInput(f.End, loc)
	if err != nil {
		return meeting.Draft{}, meeting.ErrMissingFields
	}

	d := meeting.Draft{
		Title:        title,
		StartsAt:     start,
		EndsAt:       end,
		Location:     strings.TrimSpace(f.Location),
		ExternalLink: strings.TrimSpace(f.Link),
	}
	if err := d.Validate(); err != nil {
		return meeting.Draft{}, err
	}
	return d, nil
}

// Patch validates the form against the meeting it edits and returns only
// the changed fields.
func (f Form) Patch(current meeting.Meeting, loc *time.Location) (meeting.Patch, error) {
	d, err := f.Draft(loc)
	if err != nil {
		return meeting.Patch{}, err
	}
	return meeting.Diff(current, d.Meeting(current.ID)), nil
}
