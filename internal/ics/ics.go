// Package ics converts meetings to and from iCalendar data.
package ics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/IMNJL/AI-chef/internal/meeting"
)

// ProductID identifies exported calendars.
const ProductID = "-//aichef//calendar//EN"

// UIDDomain is appended to meeting ids to form event UIDs.
const UIDDomain = "aichef"

// ErrEmpty is returned when parsing an empty payload.
var ErrEmpty = errors.New("empty ICS body")

// Export writes ms as a VCALENDAR. Times are written in UTC.
func Export(w io.Writer, ms []meeting.Meeting, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName("aichef")

	for _, m := range ms {
		ev := cal.AddEvent(UID(m.ID))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetStartAt(m.StartsAt.UTC())
		ev.SetEndAt(m.EndsAt.UTC())
		ev.SetSummary(m.DisplayTitle())
		if m.Location != "" {
			ev.SetLocation(m.Location)
		}
		if m.ExternalLink != "" {
			ev.SetURL(m.ExternalLink)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// UID returns the event UID for a meeting id.
func UID(id string) string {
	return id + "@" + UIDDomain
}

// Skipped describes a VEVENT that could not become a draft.
type Skipped struct {
	UID    string
	Reason string
}

// Parse reads timed VEVENTs from r as drafts in loc. All-day events and
// events without a usable time range are reported as skipped.
func Parse(r io.Reader, loc *time.Location) ([]meeting.Draft, []Skipped, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading calendar: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil, ErrEmpty
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var (
		drafts  []meeting.Draft
		skipped []Skipped
	)
	for _, ev := range cal.Events() {
		d, reason := draftFrom(ev, loc)
		if reason != "" {
			skipped = append(skipped, Skipped{UID: ev.Id(), Reason: reason})
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, skipped, nil
}

func draftFrom(ev *ical.VEvent, loc *time.Location) (meeting.Draft, string) {
	start := ev.GetProperty(ical.ComponentPropertyDtStart)
	if start == nil {
		return meeting.Draft{}, "missing DTSTART"
	}
	if isAllDay(start) {
		return meeting.Draft{}, "all-day event"
	}

	startsAt, err := ev.GetStartAt()
	if err != nil {
		return meeting.Draft{}, "invalid DTSTART"
	}
	endsAt, err := ev.GetEndAt()
	if err != nil {
		return meeting.Draft{}, "invalid DTEND"
	}

	d := meeting.Draft{
		Title:        propValue(ev, ical.ComponentPropertySummary),
		StartsAt:     startsAt.In(loc),
		EndsAt:       endsAt.In(loc),
		Location:     propValue(ev, ical.ComponentPropertyLocation),
		ExternalLink: propValue(ev, ical.ComponentPropertyUrl),
	}
	if strings.TrimSpace(d.Title) == "" {
		d.Title = meeting.UntitledPlaceholder
	}
	if err := d.Validate(); err != nil {
		return meeting.Draft{}, err.Error()
	}
	return d, ""
}

func isAllDay(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func propValue(ev *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ev.GetProperty(prop); p != nil {
		return strings.TrimSpace(p.Value)
	}
	return ""
}
