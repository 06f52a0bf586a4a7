package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/meeting"
)

const extractPrompt = `You turn a short note into a calendar meeting. Return JSON only.

Now: %s (%s)
Tomorrow: %s (%s)

Rules:
- "action" is "create" when the note describes a meeting or appointment, otherwise "none".
- "title" is a short title without the date or time.
- "date" is YYYY-MM-DD. Resolve words like "tomorrow" or "friday" against Now. Empty if not given.
- "time" is the start time as HH:MM (24-hour). Empty if not given.
- "duration_minutes" is the length in minutes. 0 if not given.
- "location" is a place or room if given, otherwise empty.

JSON schema:
{
  "action": "create" | "none",
  "title": "string",
  "date": "YYYY-MM-DD",
  "time": "HH:MM",
  "duration_minutes": 0,
  "location": "string"
}`

// Quick-add defaults.
const (
	DefaultDurationMinutes = 60
	durationStep           = 15
)

// ErrNoMeeting is returned when the note does not describe a meeting.
var ErrNoMeeting = errors.New("no meeting found in text")

// Intent is the structured reading of a quick-add note.
type Intent struct {
	Action          string `json:"action"`
	Title           string `json:"title"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	Location        string `json:"location"`
}

// Extractor turns free text into meeting drafts using an LLM.
type Extractor struct {
	client Client
	now    func() time.Time
}

// NewExtractor creates an extractor. now defaults to time.Now.
func NewExtractor(client Client, now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{client: client, now: now}
}

// Extract asks the model for an intent and converts it into a draft.
// Times are resolved in the location of the extractor's clock.
func (e *Extractor) Extract(ctx context.Context, text string) (meeting.Draft, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return meeting.Draft{}, meeting.ErrEmptyTitle
	}

	now := e.now()
	var intent Intent
	if err := e.client.ChatJSON(ctx, e.BuildMessages(text, now), &intent); err != nil {
		return meeting.Draft{}, fmt.Errorf("extracting meeting: %w", err)
	}
	if strings.TrimSpace(intent.Title) == "" {
		intent.Title = text
	}
	return intent.Draft(now)
}

// BuildMessages returns the prompt for text.
func (e *Extractor) BuildMessages(text string, now time.Time) []Message {
	tomorrow := dateutil.AddDays(now, 1)
	system := fmt.Sprintf(extractPrompt,
		now.Format("2006-01-02 15:04"), now.Weekday(),
		dateutil.FormatDate(tomorrow), tomorrow.Weekday(),
	)
	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: text},
	}
}

// Draft converts the intent into a meeting draft. A missing date means
// today; a missing time means the next quarter hour after now on that day.
// The duration defaults to one hour and is rounded to quarter hours.
func (i Intent) Draft(now time.Time) (meeting.Draft, error) {
	if !strings.EqualFold(strings.TrimSpace(i.Action), "create") {
		return meeting.Draft{}, ErrNoMeeting
	}

	day, err := dateutil.ParseRelativeDate(i.Date, now)
	if err != nil {
		return meeting.Draft{}, fmt.Errorf("%w: date %q", meeting.ErrValidation, i.Date)
	}

	seed := dateutil.RoundUpToStep(now, durationStep)
	hour, minute := seed.Hour(), seed.Minute()
	if t := strings.TrimSpace(i.Time); t != "" {
		clock, err := time.Parse("15:04", t)
		if err != nil {
			return meeting.Draft{}, fmt.Errorf("%w: time %q", meeting.ErrValidation, i.Time)
		}
		hour, minute = clock.Hour(), clock.Minute()
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
	d := meeting.Draft{
		Title:    strings.TrimSpace(i.Title),
		StartsAt: start,
		EndsAt:   dateutil.AddMinutes(start, roundDuration(i.DurationMinutes)),
		Location: strings.TrimSpace(i.Location),
	}
	if err := d.Validate(); err != nil {
		return meeting.Draft{}, err
	}
	return d, nil
}

// roundDuration rounds to the nearest quarter hour, at least one quarter.
func roundDuration(minutes int) int {
	if minutes <= 0 {
		return DefaultDurationMinutes
	}
	rounded := ((minutes + durationStep/2) / durationStep) * durationStep
	if rounded < durationStep {
		return durationStep
	}
	return rounded
}
