package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/IMNJL/AI-chef/internal/calendar"
	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/llm"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/tui/view"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date     string
		start    string
		end      string
		location string
		link     string
		text     string
		next     bool
		length   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new meeting",
		Long: `Add a new meeting.

Either give a title with --start (and optionally --date and --end), or
describe the meeting in plain words with --text and let the configured
LLM fill in the fields. Meetings without an end last one hour.

With --next the meeting goes into the first free slot inside working
hours, starting from --date (default: now).`,
		Example: `  aichef add "Design review" --date=2025-01-10 --start=09:00 --end=10:30
  aichef add "1:1 with Sam" --date=friday --start=14:00 --location="Room 4"
  aichef add --text "lunch with Ana tomorrow at 1pm for 90 minutes"
  aichef add "Sync with infra" --next --duration=30m --date=monday`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			ctx := context.Background()

			var d meeting.Draft
			switch {
			case text != "":
				d, err = a.extract(ctx, svc, text)
			case next:
				d, err = a.nextFree(ctx, svc, firstArg(args), date, length)
			default:
				d, err = draftFromFlags(firstArg(args), date, start, end, svc.Now())
			}
			if err != nil {
				return err
			}
			if location != "" {
				d.Location = location
			}
			if link != "" {
				d.ExternalLink = link
			}

			m, err := svc.Create(ctx, d)
			if err != nil {
				return fmt.Errorf("creating meeting: %w", err)
			}

			loc := svc.Location()
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s: %s %s %s\n",
				ShortID(m.ID),
				m.DisplayTitle(),
				m.StartsAt.In(loc).Format("Mon Jan 2"),
				view.FormatSpan(m.StartsAt.In(loc), m.EndsAt.In(loc)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD or relative, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, default: one hour after start)")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&link, "link", "", "Meeting link")
	cmd.Flags().StringVar(&text, "text", "", "Describe the meeting in plain words")
	cmd.Flags().BoolVar(&next, "next", false, "Use the first free slot in working hours")
	cmd.Flags().DurationVar(&length, "duration", time.Hour, "Length of the meeting with --next")
	cmd.MarkFlagsMutuallyExclusive("text", "start", "next")

	return cmd
}

func (a *App) extract(ctx context.Context, svc *calendar.Service, text string) (meeting.Draft, error) {
	client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
	if err != nil {
		return meeting.Draft{}, fmt.Errorf("creating LLM client: %w", err)
	}
	d, err := llm.NewExtractor(client, svc.Now).Extract(ctx, text)
	if err != nil {
		return meeting.Draft{}, fmt.Errorf("understanding %q: %w", text, err)
	}
	return d, nil
}

// nextFree drafts a meeting in the first free slot at or after date.
func (a *App) nextFree(ctx context.Context, svc *calendar.Service, title, date string, length time.Duration) (meeting.Draft, error) {
	if strings.TrimSpace(title) == "" {
		return meeting.Draft{}, meeting.ErrEmptyTitle
	}
	minutes := int(length / time.Minute)
	if minutes <= 0 || length%time.Minute != 0 {
		return meeting.Draft{}, fmt.Errorf("%w: duration must be a positive whole number of minutes", meeting.ErrValidation)
	}
	sched, err := a.config.Scheduler()
	if err != nil {
		return meeting.Draft{}, err
	}

	from := svc.Now()
	if date != "" {
		day, err := dateutil.ParseRelativeDate(date, from)
		if err != nil {
			return meeting.Draft{}, err
		}
		if day.After(from) {
			from = day
		}
	}

	ms, err := svc.Fetch(ctx, dateutil.DateRange{
		Start: dateutil.StartOfDay(from),
		End:   dateutil.AddDays(dateutil.StartOfDay(from), searchDays),
	})
	if err != nil {
		return meeting.Draft{}, fmt.Errorf("loading meetings: %w", err)
	}
	slot, ok := sched.FindFree(from, ms, minutes, searchDays)
	if !ok {
		return meeting.Draft{}, fmt.Errorf("no free %s slot in the next %d days", view.FormatDuration(minutes), searchDays)
	}
	return meeting.Draft{Title: title, StartsAt: slot.Start, EndsAt: slot.End}, nil
}

// searchDays bounds the free slot search.
const searchDays = 14

// draftFromFlags builds a draft from a day and HH:MM clock times in the
// location of now.
func draftFromFlags(title, date, start, end string, now time.Time) (meeting.Draft, error) {
	if strings.TrimSpace(title) == "" {
		return meeting.Draft{}, meeting.ErrEmptyTitle
	}
	if start == "" {
		return meeting.Draft{}, errors.New("one of --start, --next or --text is required")
	}
	day, err := dateutil.ParseRelativeDate(date, now)
	if err != nil {
		return meeting.Draft{}, err
	}
	startsAt, err := atClock(day, start)
	if err != nil {
		return meeting.Draft{}, err
	}
	endsAt := startsAt.Add(time.Hour)
	if end != "" {
		if endsAt, err = atClock(day, end); err != nil {
			return meeting.Draft{}, err
		}
	}

	d := meeting.Draft{Title: title, StartsAt: startsAt, EndsAt: endsAt}
	return d, d.Validate()
}

// atClock returns day at the HH:MM wall clock time.
func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want HH:MM", clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
