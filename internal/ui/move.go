package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/IMNJL/AI-chef/internal/calendar"
	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/interaction"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/tui/view"
)

// lookupWindow is how far around today ids are looked up.
const lookupWindow = 366

func (a *App) moveCmd() *cobra.Command {
	var (
		days  int
		by    time.Duration
		date  string
		start string
	)

	cmd := &cobra.Command{
		Use:   "move <meeting-id>",
		Short: "Move a meeting, keeping its duration",
		Long: `Move a meeting by a number of days and/or a duration, or to a new
date and start time. The duration is kept.

The id may be the 8 character prefix shown by 'aichef list'.`,
		Example: `  aichef move 3f2a9c1e --days=1
  aichef move 3f2a9c1e --by=-30m
  aichef move 3f2a9c1e --date=friday --start=14:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			ctx := context.Background()
			m, err := lookup(ctx, svc, args[0])
			if err != nil {
				return err
			}

			minutes := int(by / time.Minute)
			if date != "" || start != "" {
				days, minutes, err = moveTarget(m, date, start, svc.Location(), svc.Now())
				if err != nil {
					return err
				}
			}

			mut, err := svc.Move(ctx, m, days, minutes)
			if err != nil {
				return mutationErr(err)
			}
			printMutation(cmd.OutOrStdout(), "Moved", *mut, svc.Location())
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to move by (negative moves back)")
	cmd.Flags().DurationVar(&by, "by", 0, "Time to move by, e.g. 30m or -1h")
	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD or relative)")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.MarkFlagsMutuallyExclusive("days", "date")
	cmd.MarkFlagsMutuallyExclusive("by", "start")

	return cmd
}

func (a *App) resizeCmd() *cobra.Command {
	var (
		by  time.Duration
		end string
	)

	cmd := &cobra.Command{
		Use:   "resize <meeting-id>",
		Short: "Change how long a meeting lasts",
		Long: `Lengthen or shorten a meeting by moving its end. The start is kept
and the meeting never gets shorter than 15 minutes.`,
		Example: `  aichef resize 3f2a9c1e --by=30m
  aichef resize 3f2a9c1e --by=-15m
  aichef resize 3f2a9c1e --end=11:30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			ctx := context.Background()
			m, err := lookup(ctx, svc, args[0])
			if err != nil {
				return err
			}

			delta := int(by / time.Minute)
			if end != "" {
				endsAt, err := atClock(m.EndsAt.In(svc.Location()), end)
				if err != nil {
					return err
				}
				delta = int(endsAt.Sub(m.EndsAt) / time.Minute)
			}

			mut, err := svc.Resize(ctx, m, delta)
			if err != nil {
				return mutationErr(err)
			}
			printMutation(cmd.OutOrStdout(), "Resized", *mut, svc.Location())
			return nil
		},
	}

	cmd.Flags().DurationVar(&by, "by", 0, "Change of duration, e.g. 30m or -15m")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM) on the day the meeting ends")
	cmd.MarkFlagsMutuallyExclusive("by", "end")

	return cmd
}

// lookup finds a meeting by id or id prefix within a year of today.
func lookup(ctx context.Context, svc *calendar.Service, id string) (meeting.Meeting, error) {
	today := dateutil.StartOfDay(svc.Now())
	r := dateutil.DateRange{
		Start: dateutil.AddDays(today, -lookupWindow),
		End:   dateutil.AddDays(today, lookupWindow),
	}
	m, err := svc.Find(ctx, id, r)
	if err != nil {
		return meeting.Meeting{}, fmt.Errorf("finding meeting %s: %w", id, err)
	}
	return m, nil
}

// moveTarget converts an absolute target into the day and minute offsets
// a move takes. Empty parts keep the meeting's own date or start time.
func moveTarget(m meeting.Meeting, date, start string, loc *time.Location, now time.Time) (days, minutes int, err error) {
	from := m.StartsAt.In(loc)
	day := dateutil.StartOfDay(from)
	if date != "" {
		if day, err = dateutil.ParseRelativeDate(date, now.In(loc)); err != nil {
			return 0, 0, err
		}
	}
	clock := from.Format("15:04")
	if start != "" {
		clock = start
	}
	to, err := atClock(day, clock)
	if err != nil {
		return 0, 0, err
	}
	days = dateutil.DaysBetween(dateutil.StartOfDay(from), day)
	minutes = dateutil.MinuteOfDay(to) - dateutil.MinuteOfDay(from)
	return days, minutes, nil
}

func mutationErr(err error) error {
	if errors.Is(err, calendar.ErrNoChange) {
		return errNoChange
	}
	return fmt.Errorf("saving meeting: %w", err)
}

func printMutation(w io.Writer, verb string, mut interaction.Mutation, loc *time.Location) {
	before, after := mut.Before, mut.After
	fmt.Fprintf(w, "%s %s: %s %s → %s %s\n",
		verb,
		after.DisplayTitle(),
		before.StartsAt.In(loc).Format("Mon Jan 2"),
		view.FormatSpan(before.StartsAt.In(loc), before.EndsAt.In(loc)),
		after.StartsAt.In(loc).Format("Mon Jan 2"),
		view.FormatSpan(after.StartsAt.In(loc), after.EndsAt.In(loc)),
	)
}
