package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/IMNJL/AI-chef/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meetings in a date range",
		Long: `List all meetings within a date range, with their ids.

If no dates are specified, lists today's meetings.
If only --start is specified, lists meetings for that single day.
If both --start and --end are specified, lists meetings in that range (inclusive).`,
		Example: `  aichef list
  aichef list --start=2025-01-15
  aichef list --start=2025-01-15 --end=2025-01-20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			r, err := parseRange(startDate, endDate, svc.Now())
			if err != nil {
				return err
			}

			ms, err := svc.Fetch(context.Background(), r)
			if err != nil {
				return fmt.Errorf("listing meetings: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(ms) == 0 {
				fmt.Fprintln(out, "No meetings found in the specified date range.")
				return nil
			}
			PrintAgenda(out, ms, r, PrintOpts{
				Now:     svc.Now(),
				Loc:     svc.Location(),
				ShowID:  true,
				Verbose: verbose,
			}, false)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD or relative, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD or relative, defaults to start date)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show locations and links")

	return cmd
}

// parseRange parses a day range relative to now. An empty start means
// today, an empty end means the start day.
func parseRange(startDate, endDate string, now time.Time) (dateutil.DateRange, error) {
	start, err := dateutil.ParseRelativeDate(startDate, now)
	if err != nil {
		return dateutil.DateRange{}, err
	}
	end := start
	if endDate != "" {
		if end, err = dateutil.ParseRelativeDate(endDate, now); err != nil {
			return dateutil.DateRange{}, err
		}
	}
	if end.Before(start) {
		return dateutil.DateRange{}, dateutil.ErrEndDateBeforeStart
	}
	return dateutil.DateRange{Start: start, End: end}, nil
}
