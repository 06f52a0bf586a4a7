package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/tui/view"
	"github.com/IMNJL/AI-chef/internal/viewstate"
)

func (a *App) weekCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "week [date]",
		Short: "Show the meetings of a week",
		Long: `Display Monday through Sunday of the week containing date.

date accepts YYYY-MM-DD, today, tomorrow, next-week, last-week or a
weekday name. It defaults to today.`,
		Example: `  aichef week
  aichef week next-week
  aichef week 2025-01-15 -v`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			now := svc.Now()
			day, err := dateutil.ParseRelativeDate(firstArg(args), now)
			if err != nil {
				return err
			}

			st := viewstate.Update(viewstate.New(viewstate.ModeWeek, now), viewstate.GoTo{Date: day})
			r := st.Range()
			ms, err := svc.Fetch(context.Background(), r)
			if err != nil {
				return fmt.Errorf("fetching meetings: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n  %s\n", formatHeader("WEEK: "+view.WeekTitle(st.WeekStart)))
			fmt.Fprintln(out, strings.Repeat("─", 74))
			stats := PrintAgenda(out, ms, r, PrintOpts{
				Now:      now,
				Loc:      svc.Location(),
				Relative: true,
				Verbose:  verbose,
			}, true)
			fmt.Fprintln(out, strings.Repeat("─", 74))
			fmt.Fprintf(out, "  %s\n\n", stats)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show locations and links")
	return cmd
}

func (a *App) monthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month [date]",
		Short: "Show the month grid with meeting counts",
		Example: `  aichef month
  aichef month 2025-03-01`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			now := svc.Now()
			day, err := dateutil.ParseRelativeDate(firstArg(args), now)
			if err != nil {
				return err
			}

			st := viewstate.Update(viewstate.New(viewstate.ModeMonth, now), viewstate.GoTo{Date: day})
			ms, err := svc.Fetch(context.Background(), st.Range())
			if err != nil {
				return fmt.Errorf("fetching meetings: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out)
			PrintMonth(out, st.MonthStart, ms, now)
			fmt.Fprintln(out)
			return nil
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
