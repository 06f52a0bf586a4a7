package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/ics"
)

func (a *App) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export meetings to other formats",
	}
	cmd.AddCommand(a.exportICSCmd())
	return cmd
}

func (a *App) exportICSCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export meetings as an iCalendar file",
		Long: `Write the meetings of a date range as a VCALENDAR.

Without dates the visible month grid around today is exported (six full
weeks). Times are written in UTC.`,
		Example: `  aichef export ics > meetings.ics
  aichef export ics --start=2025-01-01 --end=2025-03-31 -o q1.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			now := svc.Now()

			var r dateutil.DateRange
			if startDate == "" && endDate == "" {
				first, last := dateutil.MonthGridRange(now)
				r = dateutil.DateRange{Start: first, End: last}
			} else if r, err = parseRange(startDate, endDate, now); err != nil {
				return err
			}

			ms, err := svc.Fetch(context.Background(), r)
			if err != nil {
				return fmt.Errorf("fetching meetings: %w", err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			if err := ics.Export(w, ms, now); err != nil {
				return err
			}
			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d meetings to %s\n", len(ms), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD or relative)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD or relative, defaults to start date)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
