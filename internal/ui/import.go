package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/IMNJL/AI-chef/internal/ics"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/tui/view"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import meetings from other formats",
	}
	cmd.AddCommand(a.importICSCmd())
	return cmd
}

func (a *App) importICSCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "ics <file>",
		Short: "Import timed events from an iCalendar file",
		Long: `Create a meeting for every timed VEVENT in file. All-day events and
events without a usable time range are skipped and reported. Use - to
read from stdin.`,
		Example: `  aichef import ics ~/Downloads/team.ics
  aichef import ics team.ics --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			r, closeFn, err := openInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			defer closeFn()

			drafts, skipped, err := ics.Parse(r, svc.Location())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range skipped {
				fmt.Fprintf(out, "  %s %s: %s\n", formatWarn("skipped"), s.UID, s.Reason)
			}
			if dryRun {
				for _, d := range drafts {
					printDraft(out, d, svc.Location())
				}
				fmt.Fprintf(out, "Would import %d meetings (%d skipped)\n", len(drafts), len(skipped))
				return nil
			}

			count, err := importDrafts(context.Background(), svc.Create, drafts)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Imported %d meetings from %s (%d skipped)\n", count, args[0], len(skipped))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be imported without creating anything")
	return cmd
}

// importDrafts creates drafts in order and stops at the first failure.
func importDrafts(ctx context.Context, create func(context.Context, meeting.Draft) (*meeting.Meeting, error), drafts []meeting.Draft) (int, error) {
	imported := 0
	for _, d := range drafts {
		if _, err := create(ctx, d); err != nil {
			return imported, fmt.Errorf("importing %q: %w", d.Title, err)
		}
		imported++
	}
	return imported, nil
}

func openInput(stdin io.Reader, path string) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("file does not exist: %s", resolved)
		}
		return nil, nil, fmt.Errorf("opening %s: %w", resolved, err)
	}
	return f, func() { _ = f.Close() }, nil
}

func printDraft(w io.Writer, d meeting.Draft, loc *time.Location) {
	fmt.Fprintf(w, "  ○ %s %s  %s\n",
		d.StartsAt.In(loc).Format("Mon Jan 2"),
		formatTime(view.FormatSpan(d.StartsAt.In(loc), d.EndsAt.In(loc))),
		d.Title)
}
