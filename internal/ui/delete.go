package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IMNJL/AI-chef/internal/tui/view"
)

func (a *App) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <meeting-id>",
		Aliases: []string{"cancel", "rm"},
		Short:   "Delete a meeting",
		Long: `Delete a meeting by its id or id prefix. Asks for confirmation
unless --yes is given.`,
		Example: `  aichef delete 3f2a9c1e
  aichef delete 3f2a9c1e --yes`,
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

			out := cmd.OutOrStdout()
			loc := svc.Location()
			summary := fmt.Sprintf("%s %s %s", m.DisplayTitle(),
				m.StartsAt.In(loc).Format("Mon Jan 2"),
				view.FormatSpan(m.StartsAt.In(loc), m.EndsAt.In(loc)))
			if !yes && !promptYesNo(cmd.InOrStdin(), out, "Delete "+summary+"?") {
				fmt.Fprintln(out, "Kept.")
				return nil
			}

			if err := svc.Delete(ctx, m.ID); err != nil {
				return fmt.Errorf("deleting meeting: %w", err)
			}
			fmt.Fprintf(out, "Deleted %s: %s\n", ShortID(m.ID), summary)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func promptYesNo(in io.Reader, out io.Writer, question string) bool {
	reader := bufio.NewReader(in)
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
