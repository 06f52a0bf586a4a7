package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/layout"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/timecodec"
	"github.com/IMNJL/AI-chef/internal/tui/view"
)

// Stats holds aggregated statistics for a set of meetings.
type Stats struct {
	Meetings int
	Minutes  int
	Busiest  time.Time // day with the most booked minutes
	peak     int
	perDay   map[time.Time]int
}

// Add counts one day fragment.
func (s *Stats) Add(ev meeting.DayEvent) {
	if s.perDay == nil {
		s.perDay = make(map[time.Time]int)
	}
	// Only the fragment a meeting starts on counts it.
	if !ev.StartsAt.Before(ev.Day) {
		s.Meetings++
	}
	minutes := ev.EndMin - ev.StartMin
	s.Minutes += minutes
	s.perDay[ev.Day] += minutes
	if s.perDay[ev.Day] > s.peak {
		s.peak = s.perDay[ev.Day]
		s.Busiest = ev.Day
	}
}

// String renders the summary line.
func (s Stats) String() string {
	if s.Meetings == 0 {
		return "No meetings"
	}
	noun := "meetings"
	if s.Meetings == 1 {
		noun = "meeting"
	}
	line := fmt.Sprintf("%d %s · %s booked", s.Meetings, noun, view.FormatDuration(s.Minutes))
	if s.peak > 0 {
		line += fmt.Sprintf(" · busiest %s (%s)", s.Busiest.Format("Mon"), view.FormatDuration(s.peak))
	}
	return line
}

// PrintOpts configures meeting rows.
type PrintOpts struct {
	Now      time.Time
	Loc      *time.Location
	ShowID   bool // prefix rows with the short id
	Relative bool // append "in 2 hours" style hints
	Verbose  bool // show location and link
	Width    int  // 0 = terminal width
}

func (o PrintOpts) width() int {
	if o.Width > 0 {
		return o.Width
	}
	return termWidth()
}

// ShortID is the id prefix shown in listings. Commands accept it back.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// statusSymbol marks past, ongoing and upcoming meetings.
func statusSymbol(m meeting.Meeting, now time.Time) string {
	switch {
	case !m.EndsAt.After(now):
		return formatMuted("✓")
	case !m.StartsAt.After(now):
		return formatNow("▶")
	default:
		return "○"
	}
}

// PrintMeetingRow prints one fragment of a meeting on its day.
func PrintMeetingRow(w io.Writer, ev meeting.DayEvent, opts PrintOpts) {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(statusSymbol(ev.Meeting, opts.Now))
	b.WriteString(" ")
	if opts.ShowID {
		b.WriteString(formatMuted(fmt.Sprintf("%-8s", ShortID(ev.ID))))
		b.WriteString("  ")
	}
	b.WriteString(formatTime(timecodec.MinutesRange(ev.StartMin, ev.EndMin)))
	b.WriteString("  ")

	suffix := formatMuted(view.FormatDuration(ev.DurationMinutes()))
	if opts.Relative && ev.EndsAt.After(opts.Now) {
		suffix += "  " + formatMuted(relative(ev.StartsAt, opts.Now))
	}

	// 2 + symbol + space + [id] + range + 2
	used := 4 + 11 + 2
	if opts.ShowID {
		used += 10
	}
	room := max(opts.width()-used-ansi.StringWidth(suffix)-2, 12)
	title := runewidth.Truncate(ev.DisplayTitle(), room, "…")
	b.WriteString(runewidth.FillRight(title, room))
	b.WriteString("  ")
	b.WriteString(suffix)
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))

	if !opts.Verbose {
		return
	}
	indent := strings.Repeat(" ", used)
	if ev.Location != "" {
		fmt.Fprintf(w, "%s%s\n", indent, formatMuted("@ "+ev.Location))
	}
	if ev.ExternalLink != "" {
		fmt.Fprintf(w, "%s%s\n", indent, formatLink(ev.ExternalLink))
	}
}

// relative renders the start of a meeting relative to now, e.g.
// "in 2 hours" or "started 5 minutes ago".
func relative(start, now time.Time) string {
	if start.After(now) {
		return "in " + strings.TrimSpace(humanize.RelTime(now, start, "", ""))
	}
	return "started " + humanize.RelTime(start, now, "ago", "")
}

// PrintAgenda prints the meetings of each day in r under a day header.
// Days without meetings are skipped unless showEmpty is set.
func PrintAgenda(w io.Writer, ms []meeting.Meeting, r dateutil.DateRange, opts PrintOpts, showEmpty bool) Stats {
	var stats Stats
	first := true
	for day := dateutil.StartOfDay(r.Start.In(opts.Loc)); !day.After(r.End); day = dateutil.AddDays(day, 1) {
		events := meeting.DayEvents(ms, day)
		if len(events) == 0 && !showEmpty {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false

		header := day.Format("Mon Jan 2")
		if dateutil.StartOfDay(opts.Now.In(opts.Loc)).Equal(day) {
			fmt.Fprintf(w, "  %s %s\n", formatHeader(header), formatNow("today"))
		} else {
			fmt.Fprintf(w, "  %s\n", formatHeader(header))
		}
		if len(events) == 0 {
			fmt.Fprintf(w, "    %s\n", formatMuted("—"))
			continue
		}
		for _, ev := range events {
			PrintMeetingRow(w, ev, opts)
			stats.Add(ev)
		}
	}
	return stats
}

// PrintMonth prints a 6x7 month grid with the number of meetings per day.
func PrintMonth(w io.Writer, anchor time.Time, ms []meeting.Meeting, now time.Time) {
	cells := layout.MonthGrid(anchor, ms, now)
	const cellW = 8

	fmt.Fprintf(w, "  %s\n", formatHeader(view.MonthTitle(dateutil.StartOfMonth(anchor))))
	var head strings.Builder
	head.WriteString("  ")
	for _, name := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		head.WriteString(runewidth.FillRight(name, cellW))
	}
	fmt.Fprintln(w, strings.TrimRight(head.String(), " "))

	for row := range 6 {
		var line strings.Builder
		line.WriteString("  ")
		for col := range 7 {
			cell := cells[row*7+col]
			n := len(cell.Chips) + cell.Overflow
			text := fmt.Sprintf("%2d", cell.Date.Day())
			if n > 0 {
				text += fmt.Sprintf(" ·%d", n)
			}
			padded := runewidth.FillRight(text, cellW)
			switch {
			case cell.Today:
				padded = formatNow(padded)
			case !cell.InMonth:
				padded = formatMuted(padded)
			case n > 0:
				padded = formatTime(padded)
			}
			line.WriteString(padded)
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}
