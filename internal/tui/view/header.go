package view

import (
	"fmt"
	"time"

	"github.com/IMNJL/AI-chef/internal/dateutil"
)

// DayLabel is the header of one day column.
type DayLabel struct {
	Text  string
	Today bool
}

// HeaderLabels builds the seven day labels of the week starting at
// weekStart and marks today's column.
func HeaderLabels(weekStart, today time.Time) [7]DayLabel {
	var labels [7]DayLabel
	today = dateutil.StartOfDay(today.In(weekStart.Location()))
	for i := range labels {
		day := dateutil.AddDays(weekStart, i)
		labels[i] = DayLabel{
			Text:  fmt.Sprintf("%s %d", day.Format("Mon"), day.Day()),
			Today: day.Equal(today),
		}
	}
	return labels
}

// WeekTitle formats the displayed week, e.g. "Jan 6 – 12, 2025".
func WeekTitle(weekStart time.Time) string {
	end := dateutil.AddDays(weekStart, 6)
	switch {
	case weekStart.Year() != end.Year():
		return weekStart.Format("Jan 2, 2006") + " – " + end.Format("Jan 2, 2006")
	case weekStart.Month() != end.Month():
		return weekStart.Format("Jan 2") + " – " + end.Format("Jan 2, 2006")
	default:
		return weekStart.Format("Jan 2") + " – " + end.Format("2, 2006")
	}
}

// MonthTitle formats the displayed month, e.g. "January 2025".
func MonthTitle(monthStart time.Time) string {
	return monthStart.Format("January 2006")
}
