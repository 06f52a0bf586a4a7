// Package timecodec converts instants to and from the strings exchanged with
// the meeting store and the form inputs.
//
// The wire form always carries an explicit numeric offset
// (2006-01-02T15:04:05+03:00) and never the "Z" shorthand. The input form is
// a minute-precision local timestamp without any offset (2006-01-02T15:04),
// interpreted in a caller-supplied location.
package timecodec

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// InputLayout is the layout of form inputs.
	InputLayout = "2006-01-02T15:04"

	wireLayout = "2006-01-02T15:04:05"
)

var (
	// ErrEmpty is returned for blank input.
	ErrEmpty = errors.New("time value is empty")
	// ErrInvalid is returned for input that cannot be parsed.
	ErrInvalid = errors.New("invalid time value")
)

// Encode renders t with its own zone offset, e.g. 2025-01-06T09:30:00+03:00.
// Offsets with a seconds component are truncated to whole minutes.
func Encode(t time.Time) string {
	_, offset := t.Zone()
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	minutes := offset / 60
	return fmt.Sprintf("%s%c%02d:%02d", t.Format(wireLayout), sign, minutes/60, minutes%60)
}

// EncodeIn renders t in loc.
func EncodeIn(t time.Time, loc *time.Location) string {
	return Encode(t.In(loc))
}

// Parse decodes an RFC 3339 timestamp, with or without fractional seconds,
// using either a numeric offset or "Z".
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmpty
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalid, s, err)
	}
	return t, nil
}

// FormatInput renders t as a form input value in loc.
func FormatInput(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(InputLayout)
}

// DecodeInput converts a wire timestamp into a form input value in loc.
// Unparseable input yields an empty string.
func DecodeInput(wire string, loc *time.Location) string {
	t, err := Parse(wire)
	if err != nil {
		return ""
	}
	return FormatInput(t, loc)
}

// ParseInput parses a form input value as wall-clock time in loc.
// A trailing ":ss" is accepted; when absent seconds are zero.
func ParseInput(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmpty
	}
	for _, layout := range []string{InputLayout, wireLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q", ErrInvalid, s)
}

// EncodeInput converts a form input value straight to the wire form.
func EncodeInput(s string, loc *time.Location) (string, error) {
	t, err := ParseInput(s, loc)
	if err != nil {
		return "", err
	}
	return Encode(t), nil
}

// Clock formats the wall-clock time of t as HH:MM.
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// MinutesRange formats two minute-of-day values as HH:MM-HH:MM.
func MinutesRange(startMin, endMin int) string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", startMin/60, startMin%60, endMin/60, endMin%60)
}
