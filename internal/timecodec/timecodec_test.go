package timecodec

import (
	"errors"
	"testing"
	"time"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "positive offset",
			t:    time.Date(2025, 1, 6, 9, 30, 0, 0, time.FixedZone("MSK", 3*3600)),
			want: "2025-01-06T09:30:00+03:00",
		},
		{
			name: "negative offset with minutes",
			t:    time.Date(2025, 1, 6, 9, 30, 5, 0, time.FixedZone("NST", -(3*3600 + 30*60))),
			want: "2025-01-06T09:30:05-03:30",
		},
		{
			name: "utc is never Z",
			t:    time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			want: "2025-01-06T00:00:00+00:00",
		},
		{
			name: "seconds in offset truncated",
			t:    time.Date(1900, 1, 1, 12, 0, 0, 0, time.FixedZone("LMT", 2*3600+30*60+17)),
			want: "1900-01-01T12:00:00+02:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.t); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr error
	}{
		{name: "offset", in: "2025-01-06T09:30:00+03:00", want: time.Date(2025, 1, 6, 6, 30, 0, 0, time.UTC)},
		{name: "zulu", in: "2025-01-06T06:30:00Z", want: time.Date(2025, 1, 6, 6, 30, 0, 0, time.UTC)},
		{name: "fraction", in: "2025-01-06T06:30:00.250Z", want: time.Date(2025, 1, 6, 6, 30, 0, 250e6, time.UTC)},
		{name: "empty", in: "  ", wantErr: ErrEmpty},
		{name: "no offset", in: "2025-01-06T06:30", wantErr: ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInputRoundTrip(t *testing.T) {
	locs := []*time.Location{
		time.UTC,
		time.FixedZone("MSK", 3*3600),
		time.FixedZone("PST", -8*3600),
		time.FixedZone("IST", 5*3600+30*60),
	}
	inputs := []string{"2025-01-06T09:30", "2024-02-29T23:45", "2025-12-31T00:00"}

	for _, loc := range locs {
		for _, in := range inputs {
			t.Run(loc.String()+"/"+in, func(t *testing.T) {
				wire, err := EncodeInput(in, loc)
				if err != nil {
					t.Fatalf("EncodeInput: %v", err)
				}
				if got := DecodeInput(wire, loc); got != in {
					t.Errorf("round trip: got %q, want %q (wire %q)", got, in, wire)
				}
			})
		}
	}
}

func TestParseInput(t *testing.T) {
	loc := time.FixedZone("MSK", 3*3600)

	got, err := ParseInput("2025-01-06T09:30", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Second() != 0 || got.Hour() != 9 || got.Location() != loc {
		t.Errorf("got %v", got)
	}

	if _, err := ParseInput("2025-01-06T09:30:15", loc); err != nil {
		t.Errorf("seconds form rejected: %v", err)
	}
	if _, err := ParseInput("", loc); !errors.Is(err, ErrEmpty) {
		t.Errorf("got %v, want %v", err, ErrEmpty)
	}
	if _, err := ParseInput("tomorrow", loc); !errors.Is(err, ErrInvalid) {
		t.Errorf("got %v, want %v", err, ErrInvalid)
	}
	if got := DecodeInput("nonsense", loc); got != "" {
		t.Errorf("DecodeInput(nonsense) = %q, want empty", got)
	}
}

func TestMinutesRange(t *testing.T) {
	if got := MinutesRange(9*60+5, 10*60+30); got != "09:05-10:30" {
		t.Errorf("got %q", got)
	}
	if got := Clock(time.Date(2025, 1, 6, 7, 3, 0, 0, time.UTC)); got != "07:03" {
		t.Errorf("got %q", got)
	}
}
