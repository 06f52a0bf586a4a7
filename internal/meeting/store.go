package meeting

import (
	"context"
	"slices"
	"time"
)

// Store defines the storage interface for meetings.
type Store interface {
	// List returns meetings that overlap any day in [from, to], both dates
	// inclusive, including meetings that start before from or end after
	// to. Cancelled meetings are never returned.
	List(ctx context.Context, from, to time.Time) ([]Meeting, error)

	// Create stores a new meeting and returns it with its assigned id.
	Create(ctx context.Context, d Draft) (*Meeting, error)

	// Update applies the non-nil fields of p to the meeting.
	Update(ctx context.Context, id string, p Patch) error

	// Delete removes (cancels) the meeting.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}

// SortByStart orders meetings by start time, then end time, then id.
func SortByStart(ms []Meeting) {
	slices.SortStableFunc(ms, func(a, b Meeting) int {
		if c := a.StartsAt.Compare(b.StartsAt); c != 0 {
			return c
		}
		if c := a.EndsAt.Compare(b.EndsAt); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}

// Find returns the meeting with the given id.
func Find(ms []Meeting, id string) (Meeting, bool) {
	for _, m := range ms {
		if m.ID == id {
			return m, true
		}
	}
	return Meeting{}, false
}
