// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/IMNJL/AI-chef/internal/calendar"
	"github.com/IMNJL/AI-chef/internal/interaction"
	"github.com/IMNJL/AI-chef/internal/llm"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/viewstate"
)

// LoadedMsg carries the result of fetching the visible range. Mode and
// Anchor identify the period it was fetched for so late answers for a
// period the user already left can be dropped.
type LoadedMsg struct {
	Mode   viewstate.Mode
	Anchor time.Time
	Action viewstate.Action
}

// CommittedMsg is sent when a drag or resize commit has been answered.
type CommittedMsg struct {
	Mutation interaction.Mutation
	Err      error
}

// SavedMsg is sent when the meeting form has been saved.
type SavedMsg struct {
	Created bool
	Err     error
}

// DeletedMsg is sent when a meeting has been deleted.
type DeletedMsg struct {
	ID  string
	Err error
}

// QuickAddMsg is sent when a quick-add note has been turned into a meeting.
type QuickAddMsg struct {
	Meeting *meeting.Meeting
	Err     error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// NowTickMsg is sent every minute to move the now line.
type NowTickMsg struct {
	Time time.Time
}

// RefreshMsg asks for a background re-fetch of the visible range.
type RefreshMsg struct{}

// Load fetches the range of st.
func Load(svc *calendar.Service, st viewstate.State) tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{
			Mode:   st.Mode,
			Anchor: st.Anchor(),
			Action: svc.Load(context.Background(), st),
		}
	}
}

// Commit sends a drag or resize mutation to the store.
func Commit(svc *calendar.Service, mut interaction.Mutation) tea.Cmd {
	return func() tea.Msg {
		return CommittedMsg{Mutation: mut, Err: svc.Apply(context.Background(), mut)}
	}
}

// Shift moves m by days and minutes from the keyboard.
func Shift(svc *calendar.Service, m meeting.Meeting, days, minutes int) tea.Cmd {
	return func() tea.Msg {
		mut, err := svc.Move(context.Background(), m, days, minutes)
		return mutationMsg(m, mut, err)
	}
}

// Stretch changes the duration of m by delta minutes from the keyboard.
func Stretch(svc *calendar.Service, m meeting.Meeting, delta int) tea.Cmd {
	return func() tea.Msg {
		mut, err := svc.Resize(context.Background(), m, delta)
		return mutationMsg(m, mut, err)
	}
}

func mutationMsg(m meeting.Meeting, mut *interaction.Mutation, err error) tea.Msg {
	if errors.Is(err, calendar.ErrNoChange) {
		return StatusMsgCmd{Msg: "Nothing to change"}
	}
	if mut == nil {
		return CommittedMsg{Mutation: interaction.Mutation{MeetingID: m.ID, Before: m, After: m}, Err: err}
	}
	return CommittedMsg{Mutation: *mut, Err: err}
}

// Save creates or updates the meeting described by form.
func Save(svc *calendar.Service, form calendar.Form, current []meeting.Meeting) tea.Cmd {
	return func() tea.Msg {
		err := svc.Save(context.Background(), form, current)
		return SavedMsg{Created: !form.IsEdit(), Err: err}
	}
}

// Delete cancels the meeting with id.
func Delete(svc *calendar.Service, id string) tea.Cmd {
	return func() tea.Msg {
		return DeletedMsg{ID: id, Err: svc.Delete(context.Background(), id)}
	}
}

// QuickAdd extracts a meeting from text with the configured LLM and
// creates it.
func QuickAdd(svc *calendar.Service, provider, model, baseURL, text string) tea.Cmd {
	return func() tea.Msg {
		client, err := llm.NewClient(provider, model, baseURL)
		if err != nil {
			return QuickAddMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}
		ctx := context.Background()
		draft, err := llm.NewExtractor(client, svc.Now).Extract(ctx, text)
		if err != nil {
			return QuickAddMsg{Err: err}
		}
		m, err := svc.Create(ctx, draft)
		return QuickAddMsg{Meeting: m, Err: err}
	}
}

// Tick schedules the next now-line update.
func Tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return NowTickMsg{Time: t}
	})
}

// Copy writes text to the system clipboard.
func Copy(label, text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied " + label}
	}
}
