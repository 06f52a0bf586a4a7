// Package interaction implements the pointer-driven move and resize state
// machines for meetings on the week grid.
//
// Both machines share the lifecycle Idle → Armed → (Dragging|Resizing) →
// Committed|Aborted. Which transitions are legal is declared in a table per
// machine; anything else is rejected with ErrInvalidTransition.
package interaction

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when an event is not allowed in the
// current state.
var ErrInvalidTransition = errors.New("invalid transition")

// State is a machine state.
type State int

const (
	StateIdle State = iota
	StateArmed
	StateDragging
	StateResizing
	StateCommitted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	case StateCommitted:
		return "committed"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further events are accepted.
func (s State) Terminal() bool {
	return s == StateCommitted || s == StateAborted
}

// Event drives a machine.
type Event int

const (
	EventDown      Event = iota // primary button pressed on the subject
	EventMove                   // pointer moved, threshold not crossed
	EventThreshold              // pointer crossed the motion threshold
	EventCommit                 // released with a non-trivial change
	EventRelease                // released without a change
	EventCancel                 // pointer capture lost or escape pressed
)

func (e Event) String() string {
	switch e {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventThreshold:
		return "threshold"
	case EventCommit:
		return "commit"
	case EventRelease:
		return "release"
	case EventCancel:
		return "cancel"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

type transition struct {
	from  State
	event Event
}

type transitionTable map[transition]State

// tableFor builds the table of a machine whose active state is active.
func tableFor(active State) transitionTable {
	return transitionTable{
		{StateIdle, EventDown}: StateArmed,

		{StateArmed, EventMove}:      StateArmed,
		{StateArmed, EventThreshold}: active,
		{StateArmed, EventRelease}:   StateAborted,
		{StateArmed, EventCancel}:    StateAborted,

		{active, EventMove}:    active,
		{active, EventCommit}:  StateCommitted,
		{active, EventRelease}: StateAborted,
		{active, EventCancel}:  StateAborted,
	}
}

var (
	moveTable   = tableFor(StateDragging)
	resizeTable = tableFor(StateResizing)
)

type machine struct {
	state State
	table transitionTable
}

func newMachine(table transitionTable) *machine {
	return &machine{state: StateIdle, table: table}
}

func (m *machine) fire(ev Event) error {
	next, ok := m.table[transition{m.state, ev}]
	if !ok {
		return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, ev, m.state)
	}
	m.state = next
	return nil
}

func (m *machine) can(ev Event) bool {
	_, ok := m.table[transition{m.state, ev}]
	return ok
}
