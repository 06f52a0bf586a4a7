// Package tui provides the terminal calendar for aichef.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/IMNJL/AI-chef/internal/calendar"
	"github.com/IMNJL/AI-chef/internal/config"
	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/interaction"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/nowline"
	"github.com/IMNJL/AI-chef/internal/tui/commands"
	"github.com/IMNJL/AI-chef/internal/tui/theme"
	"github.com/IMNJL/AI-chef/internal/viewstate"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

func (m Mode) String() string {
	switch m {
	case ModePrompt:
		return "prompt"
	case ModeModal:
		return "modal"
	default:
		return "normal"
	}
}

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalForm
	ModalConfirmDelete
)

// mousePointer is the pointer id of the terminal mouse. Terminals report a
// single pointer.
const mousePointer int64 = 1

// Model is the main TUI model.
type Model struct {
	svc *calendar.Service
	cfg *config.Config

	theme  *theme.Theme
	styles *Styles

	state  viewstate.State
	ctrl   *interaction.Controller
	nowInd *nowline.Indicator

	// cursor is a point in time: a grid line in the week view, a day in
	// the month view.
	cursor    time.Time
	selected  string // meeting id, "" when none
	mode      Mode
	modalType ModalType
	form      formModel
	confirm   *meeting.Meeting
	prompt    textinput.Model
	overlay   OverlayModel

	width    int
	height   int
	rowLines int
	scroll   int

	statusMsg  string
	statusErr  bool
	statusTime time.Time

	clock func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock overrides the time source of the model and its controller.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.clock = now
	}
}

// New creates a new TUI model.
func New(svc *calendar.Service, cfg *config.Config, opts ...ModelOption) Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Placeholder = "/add lunch with Ana tomorrow 13:00"
	ti.Prompt = "> "
	ti.CharLimit = 512

	m := Model{
		svc:      svc,
		cfg:      cfg,
		theme:    t,
		styles:   styles,
		mode:     ModeNormal,
		prompt:   ti,
		overlay:  NewOverlayModel(),
		rowLines: max(cfg.Calendar.RowHeight, 1),
		clock:    svc.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}

	now := m.now()
	m.state = viewstate.Update(viewstate.New(cfg.View(), now), viewstate.Loading{})
	m.cursor = m.floorToLine(now)

	ccfg := interaction.Config{
		Threshold:     1,
		SnapMinutes:   max(cfg.Calendar.SnapMinutes, 1),
		MinDuration:   interaction.DefaultMinDuration,
		ClickCooldown: interaction.DefaultClickCooldown,
		MinHeight:     1,
	}
	m.ctrl = interaction.NewController(ccfg, interaction.WithClock(m.clock))
	m.nowInd = nowline.NewIndicator(m.state.WeekStart, float64(m.rowLines))
	m.nowInd.Tick(now)
	m.overlay.SetBackground(styles.Palette().Modal.Backdrop)
	m.scroll = m.cursorScroll()
	return m
}

func (m Model) now() time.Time {
	return m.clock().In(m.svc.Location())
}

// Init starts the first fetch and the now-line clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(commands.Load(m.svc, m.state), commands.Tick(nowline.Interval))
}

// load marks the state as loading and fetches the visible range.
func (m *Model) load() tea.Cmd {
	m.state = viewstate.Update(m.state, viewstate.Loading{})
	return commands.Load(m.svc, m.state)
}

// cursorScroll returns a scroll offset that puts the cursor a third of
// the way down the grid.
func (m Model) cursorScroll() int {
	g := m.weekGrid()
	line := g.lineOf(dateutil.MinuteOfDay(m.cursor))
	return g.clampScroll(line - g.height/3)
}

func (m Model) weekGrid() weekGrid {
	return newWeekGrid(m.width, m.height, m.rowLines, m.scroll)
}

func (m Model) monthGrid() monthGrid {
	return newMonthGrid(m.width, m.height)
}

// Run starts the TUI on store.
func Run(store meeting.Store, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	svc := calendar.NewService(store,
		calendar.WithLocation(loc),
		calendar.WithLogger(DebugLogger()),
	)

	p := tea.NewProgram(New(svc, cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())

	stop, err := StartRefresh(p, cfg.Sync.Refresh)
	if err != nil {
		return fmt.Errorf("scheduling refresh: %w", err)
	}
	defer stop()

	_, err = p.Run()
	return err
}
