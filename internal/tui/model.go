// Package tui provides the terminal user interface for flashcal.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/newbeginning12/flashcal/internal/config"
	"github.com/newbeginning12/flashcal/internal/grid"
	"github.com/newbeginning12/flashcal/internal/interval"
	"github.com/newbeginning12/flashcal/internal/planner"
	"github.com/newbeginning12/flashcal/internal/tui/commands"
	"github.com/newbeginning12/flashcal/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalDetail
	ModalConfirmDelete
	ModalPlanResult
	ModalHelp
)

// Vertical chrome around the grid viewport.
const (
	headerLines = 2 // title line + day header line
	trayLines   = 1
	gridTop     = headerLines + trayLines
	footerLines = 3 // status, prompt, help
)

// Model is the main TUI model. The engine owns all grid interaction
// state; the model translates terminal events into engine calls and
// applies the engine's intents through the repository.
type Model struct {
	// Dependencies
	repo   interval.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// The calendar engine. One terminal cell is one engine pixel, so
	// the row height is lines per hour.
	engine *grid.Engine

	// State
	mode      Mode
	loading   bool
	selected  int64 // interval of the open detail modal
	confirmID int64 // interval pending delete confirmation

	// Template tray drag: index of the pressed tray item until the
	// pointer enters the grid, then the engine owns the session.
	trayPressed int

	// Modal state
	modalType ModalType
	detail    *interval.Interval

	// Planning state
	planner    *planner.Planner
	planResult *planner.PlanResult

	// Components
	prompt textinput.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusTime time.Time

	// now is injectable for tests.
	now func() time.Time

	err error
}

// New creates a new TUI model.
func New(repo interval.Repository, cfg *config.Config) *Model {
	ti := textinput.New()
	ti.Placeholder = "/plan an hour of writing tomorrow morning..."
	ti.CharLimit = 512

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("frappe")
	}
	styles := NewStyles(t)

	now := time.Now
	engine := grid.New(grid.Config{
		WeekStart:        interval.StartOfWeek(now()),
		MinRowHeight:     cfg.Zoom.MinRowHeight,
		MaxRowHeight:     cfg.Zoom.MaxRowHeight,
		DefaultRowHeight: cfg.Zoom.DefaultRowHeight,
		RowHeight:        cfg.Zoom.RowHeight,
		TimeGutter:       timeGutterWidth,
		// Any movement off the pressed cell is a drag; staying put is a click.
		DragThreshold: 0.5,
	})

	return &Model{
		repo:        repo,
		config:      cfg,
		theme:       t,
		styles:      styles,
		engine:      engine,
		mode:        ModeNormal,
		loading:     true,
		trayPressed: -1,
		prompt:      ti,
		now:         now,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadWeek(m.repo, m.engine.WeekStart())
}

// gridHeight returns the line count of the grid viewport.
func (m Model) gridHeight() int {
	h := m.height - gridTop - footerLines
	if h < 0 {
		return 0
	}
	return h
}

// toEngine translates terminal cell coordinates into engine viewport
// coordinates. ok is false outside the grid region.
func (m Model) toEngine(x, y int) (float64, float64, bool) {
	gy := y - gridTop
	if gy < 0 || gy >= m.gridHeight() {
		return 0, 0, false
	}
	return float64(x), float64(gy), true
}

// setStatus shows a transient status line message.
func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTime = m.now().Add(3 * time.Second)
}

// persistZoom writes the committed row height back to the config file so
// the zoom level survives restarts.
func (m *Model) persistZoom() {
	m.config.Zoom.RowHeight = m.engine.RowHeight()
	if err := m.config.Save(); err != nil {
		LogError("persisting zoom", err)
	}
}

// Run starts the TUI.
func Run(repo interval.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo interval.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	openedHere := false
	if repo == nil {
		r, err := EnsureStorage(cfg)
		if err != nil {
			return err
		}
		repo = r
		openedHere = true
	}
	if openedHere {
		defer func() { _ = repo.Close() }()
	}

	model := New(repo, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
