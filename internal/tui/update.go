package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/newbeginning12/flashcal/internal/grid"
	"github.com/newbeginning12/flashcal/internal/interval"
	"github.com/newbeginning12/flashcal/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		first := m.width == 0
		m.width = msg.Width
		m.height = msg.Height
		m.engine.SetViewport(float64(msg.Width), float64(m.gridHeight()))
		if first {
			m.engine.ScrollToTime(interval.TimeToMinutes(m.config.Schedule.DayStart))
		}
		return m, nil

	case commands.WeekLoadedMsg:
		m.engine.SetIntervals(msg.Intervals)
		m.loading = false
		if n := m.engine.Dropped(); n > 0 {
			m.setStatus(fmt.Sprintf("Skipped %d malformed interval(s)", n))
		}
		return m, nil

	case commands.IntentAppliedMsg:
		m.setStatus(msg.Desc)
		return m, commands.LoadWeek(m.repo, m.engine.WeekStart())

	case commands.ErrMsg:
		m.err = msg.Err
		m.setStatus(fmt.Sprintf("Error: %v", msg.Err))
		LogError("update", msg.Err)
		return m, nil

	case commands.StatusMsgCmd:
		m.setStatus(msg.Msg)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if m.now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil

	case commands.PlanResultMsg:
		m.planner = msg.Planner
		m.planResult = msg.Result
		m.mode = ModeModal
		m.modalType = ModalPlanResult
		m.statusMsg = ""
		return m, nil

	case commands.PlanSavedMsg:
		m.setStatus(fmt.Sprintf("Saved %d interval(s)", msg.Count))
		m.planResult = nil
		m.planner = nil
		m.mode = ModeNormal
		m.modalType = ModalNone
		return m, commands.LoadWeek(m.repo, m.engine.WeekStart())
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleMouseMsg feeds pointer events into the engine and drains the
// intents it emits. While a modal is up the grid ignores the mouse.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeModal {
		return m, nil
	}
	LogMouse(msg)

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		return m.handleWheel(msg), nil

	case tea.MouseButtonLeft:
		switch msg.Action {
		case tea.MouseActionPress:
			return m.handleMousePress(msg), nil
		case tea.MouseActionMotion:
			return m.handleMouseMotion(msg), nil
		case tea.MouseActionRelease:
			return m.handleMouseRelease(msg)
		}

	case tea.MouseButtonNone:
		if msg.Action == tea.MouseActionMotion {
			return m.handleMouseMotion(msg), nil
		}

	case tea.MouseButtonRight:
		if msg.Action == tea.MouseActionPress {
			m.engine.CancelDrag()
			m.trayPressed = -1
		}
	}

	return m, nil
}

// handleWheel zooms with ctrl held, otherwise scrolls. The zoom anchor
// is the line under the mouse so the time there stays pinned.
func (m Model) handleWheel(msg tea.MouseMsg) Model {
	if msg.Ctrl {
		factor := 1.25
		if msg.Button == tea.MouseButtonWheelDown {
			factor = 0.8
		}
		_, gy, ok := m.toEngine(msg.X, msg.Y)
		if !ok {
			gy = -1 // engine anchors at viewport center
		}
		m.engine.ZoomBy(factor, gy)
		m.persistZoom()
		return m
	}

	delta := -2.0
	if msg.Button == tea.MouseButtonWheelDown {
		delta = 2.0
	}
	m.engine.ScrollBy(delta)
	return m
}

func (m Model) handleMousePress(msg tea.MouseMsg) Model {
	// Press on the template tray arms a template drag.
	if msg.Y == gridTop-trayLines {
		if i := trayHit(defaultTemplates, msg.X); i >= 0 {
			m.trayPressed = i
			return m
		}
	}

	if gx, gy, ok := m.toEngine(msg.X, msg.Y); ok {
		m.engine.PointerDown(gx, gy)
	}
	return m
}

func (m Model) handleMouseMotion(msg tea.MouseMsg) Model {
	gx, gy, ok := m.toEngine(msg.X, msg.Y)
	if !ok {
		return m
	}

	// A pressed tray item entering the grid starts the template drag,
	// round-tripped through the payload codec like an external drop.
	if m.trayPressed >= 0 && m.engine.DragState() == grid.StateIdle {
		payload := defaultTemplates[m.trayPressed].Payload()
		m.engine.EnterExternal(gx, gy, payload.EncodeJSON(), payload.EncodeText())
		m.trayPressed = -1
		return m
	}

	m.engine.PointerMove(gx, gy)
	return m
}

func (m Model) handleMouseRelease(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.trayPressed = -1
	gx, gy, ok := m.toEngine(msg.X, msg.Y)
	if !ok {
		// Release outside the grid: the engine treats the last known
		// position as final only for active sessions; just cancel.
		m.engine.CancelDrag()
		return m, nil
	}
	m.engine.PointerUp(gx, gy)
	return m.drainIntents()
}

// drainIntents applies everything the engine emitted since the last
// drain. Open intents switch to the detail modal; mutations become
// repository commands followed by a week reload.
func (m Model) drainIntents() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, it := range m.engine.Intents() {
		LogIntent(it)
		switch it := it.(type) {
		case grid.OpenIntent:
			if iv := m.engine.Find(it.ID); iv != nil {
				m.detail = iv
				m.selected = it.ID
				m.mode = ModeModal
				m.modalType = ModalDetail
			}
		case grid.MoveIntent:
			cmds = append(cmds, commands.ApplyMove(m.repo, it))
		case grid.CreateIntent:
			cmds = append(cmds, commands.ApplyCreate(m.repo, it))
		case grid.DeleteIntent:
			cmds = append(cmds, commands.ApplyDelete(m.repo, it))
		case grid.SetStatusIntent:
			cmds = append(cmds, commands.ApplyStatus(m.repo, it))
		}
	}
	return m, tea.Batch(cmds...)
}

// shiftWeek moves the visible week by the given number of weeks.
func (m Model) shiftWeek(weeks int) (tea.Model, tea.Cmd) {
	start := m.engine.WeekStart().AddDate(0, 0, 7*weeks)
	m.engine.SetWeek(start)
	m.loading = true
	return m, commands.LoadWeek(m.repo, start)
}

// goToday returns to the current week.
func (m Model) goToday() (tea.Model, tea.Cmd) {
	start := interval.StartOfWeek(m.now())
	m.engine.SetWeek(start)
	m.engine.ScrollToTime(interval.TimeToMinutes(m.config.Schedule.DayStart))
	m.loading = true
	return m, commands.LoadWeek(m.repo, start)
}
