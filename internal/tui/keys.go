package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/newbeginning12/flashcal/internal/tui/commands"
)

// handleKeyMsg dispatches key presses by mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.engine.Abort()
		return m, tea.Quit

	case "esc":
		m.engine.CancelDrag()
		m.trayPressed = -1
		return m, nil

	case "h", "left":
		return m.shiftWeek(-1)
	case "l", "right":
		return m.shiftWeek(1)
	case "t":
		return m.goToday()

	case "j", "down":
		m.engine.ScrollBy(2)
		return m, nil
	case "k", "up":
		m.engine.ScrollBy(-2)
		return m, nil

	case "+", "=":
		m.engine.ZoomBy(1.25, -1)
		m.persistZoom()
		return m, nil
	case "-":
		m.engine.ZoomBy(0.8, -1)
		m.persistZoom()
		return m, nil
	case "0":
		m.engine.ResetZoom()
		m.persistZoom()
		return m, nil

	case "/":
		m.mode = ModePrompt
		m.prompt.Focus()
		m.prompt.SetValue("/")
		m.prompt.CursorEnd()
		return m, nil

	case "s":
		if iv := m.engine.Find(m.selected); iv != nil {
			m.engine.RequestStatus(iv.ID, iv.Status.Next())
			return m.drainIntents()
		}
		return m, nil

	case "x":
		if m.engine.Find(m.selected) != nil {
			m.confirmID = m.selected
			m.mode = ModeModal
			m.modalType = ModalConfirmDelete
		}
		return m, nil

	case "?":
		m.mode = ModeModal
		m.modalType = ModalHelp
		return m, nil
	}

	return m, nil
}

func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m, nil

	case "enter":
		input := strings.TrimSpace(m.prompt.Value())
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m.runPromptCommand(input)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) runPromptCommand(input string) (tea.Model, tea.Cmd) {
	switch {
	case input == "" || input == "/":
		return m, nil

	case strings.HasPrefix(input, "/plan "):
		query := strings.TrimSpace(strings.TrimPrefix(input, "/plan "))
		if query == "" {
			return m, nil
		}
		m.setStatus("Planning...")
		return m, commands.Plan(query, m.config, m.repo)

	case input == "/help":
		m.mode = ModeModal
		m.modalType = ModalHelp
		return m, nil

	default:
		m.setStatus(fmt.Sprintf("Unknown command: %s", input))
		return m, nil
	}
}

func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalDetail:
		return m.handleDetailKeys(msg)
	case ModalConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModalPlanResult:
		return m.handlePlanResultKeys(msg)
	case ModalHelp:
		switch msg.String() {
		case "esc", "q", "enter", "?":
			return m.closeModal(), nil
		}
	}
	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		return m.closeModal(), nil

	case "s":
		if m.detail != nil {
			m.engine.RequestStatus(m.detail.ID, m.detail.Status.Next())
			model := m.closeModal()
			return model.drainIntents()
		}
		return m, nil

	case "x":
		if m.detail != nil {
			m.confirmID = m.detail.ID
			m.modalType = ModalConfirmDelete
		}
		return m, nil

	case "y":
		if m.detail != nil {
			iv := m.detail
			text := fmt.Sprintf("%s %s %s-%s %s",
				iv.Day.Format("2006-01-02"), iv.Title, iv.Start, iv.End, iv.Status)
			if err := clipboard.WriteAll(text); err != nil {
				m.setStatus("Clipboard unavailable")
			} else {
				m.setStatus("Copied to clipboard")
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.confirmID
		model := m.closeModal()
		model.engine.RequestDelete(id)
		return model.drainIntents()

	case "n", "esc", "q":
		m.confirmID = 0
		return m.closeModal(), nil
	}
	return m, nil
}

func (m Model) handlePlanResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.planResult != nil && !m.planResult.HasValidationErrors() {
			return m, commands.SavePlan(m.planner, m.planResult)
		}
		return m, nil

	case "esc", "q":
		m.planResult = nil
		m.planner = nil
		return m.closeModal(), nil
	}
	return m, nil
}

func (m Model) closeModal() Model {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.detail = nil
	return m
}
