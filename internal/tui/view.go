package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/newbeginning12/flashcal/internal/grid"
)

// View renders the full screen: header, template tray, grid viewport,
// footer, and any modal composited on top.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}
	if m.width < timeGutterWidth+grid.DaysPerWeek || m.height <= gridTop+footerLines {
		return "Terminal too small"
	}

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderDayHeaders())
	sections = append(sections, m.renderTray())
	sections = append(sections, m.renderGridLines()...)
	sections = append(sections, m.renderFooter()...)

	base := strings.Join(sections, "\n")

	if m.mode == ModeModal && m.modalType != ModalNone {
		return compositeOverlay(base, m.renderModal(), m.width, m.height)
	}
	return base
}

func (m Model) renderTitle() string {
	start := m.engine.WeekStart()
	end := start.AddDate(0, 0, 6)
	title := fmt.Sprintf(" flashcal  %s - %s", start.Format("Jan 02"), end.Format("Jan 02, 2006"))
	if m.loading {
		title += "  (loading)"
	}
	return m.styles.TitleStyle.Width(m.width).Render(title)
}

func (m Model) renderDayHeaders() string {
	bounds := trackBounds(m.engine.Tracks())
	today := m.now()

	var b strings.Builder
	b.WriteString(m.styles.TimeColumnStyle.Render(strings.Repeat(" ", timeGutterWidth)))
	for day := 0; day < grid.DaysPerWeek; day++ {
		w := bounds[day+1] - bounds[day]
		if w <= 0 {
			continue
		}
		date := m.engine.DayDate(day)
		label := date.Format("Mon 02")
		style := m.styles.DayHeaderStyle
		if sameDate(date, today) {
			style = m.styles.DayHeaderTodayStyle
		}
		b.WriteString(style.Width(w).Render(label))
	}
	return padLine(b.String(), m.width, m.styles.EmptyCellStyle)
}

func (m Model) renderTray() string {
	var b strings.Builder
	b.WriteString(m.styles.TrayStyle.Render(strings.Repeat(" ", timeGutterWidth)))
	for i, t := range defaultTemplates {
		style := m.styles.TrayItemStyle
		if i == m.trayPressed {
			style = m.styles.TrayItemDragStyle
		}
		b.WriteString(style.Render(t.Label()))
		b.WriteString(m.styles.TrayStyle.Render(" "))
	}
	return padLine(b.String(), m.width, m.styles.TrayStyle)
}

func (m Model) renderFooter() []string {
	status := m.statusMsg
	statusStyle := m.styles.StatusStyle
	if status == "" {
		status = m.dragStatus()
	}
	if m.err != nil && strings.HasPrefix(status, "Error") {
		statusStyle = m.styles.WarningStyle
	}

	promptStyle := m.styles.PromptStyle
	promptLine := " / for commands"
	if m.mode == ModePrompt {
		promptStyle = m.styles.PromptFocusedStyle
		promptLine = " " + m.prompt.View()
	}

	help := " q quit · h/l week · t today · j/k scroll · +/-/0 zoom · drag to move · ? help"

	return []string{
		padLine(statusStyle.Render(" "+status), m.width, statusStyle),
		padLine(promptStyle.Render(promptLine), m.width, promptStyle),
		padLine(m.styles.HelpStyle.Render(help), m.width, m.styles.HelpStyle),
	}
}

// dragStatus describes the live drag session, if any.
func (m Model) dragStatus() string {
	p, ok := m.engine.DragPreview()
	if !ok {
		return ""
	}
	verb := "Moving"
	if p.Kind == grid.PayloadTemplate {
		verb = "Placing"
	}
	day := m.engine.DayDate(p.Day)
	return fmt.Sprintf("%s -> %s %s", verb, day.Format("Mon"), minutesLabel(p.Start))
}

func minutesLabel(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// padLine extends a styled line to the full terminal width.
func padLine(s string, width int, style lipgloss.Style) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + style.Render(strings.Repeat(" ", width-w))
}
