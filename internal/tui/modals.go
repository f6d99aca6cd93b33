package tui

import (
	"fmt"
	"strings"
)

// renderModal renders the current modal box.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalDetail:
		return m.renderDetailModal()
	case ModalConfirmDelete:
		return m.renderConfirmDeleteModal()
	case ModalPlanResult:
		return m.renderPlanResultModal()
	case ModalHelp:
		return m.renderHelpModal()
	default:
		return ""
	}
}

func (m Model) modalFrame(title string, body []string, footer string) string {
	lines := []string{
		m.styles.ModalTitleStyle.Render(title),
		"",
	}
	lines = append(lines, body...)
	lines = append(lines, "", m.styles.ModalFooterStyle.Render(footer))
	return m.styles.ModalStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderDetailModal() string {
	iv := m.detail
	if iv == nil {
		return ""
	}

	body := []string{
		m.styles.ModalBodyStyle.Render(iv.Title),
		m.styles.ModalMutedStyle.Render(fmt.Sprintf("%s  %s-%s (%dm)",
			iv.Day.Format("Mon, Jan 02"), iv.Start, iv.End, iv.Duration())),
		m.styles.ModalBodyStyle.Render(fmt.Sprintf("Status: %s", iv.Status)),
	}
	if iv.ColorTag != "" {
		body = append(body, m.styles.ModalMutedStyle.Render("Color: "+iv.ColorTag))
	}
	if len(iv.Tags) > 0 {
		body = append(body, m.styles.ModalMutedStyle.Render("Tags: "+strings.Join(iv.Tags, ", ")))
	}
	if iv.Notes != "" {
		body = append(body, "", m.styles.ModalBodyStyle.Render(iv.Notes))
	}

	return m.modalFrame("Interval", body, "s status · x delete · y yank · esc close")
}

func (m Model) renderConfirmDeleteModal() string {
	title := "this interval"
	if iv := m.engine.Find(m.confirmID); iv != nil {
		title = fmt.Sprintf("%q (%s %s-%s)", iv.Title, iv.Day.Format("Mon"), iv.Start, iv.End)
	}
	body := []string{
		m.styles.ModalBodyStyle.Render("Delete " + title + "?"),
	}
	return m.modalFrame("Confirm Delete", body, "y/enter delete · n/esc keep")
}

func (m Model) renderPlanResultModal() string {
	r := m.planResult
	if r == nil {
		return ""
	}

	var body []string
	if r.HasValidationErrors() {
		body = append(body, m.styles.WarningStyle.Render("The planner could not produce a valid schedule:"))
		for _, e := range r.ValidationErrors {
			body = append(body, m.styles.ModalMutedStyle.Render("  "+e.String()))
		}
	} else {
		for _, iv := range r.Intervals {
			body = append(body, m.styles.ModalBodyStyle.Render(fmt.Sprintf("  %s  %s-%s  %s",
				iv.Day.Format("Mon Jan 02"), iv.Start, iv.End, iv.Title)))
		}
	}
	for _, w := range r.Warnings {
		body = append(body, m.styles.WarningStyle.Render("  ! "+w))
	}
	for _, s := range r.Suggestions {
		body = append(body, m.styles.ModalMutedStyle.Render("  > "+s))
	}

	footer := "enter save · esc discard"
	if r.HasValidationErrors() {
		footer = "esc dismiss"
	}
	return m.modalFrame("Planned Intervals", body, footer)
}

func (m Model) renderHelpModal() string {
	rows := []struct{ key, desc string }{
		{"h / l", "previous / next week"},
		{"t", "jump to today"},
		{"j / k", "scroll the day"},
		{"+ / - / 0", "zoom in / out / reset"},
		{"ctrl+wheel", "zoom at the mouse"},
		{"click", "open interval details"},
		{"drag block", "reschedule interval"},
		{"drag tray item", "create from template"},
		{"s", "cycle status of last opened"},
		{"x", "delete last opened"},
		{"/plan ...", "plan with natural language"},
		{"q", "quit"},
	}

	body := make([]string, 0, len(rows))
	for _, r := range rows {
		body = append(body, m.styles.ModalBodyStyle.Render(fmt.Sprintf("  %-12s", r.key))+
			m.styles.ModalMutedStyle.Render(r.desc))
	}
	return m.modalFrame("Help", body, "esc close")
}
