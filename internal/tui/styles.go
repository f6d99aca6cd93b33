// Package tui provides the terminal user interface for flashcal.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/newbeginning12/flashcal/internal/interval"
	"github.com/newbeginning12/flashcal/internal/tui/theme"
)

// timeGutterWidth is the character width of the hour-label column.
const timeGutterWidth = 6

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	theme *theme.Theme

	colorBg        lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorModalBg   lipgloss.Color
	colorSelection lipgloss.Color

	// Header styles
	TitleStyle          lipgloss.Style
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style

	// Time gutter
	TimeColumnStyle lipgloss.Style

	// Template tray
	TrayStyle         lipgloss.Style
	TrayItemStyle     lipgloss.Style
	TrayItemDragStyle lipgloss.Style

	// Grid cells
	EmptyCellStyle    lipgloss.Style
	EmptyCellAltStyle lipgloss.Style
	PreviewStyle      lipgloss.Style

	// Footer
	StatusStyle        lipgloss.Style
	WarningStyle       lipgloss.Style
	HelpStyle          lipgloss.Style
	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style

	// Modal styles
	ModalStyle       lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalBodyStyle   lipgloss.Style
	ModalMutedStyle  lipgloss.Style
	ModalFooterStyle lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	bg := lipgloss.Color(t.Bg)
	bgHighlight := lipgloss.Color(t.BgHighlight)
	fg := lipgloss.Color(t.Fg)
	fgMuted := lipgloss.Color(t.FgMuted)
	accent := lipgloss.Color(t.Accent)
	warning := lipgloss.Color(t.Warning)
	modalBg := lipgloss.Color(t.ModalBg)

	return &Styles{
		theme: t,

		colorBg:        bg,
		colorAccent:    accent,
		colorWarning:   warning,
		colorModalBg:   modalBg,
		colorSelection: lipgloss.Color(t.BgSelection),

		TitleStyle: lipgloss.NewStyle().
			Foreground(accent).
			Background(bg).
			Bold(true),
		DayHeaderStyle: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg).
			Align(lipgloss.Center),
		DayHeaderTodayStyle: lipgloss.NewStyle().
			Foreground(accent).
			Background(bg).
			Bold(true).
			Align(lipgloss.Center),

		TimeColumnStyle: lipgloss.NewStyle().
			Foreground(fgMuted).
			Background(bg).
			Width(timeGutterWidth).
			Align(lipgloss.Right),

		TrayStyle: lipgloss.NewStyle().
			Background(bgHighlight),
		TrayItemStyle: lipgloss.NewStyle().
			Foreground(fg).
			Background(bgHighlight),
		TrayItemDragStyle: lipgloss.NewStyle().
			Foreground(bg).
			Background(accent).
			Bold(true),

		EmptyCellStyle: lipgloss.NewStyle().
			Background(bg),
		EmptyCellAltStyle: lipgloss.NewStyle().
			Background(bgHighlight),
		PreviewStyle: lipgloss.NewStyle().
			Foreground(fg).
			Background(lipgloss.Color(t.Preview)).
			Italic(true),

		StatusStyle: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg),
		WarningStyle: lipgloss.NewStyle().
			Foreground(warning).
			Background(bg),
		HelpStyle: lipgloss.NewStyle().
			Foreground(fgMuted).
			Background(bg),
		PromptStyle: lipgloss.NewStyle().
			Foreground(fgMuted).
			Background(bg),
		PromptFocusedStyle: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg),

		ModalStyle: lipgloss.NewStyle().
			Background(modalBg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.ModalBorder)).
			BorderBackground(modalBg).
			Padding(0, 2),
		ModalTitleStyle: lipgloss.NewStyle().
			Foreground(accent).
			Background(modalBg).
			Bold(true),
		ModalBodyStyle: lipgloss.NewStyle().
			Foreground(fg).
			Background(modalBg),
		ModalMutedStyle: lipgloss.NewStyle().
			Foreground(fgMuted).
			Background(modalBg),
		ModalFooterStyle: lipgloss.NewStyle().
			Foreground(fgMuted).
			Background(modalBg).
			Italic(true),
	}
}

// BlockStyle returns the style for an interval block. The background
// comes from the color tag; done intervals fade, active ones stand out.
func (s *Styles) BlockStyle(colorTag string, status interval.Status, selected bool) lipgloss.Style {
	tagHex := s.theme.TagColor(colorTag)

	var bgHex string
	switch {
	case selected:
		bgHex = s.theme.BgSelection
	case status == interval.StatusDone:
		bgHex = s.theme.BlockBgMuted(tagHex)
	default:
		bgHex = s.theme.BlockBg(tagHex)
	}

	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.theme.TextOn(bgHex))).
		Background(lipgloss.Color(bgHex))
	if status == interval.StatusActive {
		st = st.Bold(true)
	}
	if status == interval.StatusDone {
		st = st.Strikethrough(true)
	}
	return st
}
