package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI.
var (
	colorHeader  = color.New(color.Bold)
	colorMuted   = color.New(color.FgWhite, color.Faint)
	colorWarning = color.New(color.FgYellow)

	// Tag colors approximate the TUI theme palette with ANSI colors.
	tagColors = map[string]*color.Color{
		"blue":     color.New(color.FgBlue),
		"teal":     color.New(color.FgCyan),
		"green":    color.New(color.FgGreen),
		"yellow":   color.New(color.FgYellow),
		"peach":    color.New(color.FgRed),
		"red":      color.New(color.FgRed, color.Bold),
		"mauve":    color.New(color.FgMagenta),
		"lavender": color.New(color.FgMagenta, color.Faint),
	}
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatWarning formats warning text.
func formatWarning(s string) string {
	return colorWarning.Sprint(s)
}

// formatTagged colors a line by its interval color tag.
func formatTagged(tag, s string) string {
	if c, ok := tagColors[tag]; ok {
		return c.Sprint(s)
	}
	return s
}
