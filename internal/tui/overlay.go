package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// compositeOverlay centers a modal box over the base screen. Rows the
// box crosses are spliced with ansi.Cut so the styling of the base
// content on either side survives intact.
func compositeOverlay(base, box string, width, height int) string {
	if box == "" || width <= 0 || height <= 0 {
		return base
	}

	boxLines := strings.Split(box, "\n")
	boxH := len(boxLines)
	boxW := 0
	for _, line := range boxLines {
		if w := lipgloss.Width(line); w > boxW {
			boxW = w
		}
	}
	if boxW > width {
		boxW = width
	}
	if boxH > height {
		boxLines = boxLines[:height]
		boxH = height
	}

	top := (height - boxH) / 2
	left := (width - boxW) / 2

	baseLines := normalizeLines(base, width, height)
	out := make([]string, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+boxH {
			out[row] = baseLines[row]
			continue
		}

		boxLine := boxLines[row-top]
		if w := lipgloss.Width(boxLine); w > boxW {
			boxLine = ansi.Cut(boxLine, 0, boxW)
		} else if w < boxW {
			boxLine += strings.Repeat(" ", boxW-w)
		}

		leftSlice := ansi.Cut(baseLines[row], 0, left)
		rightSlice := ansi.Cut(baseLines[row], left+boxW, width)
		out[row] = leftSlice + boxLine + rightSlice
	}

	return strings.Join(out, "\n")
}

// normalizeLines pads or trims the base render to an exact width and
// height grid of display cells.
func normalizeLines(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	for i, line := range lines {
		w := lipgloss.Width(line)
		if w > width {
			lines[i] = ansi.Cut(line, 0, width)
			continue
		}
		if w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}
