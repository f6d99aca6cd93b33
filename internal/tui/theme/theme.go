// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme. Interval blocks are colored by
// their color tag; everything else derives from the base palette.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Hour shading, template tray
	BgSelection string `toml:"bg_selection"` // Selected interval block
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Gutter labels, done intervals
	Accent      string `toml:"accent"`       // Headers, today marker, borders
	Block       string `toml:"block"`        // Default block color (no tag)
	Preview     string `toml:"preview"`      // Drag preview ghost
	Warning     string `toml:"warning"`      // Warnings, drop errors

	// Modal palette (can override base theme values)
	ModalBg     string `toml:"modal_bg"`
	ModalBorder string `toml:"modal_border"`

	// Tags maps color tag names carried on intervals to hex colors.
	Tags map[string]string `toml:"tags"`
}

// Load loads a theme by name from embedded files.
// Falls back to frappe if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "frappe"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		if name != "frappe" {
			return Load("frappe")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

// TagColor returns the hex color for a color tag, or the default block
// color when the tag is unknown or empty.
func (t *Theme) TagColor(tag string) string {
	if tag != "" {
		if hex, ok := t.Tags[strings.ToLower(tag)]; ok {
			return hex
		}
	}
	return t.Block
}

func (t *Theme) applyDefaults() {
	if t.Block == "" {
		t.Block = t.Accent
	}
	if t.Preview == "" {
		t.Preview = t.FgMuted
	}
	if t.ModalBg == "" {
		t.ModalBg = coalesce(t.BgHighlight, t.Bg)
	}
	if t.ModalBorder == "" {
		t.ModalBorder = t.Accent
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"frappe", "mocha", "macchiato", "latte", "light"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
