// Package theme provides color themes for the TUI.
package theme

import "math"

// BlockBg derives a background shade for an interval block from its tag
// color. Dark themes darken the tag color toward the base background;
// light themes blend it most of the way into the background instead.
func (t *Theme) BlockBg(tagHex string) string {
	if isLightTheme(t.Bg) {
		return blendColors(tagHex, t.Bg, 0.72)
	}
	return blendColors(tagHex, t.Bg, 0.55)
}

// BlockBgMuted is BlockBg for done intervals: the tag color is nearly
// flattened into the background, leaving only a hint of the hue.
func (t *Theme) BlockBgMuted(tagHex string) string {
	if isLightTheme(t.Bg) {
		return blendColors(tagHex, t.Bg, 0.88)
	}
	return blendColors(tagHex, t.Bg, 0.80)
}

// TextOn picks the foreground with better contrast against a background.
func (t *Theme) TextOn(bgHex string) string {
	if contrastRatio(bgHex, t.Fg) >= contrastRatio(bgHex, t.Bg) {
		return t.Fg
	}
	return t.Bg
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	if len(hex) != 7 || hex[0] != '#' {
		return 0
	}
	var r, g, b int
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// blendColors mixes a toward b by ratio (0 keeps a, 1 yields b).
func blendColors(a, b string, ratio float64) string {
	if len(a) != 7 || a[0] != '#' || len(b) != 7 || b[0] != '#' {
		return a
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	var ar, ag, ab int
	var br, bg, bb int
	parseHex(a[1:3], &ar)
	parseHex(a[3:5], &ag)
	parseHex(a[5:7], &ab)
	parseHex(b[1:3], &br)
	parseHex(b[3:5], &bg)
	parseHex(b[5:7], &bb)

	r := int(float64(ar)*(1-ratio) + float64(br)*ratio)
	g := int(float64(ag)*(1-ratio) + float64(bg)*ratio)
	bv := int(float64(ab)*(1-ratio) + float64(bb)*ratio)

	return formatHexColor(r, g, bv)
}

// parseHex parses a 2-character hex string into an integer.
func parseHex(s string, v *int) {
	var val int
	for i := 0; i < len(s); i++ {
		val *= 16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	*v = val
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	result := make([]byte, 7)
	result[0] = '#'
	result[1] = hex[r>>4]
	result[2] = hex[r&0xf]
	result[3] = hex[g>>4]
	result[4] = hex[g&0xf]
	result[5] = hex[b>>4]
	result[6] = hex[b&0xf]
	return string(result)
}
