package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// The canvas blends colors per cell (card opacity), so the palette is kept as
// hex pairs rather than ANSI indices. pick resolves a pair against the
// detected background.

type hexPair struct {
	light string
	dark  string
}

func (p hexPair) pick() string {
	if lipgloss.HasDarkBackground() {
		return p.dark
	}
	return p.light
}

func (p hexPair) adaptive() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: p.light, Dark: p.dark}
}

var (
	paletteSurfaceBg   = hexPair{"#ffffff", "#1c1c1c"}
	paletteCardBg      = hexPair{"#f4f4f4", "#303030"}
	paletteCardFg      = hexPair{"#262626", "#e4e4e4"}
	paletteCardBorder  = hexPair{"#a8a8a8", "#767676"}
	paletteFrontBorder = hexPair{"#080808", "#ffffff"}
	paletteBackAccent  = hexPair{"#005fd7", "#5f87d7"}
	paletteLike        = hexPair{"#00875f", "#5fd787"}
	paletteNope        = hexPair{"#d70000", "#ff5f5f"}
	paletteMuted       = hexPair{"#6c6c6c", "#8a8a8a"}
)

func styleMuted() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(paletteMuted.adaptive())
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// fade mixes fg toward bg; opacity 1 keeps fg, 0 yields bg.
func fade(fg, bg string, opacity float64) string {
	if opacity >= 1 {
		return fg
	}
	a, err := colorful.Hex(fg)
	if err != nil {
		return fg
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return fg
	}
	if opacity < 0 {
		opacity = 0
	}
	return a.BlendLab(b, 1-opacity).Clamped().Hex()
}

// applyColorProfilePreference honors NO_COLOR and otherwise trusts TERM and
// COLORTERM over termenv's probe when they claim more colors.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	term := strings.ToLower(os.Getenv("TERM"))
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	switch {
	case profile == termenv.Ascii:
	case strings.Contains(colorterm, "truecolor"), strings.Contains(colorterm, "24bit"):
		profile = termenv.TrueColor
	case strings.Contains(term, "256color") && profile == termenv.ANSI:
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference picks the light or dark palette:
// SWIPEDECK_TUI_THEME=light|dark|auto, then the COLORFGBG heuristic, then
// lipgloss's own detection.
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SWIPEDECK_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	// COLORFGBG is "fg;bg", sometimes with more segments; bg is last.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
