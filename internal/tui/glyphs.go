package tui

import (
	"os"
	"strings"
	"sync"
)

// Some terminal fonts render box drawing and symbols poorly, so every glyph the
// canvas draws has an ASCII fallback.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference reads SWIPEDECK_TUI_GLYPHS, falling back to the
// configured value. Unknown values leave the current set alone.
func applyGlyphPreference(configured string) {
	v := strings.TrimSpace(os.Getenv("SWIPEDECK_TUI_GLYPHS"))
	if v == "" {
		v = configured
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	defer glyphsMu.RUnlock()
	return currentGlyphs
}

// border is a card outline: corners clockwise from top-left, then edges.
type border struct {
	tl, tr, br, bl rune
	h, v           rune
}

func glyphBorder() border {
	if glyphs() == glyphSetASCII {
		return border{'+', '+', '+', '+', '-', '|'}
	}
	return border{'╭', '╮', '╯', '╰', '─', '│'}
}

func glyphLike() string {
	if glyphs() == glyphSetASCII {
		return "<3 LIKE"
	}
	return "♥ LIKE"
}

func glyphNope() string {
	if glyphs() == glyphSetASCII {
		return "X NOPE"
	}
	return "✗ NOPE"
}

func glyphFlipped() string {
	if glyphs() == glyphSetASCII {
		return "(back) "
	}
	return "↺ "
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}

func glyphSep() string {
	if glyphs() == glyphSetASCII {
		return " | "
	}
	return " · "
}
