package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// cellStyle is comparable so adjacent cells with the same look render as one
// run.
type cellStyle struct {
	fg, bg string
	bold   bool
}

func (s cellStyle) style() lipgloss.Style {
	st := lipgloss.NewStyle().Bold(s.bold)
	if s.fg != "" {
		st = st.Foreground(lipgloss.Color(s.fg))
	}
	if s.bg != "" {
		st = st.Background(lipgloss.Color(s.bg))
	}
	return st
}

type cell struct {
	r rune
	// cont marks the right half of a wide rune.
	cont  bool
	style cellStyle
}

// canvas is a fixed grid of terminal cells painted back to front.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int, bg cellStyle) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', style: bg}
	}
	return c
}

func (c *canvas) in(x, y int) bool { return x >= 0 && y >= 0 && x < c.w && y < c.h }

func (c *canvas) at(x, y int) *cell { return &c.cells[y*c.w+x] }

// set paints r at (x, y) and returns the number of columns it took. Cells
// outside the canvas are clipped.
func (c *canvas) set(x, y int, r rune, st cellStyle) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return 0
	}
	if !c.in(x, y) {
		return w
	}
	// Overwriting either half of a wide rune blanks the other half.
	if cur := c.at(x, y); cur.cont && x > 0 {
		c.at(x-1, y).r = ' '
	}
	if x+1 < c.w && c.at(x+1, y).cont {
		c.at(x+1, y).cont = false
		c.at(x+1, y).r = ' '
	}
	if w == 2 && x+1 >= c.w {
		r, w = ' ', 1
	}
	*c.at(x, y) = cell{r: r, style: st}
	if w == 2 {
		*c.at(x+1, y) = cell{cont: true, style: st}
	}
	return w
}

// text paints s starting at (x, y) and returns the columns used.
func (c *canvas) text(x, y int, s string, st cellStyle) int {
	used := 0
	for _, r := range s {
		used += c.set(x+used, y, r, st)
	}
	return used
}

func (c *canvas) fill(x, y, w int, st cellStyle) {
	for i := 0; i < w; i++ {
		c.set(x+i, y, ' ', st)
	}
}

// plain returns the canvas text without styling.
func (c *canvas) plain() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.w; x++ {
			if cl := c.at(x, y); !cl.cont {
				b.WriteRune(cl.r)
			}
		}
	}
	return b.String()
}

func (c *canvas) render() string {
	if c.w == 0 || c.h == 0 {
		return ""
	}
	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		run.Reset()
		cur := c.at(0, y).style
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(cur.style().Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < c.w; x++ {
			cl := c.at(x, y)
			if cl.cont {
				continue
			}
			if cl.style != cur {
				flush()
				cur = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}
