package tui

import (
	"math"
	"strings"

	"swipedeck/internal/deck"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// cellAspect is roughly how many columns make up the height of one row.
const cellAspect = 2.0

const (
	minCardWidth  = 12
	minCardHeight = 5
)

// geometry maps deck coordinates (cells, relative to the front card's resting
// position) to canvas cells.
type geometry struct {
	cardW, cardH int
	// anchorX is the front card's center column; anchorBottom the row just
	// below its bottom edge. Cards scale around their bottom center so deeper
	// cards peek out underneath.
	anchorX      float64
	anchorBottom float64
}

func newGeometry(width, height int, cfg deck.Config, prefW, prefH int) geometry {
	depth := float64(cfg.MaxVisibleCards - 1)
	w := min(prefW, width-2-int(math.Ceil(cfg.XCardSpacing*depth)))
	h := min(prefH, height-1-int(math.Ceil(cfg.YCardSpacing*depth)))
	w = max(w, minCardWidth)
	h = max(h, minCardHeight)
	block := float64(h) + cfg.YCardSpacing*depth
	top := math.Max(0, math.Floor((float64(height)-block)/2))
	return geometry{
		cardW:        w,
		cardH:        h,
		anchorX:      float64(width) / 2,
		anchorBottom: top + float64(h),
	}
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// bounds is the card's unrotated footprint.
func (g geometry) bounds(c *deck.Card) rect {
	s := c.Transform.Scale
	w := max(3, int(math.Round(float64(g.cardW)*s)))
	h := max(3, int(math.Round(float64(g.cardH)*s)))
	cx := g.anchorX + c.Transform.TX
	bottom := int(math.Round(g.anchorBottom + c.Transform.TY))
	return rect{
		x: int(math.Round(cx - float64(w)/2)),
		y: bottom - h,
		w: w,
		h: h,
	}
}

// rowShift approximates rotation by shearing rows horizontally around the
// card's center.
func rowShift(rotation float64, row, height int) int {
	dy := float64(row) + 0.5 - float64(height)/2
	return int(math.Round(-dy * math.Tan(rotation) * cellAspect))
}

type cardLine struct {
	text string
	bold bool
}

// cardLines lays out the visible face in a width x height text box.
func cardLines(c *deck.Card, width, height int) []cardLine {
	face := c.Face()
	if face == nil || width <= 0 || height <= 0 {
		return nil
	}
	title := face.Title()
	if c.ShowingBack {
		title = glyphFlipped() + title
	}
	lines := []cardLine{{text: runewidth.Truncate(title, width, glyphEllipsis()), bold: true}}
	if body := strings.TrimSpace(face.Body()); body != "" {
		lines = append(lines, cardLine{})
		for _, l := range strings.Split(wordwrap.String(body, width), "\n") {
			lines = append(lines, cardLine{text: runewidth.Truncate(l, width, glyphEllipsis())})
		}
	}
	if len(lines) > height {
		lines = lines[:height]
		last := &lines[height-1]
		if last.text != "" {
			last.text = runewidth.Truncate(last.text+glyphEllipsis(), width, glyphEllipsis())
		}
	}
	return lines
}

func drawCard(cv *canvas, g geometry, c *deck.Card) {
	r := g.bounds(c)
	surfaceBg := paletteSurfaceBg.pick()
	op := c.Opacity
	cardBg := fade(paletteCardBg.pick(), surfaceBg, op)
	edge := paletteCardBorder
	switch {
	case c.ShowingBack:
		edge = paletteBackAccent
	case c.Interactive:
		edge = paletteFrontBorder
	}
	edgeSt := cellStyle{fg: fade(edge.pick(), surfaceBg, op), bg: cardBg}
	textSt := cellStyle{fg: fade(paletteCardFg.pick(), surfaceBg, op), bg: cardBg}

	b := glyphBorder()
	lines := cardLines(c, r.w-4, r.h-2)
	for row := 0; row < r.h; row++ {
		x := r.x + rowShift(c.Transform.Rotation, row, r.h)
		y := r.y + row
		switch row {
		case 0, r.h - 1:
			left, right := b.tl, b.tr
			if row != 0 {
				left, right = b.bl, b.br
			}
			cv.set(x, y, left, edgeSt)
			for i := 1; i < r.w-1; i++ {
				cv.set(x+i, y, b.h, edgeSt)
			}
			cv.set(x+r.w-1, y, right, edgeSt)
		default:
			cv.set(x, y, b.v, edgeSt)
			cv.fill(x+1, y, r.w-2, textSt)
			if i := row - 1; i < len(lines) {
				st := textSt
				st.bold = lines[i].bold
				cv.text(x+2, y, lines[i].text, st)
			}
			cv.set(x+r.w-1, y, b.v, edgeSt)
		}
	}
	drawStamp(cv, r, c, cardBg)
}

// stampThreshold is the drag strength at which the like/nope stamp appears.
const stampThreshold = 0.35

func drawStamp(cv *canvas, r rect, c *deck.Card, bg string) {
	if r.h < 3 {
		return
	}
	strength := c.Gesture().DragStrength()
	if math.Abs(strength) < stampThreshold {
		return
	}
	label, color := glyphLike(), paletteLike
	if strength < 0 {
		label, color = glyphNope(), paletteNope
	}
	w := runewidth.StringWidth(label)
	row := 1
	x := r.x + rowShift(c.Transform.Rotation, row, r.h)
	if strength > 0 {
		x += 2
	} else {
		x += r.w - 2 - w
	}
	cv.text(x, r.y+row, label, cellStyle{fg: color.pick(), bg: bg, bold: true})
}
