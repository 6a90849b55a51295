package tui

import (
	"fmt"
	"strings"
	"time"

	"swipedeck/internal/deck"
	"swipedeck/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-logr/logr"
)

const (
	defaultCardWidth  = 40
	defaultCardHeight = 12
	defaultFPS        = 60
)

// frameMsg advances the animation timeline. seq drops frames scheduled by an
// earlier loop.
type frameMsg struct {
	seq int
	at  time.Time
}

// feed keeps what the status line shows. It is the TUI's stack subscriber.
type feed struct {
	deck   *store.Deck
	last   string
	liked  int
	noped  int
	ranOut bool
}

func (f *feed) subscriber() deck.Subscriber {
	return deck.Callbacks{
		WillSwipe: func(index int, dir deck.Direction) {
			verb := "liked"
			if dir == deck.Left {
				verb = "noped"
			}
			f.last = fmt.Sprintf("%s %q", verb, f.deck.Title(index))
		},
		DidSwipe: func(_ int, dir deck.Direction) {
			if dir == deck.Right {
				f.liked++
			} else {
				f.noped++
			}
		},
		CancelSwipe: func(index int) { f.last = fmt.Sprintf("kept %q", f.deck.Title(index)) },
		Tap:         func(index int) { f.last = fmt.Sprintf("flipped %q", f.deck.Title(index)) },
		RanOutOfCards: func() {
			f.ranOut = true
			f.last = "out of cards"
		},
		ReloadComplete: func() {
			f.ranOut = false
			f.last = "reloaded"
		},
	}
}

type model struct {
	stack    *deck.Stack
	timeline *deck.Timeline
	feed     *feed
	log      logr.Logger

	keys keyMap
	help help.Model

	width  int
	height int
	prefW  int
	prefH  int

	frameInterval time.Duration
	frameSeq      int
	ticking       bool
	lastFrame     time.Time

	// pressed is the card a mouse button went down on.
	pressed *deck.Card
}

func newModel(opts Options) (model, error) {
	if opts.Deck == nil {
		return model{}, fmt.Errorf("tui: no deck")
	}
	if err := opts.Stack.Validate(); err != nil {
		return model{}, fmt.Errorf("stack config: %w", err)
	}
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	ui := opts.UI
	fps := ui.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	m := model{
		timeline:      deck.NewTimeline(),
		feed:          &feed{deck: opts.Deck},
		log:           log,
		keys:          defaultKeyMap(),
		help:          help.New(),
		prefW:         orDefault(ui.CardWidth, defaultCardWidth),
		prefH:         orDefault(ui.CardHeight, defaultCardHeight),
		frameInterval: time.Second / time.Duration(fps),
	}
	m.stack = deck.New(opts.Stack, deck.NewSurface(0, 0), m.timeline)
	m.stack.SetLogger(log.WithName("stack"))
	m.stack.SetSource(opts.Deck)
	m.stack.SetSubscriber(deck.Subscribers{m.feed.subscriber(), opts.Subscriber})
	m.stack.Reload()
	return m, nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case frameMsg:
		if msg.seq != m.frameSeq {
			return m, nil
		}
		m.ticking = false
		dt := msg.at.Sub(m.lastFrame)
		if m.lastFrame.IsZero() || dt <= 0 || dt > 4*m.frameInterval {
			dt = m.frameInterval
		}
		m.lastFrame = msg.at
		m.timeline.Advance(dt)
		if m.timeline.Active() {
			return m, m.nextFrame()
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.startFrames()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Nope):
			m.stack.Swipe(deck.Left)
		case key.Matches(msg, m.keys.Like):
			m.stack.Swipe(deck.Right)
		case key.Matches(msg, m.keys.Flip):
			if front := m.stack.Front(); front != nil {
				g := front.Gesture()
				if g.PointerDown(deck.Vec2{}) {
					g.PointerUp(deck.Vec2{})
				}
			}
		case key.Matches(msg, m.keys.Reload):
			m.pressed = nil
			m.stack.Reload()
		case key.Matches(msg, m.keys.Endless):
			cfg := m.stack.Config()
			cfg.Endless = !cfg.Endless
			m.stack.SetConfig(cfg)
			m.pressed = nil
			m.stack.Reload()
			m.log.V(1).Info("toggled endless", "endless", cfg.Endless)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
		}
		return m, m.startFrames()
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	p := deck.Vec2{X: float64(msg.X), Y: float64(msg.Y)}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		front := m.stack.Front()
		if front == nil || !m.geometry().bounds(front).contains(msg.X, msg.Y) {
			return
		}
		if front.Gesture().PointerDown(p) {
			m.pressed = front
		}
	case tea.MouseActionMotion:
		if m.pressed != nil {
			m.pressed.Gesture().PointerMove(p)
		}
	case tea.MouseActionRelease:
		if c := m.pressed; c != nil {
			m.pressed = nil
			c.Gesture().PointerUp(p)
		}
	}
}

// startFrames begins the frame loop if animations are pending and no loop is
// running.
func (m *model) startFrames() tea.Cmd {
	if m.ticking || !m.timeline.Active() {
		return nil
	}
	m.lastFrame = time.Time{}
	return m.nextFrame()
}

func (m *model) nextFrame() tea.Cmd {
	m.ticking = true
	m.frameSeq++
	seq := m.frameSeq
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg { return frameMsg{seq: seq, at: t} })
}

func (m *model) resize() {
	m.help.Width = m.width
	m.stack.Surface().Resize(float64(m.width), float64(m.surfaceHeight()))
}

func (m model) footerHeight() int {
	return 1 + lipgloss.Height(m.help.View(m.keys))
}

func (m model) surfaceHeight() int {
	return max(0, m.height-m.footerHeight())
}

func (m model) geometry() geometry {
	return newGeometry(m.width, m.surfaceHeight(), m.stack.Config(), m.prefW, m.prefH)
}

func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	return strings.Join([]string{m.paint().render(), m.statusLine(), m.help.View(m.keys)}, "\n")
}

// paint composes the surface's cards back to front.
func (m model) paint() *canvas {
	h := m.surfaceHeight()
	bg := cellStyle{bg: paletteSurfaceBg.pick()}
	cv := newCanvas(m.width, h, bg)
	g := m.geometry()
	cards := m.stack.Surface().Cards()
	for _, c := range cards {
		drawCard(cv, g, c)
	}
	if len(cards) == 0 && h > 0 {
		msg := "No cards. Press r to reload."
		if m.stack.TotalCount() == 0 {
			msg = "This deck is empty."
		}
		x := max(0, (m.width-lipgloss.Width(msg))/2)
		cv.text(x, h/2, msg, cellStyle{fg: paletteMuted.pick(), bg: bg.bg})
	}
	return cv
}

func (m model) statusLine() string {
	total := m.stack.TotalCount()
	mode := "finite"
	if m.stack.Config().Endless {
		mode = "endless"
	}
	pos := fmt.Sprintf("%d/%d", min(m.stack.CurrentIndex()+1, total), total)
	parts := []string{
		lipgloss.NewStyle().Bold(true).Render(m.feed.deck.Name),
		pos,
		mode,
		lipgloss.NewStyle().Foreground(paletteLike.adaptive()).Render(fmt.Sprintf("%d liked", m.feed.liked)),
		lipgloss.NewStyle().Foreground(paletteNope.adaptive()).Render(fmt.Sprintf("%d noped", m.feed.noped)),
	}
	if m.feed.last != "" {
		parts = append(parts, styleMuted().Render(m.feed.last))
	}
	return ansi.Truncate(strings.Join(parts, glyphSep()), m.width, glyphEllipsis())
}
