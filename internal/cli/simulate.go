package cli

import (
	"fmt"
	"strconv"
	"strings"

	"swipedeck/internal/deck"

	"github.com/spf13/cobra"
)

// A step is one scripted gesture:
//
//	r, l      drag right/left well past the threshold
//	r:N, l:N  drag N cells and release (inside the dead zone this is a tap)
//	t         tap (press and release in place)
//	reload    reload the stack
type step struct {
	raw    string
	kind   string
	dir    deck.Direction
	dist   float64
	hasLen bool
}

func parseSteps(s string) ([]step, error) {
	var out []step
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		st := step{raw: tok}
		head, arg, hasArg := strings.Cut(tok, ":")
		switch strings.ToLower(head) {
		case "r", "right":
			st.kind, st.dir = "drag", deck.Right
		case "l", "left":
			st.kind, st.dir = "drag", deck.Left
		case "t", "tap":
			st.kind = "tap"
		case "reload":
			st.kind = "reload"
		default:
			return nil, fmt.Errorf("unknown step %q", tok)
		}
		if hasArg {
			if st.kind != "drag" {
				return nil, fmt.Errorf("step %q takes no distance", tok)
			}
			d, err := strconv.ParseFloat(arg, 64)
			if err != nil || d < 0 {
				return nil, fmt.Errorf("step %q: bad distance", tok)
			}
			st.dist, st.hasLen = d, true
		}
		out = append(out, st)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no steps")
	}
	return out, nil
}

type simEvent struct {
	Step      int    `json:"step"`
	Event     string `json:"event"`
	Index     int    `json:"index"`
	Direction string `json:"direction,omitempty"`
	Title     string `json:"title,omitempty"`
}

type simResult struct {
	Deck         string     `json:"deck"`
	Endless      bool       `json:"endless"`
	Events       []simEvent `json:"events"`
	CurrentIndex int        `json:"currentIndex"`
	Window       []int      `json:"window"`
	PoolSize     int        `json:"poolSize"`
}

func (r simResult) TableHeaders() []string { return []string{"STEP", "EVENT", "INDEX", "DIRECTION", "TITLE"} }

func (r simResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Events))
	for _, e := range r.Events {
		idx := ""
		if e.Index >= 0 {
			idx = strconv.Itoa(e.Index)
		}
		rows = append(rows, []string{strconv.Itoa(e.Step), e.Event, idx, e.Direction, e.Title})
	}
	return rows
}

// Simulated terminal size; swipe thresholds are in cells.
const (
	simWidth  = 80
	simHeight = 24
)

func newSimulateCmd(app *App, flags *stackFlags) *cobra.Command {
	var script string
	var record bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay scripted gestures against a stack and print the event trace",
		Example: strings.TrimSpace(`
  swipedeck simulate --swipes r,l,l:5,t --endless=false
  swipedeck simulate --swipes r,r,r --format table`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseSteps(script)
			if err != nil {
				return writeErr(cmd, err)
			}
			gc, cfg, err := effectiveConfig(cmd, flags)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := loadDeck(app, gc)
			if err != nil {
				return writeErr(cmd, err)
			}

			res := simResult{Deck: d.Name, Endless: cfg.Endless, Events: []simEvent{}}
			cur := 0
			add := func(event string, index int, dir string) {
				res.Events = append(res.Events, simEvent{Step: cur, Event: event, Index: index, Direction: dir, Title: d.Title(index)})
			}
			trace := deck.Callbacks{
				BeginDrag:      func(i int) { add("begin", i, "") },
				CancelSwipe:    func(i int) { add("cancel", i, "") },
				WillSwipe:      func(i int, dir deck.Direction) { add("will-swipe", i, dir.String()) },
				DidSwipe:       func(i int, dir deck.Direction) { add("did-swipe", i, dir.String()) },
				Tap:            func(i int) { add("tap", i, "") },
				RanOutOfCards:  func() { add("ran-out", -1, "") },
				ReloadComplete: func() { add("reload", -1, "") },
			}
			subs := deck.Subscribers{trace}
			if record {
				dl, err := openDecisionLog(cmd, app)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer dl.Close()
				subs = append(subs, dl.Recorder(d, app.log.WithName("decisions")))
			}

			tl := deck.NewTimeline()
			s := deck.New(cfg, deck.NewSurface(simWidth, simHeight), tl)
			s.SetLogger(app.log.WithName("stack"))
			s.SetSource(d)
			s.SetSubscriber(subs)
			s.Reload()

			for i, st := range steps {
				cur = i + 1
				if st.kind == "reload" {
					s.Reload()
					continue
				}
				front := s.Front()
				if front == nil {
					add("no-card", -1, "")
					continue
				}
				g := front.Gesture()
				origin := deck.Vec2{}
				if !g.PointerDown(origin) {
					add("refused", front.Index, "")
					continue
				}
				release := origin
				if st.kind == "drag" {
					dist := st.dist
					if !st.hasLen {
						dist = 2 * cfg.SwipeThreshold
					}
					release = deck.Vec2{X: st.dir.Sign() * dist}
					g.PointerMove(release)
				}
				g.PointerUp(release)
				tl.Flush(64)
			}

			res.CurrentIndex = s.CurrentIndex()
			res.PoolSize = s.PoolSize()
			res.Window = []int{}
			for _, c := range s.Window() {
				res.Window = append(res.Window, c.Index)
			}
			app.log.V(1).Info("simulated", "steps", len(steps), "events", len(res.Events))
			return writeOut(cmd, app, res)
		},
	}

	cmd.Flags().StringVar(&script, "swipes", "", "Comma-separated steps: r, l, r:N, l:N, t, reload")
	cmd.Flags().BoolVar(&record, "record", false, "Also record swipes in the decision log")
	_ = cmd.MarkFlagRequired("swipes")
	return cmd
}
