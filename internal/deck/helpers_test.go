package deck

import (
	"fmt"
	"math"
	"testing"
)

type textContent struct {
	title string
	body  string
}

func (t textContent) Title() string { return t.title }
func (t textContent) Body() string  { return t.body }

type countingSource struct {
	n     int
	backs bool
}

func (s *countingSource) Count(*Stack) int { return s.n }

func (s *countingSource) Card(st *Stack, index int) *Card {
	c := st.DequeueReusableCard()
	c.Front = textContent{title: fmt.Sprintf("card %d", index)}
	return c
}

type backSource struct{ countingSource }

func (s *backSource) BackContent(_ *Stack, index int) Content {
	return textContent{title: fmt.Sprintf("back %d", index)}
}

type recorder struct {
	events []string
	ranOut int
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) subscriber() Subscriber {
	return Callbacks{
		BeginDrag:      func(i int) { r.add("begin %d", i) },
		Drag:           func(i int, t Vec2) { r.add("drag %d %.0f,%.0f", i, t.X, t.Y) },
		CancelSwipe:    func(i int) { r.add("cancel %d", i) },
		WillSwipe:      func(i int, d Direction) { r.add("will %d %s", i, d) },
		DidSwipe:       func(i int, d Direction) { r.add("did %d %s", i, d) },
		Tap:            func(i int) { r.add("tap %d", i) },
		RanOutOfCards:  func() { r.ranOut++; r.add("out") },
		ReloadComplete: func() { r.add("reload") },
	}
}

func (r *recorder) reset() { r.events = nil }

func newTestStack(t *testing.T, n int, cfg Config) (*Stack, *Timeline, *recorder) {
	t.Helper()
	tl := NewTimeline()
	s := New(cfg, NewSurface(400, 600), tl)
	s.SetSource(&countingSource{n: n})
	rec := &recorder{}
	s.SetSubscriber(rec.subscriber())
	s.Reload()
	rec.reset()
	return s, tl, rec
}

func windowIndices(s *Stack) []int {
	out := []int{}
	for _, c := range s.Window() {
		out = append(out, c.Index)
	}
	return out
}

func finiteConfig(k int) Config {
	cfg := DefaultConfig()
	cfg.Endless = false
	cfg.MaxVisibleCards = k
	return cfg
}

func endlessConfig(k int) Config {
	cfg := DefaultConfig()
	cfg.Endless = true
	cfg.MaxVisibleCards = k
	return cfg
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }
