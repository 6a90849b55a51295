package deck

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReload_FiniteWindowLength(t *testing.T) {
	for n := 0; n <= 6; n++ {
		for k := 1; k <= 4; k++ {
			s, _, _ := newTestStack(t, n, finiteConfig(k))
			if got, want := len(s.Window()), min(k, n); got != want {
				t.Fatalf("n=%d k=%d: expected window length %d, got %d", n, k, want, got)
			}
			if s.CurrentIndex() != 0 {
				t.Fatalf("n=%d k=%d: expected index 0 after reload, got %d", n, k, s.CurrentIndex())
			}
		}
	}
}

func TestReload_EndlessFillsWindowEvenWithFewCards(t *testing.T) {
	s, _, _ := newTestStack(t, 2, endlessConfig(3))
	if diff := cmp.Diff([]int{0, 1, 0}, windowIndices(s)); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
}

func TestReload_OnlyFrontIsInteractive(t *testing.T) {
	s, _, _ := newTestStack(t, 5, finiteConfig(3))
	for i, c := range s.Window() {
		if c.Interactive != (i == 0) {
			t.Fatalf("card at depth %d: interactive=%v", i, c.Interactive)
		}
	}
}

func TestReload_AttachesBackToFront(t *testing.T) {
	s, _, _ := newTestStack(t, 5, finiteConfig(3))
	win := s.Window()
	got := s.Surface().Cards()
	want := []*Card{win[2], win[1], win[0]}
	if len(got) != len(want) {
		t.Fatalf("expected %d attached cards, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("surface order[%d]: expected card %d, got card %d", i, want[i].ID(), got[i].ID())
		}
	}
}

func TestReload_EmitsReloadComplete(t *testing.T) {
	s, _, rec := newTestStack(t, 3, finiteConfig(2))
	s.Reload()
	if diff := cmp.Diff([]string{"reload"}, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestReload_RecyclesWindowCards(t *testing.T) {
	s, _, _ := newTestStack(t, 5, finiteConfig(3))
	ids := map[int]bool{}
	for _, c := range s.Window() {
		ids[c.ID()] = true
	}
	s.Reload()
	if s.PoolSize() != 0 {
		t.Fatalf("expected reload to reuse every pooled card, pool=%d", s.PoolSize())
	}
	for _, c := range s.Window() {
		if !ids[c.ID()] {
			t.Fatalf("expected reload to reuse card ids %v, got new card %d", ids, c.ID())
		}
	}
	if s.Surface().Len() != 3 {
		t.Fatalf("expected 3 attached cards after reload, got %d", s.Surface().Len())
	}
}

func TestScenario_FiniteFiveCardsTwoVisible(t *testing.T) {
	s, tl, rec := newTestStack(t, 5, finiteConfig(2))
	if diff := cmp.Diff([]int{0, 1}, windowIndices(s)); diff != "" {
		t.Fatalf("initial window mismatch (-want +got):\n%s", diff)
	}
	front := s.Front()

	g := front.Gesture()
	if !g.Begin() {
		t.Fatalf("expected drag to begin on the front card")
	}
	g.Move(Vec2{X: 80})
	g.End(Vec2{X: 150})

	if diff := cmp.Diff([]string{"begin 0", "drag 0 80,0", "will 0 right"}, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, windowIndices(s)); diff != "" {
		t.Fatalf("window after will-swipe mismatch (-want +got):\n%s", diff)
	}
	if s.CurrentIndex() != 0 {
		t.Fatalf("expected index to stay 0 until the fly-off completes, got %d", s.CurrentIndex())
	}
	if !s.Surface().Contains(front) {
		t.Fatalf("expected the swiped card to stay attached while flying off")
	}

	tl.Flush(10)

	if got := rec.events[len(rec.events)-1]; got != "did 0 right" {
		t.Fatalf("expected did-swipe last, got %q", got)
	}
	if s.CurrentIndex() != 1 {
		t.Fatalf("expected index 1, got %d", s.CurrentIndex())
	}
	if s.Surface().Contains(front) {
		t.Fatalf("expected swiped card to be detached")
	}
	if s.PoolSize() != 1 {
		t.Fatalf("expected swiped card in the pool, pool=%d", s.PoolSize())
	}
	if front.Index != -1 || front.Front != nil {
		t.Fatalf("expected pooled card to be cleared, got index=%d front=%v", front.Index, front.Front)
	}
}

func TestEndless_SwipeAdvancesModulo(t *testing.T) {
	const total = 3
	s, tl, _ := newTestStack(t, total, endlessConfig(2))
	want := 0
	for i := 0; i < 7; i++ {
		if !s.Swipe(Right) {
			t.Fatalf("swipe %d: expected commit", i)
		}
		tl.Flush(10)
		want = (want + 1) % total
		if s.CurrentIndex() != want {
			t.Fatalf("swipe %d: expected index %d, got %d", i, want, s.CurrentIndex())
		}
		if got := s.Front().Index; got != want {
			t.Fatalf("swipe %d: expected front content %d, got %d", i, want, got)
		}
		if len(s.Window()) != 2 {
			t.Fatalf("swipe %d: expected full window, got %v", i, windowIndices(s))
		}
	}
}

func TestEndless_SingleCardNeverRunsOut(t *testing.T) {
	s, tl, rec := newTestStack(t, 1, endlessConfig(3))
	for i := 0; i < 5; i++ {
		s.Swipe(Left)
		tl.Flush(10)
		for _, idx := range windowIndices(s) {
			if idx != 0 {
				t.Fatalf("expected every card to show content 0, got %v", windowIndices(s))
			}
		}
		if s.CurrentIndex() != 0 {
			t.Fatalf("expected index 0, got %d", s.CurrentIndex())
		}
	}
	if rec.ranOut != 0 {
		t.Fatalf("expected no ran-out notification in endless mode")
	}
}

func TestFinite_RunsOutExactlyOnce(t *testing.T) {
	const total = 4
	s, tl, rec := newTestStack(t, total, finiteConfig(3))
	for i := 0; i < total; i++ {
		if !s.Swipe(Right) {
			t.Fatalf("swipe %d: expected commit", i)
		}
		tl.Flush(10)
	}
	if rec.ranOut != 1 {
		t.Fatalf("expected ran-out exactly once, got %d", rec.ranOut)
	}
	if len(s.Window()) != 0 || !s.Exhausted() {
		t.Fatalf("expected empty exhausted stack, window=%v", windowIndices(s))
	}
	if s.Swipe(Right) {
		t.Fatalf("expected swipe on an exhausted stack to fail")
	}
	tl.Flush(10)
	if rec.ranOut != 1 {
		t.Fatalf("expected no further ran-out notifications, got %d", rec.ranOut)
	}

	s.Reload()
	if diff := cmp.Diff([]int{0, 1, 2}, windowIndices(s)); diff != "" {
		t.Fatalf("window after reload mismatch (-want +got):\n%s", diff)
	}
}

func TestFinite_NeverBuildsCardsPastTotal(t *testing.T) {
	s, tl, _ := newTestStack(t, 3, finiteConfig(2))
	s.Swipe(Left)
	tl.Flush(10)
	s.Swipe(Left)
	tl.Flush(10)
	if diff := cmp.Diff([]int{2}, windowIndices(s)); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
}

func TestSwipe_WhileAnotherIsFlyingOff(t *testing.T) {
	s, tl, rec := newTestStack(t, 6, finiteConfig(2))
	s.Swipe(Right)
	s.Swipe(Left)
	if diff := cmp.Diff([]int{2, 3}, windowIndices(s)); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	tl.Flush(10)
	want := []string{"will 0 right", "will 1 left", "did 0 right", "did 1 left"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if s.CurrentIndex() != 2 || s.InFlight() != 0 {
		t.Fatalf("expected index 2 with nothing in flight, got %d/%d", s.CurrentIndex(), s.InFlight())
	}
}

func TestLayout_DepthTransforms(t *testing.T) {
	cfg := finiteConfig(3)
	cfg.XCardSpacing = 10
	cfg.YCardSpacing = 5
	cfg.ScaleFactor = 0.1
	s, _, _ := newTestStack(t, 5, cfg)
	for i, c := range s.Window() {
		lvl := float64(i)
		want := Transform{TX: 10 * lvl, TY: 5 * lvl, Scale: 1 - 0.1*lvl}
		if !approx(c.Transform.TX, want.TX) || !approx(c.Transform.TY, want.TY) || !approx(c.Transform.Scale, want.Scale) {
			t.Fatalf("depth %d: expected %+v, got %+v", i, want, c.Transform)
		}
	}
}

func TestLayout_FreshBackCardSnapsOthersAnimate(t *testing.T) {
	cfg := finiteConfig(3)
	cfg.XCardSpacing = 10
	cfg.ScaleFactor = 0.1
	s, tl, _ := newTestStack(t, 5, cfg)
	s.Swipe(Right)

	win := s.Window()
	fresh := win[2]
	if fresh.Index != 3 {
		t.Fatalf("expected content 3 at the back, got %d", fresh.Index)
	}
	if tl.Animating(fresh) {
		t.Fatalf("expected the fresh back card not to animate")
	}
	if !approx(fresh.Transform.TX, 20) || !approx(fresh.Transform.Scale, 0.8) {
		t.Fatalf("expected fresh card at depth 2 immediately, got %+v", fresh.Transform)
	}
	if !tl.Animating(win[0]) || !tl.Animating(win[1]) {
		t.Fatalf("expected promoted cards to animate")
	}
	if !approx(win[0].Transform.TX, 10) {
		t.Fatalf("expected promoted card to start from its old depth, got %+v", win[0].Transform)
	}
	if s.Surface().Cards()[0] != fresh {
		t.Fatalf("expected fresh card attached at the back")
	}

	tl.Flush(10)
	if !win[0].Transform.IsIdentity() {
		t.Fatalf("expected new front card at rest, got %+v", win[0].Transform)
	}
}

func TestDequeueReusableCard_ReturnsJustPooledCardReset(t *testing.T) {
	cfg := finiteConfig(2)
	cfg.SwipeThreshold = 40
	cfg.RotationMax = 0.3
	cfg.OpacityRate = 0.2
	cfg.AnimationDuration = 0
	s, tl, _ := newTestStack(t, 5, cfg)
	swiped := s.Front()
	s.Swipe(Right)
	tl.Flush(10)

	got := s.DequeueReusableCard()
	if got != swiped {
		t.Fatalf("expected the just-pooled card %d, got %d", swiped.ID(), got.ID())
	}
	if !got.Transform.IsIdentity() || got.Opacity != 1 || got.Interactive {
		t.Fatalf("expected rest pose, got %+v opacity=%v interactive=%v", got.Transform, got.Opacity, got.Interactive)
	}
	if got.SwipeThreshold != DefaultSwipeThreshold || got.RotationMax != DefaultRotationMax ||
		got.AnimationDuration != DefaultAnimationDuration || got.OpacityRate != DefaultOpacityRate {
		t.Fatalf("expected default policy fields, got %+v", got)
	}
	if len(got.Gesture().listeners) != 0 || got.Gesture().Phase() != PhaseIdle {
		t.Fatalf("expected torn down gesture controller")
	}
	if got.Front != nil || got.Back != nil || got.Index != -1 {
		t.Fatalf("expected cleared content")
	}
}

func TestReload_DuringFlyOffDropsStaleCompletion(t *testing.T) {
	s, tl, rec := newTestStack(t, 5, finiteConfig(2))
	flying := s.Front()
	s.Swipe(Right)
	s.Reload()
	rec.reset()

	tl.Flush(10)

	if len(rec.events) != 0 {
		t.Fatalf("expected no events from the stale completion, got %v", rec.events)
	}
	if s.CurrentIndex() != 0 {
		t.Fatalf("expected index to stay 0, got %d", s.CurrentIndex())
	}
	if s.Surface().Contains(flying) {
		t.Fatalf("expected stale card detached")
	}
	for _, c := range s.Window() {
		if c == flying {
			t.Fatalf("stale card must not be in the window")
		}
	}
	if diff := cmp.Diff([]int{0, 1}, windowIndices(s)); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	if s.PoolSize() != 1 {
		t.Fatalf("expected stale card pooled, pool=%d", s.PoolSize())
	}
}

func TestReload_FromDidSwipeStartsOver(t *testing.T) {
	s, tl, rec := newTestStack(t, 5, finiteConfig(2))
	flying := s.Front()
	gen := s.Generation()
	reloaded := false
	sub := rec.subscriber().(Callbacks)
	sub.DidSwipe = func(i int, d Direction) {
		rec.add("did %d %s", i, d)
		if !reloaded {
			reloaded = true
			s.Reload()
		}
	}
	s.SetSubscriber(sub)

	s.Swipe(Right)
	tl.Flush(64)

	if diff := cmp.Diff([]string{"will 0 right", "did 0 right", "reload"}, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if s.Generation() != gen+1 {
		t.Fatalf("expected one reload, generation %d -> %d", gen, s.Generation())
	}
	if s.CurrentIndex() != 0 || s.InFlight() != 0 {
		t.Fatalf("expected fresh index state, cur=%d inFlight=%d", s.CurrentIndex(), s.InFlight())
	}
	if diff := cmp.Diff([]int{0, 1}, windowIndices(s)); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	if s.Surface().Contains(flying) || s.Surface().Len() != 2 {
		t.Fatalf("expected only the window on the surface, len=%d", s.Surface().Len())
	}
	if s.PoolSize() != 1 {
		t.Fatalf("expected swiped card pooled, pool=%d", s.PoolSize())
	}

	rec.reset()
	s.Swipe(Left)
	tl.Flush(64)
	if s.CurrentIndex() != 1 {
		t.Fatalf("expected next swipe to advance normally, cur=%d", s.CurrentIndex())
	}
	if diff := cmp.Diff([]int{1, 2}, windowIndices(s)); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
}

func TestReload_FromWillSwipeAbandonsSwipe(t *testing.T) {
	s, tl, rec := newTestStack(t, 5, finiteConfig(2))
	gen := s.Generation()
	reloaded := false
	sub := rec.subscriber().(Callbacks)
	sub.WillSwipe = func(i int, d Direction) {
		rec.add("will %d %s", i, d)
		if !reloaded {
			reloaded = true
			s.Reload()
		}
	}
	s.SetSubscriber(sub)

	s.Swipe(Right)
	tl.Flush(64)

	if diff := cmp.Diff([]string{"will 0 right", "reload"}, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if s.Generation() != gen+1 {
		t.Fatalf("expected one reload, generation %d -> %d", gen, s.Generation())
	}
	if diff := cmp.Diff([]int{0, 1}, windowIndices(s)); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	if s.CurrentIndex() != 0 || s.InFlight() != 0 {
		t.Fatalf("expected fresh index state, cur=%d inFlight=%d", s.CurrentIndex(), s.InFlight())
	}
	if s.Surface().Len() != 2 || s.PoolSize() != 0 {
		t.Fatalf("expected every card in the window, surface=%d pool=%d", s.Surface().Len(), s.PoolSize())
	}
	for i, c := range s.Window() {
		if !s.Surface().Contains(c) {
			t.Fatalf("window card %d not on the surface", i)
		}
		if c.Gesture().Phase() != PhaseIdle {
			t.Fatalf("window card %d left in %s", i, c.Gesture().Phase())
		}
	}
	if !s.Front().Interactive {
		t.Fatalf("expected the new front card to take input")
	}

	rec.reset()
	s.Swipe(Right)
	tl.Flush(64)
	if diff := cmp.Diff([]string{"will 0 right", "did 0 right"}, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if s.CurrentIndex() != 1 {
		t.Fatalf("expected next swipe to advance normally, cur=%d", s.CurrentIndex())
	}
}

func TestTap_FlipsCardWithBackContent(t *testing.T) {
	tl := NewTimeline()
	s := New(finiteConfig(2), NewSurface(400, 600), tl)
	s.SetSource(&backSource{countingSource{n: 3}})
	rec := &recorder{}
	s.SetSubscriber(rec.subscriber())
	s.Reload()
	rec.reset()

	front := s.Front()
	if front.Back == nil || front.Back.Title() != "back 0" {
		t.Fatalf("expected back content from the source, got %v", front.Back)
	}
	g := front.Gesture()
	g.PointerDown(Vec2{X: 5, Y: 5})
	g.PointerUp(Vec2{X: 5, Y: 5})
	if !front.ShowingBack || front.Face().Title() != "back 0" {
		t.Fatalf("expected tap to flip the card")
	}
	if diff := cmp.Diff([]string{"tap 0"}, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestStack_WithoutSourceIsInert(t *testing.T) {
	s := New(DefaultConfig(), nil, NewTimeline())
	rec := &recorder{}
	s.SetSubscriber(rec.subscriber())
	s.Reload()
	if len(s.Window()) != 0 || s.Front() != nil {
		t.Fatalf("expected empty window")
	}
	if s.Swipe(Right) {
		t.Fatalf("expected swipe to be a no-op")
	}
	if s.Exhausted() {
		t.Fatalf("an empty stack is idle, not exhausted")
	}
	if diff := cmp.Diff([]string{"reload"}, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

type nilCardSource struct{ n int }

func (s nilCardSource) Count(*Stack) int        { return s.n }
func (s nilCardSource) Card(*Stack, int) *Card { return nil }

func TestStack_FallsBackToEmptyCard(t *testing.T) {
	s := New(finiteConfig(2), nil, nil)
	s.SetSource(nilCardSource{n: 3})
	s.Reload()
	if diff := cmp.Diff([]int{0, 1}, windowIndices(s)); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	if s.Front().Front != nil {
		t.Fatalf("expected an empty card")
	}
}

func TestStack_WithoutAnimatorCompletesSynchronously(t *testing.T) {
	s := New(finiteConfig(2), NewSurface(100, 100), nil)
	s.SetSource(&countingSource{n: 3})
	s.Reload()
	s.Swipe(Left)
	if s.CurrentIndex() != 1 {
		t.Fatalf("expected immediate completion, got index %d", s.CurrentIndex())
	}
}
