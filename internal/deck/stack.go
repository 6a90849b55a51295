package deck

import (
	"github.com/go-logr/logr"
)

// Stack is the card stack controller. It owns the visible window, the reuse
// pool and the index state; cards' gesture controllers report to it and it
// is the only thing that moves cards between the window and the pool.
//
// A Stack is not safe for concurrent use. Every method, and every animator
// completion, must run on the host's event loop.
type Stack struct {
	cfg        Config
	source     ContentSource
	subscriber Subscriber
	log        logr.Logger

	surface  *Surface
	animator Animator
	pool     ReusePool

	// window is front-to-back: window[0] is the only interactive card.
	window []*Card

	currentIndex int
	// inFlight counts committed swipes whose fly-off hasn't completed yet.
	inFlight int
	// generation is bumped by Reload; listeners attached in an older
	// generation no longer move the index.
	generation uint64
	nextCardID int
}

// New returns an empty stack drawing on surface and animating with animator.
// Call Reload once a content source is set.
func New(cfg Config, surface *Surface, animator Animator) *Stack {
	if surface == nil {
		surface = NewSurface(0, 0)
	}
	return &Stack{
		cfg:      cfg.Normalize(),
		surface:  surface,
		animator: animator,
		log:      logr.Discard(),
	}
}

// SetSource sets the content source. Call Reload to rebuild the window.
func (s *Stack) SetSource(src ContentSource) { s.source = src }

// SetSubscriber sets the receiver of swipe, tap and reload notifications.
func (s *Stack) SetSubscriber(sub Subscriber) { s.subscriber = sub }

// SetLogger sets the stack's logger; the default discards.
func (s *Stack) SetLogger(l logr.Logger) { s.log = l }

// SetConfig replaces the policy. Cards pick it up on the next Reload.
func (s *Stack) SetConfig(cfg Config) { s.cfg = cfg.Normalize() }

// Config returns the normalized policy in effect.
func (s *Stack) Config() Config { return s.cfg }

// Surface returns the surface the stack draws on.
func (s *Stack) Surface() *Surface { return s.surface }

// CurrentIndex is the content index of the front card once every in-flight
// swipe has completed.
func (s *Stack) CurrentIndex() int { return s.currentIndex }

// Generation counts reloads.
func (s *Stack) Generation() uint64 { return s.generation }

// PoolSize is the number of cards waiting in the reuse pool.
func (s *Stack) PoolSize() int { return s.pool.Len() }

// InFlight is the number of committed swipes still flying off.
func (s *Stack) InFlight() int { return s.inFlight }

// TotalCount asks the content source for the card count; 0 without a source.
func (s *Stack) TotalCount() int {
	if s.source == nil {
		return 0
	}
	n := s.source.Count(s)
	if n < 0 {
		return 0
	}
	return n
}

// Window returns the visible cards front-to-back.
func (s *Stack) Window() []*Card {
	out := make([]*Card, len(s.window))
	copy(out, s.window)
	return out
}

// Front returns the interactive card, or nil when the window is empty.
func (s *Stack) Front() *Card {
	if len(s.window) == 0 {
		return nil
	}
	return s.window[0]
}

// Exhausted reports whether a finite stack has swiped its last card.
func (s *Stack) Exhausted() bool {
	total := s.TotalCount()
	return !s.cfg.Endless && total > 0 && s.currentIndex >= total
}

// Reload recycles every visible card, rewinds to index 0 and rebuilds the
// window from the content source.
func (s *Stack) Reload() {
	for _, c := range s.window {
		s.surface.Remove(c)
		s.recycle(c)
	}
	s.window = nil
	s.currentIndex = 0
	s.inFlight = 0
	s.generation++

	s.buildWindow()
	s.log.V(1).Info("reloaded", "generation", s.generation, "total", s.TotalCount(), "window", len(s.window))
	s.notify().OnReloadComplete()
}

// DequeueReusableCard returns a pooled card reset for reuse, or a new card
// when the pool is empty.
func (s *Stack) DequeueReusableCard() *Card {
	if c, ok := s.pool.Dequeue(); ok {
		c.prepareForReuse()
		return c
	}
	s.nextCardID++
	return newCard(s.nextCardID)
}

// Swipe commits the front card in dir as if it had been dragged past the
// threshold.
func (s *Stack) Swipe(dir Direction) bool {
	front := s.Front()
	if front == nil {
		return false
	}
	return front.gesture.Commit(dir)
}

func (s *Stack) notify() Subscriber {
	if s.subscriber == nil {
		return Callbacks{}
	}
	return s.subscriber
}

func (s *Stack) buildWindow() {
	total := s.TotalCount()
	if total == 0 {
		return
	}
	n := s.cfg.MaxVisibleCards
	if !s.cfg.Endless {
		n = min(n, total-s.currentIndex)
	}
	for i := 0; i < n; i++ {
		idx := s.currentIndex + i
		if s.cfg.Endless {
			idx %= total
		}
		s.window = append(s.window, s.createCard(idx))
	}
	for i := len(s.window) - 1; i >= 0; i-- {
		s.surface.AddOnTop(s.window[i])
	}
	s.layout(false, nil)
}

func (s *Stack) createCard(index int) *Card {
	var c *Card
	if s.source != nil {
		c = s.source.Card(s, index)
	}
	if c == nil {
		c = s.DequeueReusableCard()
	}
	if c.gesture == nil {
		c.gesture = &GestureController{card: c}
		c.SetPose(RestPose())
		c.home = RestPose()
	}
	c.Index = index
	if c.Back == nil {
		if bs, ok := s.source.(BackContentSource); ok {
			c.Back = bs.BackContent(s, index)
		}
	}
	c.applyConfig(s.cfg)
	c.gesture.bind(s.animator, s.surface)
	c.gesture.Teardown()
	c.gesture.Listen(cardEvents{s: s, card: c, generation: s.generation})
	return c
}

// layout positions window cards by depth. When animated, every card except
// fresh (just inserted at the back, with no previous position) animates.
func (s *Stack) layout(animated bool, fresh *Card) {
	for i, c := range s.window {
		c.Interactive = i == 0
		level := float64(i)
		target := Pose{
			Transform: Transform{
				TX:    level * s.cfg.XCardSpacing,
				TY:    level * s.cfg.YCardSpacing,
				Scale: 1 - level*s.cfg.ScaleFactor,
			},
			Opacity: 1,
		}
		c.home = target
		if ph := c.gesture.phase; ph == PhaseDragging || ph == PhaseResetting {
			continue
		}
		if animated && c != fresh && s.animator != nil {
			s.animator.Animate(c, target, s.cfg.AnimationDuration, EaseInOut, nil)
			continue
		}
		if s.animator != nil {
			s.animator.Cancel(c)
		}
		c.SetPose(target)
	}
}

func (s *Stack) handleWillSwipe(card *Card, dir Direction) {
	generation := s.generation
	s.notify().OnWillSwipe(card.Index, dir)
	if generation != s.generation {
		// Reloaded from the callback: the card is already back in the pool
		// or in the new window.
		return
	}

	pos := -1
	for i, c := range s.window {
		if c == card {
			pos = i
			break
		}
	}
	if pos < 0 {
		s.log.Info("swiped card is not in the window", "card", card.ID())
		return
	}
	s.window = append(s.window[:pos], s.window[pos+1:]...)

	// The swiped card's logical position is currentIndex plus the swipes still
	// flying off ahead of it.
	next := s.currentIndex + s.inFlight + s.cfg.MaxVisibleCards
	s.inFlight++

	var fresh *Card
	if total := s.TotalCount(); total > 0 {
		if s.cfg.Endless {
			next %= total
		}
		if next < total {
			fresh = s.createCard(next)
			s.window = append(s.window, fresh)
			s.surface.InsertAtBack(fresh)
		}
	}
	s.layout(true, fresh)
}

func (s *Stack) handleDidSwipe(card *Card, dir Direction, generation uint64) {
	if generation != s.generation {
		s.log.V(1).Info("dropping swipe completion from before reload", "card", card.ID(), "generation", generation)
		s.surface.Remove(card)
		s.recycle(card)
		return
	}

	s.notify().OnDidSwipe(card.Index, dir)
	s.surface.Remove(card)
	s.recycle(card)
	if generation != s.generation {
		return
	}
	if s.inFlight > 0 {
		s.inFlight--
	}

	total := s.TotalCount()
	if s.cfg.Endless {
		if total > 0 {
			s.currentIndex = (s.currentIndex + 1) % total
		} else {
			s.currentIndex = 0
		}
		return
	}
	s.currentIndex++
	if s.currentIndex == total {
		s.log.V(1).Info("ran out of cards", "total", total)
		s.notify().OnRanOutOfCards()
	}
}

func (s *Stack) recycle(c *Card) {
	if s.animator != nil {
		s.animator.Cancel(c)
	}
	c.prepareForReuse()
	s.pool.Enqueue(c)
}

// cardEvents forwards one card's gesture events to its stack.
type cardEvents struct {
	s          *Stack
	card       *Card
	generation uint64
}

func (e cardEvents) stale() bool { return e.generation != e.s.generation }

func (e cardEvents) GestureBegan() {
	if !e.stale() {
		e.s.notify().OnBeginDrag(e.card.Index)
	}
}

func (e cardEvents) GestureMoved(t Vec2) {
	if !e.stale() {
		e.s.notify().OnDrag(e.card.Index, t)
	}
}

func (e cardEvents) GestureCancelled() {
	if !e.stale() {
		e.s.notify().OnCancelSwipe(e.card.Index)
	}
}

func (e cardEvents) GestureTapped() {
	if e.stale() {
		return
	}
	e.card.Flip()
	e.s.notify().OnTap(e.card.Index)
}

func (e cardEvents) WillSwipe(dir Direction) {
	if !e.stale() {
		e.s.handleWillSwipe(e.card, dir)
	}
}

func (e cardEvents) DidSwipe(dir Direction) {
	e.s.handleDidSwipe(e.card, dir, e.generation)
}
