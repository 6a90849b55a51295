package deck

import "time"

// Phase is the state of a card's gesture controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseCommitting
	PhaseResetting
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseCommitting:
		return "committing"
	case PhaseResetting:
		return "resetting"
	default:
		return "idle"
	}
}

// verticalDamping slows vertical drag movement so the card follows an arc.
const verticalDamping = 0.5

// flyOffFactor is how far past the surface width a committed card travels.
const flyOffFactor = 1.5

// GestureListener receives a gesture controller's events. Events flow from the
// card to whoever subscribed; the controller never holds its subscribers'
// state.
type GestureListener interface {
	GestureBegan()
	GestureMoved(translation Vec2)
	GestureCancelled()
	GestureTapped()
	WillSwipe(dir Direction)
	DidSwipe(dir Direction)
}

type listenerEntry struct {
	id uint32
	l  GestureListener
}

// Subscription removes a listener registered with GestureController.Listen.
type Subscription struct {
	g  *GestureController
	id uint32
}

// Cancel unregisters the listener. Cancelling twice is a no-op.
func (s Subscription) Cancel() {
	if s.g == nil {
		return
	}
	for i, e := range s.g.listeners {
		if e.id == s.id {
			copy(s.g.listeners[i:], s.g.listeners[i+1:])
			s.g.listeners[len(s.g.listeners)-1] = listenerEntry{}
			s.g.listeners = s.g.listeners[:len(s.g.listeners)-1]
			return
		}
	}
}

// GestureController turns one pointer's drag stream into drag progress and a
// terminal outcome for its card: a committed swipe or a reset back to the
// card's resting pose. It only ever mutates its own card.
//
// Policy (threshold, rotation, duration, opacity rate, dead zone) is read from
// the card on every event.
type GestureController struct {
	card     *Card
	animator Animator
	surface  *Surface

	phase       Phase
	origin      Pose
	translation Vec2

	pressed bool
	pressAt Vec2

	// epoch invalidates completions of animations started in an earlier
	// phase of this controller.
	epoch uint64

	listeners []listenerEntry
	nextID    uint32
}

func (g *GestureController) bind(a Animator, s *Surface) {
	g.animator = a
	g.surface = s
}

func (g *GestureController) Phase() Phase { return g.phase }

// Translation is the raw offset of the current (or last) drag.
func (g *GestureController) Translation() Vec2 { return g.translation }

// Listen registers l for this controller's events.
func (g *GestureController) Listen(l GestureListener) Subscription {
	g.nextID++
	g.listeners = append(g.listeners, listenerEntry{id: g.nextID, l: l})
	return Subscription{g: g, id: g.nextID}
}

// Teardown drops every listener.
func (g *GestureController) Teardown() {
	for i := range g.listeners {
		g.listeners[i] = listenerEntry{}
	}
	g.listeners = g.listeners[:0]
}

func (g *GestureController) emit(fn func(GestureListener)) {
	snapshot := make([]GestureListener, 0, len(g.listeners))
	for _, e := range g.listeners {
		snapshot = append(snapshot, e.l)
	}
	for _, l := range snapshot {
		fn(l)
	}
}

// Begin starts a drag. It fails on a non-interactive card or while a swipe is
// committing. Beginning during a reset interrupts it.
func (g *GestureController) Begin() bool {
	if !g.card.Interactive || g.phase == PhaseCommitting || g.phase == PhaseDragging {
		return false
	}
	g.epoch++
	if g.animator != nil {
		g.animator.Cancel(g.card)
	}
	g.origin = g.card.home
	g.translation = Vec2{}
	g.phase = PhaseDragging
	g.emit(func(l GestureListener) { l.GestureBegan() })
	return true
}

// Move applies a drag translation relative to where the drag started.
func (g *GestureController) Move(t Vec2) {
	if g.phase != PhaseDragging {
		return
	}
	g.apply(t)
	g.emit(func(l GestureListener) { l.GestureMoved(t) })
}

// End finishes the drag: past the threshold it commits, otherwise it resets.
func (g *GestureController) End(t Vec2) {
	if g.phase != PhaseDragging {
		return
	}
	g.apply(t)
	if abs(t.X) > g.card.SwipeThreshold {
		g.commit(DirectionOf(t.X))
		return
	}
	g.resetToOrigin()
}

// Cancel abandons an in-progress drag and resets the card.
func (g *GestureController) Cancel() {
	g.pressed = false
	if g.phase != PhaseDragging {
		return
	}
	g.resetToOrigin()
}

// Commit swipes the card without a drag, as if it had been dragged past the
// threshold in dir.
func (g *GestureController) Commit(dir Direction) bool {
	if !g.card.Interactive || g.phase == PhaseCommitting {
		return false
	}
	if g.phase != PhaseDragging {
		g.origin = g.card.home
	}
	g.pressed = false
	g.commit(dir)
	return true
}

// PointerDown records a press. A drag starts once the pointer leaves the dead
// zone; releasing before that is a tap.
func (g *GestureController) PointerDown(p Vec2) bool {
	if !g.card.Interactive || g.phase == PhaseCommitting {
		return false
	}
	g.pressed = true
	g.pressAt = p
	return true
}

func (g *GestureController) PointerMove(p Vec2) {
	if !g.pressed {
		return
	}
	d := p.Sub(g.pressAt)
	if g.phase != PhaseDragging {
		if d.Len() <= g.card.DragDeadZone || d.Len() == 0 {
			return
		}
		if !g.Begin() {
			g.pressed = false
			return
		}
	}
	g.Move(d)
}

func (g *GestureController) PointerUp(p Vec2) {
	if !g.pressed {
		return
	}
	g.pressed = false
	if g.phase == PhaseDragging {
		g.End(p.Sub(g.pressAt))
		return
	}
	if g.card.Interactive {
		g.emit(func(l GestureListener) { l.GestureTapped() })
	}
}

// Pressed reports whether a pointer is currently held on the card.
func (g *GestureController) Pressed() bool { return g.pressed }

// DragStrength is the clamped, signed drag progress in [-1, 1].
func (g *GestureController) DragStrength() float64 {
	return dragStrength(g.translation.X, g.card.SwipeThreshold)
}

func dragStrength(x, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	return clamp(x/(2*threshold), -1, 1)
}

func (g *GestureController) apply(t Vec2) {
	g.translation = t
	c := g.card
	strength := dragStrength(t.X, c.SwipeThreshold)
	tr := g.origin.Transform
	tr.TX += t.X
	tr.TY += t.Y * verticalDamping
	tr.Rotation = strength * c.RotationMax
	c.Transform = tr
	c.Opacity = 1 - c.OpacityRate*abs(strength)
}

func (g *GestureController) commit(dir Direction) {
	g.phase = PhaseCommitting
	g.card.Interactive = false
	g.epoch++
	epoch := g.epoch

	g.emit(func(l GestureListener) { l.WillSwipe(dir) })

	// The listener may have recycled the card.
	if g.epoch != epoch {
		return
	}

	target := g.card.Pose()
	target.Transform.TX = dir.Sign() * flyOffFactor * g.surfaceWidth()
	target.Transform.Rotation = dir.Sign() * g.card.RotationMax
	done := func() { g.finishSwipe(dir, epoch) }
	if g.animator == nil {
		g.card.SetPose(target)
		done()
		return
	}
	g.animator.Animate(g.card, target, g.duration(), EaseOut, done)
}

func (g *GestureController) finishSwipe(dir Direction, epoch uint64) {
	if g.epoch != epoch || g.phase != PhaseCommitting {
		return
	}
	g.epoch++
	g.emit(func(l GestureListener) { l.DidSwipe(dir) })
	g.Teardown()
	g.phase = PhaseIdle
}

func (g *GestureController) resetToOrigin() {
	g.phase = PhaseResetting
	g.epoch++
	epoch := g.epoch

	g.emit(func(l GestureListener) { l.GestureCancelled() })
	if g.epoch != epoch {
		return
	}

	target := Pose{Transform: g.origin.Transform, Opacity: 1}
	done := func() {
		if g.epoch == epoch && g.phase == PhaseResetting {
			g.phase = PhaseIdle
			g.translation = Vec2{}
		}
	}
	if g.animator == nil {
		g.card.SetPose(target)
		done()
		return
	}
	g.animator.Animate(g.card, target, g.duration(), Spring, done)
}

func (g *GestureController) surfaceWidth() float64 {
	if g.surface != nil && g.surface.Width > 0 {
		return g.surface.Width
	}
	return 2 * g.card.SwipeThreshold
}

func (g *GestureController) duration() time.Duration {
	if g.card.AnimationDuration < 0 {
		return 0
	}
	return g.card.AnimationDuration
}

// reset returns the controller to Idle with no listeners, invalidating any
// pending completion.
func (g *GestureController) reset() {
	g.epoch++
	g.phase = PhaseIdle
	g.origin = RestPose()
	g.translation = Vec2{}
	g.pressed = false
	g.pressAt = Vec2{}
	g.Teardown()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
