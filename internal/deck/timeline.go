package deck

import (
	"math"
	"time"
)

// Curve maps linear progress in [0,1] to eased progress. Curves must return 0 at 0
// and 1 at 1; values in between may overshoot.
type Curve func(t float64) float64

var (
	Linear Curve = func(t float64) float64 { return t }

	EaseOut Curve = func(t float64) float64 { return 1 - (1-t)*(1-t) }

	EaseInOut Curve = func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - math.Pow(-2*t+2, 2)/2
	}

	// Spring is an underdamped spring settling on 1 (damping ratio ~0.6).
	Spring Curve = func(t float64) float64 {
		if t >= 1 {
			return 1
		}
		return 1 - math.Exp(-6*t)*math.Cos(2.5*math.Pi*t)
	}
)

// Animator drives card pose animations. Completion callbacks are never invoked
// synchronously from Animate.
type Animator interface {
	Animate(c *Card, to Pose, d time.Duration, curve Curve, done func())
	Cancel(c *Card)
}

type tween struct {
	card    *Card
	from    Pose
	to      Pose
	d       time.Duration
	elapsed time.Duration
	curve   Curve
	done    func()
}

// Timeline is a frame-driven Animator. The host calls Advance from its event loop
// (one tick per frame); finished animations call their completion callbacks from
// inside Advance, after every running tween has been stepped.
//
// At most one tween runs per card. Starting a new one replaces the old tween
// from the card's current pose and drops the old completion.
type Timeline struct {
	tweens []*tween
}

func NewTimeline() *Timeline { return &Timeline{} }

func (tl *Timeline) Animate(c *Card, to Pose, d time.Duration, curve Curve, done func()) {
	if c == nil {
		return
	}
	if curve == nil {
		curve = Linear
	}
	tl.Cancel(c)
	tl.tweens = append(tl.tweens, &tween{
		card:  c,
		from:  c.Pose(),
		to:    to,
		d:     d,
		curve: curve,
		done:  done,
	})
}

// Cancel stops the running tween of c, if any, leaving c at its current pose.
func (tl *Timeline) Cancel(c *Card) {
	for i, tw := range tl.tweens {
		if tw.card == c {
			tl.tweens = append(tl.tweens[:i], tl.tweens[i+1:]...)
			return
		}
	}
}

// Active reports whether any tween is running.
func (tl *Timeline) Active() bool { return len(tl.tweens) > 0 }

// Animating reports whether c has a running tween.
func (tl *Timeline) Animating(c *Card) bool {
	for _, tw := range tl.tweens {
		if tw.card == c {
			return true
		}
	}
	return false
}

// Advance steps every tween by dt and then runs the completions of those that
// finished, in the order they were started.
func (tl *Timeline) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	var finished []func()
	kept := tl.tweens[:0]
	for _, tw := range tl.tweens {
		tw.elapsed += dt
		if tw.d <= 0 || tw.elapsed >= tw.d {
			tw.card.SetPose(tw.to)
			if tw.done != nil {
				finished = append(finished, tw.done)
			}
			continue
		}
		p := float64(tw.elapsed) / float64(tw.d)
		tw.card.SetPose(lerpPose(tw.from, tw.to, tw.curve(p)))
		kept = append(kept, tw)
	}
	for i := len(kept); i < len(tl.tweens); i++ {
		tl.tweens[i] = nil
	}
	tl.tweens = kept
	for _, fn := range finished {
		fn()
	}
}

// Flush runs every tween to completion, including tweens started by completions.
// maxRounds bounds runaway chains.
func (tl *Timeline) Flush(maxRounds int) {
	for i := 0; i < maxRounds && tl.Active(); i++ {
		var longest time.Duration
		for _, tw := range tl.tweens {
			if rest := tw.d - tw.elapsed; rest > longest {
				longest = rest
			}
		}
		tl.Advance(longest)
	}
}
