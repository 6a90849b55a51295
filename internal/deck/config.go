package deck

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Config holds the stack policy values. The stack copies the swipe-related
// fields onto every card it configures, so each card's gesture controller
// reads them from its own card.
type Config struct {
	// Endless loops content indices modulo the card count. When false the stack
	// runs out once every card has been swiped.
	Endless bool `json:"endless"`

	// MaxVisibleCards is the depth of the visible window.
	MaxVisibleCards int `json:"maxVisibleCards"`

	// XCardSpacing and YCardSpacing offset each depth level.
	XCardSpacing float64 `json:"xCardSpacing"`
	YCardSpacing float64 `json:"yCardSpacing"`

	// ScaleFactor shrinks each depth level: level i is scaled by 1 - i*ScaleFactor.
	ScaleFactor float64 `json:"scaleFactor"`

	// SwipeThreshold is the horizontal drag distance past which a release commits.
	SwipeThreshold float64 `json:"swipeThreshold"`

	// RotationMax is the tilt in radians at full drag strength.
	RotationMax float64 `json:"rotationMax"`

	// AnimationDuration is used for layout, reset and fly-off animations.
	AnimationDuration time.Duration `json:"animationDuration"`

	// OpacityRate is how much the front card fades at full drag strength.
	OpacityRate float64 `json:"opacityRate"`

	// DragDeadZone is how far a pressed pointer must travel before a drag begins.
	// A release inside the dead zone is a tap.
	DragDeadZone float64 `json:"dragDeadZone"`
}

// Card-level policy defaults, restored on every card returned to the pool.
const (
	DefaultSwipeThreshold    = 100.0
	DefaultRotationMax       = 0.0
	DefaultAnimationDuration = 250 * time.Millisecond
	DefaultOpacityRate       = 0.0
)

func DefaultConfig() Config {
	return Config{
		Endless:           true,
		MaxVisibleCards:   3,
		ScaleFactor:       0.04,
		SwipeThreshold:    DefaultSwipeThreshold,
		RotationMax:       math.Pi / 10,
		AnimationDuration: DefaultAnimationDuration,
	}
}

// Validate reports the first invalid option.
func (c Config) Validate() error {
	switch {
	case c.MaxVisibleCards < 1:
		return fmt.Errorf("maxVisibleCards must be at least 1 (got %d)", c.MaxVisibleCards)
	case c.ScaleFactor < 0 || c.ScaleFactor*float64(c.MaxVisibleCards-1) >= 1:
		return fmt.Errorf("scaleFactor %.3f collapses cards at depth %d", c.ScaleFactor, c.MaxVisibleCards-1)
	case c.SwipeThreshold <= 0:
		return errors.New("swipeThreshold must be positive")
	case c.RotationMax < 0 || c.RotationMax > math.Pi/2:
		return fmt.Errorf("rotationMax must be within [0, pi/2] (got %.3f)", c.RotationMax)
	case c.AnimationDuration < 0:
		return errors.New("animationDuration must not be negative")
	case c.OpacityRate < 0 || c.OpacityRate > 1:
		return fmt.Errorf("opacityRate must be within [0, 1] (got %.3f)", c.OpacityRate)
	case c.DragDeadZone < 0:
		return errors.New("dragDeadZone must not be negative")
	}
	return nil
}

// Normalize returns c with out-of-range values pulled back to something usable.
func (c Config) Normalize() Config {
	if c.MaxVisibleCards < 1 {
		c.MaxVisibleCards = 1
	}
	if c.SwipeThreshold <= 0 {
		c.SwipeThreshold = DefaultSwipeThreshold
	}
	if c.AnimationDuration < 0 {
		c.AnimationDuration = 0
	}
	c.ScaleFactor = math.Max(c.ScaleFactor, 0)
	c.OpacityRate = clamp(c.OpacityRate, 0, 1)
	c.RotationMax = clamp(c.RotationMax, 0, math.Pi/2)
	c.DragDeadZone = math.Max(c.DragDeadZone, 0)
	return c
}
