package deck

import "time"

// Content is what a card face displays.
type Content interface {
	Title() string
	Body() string
}

// Card is a single card of the stack. A card is either active (in the visible
// window or flying off) or pooled; the Stack is the only thing that moves it
// between the two.
type Card struct {
	id int

	// Index is the content index the card currently shows, -1 while pooled.
	Index int

	Front       Content
	Back        Content
	ShowingBack bool

	Transform   Transform
	Opacity     float64
	Interactive bool

	// home is the pose layout last assigned; drags start from and reset to it.
	home Pose

	SwipeThreshold    float64
	RotationMax       float64
	AnimationDuration time.Duration
	OpacityRate       float64
	DragDeadZone      float64

	gesture *GestureController
}

func newCard(id int) *Card {
	c := &Card{id: id}
	c.gesture = &GestureController{card: c}
	c.prepareForReuse()
	return c
}

// ID is stable for the lifetime of the card, across pool round trips.
func (c *Card) ID() int { return c.id }

// Gesture returns the card's gesture controller.
func (c *Card) Gesture() *GestureController { return c.gesture }

func (c *Card) Pose() Pose { return Pose{Transform: c.Transform, Opacity: c.Opacity} }

func (c *Card) SetPose(p Pose) {
	c.Transform = p.Transform
	c.Opacity = p.Opacity
}

// Face returns the content currently facing the viewer.
func (c *Card) Face() Content {
	if c.ShowingBack && c.Back != nil {
		return c.Back
	}
	return c.Front
}

// Flip toggles between front and back content. Cards without back content
// don't flip.
func (c *Card) Flip() bool {
	if c.Back == nil {
		return false
	}
	c.ShowingBack = !c.ShowingBack
	return true
}

func (c *Card) applyConfig(cfg Config) {
	c.SwipeThreshold = cfg.SwipeThreshold
	c.RotationMax = cfg.RotationMax
	c.AnimationDuration = cfg.AnimationDuration
	c.OpacityRate = cfg.OpacityRate
	c.DragDeadZone = cfg.DragDeadZone
}

// prepareForReuse clears content, pose, interactivity, policy fields and
// gesture listeners.
func (c *Card) prepareForReuse() {
	c.Index = -1
	c.Front = nil
	c.Back = nil
	c.ShowingBack = false
	c.SetPose(RestPose())
	c.home = RestPose()
	c.Interactive = false
	c.SwipeThreshold = DefaultSwipeThreshold
	c.RotationMax = DefaultRotationMax
	c.AnimationDuration = DefaultAnimationDuration
	c.OpacityRate = DefaultOpacityRate
	c.DragDeadZone = 0
	c.gesture.reset()
}
