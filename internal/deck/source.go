package deck

// ContentSource supplies the stack's cards. Card usually fills a card obtained
// from Stack.DequeueReusableCard; returning nil makes the stack use an empty
// card for that index.
type ContentSource interface {
	Count(s *Stack) int
	Card(s *Stack, index int) *Card
}

// BackContentSource is optionally implemented by a ContentSource to give cards
// a back face.
type BackContentSource interface {
	BackContent(s *Stack, index int) Content
}

// Direction is the side a card was swiped to.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// Sign is -1 for Left and +1 for Right.
func (d Direction) Sign() float64 {
	if d == Right {
		return 1
	}
	return -1
}

// DirectionOf returns Right for positive offsets and Left otherwise.
func DirectionOf(x float64) Direction {
	if x > 0 {
		return Right
	}
	return Left
}

// Subscriber receives stack lifecycle events. Indices are content indices.
// Use Callbacks when only a few events matter.
type Subscriber interface {
	OnBeginDrag(index int)
	OnDrag(index int, translation Vec2)
	OnCancelSwipe(index int)
	OnWillSwipe(index int, dir Direction)
	OnDidSwipe(index int, dir Direction)
	OnTap(index int)
	OnRanOutOfCards()
	OnReloadComplete()
}

// Callbacks is a Subscriber built from optional funcs; nil fields are no-ops.
type Callbacks struct {
	BeginDrag      func(index int)
	Drag           func(index int, translation Vec2)
	CancelSwipe    func(index int)
	WillSwipe      func(index int, dir Direction)
	DidSwipe       func(index int, dir Direction)
	Tap            func(index int)
	RanOutOfCards  func()
	ReloadComplete func()
}

func (c Callbacks) OnBeginDrag(index int) {
	if c.BeginDrag != nil {
		c.BeginDrag(index)
	}
}

func (c Callbacks) OnDrag(index int, translation Vec2) {
	if c.Drag != nil {
		c.Drag(index, translation)
	}
}

func (c Callbacks) OnCancelSwipe(index int) {
	if c.CancelSwipe != nil {
		c.CancelSwipe(index)
	}
}

func (c Callbacks) OnWillSwipe(index int, dir Direction) {
	if c.WillSwipe != nil {
		c.WillSwipe(index, dir)
	}
}

func (c Callbacks) OnDidSwipe(index int, dir Direction) {
	if c.DidSwipe != nil {
		c.DidSwipe(index, dir)
	}
}

func (c Callbacks) OnTap(index int) {
	if c.Tap != nil {
		c.Tap(index)
	}
}

func (c Callbacks) OnRanOutOfCards() {
	if c.RanOutOfCards != nil {
		c.RanOutOfCards()
	}
}

func (c Callbacks) OnReloadComplete() {
	if c.ReloadComplete != nil {
		c.ReloadComplete()
	}
}

// Subscribers fans every event out to each non-nil subscriber in order.
type Subscribers []Subscriber

func (ss Subscribers) OnBeginDrag(index int) {
	for _, s := range ss {
		if s != nil {
			s.OnBeginDrag(index)
		}
	}
}

func (ss Subscribers) OnDrag(index int, translation Vec2) {
	for _, s := range ss {
		if s != nil {
			s.OnDrag(index, translation)
		}
	}
}

func (ss Subscribers) OnCancelSwipe(index int) {
	for _, s := range ss {
		if s != nil {
			s.OnCancelSwipe(index)
		}
	}
}

func (ss Subscribers) OnWillSwipe(index int, dir Direction) {
	for _, s := range ss {
		if s != nil {
			s.OnWillSwipe(index, dir)
		}
	}
}

func (ss Subscribers) OnDidSwipe(index int, dir Direction) {
	for _, s := range ss {
		if s != nil {
			s.OnDidSwipe(index, dir)
		}
	}
}

func (ss Subscribers) OnTap(index int) {
	for _, s := range ss {
		if s != nil {
			s.OnTap(index)
		}
	}
}

func (ss Subscribers) OnRanOutOfCards() {
	for _, s := range ss {
		if s != nil {
			s.OnRanOutOfCards()
		}
	}
}

func (ss Subscribers) OnReloadComplete() {
	for _, s := range ss {
		if s != nil {
			s.OnReloadComplete()
		}
	}
}
