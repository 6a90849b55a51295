package deck

// Surface is the display surface cards are attached to. Cards are kept
// back-to-front: later cards are drawn over earlier ones, so depth order
// follows attachment order.
type Surface struct {
	Width  float64
	Height float64

	cards []*Card
}

func NewSurface(width, height float64) *Surface {
	return &Surface{Width: width, Height: height}
}

// Resize updates the surface bounds.
func (s *Surface) Resize(width, height float64) {
	s.Width = width
	s.Height = height
}

// AddOnTop attaches c above every attached card.
func (s *Surface) AddOnTop(c *Card) {
	s.Remove(c)
	s.cards = append(s.cards, c)
}

// InsertAtBack attaches c below every attached card.
func (s *Surface) InsertAtBack(c *Card) {
	s.Remove(c)
	s.cards = append([]*Card{c}, s.cards...)
}

// Remove detaches c. Detaching a card that isn't attached is a no-op.
func (s *Surface) Remove(c *Card) {
	for i, x := range s.cards {
		if x == c {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			return
		}
	}
}

func (s *Surface) Contains(c *Card) bool {
	for _, x := range s.cards {
		if x == c {
			return true
		}
	}
	return false
}

// Cards returns the attached cards back-to-front.
func (s *Surface) Cards() []*Card {
	out := make([]*Card, len(s.cards))
	copy(out, s.cards)
	return out
}

func (s *Surface) Len() int { return len(s.cards) }
