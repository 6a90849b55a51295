package deck

// ReusePool holds detached cards waiting to be reused. It is unbounded and
// doesn't track identity: enqueuing a card that is already pooled is a caller
// error.
type ReusePool struct {
	cards []*Card
}

func (p *ReusePool) Enqueue(c *Card) {
	if c == nil {
		return
	}
	p.cards = append(p.cards, c)
}

// Dequeue pops the most recently enqueued card.
func (p *ReusePool) Dequeue() (*Card, bool) {
	n := len(p.cards)
	if n == 0 {
		return nil, false
	}
	c := p.cards[n-1]
	p.cards[n-1] = nil
	p.cards = p.cards[:n-1]
	return c, true
}

func (p *ReusePool) Len() int { return len(p.cards) }
