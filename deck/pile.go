package deck

import "math/rand"

// Piles manages the draw and discard piles of one session.
// The draw pile is ordered and consumed from the front; the discard pile is
// an unordered heap that only empties en masse when reshuffled into a fresh
// draw pile. Not safe for concurrent use; the game loop is the sole caller.
type Piles struct {
	rng     *rand.Rand
	draw    []Card
	discard []Card
}

// NewPiles creates an empty pile pair using the given randomness source.
func NewPiles(rng *rand.Rand) *Piles {
	return &Piles{rng: rng}
}

// Reset replaces both piles: cards become the new draw pile in shuffled
// order and the discard pile is emptied.
func (p *Piles) Reset(cards []Card) {
	p.draw = append(p.draw[:0:0], cards...)
	p.rng.Shuffle(len(p.draw), func(i, j int) {
		p.draw[i], p.draw[j] = p.draw[j], p.draw[i]
	})
	p.discard = p.discard[:0]
}

// EnsureAvailable reshuffles the discard pile into a new draw pile when the
// draw pile is empty. With both piles empty it leaves them empty.
func (p *Piles) EnsureAvailable() {
	if len(p.draw) > 0 || len(p.discard) == 0 {
		return
	}
	p.draw = append(p.draw, p.discard...)
	p.rng.Shuffle(len(p.draw), func(i, j int) {
		p.draw[i], p.draw[j] = p.draw[j], p.draw[i]
	})
	p.discard = p.discard[:0]
}

// TakeTop removes and returns the front card of the draw pile, reshuffling
// the discard pile first if needed. ok is false only when both piles are
// exhausted.
func (p *Piles) TakeTop() (Card, bool) {
	p.EnsureAvailable()
	if len(p.draw) == 0 {
		return Card{}, false
	}
	card := p.draw[0]
	p.draw = p.draw[1:]
	return card, true
}

// DealN takes up to n cards from the top, stopping early without error when
// the piles run out. The result may hold fewer than n cards.
func (p *Piles) DealN(n int) []Card {
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, ok := p.TakeTop()
		if !ok {
			break
		}
		cards = append(cards, card)
	}
	return cards
}

// Discard appends a card to the discard pile.
func (p *Piles) Discard(c Card) {
	p.discard = append(p.discard, c)
}

// DrawLen returns the draw pile size.
func (p *Piles) DrawLen() int {
	return len(p.draw)
}

// DiscardLen returns the discard pile size.
func (p *Piles) DiscardLen() int {
	return len(p.discard)
}
