// Package deck defines the card model and the draw/discard pile manager.
// A session owns exactly one 80-card multiset; cards are relocated between
// the draw pile, the discard pile, the board and the pending slot, never
// duplicated or destroyed.
package deck

// Symbol identifies one of the eight card faces.
type Symbol uint8

const (
	// Crown is wild for scoring only. It is never a match target itself.
	Crown Symbol = iota
	Diamond
	Present
	Seven
	Bar
	Cherry
	Jewel
	// Bomb is never scoreable and never wild. Drawing, placing or dealing
	// one triggers the board wipe.
	Bomb

	symbolCount
)

var symbolNames = [symbolCount]string{
	Crown:   "Crown",
	Diamond: "Diamond",
	Present: "Present",
	Seven:   "Seven",
	Bar:     "Bar",
	Cherry:  "Cherry",
	Jewel:   "Jewel",
	Bomb:    "Bomb",
}

func (s Symbol) String() string {
	if s >= symbolCount {
		return "Unknown"
	}
	return symbolNames[s]
}

// IsWild reports whether the symbol substitutes for any scoreable symbol.
func (s Symbol) IsWild() bool {
	return s == Crown
}

// payouts holds the per-line payout of each match target.
// Crown and Bomb have no entry: crown's value is context-dependent and
// bomb has none.
var payouts = map[Symbol]int{
	Diamond: 500,
	Present: 400,
	Seven:   300,
	Bar:     200,
	Cherry:  100,
	Jewel:   0,
}

// Payout returns the line payout for a match target.
// ok is false for Crown and Bomb, which are not match targets.
func (s Symbol) Payout() (points int, ok bool) {
	points, ok = payouts[s]
	return points, ok
}

// CardID is an opaque identifier unique within a session.
type CardID uint8

// Card is an immutable (identity, face) pair.
type Card struct {
	ID     CardID
	Symbol Symbol
}

// composition is the fixed 80-card multiset a session is built from.
var composition = [...]struct {
	symbol Symbol
	count  int
}{
	{Crown, 8},
	{Diamond, 8},
	{Present, 10},
	{Seven, 12},
	{Bar, 14},
	{Cherry, 16},
	{Jewel, 22},
	{Bomb, 2},
}

// Size is the total card count of the composition table.
const Size = 80

// New returns the full 80-card multiset with unique IDs, unshuffled.
// Pure: no randomness, no shared state.
func New() []Card {
	cards := make([]Card, 0, Size)
	var id CardID
	for _, entry := range composition {
		for i := 0; i < entry.count; i++ {
			id++
			cards = append(cards, Card{ID: id, Symbol: entry.symbol})
		}
	}
	return cards
}
