// Package lines holds the 3x3 line geometry and the wildcard-aware payout
// evaluation for a selected triple of cards. Everything here is pure.
package lines

import (
	"sort"

	"slotaire/deck"
)

// Triples are the 8 canonical lines of the board in row-major indexing:
// 3 rows, 3 columns, 2 diagonals. Each triple is sorted ascending.
var Triples = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// IsLine reports whether cells names exactly one canonical line.
// Index order does not matter; any other size or shape is rejected.
func IsLine(cells []int) bool {
	if len(cells) != 3 {
		return false
	}
	sorted := [3]int{cells[0], cells[1], cells[2]}
	sort.Ints(sorted[:])
	for _, triple := range Triples {
		if sorted == triple {
			return true
		}
	}
	return false
}

// ThreeCrownsPayout is the special payout for an all-crown line,
// independent of the symbol payout table.
const ThreeCrownsPayout = 1000

// ThreeCrownsLabel names the all-crown result.
const ThreeCrownsLabel = "Three Crowns"

// targets are the match targets in descending payout order. When crowns
// make a selection ambiguous the first qualifying target wins, which is
// the highest payout since the table values are distinct.
var targets = [...]deck.Symbol{
	deck.Diamond,
	deck.Present,
	deck.Seven,
	deck.Bar,
	deck.Cherry,
	deck.Jewel,
}

// Result is the outcome of evaluating a selected triple.
type Result struct {
	OK     bool
	Points int
	Label  string
}

// Evaluate scores three cards. Rules in order: any bomb invalidates; three
// crowns pay the special payout; otherwise the highest-payout target every
// card matches (directly or as a crown) decides, and no qualifying target
// means invalid.
func Evaluate(cards [3]deck.Card) Result {
	crowns := 0
	for _, c := range cards {
		switch c.Symbol {
		case deck.Bomb:
			return Result{}
		case deck.Crown:
			crowns++
		}
	}

	if crowns == 3 {
		return Result{OK: true, Points: ThreeCrownsPayout, Label: ThreeCrownsLabel}
	}

	for _, target := range targets {
		if matchesTarget(cards, target) {
			points, _ := target.Payout()
			return Result{OK: true, Points: points, Label: label(target)}
		}
	}
	return Result{}
}

func matchesTarget(cards [3]deck.Card, target deck.Symbol) bool {
	for _, c := range cards {
		if c.Symbol != target && !c.Symbol.IsWild() {
			return false
		}
	}
	return true
}

// label renders "3 Diamonds" style text with irregular pluralization
// for the cherry root.
func label(target deck.Symbol) string {
	name := target.String()
	if target == deck.Cherry {
		return "3 Cherries"
	}
	return "3 " + name + "s"
}
