package game

import "github.com/lox/blackjackd/internal/deck"

// Value is the dual total of a blackjack hand. Hard counts every ace as 1.
// Soft counts every ace as 11 and is zero when it does not differ from
// hard or would exceed 21.
type Value struct {
	Hard int
	Soft int
}

// HasSoft returns true if the hand has a usable soft total
func (v Value) HasSoft() bool {
	return v.Soft != 0
}

// Best returns the soft total when usable, otherwise the hard total
func (v Value) Best() int {
	if v.Soft != 0 {
		return v.Soft
	}
	return v.Hard
}

// Evaluate computes the value of a sequence of cards. Face-down cards
// contribute nothing, which is how the dealer's hole card stays out of
// every total until it is revealed.
func Evaluate(cards []*deck.Card) Value {
	hard, aces := 0, 0
	for _, c := range cards {
		if !c.Revealed() {
			continue
		}
		hard += c.HardValue()
		if c.IsAce() {
			aces++
		}
	}
	soft := hard + 10*aces
	if aces == 0 || soft > 21 {
		soft = 0
	}
	return Value{Hard: hard, Soft: soft}
}

// evaluateAll computes the value of a sequence of cards regardless of
// visibility. Used server-side to peek at the dealer's hole card for the
// blackjack check during insurance; never exposed to clients.
func evaluateAll(cards []*deck.Card) Value {
	hard, aces := 0, 0
	for _, c := range cards {
		hard += c.HardValue()
		if c.IsAce() {
			aces++
		}
	}
	soft := hard + 10*aces
	if aces == 0 || soft > 21 {
		soft = 0
	}
	return Value{Hard: hard, Soft: soft}
}
