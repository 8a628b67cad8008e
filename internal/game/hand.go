package game

import "github.com/lox/blackjackd/internal/deck"

// HandStatus represents the state of a hand within a round
type HandStatus int

const (
	Hitting HandStatus = iota
	Standing
	Busted
)

// String returns the string representation of a hand status
func (s HandStatus) String() string {
	switch s {
	case Hitting:
		return "hitting"
	case Standing:
		return "standing"
	case Busted:
		return "busted"
	default:
		return "unknown"
	}
}

// Hand is the card-holding core shared by player hands and the dealer:
// an append-only card sequence plus a status recomputed on every deal.
type Hand struct {
	cards  []*deck.Card
	status HandStatus
}

// Cards returns the hand's cards in deal order
func (h *Hand) Cards() []*deck.Card {
	return h.cards
}

// Status returns the hand's current status
func (h *Hand) Status() HandStatus {
	return h.status
}

// Value returns the hand's dual total over its revealed cards
func (h *Hand) Value() Value {
	return Evaluate(h.cards)
}

// DealCard appends a card and recomputes status: 21 stands the hand
// automatically, over 21 busts it, anything else leaves it hitting.
func (h *Hand) DealCard(card *deck.Card) {
	h.cards = append(h.cards, card)
	switch best := h.Value().Best(); {
	case best > 21:
		h.status = Busted
	case best == 21:
		h.status = Standing
	}
}

// Blackjack returns true for a natural: exactly two cards totalling 21
func (h *Hand) Blackjack() bool {
	return len(h.cards) == 2 && h.Value().Best() == 21
}

// Clear empties the hand for a fresh round
func (h *Hand) Clear() {
	h.cards = h.cards[:0]
	h.status = Hitting
}

// hit draws from the shoe, reveals the card and deals it to the hand.
// Legality is the caller's responsibility.
func (h *Hand) hit(shoe *deck.Shoe) *deck.Card {
	card := shoe.Draw().Reveal()
	h.DealCard(card)
	return card
}

// stand forces the hand to standing. Legality is the caller's responsibility.
func (h *Hand) stand() {
	h.status = Standing
}
