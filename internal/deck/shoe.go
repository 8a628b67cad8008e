package deck

import (
	rand "math/rand/v2"
	"time"
)

// DecksPerShoe is the number of 52-card decks a shoe is built from
const DecksPerShoe = 6

// Shoe is the drawable stack of cards for a table. Draw never fails: an
// empty shoe transparently rebuilds and reshuffles before drawing, so the
// table never deals from an exhausted stack.
type Shoe struct {
	cards []*Card
	decks int
	rng   *rand.Rand
}

// NewShoe creates a shuffled six-deck shoe. A nil rng seeds from the clock.
func NewShoe(rng *rand.Rand) *Shoe {
	s := &Shoe{decks: DecksPerShoe, rng: rng}
	s.reset()
	return s
}

// NewStackedShoe creates a shoe that deals the given cards in order, used
// for deterministic tests. Once the stacked cards run out the shoe behaves
// like a freshly shuffled one.
func NewStackedShoe(cards ...*Card) *Shoe {
	s := &Shoe{decks: DecksPerShoe}
	// Internal stack pops from the end, so reverse to deal in given order
	s.cards = make([]*Card, len(cards))
	for i, c := range cards {
		s.cards[len(cards)-1-i] = c
	}
	return s
}

// Draw pops the top card from the shoe, rebuilding and reshuffling first
// if the shoe is empty. The returned card is face-down.
func (s *Shoe) Draw() *Card {
	if len(s.cards) == 0 {
		s.reset()
	}
	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return card
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Shuffle randomizes the shoe in place (Durstenfeld)
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// reset rebuilds the full multi-deck stack and shuffles it
func (s *Shoe) reset() {
	if s.rng == nil {
		now := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(now, now>>32))
	}
	s.cards = s.cards[:0]
	for d := 0; d < s.decks; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.Shuffle()
}
