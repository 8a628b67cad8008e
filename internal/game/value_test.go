package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjackd/internal/deck"
)

func revealed(pairs ...deck.Rank) []*deck.Card {
	cards := make([]*deck.Card, len(pairs))
	for i, rank := range pairs {
		cards[i] = deck.NewCard(deck.Spades, rank).Reveal()
	}
	return cards
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		cards []*deck.Card
		hard  int
		soft  int
		best  int
	}{
		{"empty", nil, 0, 0, 0},
		{"no aces sums ranks", revealed(deck.Five, deck.Nine), 14, 0, 14},
		{"face cards are ten", revealed(deck.Ten, deck.Jack), 20, 0, 20},
		{"ace counts both ways", revealed(deck.Two, deck.Ace), 3, 13, 13},
		{"soft dropped over 21", revealed(deck.Five, deck.Jack, deck.Ace), 16, 0, 16},
		{"natural", revealed(deck.Ace, deck.King), 11, 21, 21},
		{"two aces have no usable soft", revealed(deck.Ace, deck.Ace), 2, 0, 2},
		{"soft seventeen", revealed(deck.Ace, deck.Six), 7, 17, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(tt.cards)
			assert.Equal(t, tt.hard, v.Hard)
			assert.Equal(t, tt.soft, v.Soft)
			assert.Equal(t, tt.best, v.Best())
			assert.Equal(t, tt.soft != 0, v.HasSoft())
		})
	}
}

func TestEvaluateIgnoresHiddenCards(t *testing.T) {
	hole := deck.NewCard(deck.Hearts, deck.King) // face-down
	up := deck.NewCard(deck.Spades, deck.Nine).Reveal()

	v := Evaluate([]*deck.Card{up, hole})
	assert.Equal(t, 9, v.Hard)
	assert.Equal(t, 9, v.Best())

	hole.Reveal()
	assert.Equal(t, 19, Evaluate([]*deck.Card{up, hole}).Best())
}

func TestEvaluateAllPeeksHiddenCards(t *testing.T) {
	hole := deck.NewCard(deck.Hearts, deck.King) // face-down
	up := deck.NewCard(deck.Spades, deck.Ace).Reveal()

	assert.Equal(t, 21, evaluateAll([]*deck.Card{up, hole}).Best())
}
