package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardValues(t *testing.T) {
	tests := []struct {
		name string
		rank Rank
		hard int
		soft int
	}{
		{"two", Two, 2, 2},
		{"five", Five, 5, 5},
		{"nine", Nine, 9, 9},
		{"ten", Ten, 10, 10},
		{"jack", Jack, 10, 10},
		{"queen", Queen, 10, 10},
		{"king", King, 10, 10},
		{"ace", Ace, 1, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewCard(Spades, tt.rank)
			assert.Equal(t, tt.hard, card.HardValue())
			assert.Equal(t, tt.soft, card.SoftValue())
		})
	}
}

func TestCardReveal(t *testing.T) {
	card := NewCard(Hearts, Queen)
	assert.False(t, card.Revealed())

	// Reveal is idempotent and returns the card for chaining
	assert.Same(t, card, card.Reveal())
	assert.True(t, card.Revealed())
	card.Reveal()
	assert.True(t, card.Revealed())
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", NewCard(Spades, Ace).String())
	assert.Equal(t, "T♥", NewCard(Hearts, Ten).String())
	assert.Equal(t, "2♣", NewCard(Clubs, Two).String())
}

func TestIsAce(t *testing.T) {
	assert.True(t, NewCard(Diamonds, Ace).IsAce())
	assert.False(t, NewCard(Diamonds, King).IsAce())
}
