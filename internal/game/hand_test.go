package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjackd/internal/deck"
)

func TestHandStatusTransitions(t *testing.T) {
	t.Run("stays hitting below 21", func(t *testing.T) {
		var hand Hand
		hand.DealCard(deck.NewCard(deck.Spades, deck.Ten).Reveal())
		hand.DealCard(deck.NewCard(deck.Hearts, deck.Nine).Reveal())
		assert.Equal(t, Hitting, hand.Status())
	})

	t.Run("stands automatically on 21", func(t *testing.T) {
		var hand Hand
		hand.DealCard(deck.NewCard(deck.Spades, deck.Ten).Reveal())
		hand.DealCard(deck.NewCard(deck.Hearts, deck.Five).Reveal())
		hand.DealCard(deck.NewCard(deck.Clubs, deck.Six).Reveal())
		assert.Equal(t, Standing, hand.Status())
	})

	t.Run("busts over 21", func(t *testing.T) {
		var hand Hand
		hand.DealCard(deck.NewCard(deck.Spades, deck.Ten).Reveal())
		hand.DealCard(deck.NewCard(deck.Hearts, deck.Nine).Reveal())
		hand.DealCard(deck.NewCard(deck.Clubs, deck.Five).Reveal())
		assert.Equal(t, Busted, hand.Status())
	})
}

func TestHandBlackjack(t *testing.T) {
	var natural Hand
	natural.DealCard(deck.NewCard(deck.Spades, deck.Ace).Reveal())
	natural.DealCard(deck.NewCard(deck.Hearts, deck.King).Reveal())
	assert.True(t, natural.Blackjack())

	// 21 in three cards is not a natural
	var slow Hand
	slow.DealCard(deck.NewCard(deck.Spades, deck.Seven).Reveal())
	slow.DealCard(deck.NewCard(deck.Hearts, deck.Seven).Reveal())
	slow.DealCard(deck.NewCard(deck.Clubs, deck.Seven).Reveal())
	assert.False(t, slow.Blackjack())
}

func TestHandClear(t *testing.T) {
	var hand Hand
	hand.DealCard(deck.NewCard(deck.Spades, deck.Ten).Reveal())
	hand.DealCard(deck.NewCard(deck.Hearts, deck.King).Reveal())
	hand.DealCard(deck.NewCard(deck.Clubs, deck.Five).Reveal())
	assert.Equal(t, Busted, hand.Status())

	hand.Clear()
	assert.Empty(t, hand.Cards())
	assert.Equal(t, Hitting, hand.Status())
}

func TestHandHitDrawsRevealed(t *testing.T) {
	shoe := deck.NewStackedShoe(deck.NewCard(deck.Spades, deck.Four))
	var hand Hand
	card := hand.hit(shoe)
	assert.True(t, card.Revealed())
	assert.Len(t, hand.Cards(), 1)
}
