package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjackd/internal/deck"
)

// standingHand seats a player with a finished hand so the dealer policy
// has something to play against.
func standingHand(g *Game, ranks ...deck.Rank) *PlayerHand {
	p := g.Join("alice")
	hand := g.Hands(p.ID())[0]
	hand.bet, hand.hasBet = 10, true
	for _, r := range ranks {
		hand.DealCard(card(deck.Spades, r))
	}
	if hand.Status() == Hitting {
		hand.stand()
	}
	return hand
}

func dealDealer(g *Game, up, hole deck.Rank) {
	g.dealer.DealCard(card(deck.Diamonds, up))
	g.dealer.DealCard(deck.NewCard(deck.Clubs, hole))
}

func dealerKinds(actions []DealerAction) []DealerActionKind {
	kinds := make([]DealerActionKind, len(actions))
	for i, a := range actions {
		kinds[i] = a.Kind
	}
	return kinds
}

func TestDealerHitsToSeventeen(t *testing.T) {
	g := NewGame(WithShoe(deck.NewStackedShoe(deck.NewCard(deck.Hearts, deck.Two))))
	standingHand(g, deck.Ten, deck.Eight)
	dealDealer(g, deck.Ten, deck.Six)

	actions := g.dealer.Play()
	assert.Equal(t, []DealerActionKind{DealerReveal, DealerHit, DealerStand}, dealerKinds(actions))
	assert.Equal(t, Standing, g.dealer.Status())
	assert.Equal(t, 18, g.dealer.Value().Best())
	assert.True(t, g.dealer.revealed())
}

func TestDealerStandsOnSeventeen(t *testing.T) {
	g := NewGame()
	standingHand(g, deck.Ten, deck.Eight)
	dealDealer(g, deck.Ten, deck.Seven)

	actions := g.dealer.Play()
	assert.Equal(t, []DealerActionKind{DealerReveal, DealerStand}, dealerKinds(actions))
	assert.Equal(t, 17, g.dealer.Value().Best())
}

func TestDealerBusts(t *testing.T) {
	g := NewGame(WithShoe(deck.NewStackedShoe(deck.NewCard(deck.Hearts, deck.King))))
	standingHand(g, deck.Ten, deck.Eight)
	dealDealer(g, deck.Ten, deck.Six)

	actions := g.dealer.Play()
	assert.Equal(t, []DealerActionKind{DealerReveal, DealerHit}, dealerKinds(actions))
	assert.Equal(t, Busted, g.dealer.Status())
	assert.Equal(t, 26, g.dealer.Value().Best())
}

func TestDealerHoleCardStaysHiddenWhenEveryoneBusted(t *testing.T) {
	g := NewGame()
	hand := standingHand(g, deck.Ten, deck.Nine, deck.Five)
	require.Equal(t, Busted, hand.Status())
	dealDealer(g, deck.Ten, deck.Six)

	actions := g.dealer.Play()
	assert.Equal(t, []DealerActionKind{DealerStand}, dealerKinds(actions))
	assert.False(t, g.dealer.revealed())
	assert.Equal(t, Standing, g.dealer.Status())
}

func TestDealerHoleCardStaysHiddenAgainstOnlyNaturals(t *testing.T) {
	g := NewGame()
	hand := standingHand(g, deck.Ace, deck.King)
	require.True(t, hand.Blackjack())
	dealDealer(g, deck.Ten, deck.Six)

	actions := g.dealer.Play()
	assert.Equal(t, []DealerActionKind{DealerStand}, dealerKinds(actions))
	assert.False(t, g.dealer.revealed())
}

func TestDealerRevealsAgainstNaturalsWhenHoldingBlackjack(t *testing.T) {
	g := NewGame()
	standingHand(g, deck.Ace, deck.King)
	dealDealer(g, deck.Ace, deck.Queen)
	require.True(t, g.dealer.Blackjack())

	actions := g.dealer.Play()
	assert.Equal(t, []DealerActionKind{DealerReveal, DealerStand}, dealerKinds(actions))
	assert.True(t, g.dealer.revealed())
	assert.Equal(t, 21, g.dealer.Value().Best())
}

func TestDealerSoftSeventeenStands(t *testing.T) {
	g := NewGame()
	standingHand(g, deck.Ten, deck.Eight)
	dealDealer(g, deck.Ace, deck.Six)

	actions := g.dealer.Play()
	assert.Equal(t, []DealerActionKind{DealerReveal, DealerStand}, dealerKinds(actions))
	assert.Equal(t, 17, g.dealer.Value().Best())
}

func TestDealerBlackjackPeeksThroughHoleCard(t *testing.T) {
	g := NewGame()
	dealDealer(g, deck.Ace, deck.King)
	assert.True(t, g.dealer.Blackjack())
	// The peek must not leak through the revealed-only value
	assert.Equal(t, 11, g.dealer.Value().Best())
}

func TestDealerUpCardIsAce(t *testing.T) {
	g := NewGame()
	assert.False(t, g.dealer.UpCardIsAce())
	dealDealer(g, deck.Ace, deck.Nine)
	assert.True(t, g.dealer.UpCardIsAce())

	g2 := NewGame()
	dealDealer(g2, deck.Nine, deck.Ace)
	assert.False(t, g2.dealer.UpCardIsAce())
}
