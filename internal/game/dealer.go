package game

import "github.com/lox/blackjackd/internal/deck"

// DealerActionKind identifies a step of the dealer's automated play
type DealerActionKind string

const (
	DealerReveal DealerActionKind = "reveal"
	DealerHit    DealerActionKind = "hit"
	DealerStand  DealerActionKind = "stand"
)

// DealerAction is one step of the dealer's play, returned in order so the
// transport layer can replay the sequence to clients.
type DealerAction struct {
	Kind DealerActionKind
	Card *deck.Card // set for hits
}

// Dealer plays one hand per round under a fixed policy: reveal the hole
// card when the round needs a dealer total, then hit to 17 and stand.
// The first card each round is dealt face-up, the second stays face-down
// until the reveal.
type Dealer struct {
	Hand
	game *Game
}

// Blackjack peeks at all cards, hole card included. The insurance flow
// needs the answer before the reveal; clients never see this total.
func (d *Dealer) Blackjack() bool {
	return len(d.cards) == 2 && evaluateAll(d.cards).Best() == 21
}

// UpCardIsAce returns true if the dealer's first (face-up) card is an ace
func (d *Dealer) UpCardIsAce() bool {
	return len(d.cards) > 0 && d.cards[0].IsAce()
}

// revealed returns true once every card in the hand is face-up
func (d *Dealer) revealed() bool {
	for _, c := range d.cards {
		if !c.Revealed() {
			return false
		}
	}
	return true
}

// revealAll flips the hole card (and anything else face-down) face-up
func (d *Dealer) revealAll() {
	for _, c := range d.cards {
		c.Reveal()
	}
}

// Play runs the dealer policy to completion and returns the actions
// taken. Iterative on purpose: one action per loop step until the hand
// leaves Hitting (stand at 17+, bust, or a forced stand when no player
// hand needs a dealer total).
func (d *Dealer) Play() []DealerAction {
	var actions []DealerAction
	for d.status == Hitting {
		actions = append(actions, d.playAction())
	}
	return actions
}

func (d *Dealer) playAction() DealerAction {
	switch {
	case d.game.shouldDealerRevealAndPlay() && !d.revealed():
		d.revealAll()
		return DealerAction{Kind: DealerReveal}
	case !d.game.shouldDealerRevealAndPlay():
		d.stand()
		return DealerAction{Kind: DealerStand}
	case d.Value().Best() >= 17:
		d.stand()
		return DealerAction{Kind: DealerStand}
	default:
		card := d.hit(d.game.shoe)
		return DealerAction{Kind: DealerHit, Card: card}
	}
}
