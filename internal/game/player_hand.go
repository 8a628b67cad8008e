package game

import "fmt"

// Action is a move a player can make on a hand
type Action string

const (
	ActionBet    Action = "bet"
	ActionHit    Action = "hit"
	ActionStand  Action = "stand"
	ActionDouble Action = "double"
	ActionSplit  Action = "split"
	ActionInsure Action = "insure"
)

// SettleStatus is the outcome of a settled bet
type SettleStatus string

const (
	SettleBlackjack SettleStatus = "blackjack"
	SettleWin       SettleStatus = "win"
	SettlePush      SettleStatus = "push"
	SettleLose      SettleStatus = "lose"
)

// InsuranceStatus tracks the insurance side bet on a root hand
type InsuranceStatus string

const (
	InsuranceOffered  InsuranceStatus = "offered"
	InsuranceBought   InsuranceStatus = "bought"
	InsuranceDeclined InsuranceStatus = "declined"
	InsuranceSettled  InsuranceStatus = "settled"
)

// Insurance is the side bet offered when the dealer shows an ace. The bet
// is half the hand's main bet, charged at purchase, paying 3x if the
// dealer has blackjack.
type Insurance struct {
	Status   InsuranceStatus
	Bet      int
	Outcome  SettleStatus // set once settled
	Winnings int
	bought   bool // bought before settling; Status moves to settled
}

// Settlement is the terminal outcome of a hand's main bet
type Settlement struct {
	Status   SettleStatus
	Winnings int
}

// PlayerHand is a player's hand: the shared card core plus a bet,
// optional insurance, and a settlement outcome. Hands created at join or
// round start are root hands; hands created by splitting are not, and a
// split hand can never count as blackjack even on a two-card 21.
type PlayerHand struct {
	Hand
	id         string
	playerID   string
	root       bool
	bet        int
	hasBet     bool
	insurance  *Insurance
	settlement *Settlement
	game       *Game
}

func newPlayerHand(g *Game, playerID string, root bool) *PlayerHand {
	return &PlayerHand{
		id:       g.ids.Generate(),
		playerID: playerID,
		root:     root,
		game:     g,
	}
}

// ID returns the hand's unique identifier
func (ph *PlayerHand) ID() string {
	return ph.id
}

// PlayerID returns the id of the owning player
func (ph *PlayerHand) PlayerID() string {
	return ph.playerID
}

// IsRoot returns true for a hand created at bet time, false for split hands
func (ph *PlayerHand) IsRoot() bool {
	return ph.root
}

// Bet returns the hand's bet and whether one has been placed
func (ph *PlayerHand) Bet() (int, bool) {
	return ph.bet, ph.hasBet
}

// Insurance returns the hand's insurance state, nil if never offered
func (ph *PlayerHand) Insurance() *Insurance {
	return ph.insurance
}

// Settlement returns the hand's settled outcome, nil until settled
func (ph *PlayerHand) Settlement() *Settlement {
	return ph.settlement
}

// Blackjack is gated on being a root hand: split hands never qualify
func (ph *PlayerHand) Blackjack() bool {
	return ph.root && ph.Hand.Blackjack()
}

// Actions derives the hand's legal action set from the bet, status, the
// round phase and the cards. It is computed fresh on every read and never
// cached, so it can't go stale.
func (ph *PlayerHand) Actions() []Action {
	switch {
	case !ph.hasBet && ph.game.RoundState() == PlacingBets:
		return []Action{ActionBet}
	case ph.status != Hitting:
		return nil
	case ph.root && ph.game.RoundState() == Insuring:
		return []Action{ActionInsure}
	case ph.game.RoundState() == PlayersPlaying:
		actions := []Action{ActionStand, ActionHit}
		if len(ph.cards) == 2 {
			actions = append(actions, ActionDouble)
			if ph.cards[0].Rank == ph.cards[1].Rank {
				actions = append(actions, ActionSplit)
			}
		}
		return actions
	default:
		return nil
	}
}

// Can returns true if the action is currently legal on this hand
func (ph *PlayerHand) Can(action Action) bool {
	for _, a := range ph.Actions() {
		if a == action {
			return true
		}
	}
	return false
}

// PlaceBet takes the amount from the owning player and stakes it on the
// hand. Bet timing is enforced upstream by the round-state gate.
func (ph *PlayerHand) PlaceBet(amount int) {
	ph.game.player(ph.playerID).TakeMoney(amount)
	ph.bet = amount
	ph.hasBet = true
}

// offerInsurance marks the side bet as available. Called by the game when
// the dealer's up-card is an ace.
func (ph *PlayerHand) offerInsurance() {
	ph.insurance = &Insurance{Status: InsuranceOffered}
}

// BuyInsurance stakes half the main bet on the dealer having blackjack
func (ph *PlayerHand) BuyInsurance() error {
	if !ph.Can(ActionInsure) {
		return fmt.Errorf("hand %s: cannot insure: %w", ph.id, ErrIllegalAction)
	}
	if !ph.hasBet {
		return fmt.Errorf("hand %s: cannot insure: %w", ph.id, ErrNoBet)
	}
	amount := ph.bet / 2
	ph.game.player(ph.playerID).TakeMoney(amount)
	ph.insurance.Status = InsuranceBought
	ph.insurance.Bet = amount
	ph.insurance.bought = true
	return nil
}

// DeclineInsurance passes on the side bet
func (ph *PlayerHand) DeclineInsurance() error {
	if !ph.Can(ActionInsure) {
		return fmt.Errorf("hand %s: cannot decline insurance: %w", ph.id, ErrIllegalAction)
	}
	ph.insurance.Status = InsuranceDeclined
	return nil
}

// Hit draws one card from the shoe onto the hand
func (ph *PlayerHand) Hit() (*PlayerHand, error) {
	if !ph.Can(ActionHit) {
		return nil, fmt.Errorf("hand %s: cannot hit: %w", ph.id, ErrIllegalAction)
	}
	ph.hit(ph.game.shoe)
	return ph, nil
}

// Double doubles the stake, takes exactly one card and ends the hand
func (ph *PlayerHand) Double() error {
	if !ph.Can(ActionDouble) {
		return fmt.Errorf("hand %s: cannot double: %w", ph.id, ErrIllegalAction)
	}
	if !ph.hasBet {
		return fmt.Errorf("hand %s: cannot double: %w", ph.id, ErrNoBet)
	}
	ph.game.player(ph.playerID).TakeMoney(ph.bet)
	ph.bet *= 2
	ph.hit(ph.game.shoe)
	if ph.status == Hitting {
		ph.stand()
	}
	return nil
}

// Stand ends the hand. Standing an already-standing hand is a no-op.
func (ph *PlayerHand) Stand() error {
	if ph.status == Standing {
		return nil
	}
	if !ph.Can(ActionStand) {
		return fmt.Errorf("hand %s: cannot stand: %w", ph.id, ErrIllegalAction)
	}
	ph.stand()
	return nil
}

// SettleInsurance resolves the side bet once the dealer's blackjack is
// known. A confirmed dealer blackjack ends the hand immediately, so the
// hand is forced to stand whether or not insurance was bought.
func (ph *PlayerHand) SettleInsurance() error {
	if ph.insurance == nil {
		return fmt.Errorf("hand %s: cannot settle insurance: %w", ph.id, ErrNoInsurance)
	}
	if ph.game.dealer.Blackjack() {
		ph.stand()
		if ph.insurance.bought {
			winnings := ph.insurance.Bet * 3
			ph.game.player(ph.playerID).GiveMoney(winnings)
			ph.insurance.Status = InsuranceSettled
			ph.insurance.Outcome = SettleWin
			ph.insurance.Winnings = winnings
		}
		return nil
	}
	if ph.insurance.bought {
		// The stake already left the player's balance at purchase
		ph.insurance.Status = InsuranceSettled
		ph.insurance.Outcome = SettleLose
		ph.insurance.Winnings = 0
	}
	return nil
}

// SettleBet resolves the hand's main bet against the dealer's final hand
// and pays any winnings. The branch order matters: the predicates are not
// mutually exclusive on paper, so blackjack is checked first, then win,
// then push, then lose. Falling through all four is an invariant violation.
func (ph *PlayerHand) SettleBet() error {
	if ph.status == Hitting {
		return fmt.Errorf("hand %s: cannot settle: %w", ph.id, ErrHandNotDone)
	}
	dealer := ph.game.dealer
	if dealer.Status() == Hitting {
		return fmt.Errorf("hand %s: cannot settle: %w", ph.id, ErrDealerNotDone)
	}
	if !ph.hasBet {
		return fmt.Errorf("hand %s: cannot settle: %w", ph.id, ErrNoBet)
	}

	var (
		handValue      = ph.Value().Best()
		dealerValue    = dealer.Value().Best()
		handBlackjack  = ph.Blackjack()
		dealerBJ       = dealer.Blackjack()
		handStanding   = ph.status == Standing
		handBusted     = ph.status == Busted
		dealerStanding = dealer.Status() == Standing
		dealerBusted   = dealer.Status() == Busted
	)

	blackjack := handBlackjack && !dealerBJ
	win := (handStanding && dealerBusted) ||
		(handValue > dealerValue && handStanding)
	lose := handBusted ||
		(handValue < dealerValue && dealerStanding) ||
		(handValue == dealerValue && dealerBJ && !handBlackjack)
	push := handStanding && dealerStanding && handValue == dealerValue &&
		((!handBlackjack && !dealerBJ) || (handBlackjack && dealerBJ))

	switch {
	case blackjack:
		ph.settlement = &Settlement{Status: SettleBlackjack, Winnings: ph.bet * 5 / 2}
	case win:
		ph.settlement = &Settlement{Status: SettleWin, Winnings: ph.bet * 2}
	case push:
		ph.settlement = &Settlement{Status: SettlePush, Winnings: ph.bet}
	case lose:
		ph.settlement = &Settlement{Status: SettleLose, Winnings: 0}
	default:
		return fmt.Errorf("hand %s vs dealer (%d vs %d): %w",
			ph.id, handValue, dealerValue, ErrUnsettledOutcome)
	}

	ph.game.player(ph.playerID).GiveMoney(ph.settlement.Winnings)
	return nil
}
