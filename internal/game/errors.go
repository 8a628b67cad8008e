package game

import "errors"

// All core errors signal protocol violations by the caller, not expected
// runtime conditions. The transport layer is expected to turn them into a
// rejection sent to the offending player only.
var (
	// ErrIllegalAction is returned when a command is not in the hand's
	// current action set.
	ErrIllegalAction = errors.New("action not allowed")

	// ErrNoBet is returned when an operation needs a bet that was never placed
	ErrNoBet = errors.New("no bet on hand")

	// ErrNoInsurance is returned when settling insurance that was never offered
	ErrNoInsurance = errors.New("no insurance on hand")

	// ErrHandNotDone is returned when settling a hand that is still hitting
	ErrHandNotDone = errors.New("hand still hitting")

	// ErrDealerNotDone is returned when settling before the dealer finished
	ErrDealerNotDone = errors.New("dealer still hitting")

	// ErrUnsettledOutcome means settlement fell through every win/lose/push
	// branch. This is an invariant violation and must never fire.
	ErrUnsettledOutcome = errors.New("settlement outcome undetermined")

	// ErrUnknownPlayer is returned for commands naming an unseated player
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrUnknownHand is returned for commands naming a missing hand
	ErrUnknownHand = errors.New("unknown hand")

	// ErrNotYourHand is returned when a player acts on another player's hand
	ErrNotYourHand = errors.New("hand belongs to another player")
)
