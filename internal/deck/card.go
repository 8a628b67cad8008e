package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card represents a playing card. Suit and rank are fixed at creation;
// only visibility changes over a card's lifetime. Cards come out of the
// shoe face-down and are revealed by whoever deals them.
type Card struct {
	Suit     Suit
	Rank     Rank
	revealed bool
}

// NewCard creates a new face-down card
func NewCard(suit Suit, rank Rank) *Card {
	return &Card{Suit: suit, Rank: rank}
}

// Reveal flips the card face-up. Idempotent. Returns the card so deals
// can chain draw-reveal-deal.
func (c *Card) Reveal() *Card {
	c.revealed = true
	return c
}

// Revealed returns true if the card is face-up
func (c *Card) Revealed() bool {
	return c.revealed
}

// HardValue returns the card's value counting aces as 1
func (c *Card) HardValue() int {
	switch {
	case c.Rank == Ace:
		return 1
	case c.Rank >= Ten:
		return 10
	default:
		return int(c.Rank)
	}
}

// SoftValue returns the card's value counting aces as 11
func (c *Card) SoftValue() int {
	if c.Rank == Ace {
		return 11
	}
	return c.HardValue()
}

// IsAce returns true if the card is an Ace
func (c *Card) IsAce() bool {
	return c.Rank == Ace
}

// String returns the string representation of a card (e.g., "A♠")
func (c *Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}
