package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjackd/internal/deck"
	"github.com/lox/blackjackd/internal/gameid"
	"github.com/lox/blackjackd/internal/randutil"
)

// RoundState is the phase of the round cycle
type RoundState int

const (
	PlayersReadying RoundState = iota
	PlacingBets
	Insuring
	PlayersPlaying
	DealerPlaying
)

// String returns the string representation of a round state
func (s RoundState) String() string {
	switch s {
	case PlayersReadying:
		return "players_readying"
	case PlacingBets:
		return "placing_bets"
	case Insuring:
		return "insuring"
	case PlayersPlaying:
		return "players_playing"
	case DealerPlaying:
		return "dealer_playing"
	default:
		return "unknown"
	}
}

const defaultStartingMoney = 1000

// Game is the root aggregate for one table: the shoe, the dealer, every
// seated player and every hand. All mutation goes through Game commands
// or hand methods that read the Game back through a shared handle.
// Players and hands keep insertion order so dealing and settlement are
// deterministic.
type Game struct {
	state         RoundState
	shoe          *deck.Shoe
	dealer        *Dealer
	players       map[string]*Player
	playerOrder   []string
	hands         map[string]*PlayerHand
	handOrder     []string
	startingMoney int
	ids           *gameid.Generator
	bus           EventBus
	logger        *log.Logger
}

// Option configures a Game
type Option func(*Game)

// WithShoe supplies the shoe, typically a stacked one in tests
func WithShoe(shoe *deck.Shoe) Option {
	return func(g *Game) { g.shoe = shoe }
}

// WithStartingMoney sets the balance players join with
func WithStartingMoney(amount int) Option {
	return func(g *Game) { g.startingMoney = amount }
}

// WithLogger supplies the logger
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithIDGenerator supplies the id generator, injectable for tests
func WithIDGenerator(ids *gameid.Generator) Option {
	return func(g *Game) { g.ids = ids }
}

// NewGame creates a game in the PlayersReadying phase with an empty table
func NewGame(opts ...Option) *Game {
	g := &Game{
		state:         PlayersReadying,
		players:       make(map[string]*Player),
		hands:         make(map[string]*PlayerHand),
		startingMoney: defaultStartingMoney,
		ids:           gameid.NewGenerator(nil),
		bus:           NewEventBus(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.shoe == nil {
		g.shoe = deck.NewShoe(randutil.NewFromTime())
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.dealer = &Dealer{game: g}
	return g
}

// Bus returns the event bus for subscribing to game events
func (g *Game) Bus() EventBus {
	return g.bus
}

// RoundState returns the current phase
func (g *Game) RoundState() RoundState {
	return g.state
}

// Dealer returns the dealer
func (g *Game) Dealer() *Dealer {
	return g.dealer
}

// Player returns a seated player by id
func (g *Game) Player(playerID string) (*Player, bool) {
	p, ok := g.players[playerID]
	return p, ok
}

// Hands returns the player's hands in table order
func (g *Game) Hands(playerID string) []*PlayerHand {
	var hands []*PlayerHand
	for _, id := range g.handOrder {
		if hand := g.hands[id]; hand.playerID == playerID {
			hands = append(hands, hand)
		}
	}
	return hands
}

// Hand returns a hand by id
func (g *Game) Hand(handID string) (*PlayerHand, bool) {
	hand, ok := g.hands[handID]
	return hand, ok
}

// AllHands returns every hand at the table in deal order
func (g *Game) AllHands() []*PlayerHand {
	hands := make([]*PlayerHand, 0, len(g.handOrder))
	for _, id := range g.handOrder {
		hands = append(hands, g.hands[id])
	}
	return hands
}

// player resolves a player id that is known to be seated. Hands hold a
// player id plus the game handle rather than a player pointer, so nothing
// duplicates player state.
func (g *Game) player(playerID string) *Player {
	return g.players[playerID]
}

// Join seats a new player with the starting balance and one root hand
func (g *Game) Join(name string) *Player {
	player := &Player{
		id:    g.ids.Generate(),
		name:  name,
		money: g.startingMoney,
	}
	g.players[player.id] = player
	g.playerOrder = append(g.playerOrder, player.id)

	hand := newPlayerHand(g, player.id, true)
	g.hands[hand.id] = hand
	g.handOrder = append(g.handOrder, hand.id)

	g.logger.Info("player joined", "player", player.id, "name", name)
	g.bus.Publish(PlayerJoinedEvent{newEventBase(), player.View(), hand.View()})
	return player
}

// Leave removes a player and their hands, then re-checks the round
// predicates since their absence may unblock the phase.
func (g *Game) Leave(playerID string) error {
	if _, ok := g.players[playerID]; !ok {
		return fmt.Errorf("player %s: %w", playerID, ErrUnknownPlayer)
	}
	delete(g.players, playerID)
	g.playerOrder = remove(g.playerOrder, playerID)

	for _, hand := range g.Hands(playerID) {
		delete(g.hands, hand.id)
		g.handOrder = remove(g.handOrder, hand.id)
	}

	g.logger.Info("player left", "player", playerID)
	g.bus.Publish(PlayerLeftEvent{newEventBase(), playerID})
	g.advanceRound()
	return nil
}

// Ready marks a player ready for the next round
func (g *Game) Ready(playerID string) error {
	player, ok := g.players[playerID]
	if !ok {
		return fmt.Errorf("player %s: %w", playerID, ErrUnknownPlayer)
	}
	player.ready = true
	g.bus.Publish(ReadyChangedEvent{newEventBase(), g.playerViews()})
	g.advanceRound()
	return nil
}

// PlaceBet stakes an amount on a hand during the betting phase
func (g *Game) PlaceBet(playerID, handID string, amount int) error {
	hand, err := g.playerHand(playerID, handID)
	if err != nil {
		return err
	}
	if !hand.Can(ActionBet) {
		return fmt.Errorf("hand %s: cannot bet: %w", handID, ErrIllegalAction)
	}
	hand.PlaceBet(amount)
	g.bus.Publish(BetPlacedEvent{newEventBase(), hand.View(), g.player(playerID).View()})
	g.advanceRound()
	return nil
}

// Hit deals one card to a hand
func (g *Game) Hit(playerID, handID string) error {
	hand, err := g.playerHand(playerID, handID)
	if err != nil {
		return err
	}
	if _, err := hand.Hit(); err != nil {
		return err
	}
	g.bus.Publish(HandUpdatedEvent{newEventBase(), hand.View()})
	g.advanceRound()
	return nil
}

// Double doubles a hand's bet, deals one card and ends the hand
func (g *Game) Double(playerID, handID string) error {
	hand, err := g.playerHand(playerID, handID)
	if err != nil {
		return err
	}
	if err := hand.Double(); err != nil {
		return err
	}
	g.bus.Publish(HandUpdatedEvent{newEventBase(), hand.View()})
	g.bus.Publish(BetPlacedEvent{newEventBase(), hand.View(), g.player(playerID).View()})
	g.advanceRound()
	return nil
}

// Stand ends a hand
func (g *Game) Stand(playerID, handID string) error {
	hand, err := g.playerHand(playerID, handID)
	if err != nil {
		return err
	}
	if err := hand.Stand(); err != nil {
		return err
	}
	g.bus.Publish(HandUpdatedEvent{newEventBase(), hand.View()})
	g.advanceRound()
	return nil
}

// Split replaces a two-card pair with two fresh hands. The original stake
// is refunded, then each new hand takes one of the original cards, one
// fresh card, and a fresh bet equal to the original, so the player is
// down exactly one extra bet net. Split hands are not root hands and can
// never count as blackjack.
func (g *Game) Split(playerID, handID string) ([]*PlayerHand, error) {
	hand, err := g.playerHand(playerID, handID)
	if err != nil {
		return nil, err
	}
	if !hand.Can(ActionSplit) {
		return nil, fmt.Errorf("hand %s: cannot split: %w", handID, ErrIllegalAction)
	}
	if !hand.hasBet {
		return nil, fmt.Errorf("hand %s: cannot split: %w", handID, ErrNoBet)
	}

	bet := hand.bet
	g.player(playerID).GiveMoney(bet)

	delete(g.hands, hand.id)
	pos := index(g.handOrder, hand.id)
	g.handOrder = remove(g.handOrder, hand.id)

	children := make([]*PlayerHand, 2)
	for i, card := range hand.cards {
		child := newPlayerHand(g, playerID, false)
		child.DealCard(card)
		child.hit(g.shoe)
		child.PlaceBet(bet)
		g.hands[child.id] = child
		children[i] = child
	}
	// Children take the parent's position in deal order
	g.handOrder = append(g.handOrder[:pos],
		append([]string{children[0].id, children[1].id}, g.handOrder[pos:]...)...)

	g.logger.Info("hand split", "player", playerID, "hand", handID,
		"children", []string{children[0].id, children[1].id})
	for _, child := range children {
		g.bus.Publish(HandUpdatedEvent{newEventBase(), child.View()})
	}
	g.advanceRound()
	return children, nil
}

// BuyInsurance buys the insurance side bet on a hand
func (g *Game) BuyInsurance(playerID, handID string) error {
	hand, err := g.playerHand(playerID, handID)
	if err != nil {
		return err
	}
	if err := hand.BuyInsurance(); err != nil {
		return err
	}
	g.bus.Publish(InsuranceChangedEvent{newEventBase(), hand.View(), g.player(playerID).View()})
	g.advanceRound()
	return nil
}

// DeclineInsurance declines the insurance side bet on a hand
func (g *Game) DeclineInsurance(playerID, handID string) error {
	hand, err := g.playerHand(playerID, handID)
	if err != nil {
		return err
	}
	if err := hand.DeclineInsurance(); err != nil {
		return err
	}
	g.bus.Publish(InsuranceChangedEvent{newEventBase(), hand.View(), g.player(playerID).View()})
	g.advanceRound()
	return nil
}

func (g *Game) playerHand(playerID, handID string) (*PlayerHand, error) {
	if _, ok := g.players[playerID]; !ok {
		return nil, fmt.Errorf("player %s: %w", playerID, ErrUnknownPlayer)
	}
	hand, ok := g.hands[handID]
	if !ok {
		return nil, fmt.Errorf("hand %s: %w", handID, ErrUnknownHand)
	}
	if hand.playerID != playerID {
		return nil, fmt.Errorf("hand %s: %w", handID, ErrNotYourHand)
	}
	return hand, nil
}

// advanceRound walks the phase cycle, taking every transition whose guard
// holds. Re-checking a phase whose guard fails is a no-op, so calling
// this after every command is safe. A single command can cascade through
// several phases: the last stand triggers dealer play and settlement
// synchronously.
func (g *Game) advanceRound() {
	for {
		switch g.state {
		case PlayersReadying:
			if !g.allPlayersReady() {
				return
			}
			g.clearHands()
			g.setState(PlacingBets)

		case PlacingBets:
			if !g.allBetsPlaced() {
				return
			}
			g.dealInitialCards()
			if g.dealer.UpCardIsAce() {
				g.offerInsurance()
				g.setState(Insuring)
			} else {
				g.setState(PlayersPlaying)
			}

		case Insuring:
			if !g.allInsuranceResolved() {
				return
			}
			g.settleInsurance()
			g.setState(PlayersPlaying)

		case PlayersPlaying:
			if !g.allHandsDone() {
				return
			}
			g.setState(DealerPlaying)
			g.playDealer()

		case DealerPlaying:
			if g.dealer.Status() == Hitting {
				return
			}
			g.settleRound()
			g.setState(PlayersReadying)
		}
	}
}

func (g *Game) setState(state RoundState) {
	g.logger.Debug("round state changed", "from", g.state, "to", state)
	g.state = state
	g.bus.Publish(RoundStateChangedEvent{newEventBase(), state})
}

// allPlayersReady requires at least one seated player so an empty table
// can't cycle rounds by itself.
func (g *Game) allPlayersReady() bool {
	if len(g.players) == 0 {
		return false
	}
	for _, p := range g.players {
		if !p.ready {
			return false
		}
	}
	return true
}

func (g *Game) allBetsPlaced() bool {
	if len(g.hands) == 0 {
		return false
	}
	for _, hand := range g.hands {
		if !hand.hasBet {
			return false
		}
	}
	return true
}

// allInsuranceResolved waits on root hands that can still act. A hand
// standing on the deal (a natural) is never offered insurance, so it
// must not hold the phase open.
func (g *Game) allInsuranceResolved() bool {
	for _, hand := range g.hands {
		if !hand.root || hand.status != Hitting {
			continue
		}
		ins := hand.insurance
		if ins == nil || (ins.Status != InsuranceBought && ins.Status != InsuranceDeclined) {
			return false
		}
	}
	return true
}

func (g *Game) allHandsDone() bool {
	for _, hand := range g.hands {
		if hand.status == Hitting {
			return false
		}
	}
	return true
}

// shouldDealerRevealAndPlay is false when no player hand needs a dealer
// total: everyone busted, or every live hand is an unbeatable natural and
// the dealer has none. True otherwise.
func (g *Game) shouldDealerRevealAndPlay() bool {
	if len(g.hands) == 0 {
		return false
	}
	allBusted := true
	for _, hand := range g.hands {
		if hand.status != Busted {
			allBusted = false
			break
		}
	}
	if allBusted {
		return false
	}
	if !g.dealer.Blackjack() {
		allNaturals := true
		for _, hand := range g.hands {
			if hand.status != Busted && !hand.Blackjack() {
				allNaturals = false
				break
			}
		}
		if allNaturals {
			return false
		}
	}
	return true
}

// clearHands resets the dealer and replaces every player's hands with a
// single empty root hand for the new round.
func (g *Game) clearHands() {
	g.dealer.Clear()
	g.hands = make(map[string]*PlayerHand)
	g.handOrder = g.handOrder[:0]
	for _, playerID := range g.playerOrder {
		hand := newPlayerHand(g, playerID, true)
		g.hands[hand.id] = hand
		g.handOrder = append(g.handOrder, hand.id)
	}
	g.bus.Publish(HandsClearedEvent{newEventBase(), g.handViews(), g.dealer.View()})
}

// dealInitialCards deals two passes round-robin: each pass one card to
// every hand in table order, then one to the dealer. The dealer's first
// card is face-up, the second stays down as the hole card.
func (g *Game) dealInitialCards() {
	for pass := 0; pass < 2; pass++ {
		for _, handID := range g.handOrder {
			g.hands[handID].hit(g.shoe)
		}
		card := g.shoe.Draw()
		if pass == 0 {
			card.Reveal()
		}
		g.dealer.DealCard(card)
	}
	for _, handID := range g.handOrder {
		g.bus.Publish(HandUpdatedEvent{newEventBase(), g.hands[handID].View()})
	}
	g.bus.Publish(DealerUpdatedEvent{newEventBase(), g.dealer.View()})
}

// offerInsurance opens the side bet on every root hand still able to
// act. A hand already standing on the deal has no decision to make and
// is skipped, so it carries no dangling offer.
func (g *Game) offerInsurance() {
	for _, handID := range g.handOrder {
		if hand := g.hands[handID]; hand.root && hand.status == Hitting {
			hand.offerInsurance()
		}
	}
	g.logger.Info("insurance offered")
	g.bus.Publish(InsuranceOfferedEvent{newEventBase(), g.handViews()})
}

func (g *Game) settleInsurance() {
	for _, handID := range g.handOrder {
		hand := g.hands[handID]
		if hand.insurance == nil {
			continue
		}
		if err := hand.SettleInsurance(); err != nil {
			g.logger.Error("insurance settlement failed", "hand", handID, "error", err)
			continue
		}
		g.bus.Publish(InsuranceChangedEvent{newEventBase(), hand.View(), g.player(hand.playerID).View()})
	}
}

func (g *Game) playDealer() {
	for _, action := range g.dealer.Play() {
		event := DealerActionEvent{
			eventBase: newEventBase(),
			Kind:      action.Kind,
			Dealer:    g.dealer.View(),
		}
		if action.Card != nil {
			view := newCardView(action.Card)
			event.Card = &view
		}
		g.bus.Publish(event)
	}
}

// settleRound resolves every hand's bet and un-readies all players. A
// settlement fallthrough is a logic bug; it is logged loudly and the
// remaining hands still settle.
func (g *Game) settleRound() {
	results := make([]HandResult, 0, len(g.handOrder))
	for _, handID := range g.handOrder {
		hand := g.hands[handID]
		if err := hand.SettleBet(); err != nil {
			g.logger.Error("bet settlement failed", "hand", handID, "error", err)
			continue
		}
		results = append(results, HandResult{
			HandID:   hand.id,
			PlayerID: hand.playerID,
			Status:   hand.settlement.Status,
			Winnings: hand.settlement.Winnings,
		})
	}
	for _, p := range g.players {
		p.ready = false
	}
	g.logger.Info("round settled", "hands", len(results))
	g.bus.Publish(RoundSettledEvent{newEventBase(), results, g.playerViews(), g.dealer.View()})
}

func (g *Game) playerViews() []PlayerView {
	views := make([]PlayerView, 0, len(g.playerOrder))
	for _, id := range g.playerOrder {
		views = append(views, g.players[id].View())
	}
	return views
}

func (g *Game) handViews() []HandView {
	views := make([]HandView, 0, len(g.handOrder))
	for _, id := range g.handOrder {
		views = append(views, g.hands[id].View())
	}
	return views
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func index(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
