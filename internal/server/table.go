package server

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjackd/internal/deck"
	"github.com/lox/blackjackd/internal/game"
	"github.com/lox/blackjackd/internal/gameid"
	"github.com/lox/blackjackd/internal/randutil"
)

// Broadcaster delivers outbound messages for a table. Implemented by the
// WebSocket server; narrowed to an interface so tables are testable
// without a network.
type Broadcaster interface {
	BroadcastToTable(tableID string, msg *Message)
	SendToPlayer(playerID string, msg *Message) error
}

// Table binds one Game to the transport. All game mutations for a table
// go through its mutex, one command at a time in arrival order; this is
// the single-writer path the core requires. Different tables share
// nothing and run concurrently.
type Table struct {
	ID     string
	Name   string
	cfg    TableConfig
	logger *log.Logger

	mu        sync.Mutex
	game      *game.Game
	clock     quartz.Clock
	turnTimer *quartz.Timer
}

// NewTable creates a table with its game and wires event forwarding
func NewTable(cfg TableConfig, broadcaster Broadcaster, logger *log.Logger, clock quartz.Clock) *Table {
	t := &Table{
		ID:     gameid.Generate(),
		Name:   cfg.Name,
		cfg:    cfg,
		logger: logger.WithPrefix("table").With("table", cfg.Name),
		clock:  clock,
	}

	opts := []game.Option{
		game.WithStartingMoney(cfg.StartingMoney),
		game.WithLogger(t.logger),
	}
	if cfg.Seed != 0 {
		opts = append(opts, game.WithShoe(deck.NewShoe(randutil.New(cfg.Seed))))
	}
	t.game = game.NewGame(opts...)
	t.game.Bus().Subscribe(&tableSubscriber{table: t, broadcaster: broadcaster})
	return t
}

// Summary returns lightweight metadata for listings
func (t *Table) Summary() TableSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TableSummary{
		ID:            t.ID,
		Name:          t.Name,
		Players:       len(t.game.View().Players),
		State:         t.game.RoundState().String(),
		StartingMoney: t.cfg.StartingMoney,
		MinBet:        t.cfg.MinBet,
	}
}

// Join seats a player and returns their id plus a table snapshot
func (t *Table) Join(name string) (string, game.GameView) {
	t.mu.Lock()
	defer t.mu.Unlock()
	player := t.game.Join(name)
	t.armTurnTimer()
	return player.ID(), t.game.View()
}

// Leave removes a player from the table
func (t *Table) Leave(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.game.Leave(playerID)
	t.armTurnTimer()
	return err
}

// Ready marks a player ready for the next round
func (t *Table) Ready(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.game.Ready(playerID)
	t.armTurnTimer()
	return err
}

// PlaceBet stakes an amount on a hand, enforcing the table's bet limits
func (t *Table) PlaceBet(playerID, handID string, amount int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if amount < t.cfg.MinBet || amount > t.cfg.MaxBet {
		return fmt.Errorf("bet %d outside table limits %d-%d", amount, t.cfg.MinBet, t.cfg.MaxBet)
	}
	err := t.game.PlaceBet(playerID, handID, amount)
	t.armTurnTimer()
	return err
}

// Hit deals one card to a hand
func (t *Table) Hit(playerID, handID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.game.Hit(playerID, handID)
	t.armTurnTimer()
	return err
}

// Stand ends a hand
func (t *Table) Stand(playerID, handID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.game.Stand(playerID, handID)
	t.armTurnTimer()
	return err
}

// Double doubles a hand's bet and deals its final card
func (t *Table) Double(playerID, handID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.game.Double(playerID, handID)
	t.armTurnTimer()
	return err
}

// Split splits a two-card pair into two hands
func (t *Table) Split(playerID, handID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := t.game.Split(playerID, handID)
	t.armTurnTimer()
	return err
}

// BuyInsurance buys the insurance side bet on a hand
func (t *Table) BuyInsurance(playerID, handID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.game.BuyInsurance(playerID, handID)
	t.armTurnTimer()
	return err
}

// DeclineInsurance declines the insurance side bet on a hand
func (t *Table) DeclineInsurance(playerID, handID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.game.DeclineInsurance(playerID, handID)
	t.armTurnTimer()
	return err
}

// armTurnTimer keeps an idle timer running through the phases that wait
// on player decisions. If the phase stalls past the configured timeout
// the table resolves every idle hand, through the same single-writer
// path a real player command takes. Caller must hold t.mu.
func (t *Table) armTurnTimer() {
	if t.turnTimer != nil {
		t.turnTimer.Stop()
		t.turnTimer = nil
	}
	if t.cfg.ActionTimeout() <= 0 {
		return
	}
	switch t.game.RoundState() {
	case game.Insuring, game.PlayersPlaying:
		t.turnTimer = t.clock.AfterFunc(t.cfg.ActionTimeout(), t.resolveIdleHands)
	}
}

// resolveIdleHands declines unanswered insurance offers or stands hands
// still hitting, depending on which phase timed out.
func (t *Table) resolveIdleHands() {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.game.RoundState() {
	case game.Insuring:
		t.logger.Warn("insuring phase timed out, declining idle offers")
		for _, hand := range t.game.AllHands() {
			ins := hand.Insurance()
			if ins == nil || ins.Status != game.InsuranceOffered {
				continue
			}
			if err := t.game.DeclineInsurance(hand.PlayerID(), hand.ID()); err != nil {
				t.logger.Error("failed to auto-decline insurance", "hand", hand.ID(), "error", err)
			}
		}
	case game.PlayersPlaying:
		t.logger.Warn("playing phase timed out, standing idle hands")
		for _, hand := range t.game.AllHands() {
			if hand.Status() != game.Hitting {
				continue
			}
			if err := t.game.Stand(hand.PlayerID(), hand.ID()); err != nil {
				t.logger.Error("failed to auto-stand hand", "hand", hand.ID(), "error", err)
			}
		}
	default:
		return
	}
	t.armTurnTimer()
}

// tableSubscriber forwards game events to connected clients. Rejected
// commands never come through here; those are unicast to the offender by
// the connection layer.
type tableSubscriber struct {
	table       *Table
	broadcaster Broadcaster
}

func (ts *tableSubscriber) OnEvent(event game.Event) {
	var (
		msg *Message
		err error
	)

	switch e := event.(type) {
	case game.PlayerJoinedEvent:
		msg, err = NewMessage(MessageType(e.EventType()), PlayerJoinedData{Player: e.Player, Hand: e.Hand})
	case game.PlayerLeftEvent:
		msg, err = NewMessage(MessageType(e.EventType()), PlayerLeftData{PlayerID: e.PlayerID})
	case game.ReadyChangedEvent:
		msg, err = NewMessage(MessageType(e.EventType()), ReadyChangedData{Players: e.Players})
	case game.RoundStateChangedEvent:
		msg, err = NewMessage(MessageType(e.EventType()), RoundStateData{State: e.State.String()})
	case game.HandsClearedEvent:
		msg, err = NewMessage(MessageType(e.EventType()), HandsClearedData{Hands: e.Hands, Dealer: e.Dealer})
	case game.BetPlacedEvent:
		msg, err = NewMessage(MessageType(e.EventType()), BetPlacedData{Hand: e.Hand, Player: e.Player})
	case game.HandUpdatedEvent:
		msg, err = NewMessage(MessageType(e.EventType()), HandUpdatedData{Hand: e.Hand})
	case game.InsuranceOfferedEvent:
		msg, err = NewMessage(MessageType(e.EventType()), InsuranceOfferedData{Hands: e.Hands})
	case game.InsuranceChangedEvent:
		msg, err = NewMessage(MessageType(e.EventType()), InsuranceChangedData{Hand: e.Hand, Player: e.Player})
	case game.DealerUpdatedEvent:
		msg, err = NewMessage(MessageType(e.EventType()), DealerUpdatedData{Dealer: e.Dealer})
	case game.DealerActionEvent:
		msg, err = NewMessage(MessageType(e.EventType()), DealerActionData{Kind: string(e.Kind), Card: e.Card, Dealer: e.Dealer})
	case game.RoundSettledEvent:
		msg, err = NewMessage(MessageType(e.EventType()), RoundSettledData{Results: e.Results, Players: e.Players, Dealer: e.Dealer})
	default:
		return
	}

	if err != nil {
		ts.table.logger.Error("failed to encode event", "type", event.EventType(), "error", err)
		return
	}
	ts.broadcaster.BroadcastToTable(ts.table.ID, msg)
}
