package server

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjackd/internal/deck"
	"github.com/lox/blackjackd/internal/game"
	"github.com/lox/blackjackd/internal/gameid"
)

// fakeBroadcaster records everything a table would send to clients
type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []*Message
}

func (f *fakeBroadcaster) BroadcastToTable(tableID string, msg *Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
}

func (f *fakeBroadcaster) SendToPlayer(playerID string, msg *Message) error {
	return nil
}

func (f *fakeBroadcaster) types() []MessageType {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]MessageType, len(f.messages))
	for i, msg := range f.messages {
		types[i] = msg.Type
	}
	return types
}

// newStackedTable builds a table around a game dealing the given cards in
// order, so round outcomes are deterministic.
func newStackedTable(cfg TableConfig, broadcaster Broadcaster, clock quartz.Clock, cards ...*deck.Card) *Table {
	t := &Table{
		ID:     gameid.Generate(),
		Name:   cfg.Name,
		cfg:    cfg,
		logger: log.New(io.Discard),
		clock:  clock,
	}
	t.game = game.NewGame(
		game.WithShoe(deck.NewStackedShoe(cards...)),
		game.WithStartingMoney(cfg.StartingMoney),
	)
	t.game.Bus().Subscribe(&tableSubscriber{table: t, broadcaster: broadcaster})
	return t
}

func TestNewTable(t *testing.T) {
	cfg := TableConfig{Name: "main", StartingMoney: 1000, MinBet: 10, MaxBet: 500}
	broadcaster := &fakeBroadcaster{}
	table := NewTable(cfg, broadcaster, log.New(io.Discard), quartz.NewMock(t))

	require.NoError(t, gameid.Validate(table.ID))

	playerID, view := table.Join("alice")
	require.NotEmpty(t, playerID)
	require.Len(t, view.Players, 1)
	assert.Equal(t, "alice", view.Players[0].Name)
	assert.Equal(t, 1000, view.Players[0].Money)

	summary := table.Summary()
	assert.Equal(t, "main", summary.Name)
	assert.Equal(t, 1, summary.Players)
	assert.Equal(t, "players_readying", summary.State)
	assert.Equal(t, 10, summary.MinBet)

	require.NoError(t, table.Leave(playerID))
	assert.Equal(t, 0, table.Summary().Players)
}

func TestTableEnforcesBetLimits(t *testing.T) {
	cfg := TableConfig{Name: "main", StartingMoney: 1000, MinBet: 10, MaxBet: 500}
	table := newStackedTable(cfg, &fakeBroadcaster{}, quartz.NewMock(t))

	playerID, _ := table.Join("alice")
	require.NoError(t, table.Ready(playerID))
	handID := table.game.Hands(playerID)[0].ID()

	assert.Error(t, table.PlaceBet(playerID, handID, 5))
	assert.Error(t, table.PlaceBet(playerID, handID, 501))
}

func TestTableForwardsGameEvents(t *testing.T) {
	cfg := TableConfig{Name: "main", StartingMoney: 1000, MinBet: 10, MaxBet: 500}
	broadcaster := &fakeBroadcaster{}
	table := newStackedTable(cfg, broadcaster, quartz.NewMock(t),
		deck.NewCard(deck.Spades, deck.Ten),    // alice
		deck.NewCard(deck.Diamonds, deck.Ten),  // dealer up-card
		deck.NewCard(deck.Hearts, deck.Nine),   // alice
		deck.NewCard(deck.Diamonds, deck.Seven), // dealer hole card
	)

	playerID, _ := table.Join("alice")
	require.NoError(t, table.Ready(playerID))
	handID := table.game.Hands(playerID)[0].ID()
	require.NoError(t, table.PlaceBet(playerID, handID, 10))
	require.NoError(t, table.Stand(playerID, handID))

	types := broadcaster.types()
	counts := make(map[MessageType]int)
	for _, mt := range types {
		counts[mt]++
	}

	// One full round: join, ready, deal, stand, dealer play, settlement
	assert.Equal(t, 1, counts[MessageType(game.EventTypePlayerJoined)])
	assert.Equal(t, 1, counts[MessageType(game.EventTypeReadyChanged)])
	assert.Equal(t, 1, counts[MessageType(game.EventTypeHandsCleared)])
	assert.Equal(t, 1, counts[MessageType(game.EventTypeBetPlaced)])
	assert.Equal(t, 1, counts[MessageType(game.EventTypeDealerUpdated)])
	assert.Equal(t, 2, counts[MessageType(game.EventTypeDealerAction)]) // reveal, stand
	assert.Equal(t, 1, counts[MessageType(game.EventTypeRoundSettled)])
	assert.GreaterOrEqual(t, counts[MessageType(game.EventTypeRoundStateChanged)], 4)
}

func TestTableStandsIdleHandsOnTimeout(t *testing.T) {
	cfg := TableConfig{Name: "main", StartingMoney: 1000, MinBet: 10, MaxBet: 500, ActionTimeoutMs: 30000}
	mock := quartz.NewMock(t)
	table := newStackedTable(cfg, &fakeBroadcaster{}, mock,
		deck.NewCard(deck.Spades, deck.Ten),    // alice
		deck.NewCard(deck.Diamonds, deck.Ten),  // dealer up-card
		deck.NewCard(deck.Hearts, deck.Nine),   // alice, nineteen
		deck.NewCard(deck.Diamonds, deck.Seven), // dealer hole card, seventeen
	)

	playerID, _ := table.Join("alice")
	require.NoError(t, table.Ready(playerID))
	handID := table.game.Hands(playerID)[0].ID()
	require.NoError(t, table.PlaceBet(playerID, handID, 10))
	require.Equal(t, game.PlayersPlaying, table.game.RoundState())

	// The player walks away; the timeout stands their hand and the round
	// plays out without them.
	mock.Advance(30 * time.Second).MustWait(context.Background())

	assert.Equal(t, game.PlayersReadying, table.game.RoundState())
	player, ok := table.game.Player(playerID)
	require.True(t, ok)
	assert.Equal(t, 1010, player.Money())
}

func TestTableDeclinesIdleInsuranceOnTimeout(t *testing.T) {
	cfg := TableConfig{Name: "main", StartingMoney: 1000, MinBet: 10, MaxBet: 500, ActionTimeoutMs: 30000}
	mock := quartz.NewMock(t)
	table := newStackedTable(cfg, &fakeBroadcaster{}, mock,
		deck.NewCard(deck.Spades, deck.Ten),   // alice
		deck.NewCard(deck.Diamonds, deck.Ace), // dealer up-card
		deck.NewCard(deck.Hearts, deck.Nine),  // alice, nineteen
		deck.NewCard(deck.Diamonds, deck.Nine), // dealer hole card, soft twenty
	)

	playerID, _ := table.Join("alice")
	require.NoError(t, table.Ready(playerID))
	handID := table.game.Hands(playerID)[0].ID()
	require.NoError(t, table.PlaceBet(playerID, handID, 10))
	require.Equal(t, game.Insuring, table.game.RoundState())

	// The unanswered offer is declined on timeout and play continues
	mock.Advance(30 * time.Second).MustWait(context.Background())
	require.Equal(t, game.PlayersPlaying, table.game.RoundState())
	hand, ok := table.game.Hand(handID)
	require.True(t, ok)
	assert.Equal(t, game.InsuranceDeclined, hand.Insurance().Status)

	// The timer re-arms for the playing phase; a second timeout stands
	// the hand and the round settles.
	mock.Advance(30 * time.Second).MustWait(context.Background())
	assert.Equal(t, game.PlayersReadying, table.game.RoundState())
	player, ok := table.game.Player(playerID)
	require.True(t, ok)
	assert.Equal(t, 990, player.Money())
}

func TestTableTimeoutDisarmsOutsidePlayingPhase(t *testing.T) {
	cfg := TableConfig{Name: "main", StartingMoney: 1000, MinBet: 10, MaxBet: 500, ActionTimeoutMs: 30000}
	mock := quartz.NewMock(t)
	table := newStackedTable(cfg, &fakeBroadcaster{}, mock)

	playerID, _ := table.Join("alice")
	require.NoError(t, table.Ready(playerID))
	require.Equal(t, game.PlacingBets, table.game.RoundState())
	assert.Nil(t, table.turnTimer)
}

func TestTableRejectsUnknownPlayer(t *testing.T) {
	cfg := TableConfig{Name: "main", StartingMoney: 1000, MinBet: 10, MaxBet: 500}
	table := newStackedTable(cfg, &fakeBroadcaster{}, quartz.NewMock(t))
	assert.ErrorIs(t, table.Leave("nobody"), game.ErrUnknownPlayer)
}
