package server

import (
	"encoding/json"

	"github.com/lox/blackjackd/internal/game"
)

// MessageType identifies the type of message on the wire
type MessageType string

const (
	// Client -> Server
	MessageTypeAuth             MessageType = "auth"
	MessageTypeListTables       MessageType = "list_tables"
	MessageTypeJoinTable        MessageType = "join_table"
	MessageTypeLeaveTable       MessageType = "leave_table"
	MessageTypeReady            MessageType = "ready"
	MessageTypePlaceBet         MessageType = "place_bet"
	MessageTypeHit              MessageType = "hit"
	MessageTypeStand            MessageType = "stand"
	MessageTypeDouble           MessageType = "double"
	MessageTypeSplit            MessageType = "split"
	MessageTypeBuyInsurance     MessageType = "buy_insurance"
	MessageTypeDeclineInsurance MessageType = "decline_insurance"

	// Server -> Client
	MessageTypeAuthResponse MessageType = "auth_response"
	MessageTypeTableList    MessageType = "table_list"
	MessageTypeTableJoined  MessageType = "table_joined"
	MessageTypeTableLeft    MessageType = "table_left"
	MessageTypeError        MessageType = "error"
	// Game events are forwarded with the event's own type string
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message is the JSON envelope for everything on the wire
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a message with a marshalled payload
func NewMessage(msgType MessageType, data any) (*Message, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{Type: msgType, Data: payload}, nil
}

// AuthData is sent by a client to identify itself
type AuthData struct {
	PlayerName string `json:"player_name"`
}

// AuthResponseData confirms authentication
type AuthResponseData struct {
	Success    bool   `json:"success"`
	PlayerName string `json:"player_name"`
}

// JoinTableData asks to be seated at a table
type JoinTableData struct {
	TableID string `json:"table_id"`
}

// TableJoinedData confirms a seat, carrying the player's id and a full
// table snapshot.
type TableJoinedData struct {
	TableID  string        `json:"table_id"`
	PlayerID string        `json:"player_id"`
	Table    game.GameView `json:"table"`
}

// LeaveTableData asks to leave a table
type LeaveTableData struct {
	TableID string `json:"table_id"`
}

// HandActionData carries a hand-scoped command. Amount is only set for bets.
type HandActionData struct {
	HandID string `json:"hand_id"`
	Amount int    `json:"amount,omitempty"`
}

// TableSummary is lightweight table metadata for listings
type TableSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Players       int    `json:"players"`
	State         string `json:"state"`
	StartingMoney int    `json:"starting_money"`
	MinBet        int    `json:"min_bet"`
}

// TableListData carries the available tables
type TableListData struct {
	Tables []TableSummary `json:"tables"`
}

// ErrorData carries a rejected command back to the offender only
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Outbound payloads for forwarded game events

// PlayerJoinedData announces a new seat
type PlayerJoinedData struct {
	Player game.PlayerView `json:"player"`
	Hand   game.HandView   `json:"hand"`
}

// PlayerLeftData announces a vacated seat
type PlayerLeftData struct {
	PlayerID string `json:"player_id"`
}

// ReadyChangedData announces the ready roster
type ReadyChangedData struct {
	Players []game.PlayerView `json:"players"`
}

// RoundStateData announces a phase transition
type RoundStateData struct {
	State string `json:"state"`
}

// HandsClearedData announces fresh hands for a round
type HandsClearedData struct {
	Hands  []game.HandView `json:"hands"`
	Dealer game.HandView   `json:"dealer"`
}

// BetPlacedData announces a bet and the bettor's new balance
type BetPlacedData struct {
	Hand   game.HandView   `json:"hand"`
	Player game.PlayerView `json:"player"`
}

// HandUpdatedData announces a hand's new cards, status and actions
type HandUpdatedData struct {
	Hand game.HandView `json:"hand"`
}

// InsuranceOfferedData announces the insurance window
type InsuranceOfferedData struct {
	Hands []game.HandView `json:"hands"`
}

// InsuranceChangedData announces a bought, declined or settled side bet
type InsuranceChangedData struct {
	Hand   game.HandView   `json:"hand"`
	Player game.PlayerView `json:"player"`
}

// DealerUpdatedData announces the dealer's visible hand
type DealerUpdatedData struct {
	Dealer game.HandView `json:"dealer"`
}

// DealerActionData announces one step of the dealer's play
type DealerActionData struct {
	Kind   string         `json:"kind"`
	Card   *game.CardView `json:"card,omitempty"`
	Dealer game.HandView  `json:"dealer"`
}

// RoundSettledData announces the round's outcomes and final balances
type RoundSettledData struct {
	Results []game.HandResult `json:"results"`
	Players []game.PlayerView `json:"players"`
	Dealer  game.HandView     `json:"dealer"`
}
