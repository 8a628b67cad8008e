package game

import "time"

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypePlayerJoined      EventType = "player_joined"
	EventTypePlayerLeft        EventType = "player_left"
	EventTypeReadyChanged      EventType = "ready_changed"
	EventTypeRoundStateChanged EventType = "round_state_changed"
	EventTypeHandsCleared      EventType = "hands_cleared"
	EventTypeBetPlaced         EventType = "bet_placed"
	EventTypeHandUpdated       EventType = "hand_updated"
	EventTypeInsuranceOffered  EventType = "insurance_offered"
	EventTypeInsuranceChanged  EventType = "insurance_changed"
	EventTypeDealerUpdated     EventType = "dealer_updated"
	EventTypeDealerAction      EventType = "dealer_action"
	EventTypeRoundSettled      EventType = "round_settled"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event represents anything that happens during a round. Events carry
// client-safe view snapshots, never live game state.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

type eventBase struct {
	timestamp time.Time
}

func (e eventBase) Timestamp() time.Time { return e.timestamp }

func newEventBase() eventBase {
	return eventBase{timestamp: time.Now()}
}

// PlayerJoinedEvent is published when a player takes a seat
type PlayerJoinedEvent struct {
	eventBase
	Player PlayerView
	Hand   HandView
}

func (e PlayerJoinedEvent) EventType() EventType { return EventTypePlayerJoined }

// PlayerLeftEvent is published when a player leaves the table
type PlayerLeftEvent struct {
	eventBase
	PlayerID string
}

func (e PlayerLeftEvent) EventType() EventType { return EventTypePlayerLeft }

// ReadyChangedEvent is published when the ready roster changes
type ReadyChangedEvent struct {
	eventBase
	Players []PlayerView
}

func (e ReadyChangedEvent) EventType() EventType { return EventTypeReadyChanged }

// RoundStateChangedEvent is published on every phase transition
type RoundStateChangedEvent struct {
	eventBase
	State RoundState
}

func (e RoundStateChangedEvent) EventType() EventType { return EventTypeRoundStateChanged }

// HandsClearedEvent is published when fresh hands are created for a round
type HandsClearedEvent struct {
	eventBase
	Hands  []HandView
	Dealer HandView
}

func (e HandsClearedEvent) EventType() EventType { return EventTypeHandsCleared }

// BetPlacedEvent is published when a bet lands on a hand
type BetPlacedEvent struct {
	eventBase
	Hand   HandView
	Player PlayerView
}

func (e BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }

// HandUpdatedEvent is published whenever a hand's cards, status or action
// set change (deal, hit, stand, double, split).
type HandUpdatedEvent struct {
	eventBase
	Hand HandView
}

func (e HandUpdatedEvent) EventType() EventType { return EventTypeHandUpdated }

// InsuranceOfferedEvent is published when the dealer shows an ace
type InsuranceOfferedEvent struct {
	eventBase
	Hands []HandView
}

func (e InsuranceOfferedEvent) EventType() EventType { return EventTypeInsuranceOffered }

// InsuranceChangedEvent is published when insurance is bought, declined
// or settled on a hand.
type InsuranceChangedEvent struct {
	eventBase
	Hand   HandView
	Player PlayerView
}

func (e InsuranceChangedEvent) EventType() EventType { return EventTypeInsuranceChanged }

// DealerUpdatedEvent is published when the dealer's hand changes outside
// of its automated play, e.g. the initial deal.
type DealerUpdatedEvent struct {
	eventBase
	Dealer HandView
}

func (e DealerUpdatedEvent) EventType() EventType { return EventTypeDealerUpdated }

// DealerActionEvent is published for each step of the dealer's play, in
// order, so clients can animate the sequence.
type DealerActionEvent struct {
	eventBase
	Kind   DealerActionKind
	Card   *CardView // set for hits
	Dealer HandView
}

func (e DealerActionEvent) EventType() EventType { return EventTypeDealerAction }

// HandResult is one hand's outcome within a settled round
type HandResult struct {
	HandID   string       `json:"hand_id"`
	PlayerID string       `json:"player_id"`
	Status   SettleStatus `json:"status"`
	Winnings int          `json:"winnings"`
}

// RoundSettledEvent is published once every bet in the round is resolved
type RoundSettledEvent struct {
	eventBase
	Results []HandResult
	Players []PlayerView
	Dealer  HandView
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a basic synchronous in-memory event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{subscribers: make([]EventSubscriber, 0)}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
