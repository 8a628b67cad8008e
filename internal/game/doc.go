// Package game implements the blackjack round state machine and
// settlement engine. A Game owns all mutable round state for one table:
// the shoe, the dealer, every seated player and their hands. Inbound
// player commands are validated against each hand's derived action set,
// and every command re-checks the round-advance predicates so the round
// cascades through phases as soon as their guards are met.
//
// The package performs no I/O and contains no locking: callers must
// serialize all mutations of a Game behind a single writer (the server
// layer holds one mutex per table). State changes are announced on an
// EventBus; the transport layer subscribes and decides what to broadcast.
package game
