package game

import "github.com/lox/blackjackd/internal/deck"

// Client views are structural snapshots safe to send off the server.
// Hidden cards carry only a hidden marker, and every derived field
// (value, status, actions) is computed at build time, never cached.

// CardView is the client-safe rendering of a card
type CardView struct {
	Hidden bool   `json:"hidden,omitempty"`
	Suit   string `json:"suit,omitempty"`
	Rank   string `json:"rank,omitempty"`
}

func newCardView(c *deck.Card) CardView {
	if !c.Revealed() {
		return CardView{Hidden: true}
	}
	return CardView{Suit: c.Suit.String(), Rank: c.Rank.String()}
}

// ValueView is the client-safe rendering of a hand value
type ValueView struct {
	Hard int `json:"hard"`
	Soft int `json:"soft,omitempty"`
	Best int `json:"best"`
}

func newValueView(v Value) ValueView {
	return ValueView{Hard: v.Hard, Soft: v.Soft, Best: v.Best()}
}

// InsuranceView is the client-safe rendering of an insurance side bet
type InsuranceView struct {
	Status   InsuranceStatus `json:"status"`
	Bet      int             `json:"bet,omitempty"`
	Outcome  SettleStatus    `json:"outcome,omitempty"`
	Winnings int             `json:"winnings,omitempty"`
}

// SettlementView is the client-safe rendering of a settled bet
type SettlementView struct {
	Status   SettleStatus `json:"status"`
	Winnings int          `json:"winnings"`
}

// HandView is the client-safe rendering of a hand. Dealer hands have no
// id, bet or actions.
type HandView struct {
	ID         string          `json:"id,omitempty"`
	PlayerID   string          `json:"player_id,omitempty"`
	Root       bool            `json:"root,omitempty"`
	Cards      []CardView      `json:"cards"`
	Status     string          `json:"status"`
	Value      ValueView       `json:"value"`
	Actions    []Action        `json:"actions,omitempty"`
	Bet        *int            `json:"bet,omitempty"`
	Insurance  *InsuranceView  `json:"insurance,omitempty"`
	Settlement *SettlementView `json:"settlement,omitempty"`
}

// PlayerView is the client-safe rendering of a player
type PlayerView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Money int    `json:"money"`
	Ready bool   `json:"ready"`
}

// GameView is a full-table snapshot sent to joining clients
type GameView struct {
	State   string       `json:"state"`
	Dealer  HandView     `json:"dealer"`
	Players []PlayerView `json:"players"`
	Hands   []HandView   `json:"hands"`
}

func cardViews(cards []*deck.Card) []CardView {
	views := make([]CardView, len(cards))
	for i, c := range cards {
		views[i] = newCardView(c)
	}
	return views
}

// View builds the client-safe snapshot of a player hand
func (ph *PlayerHand) View() HandView {
	view := HandView{
		ID:       ph.id,
		PlayerID: ph.playerID,
		Root:     ph.root,
		Cards:    cardViews(ph.cards),
		Status:   ph.status.String(),
		Value:    newValueView(ph.Value()),
		Actions:  ph.Actions(),
	}
	if ph.hasBet {
		bet := ph.bet
		view.Bet = &bet
	}
	if ins := ph.insurance; ins != nil {
		view.Insurance = &InsuranceView{
			Status:   ins.Status,
			Bet:      ins.Bet,
			Outcome:  ins.Outcome,
			Winnings: ins.Winnings,
		}
	}
	if s := ph.settlement; s != nil {
		view.Settlement = &SettlementView{Status: s.Status, Winnings: s.Winnings}
	}
	return view
}

// View builds the client-safe snapshot of the dealer's hand. The value is
// computed over revealed cards only, so the hole card leaks nothing.
func (d *Dealer) View() HandView {
	return HandView{
		Cards:  cardViews(d.cards),
		Status: d.status.String(),
		Value:  newValueView(d.Value()),
	}
}

// View builds the client-safe snapshot of a player
func (p *Player) View() PlayerView {
	return PlayerView{ID: p.id, Name: p.name, Money: p.money, Ready: p.ready}
}

// View builds a full-table snapshot
func (g *Game) View() GameView {
	players := make([]PlayerView, 0, len(g.playerOrder))
	for _, id := range g.playerOrder {
		players = append(players, g.players[id].View())
	}
	hands := make([]HandView, 0, len(g.handOrder))
	for _, id := range g.handOrder {
		hands = append(hands, g.hands[id].View())
	}
	return GameView{
		State:   g.state.String(),
		Dealer:  g.dealer.View(),
		Players: players,
		Hands:   hands,
	}
}
