package game

// Player is a seated participant with a money balance. Money moves only
// through GiveMoney and TakeMoney, called by hand operations (bets,
// doubles, insurance, settlement); no other path touches the balance.
type Player struct {
	id    string
	name  string
	money int
	ready bool
}

// ID returns the player's unique identifier
func (p *Player) ID() string {
	return p.id
}

// Name returns the player's display name
func (p *Player) Name() string {
	return p.name
}

// Money returns the player's current balance
func (p *Player) Money() int {
	return p.money
}

// Ready returns true if the player is ready for the next round
func (p *Player) Ready() bool {
	return p.ready
}

// GiveMoney credits the player's balance
func (p *Player) GiveMoney(amount int) {
	p.money += amount
}

// TakeMoney debits the player's balance. Balances may go negative; the
// table's stakes are the transport layer's concern, not the core's.
func (p *Player) TakeMoney(amount int) {
	p.money -= amount
}
