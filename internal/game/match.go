package game

import "fmt"

// TurnResult is one player's outcome for a single turn
type TurnResult struct {
	Player PlayerID
	Action Action
	Points Points
}

// Match is a repeated pairing of two players. It owns its history
// exclusively; turns are played strictly one after another.
type Match struct {
	player1 *Player
	player2 *Player
	history []TurnRecord
	turns   int
	total1  Points
	total2  Points
}

// NewMatch pairs p1 and p2. p1 is player 1 for the lifetime of the match.
func NewMatch(p1, p2 *Player) *Match {
	return &Match{player1: p1, player2: p2}
}

func (m *Match) Player1() *Player { return m.player1 }
func (m *Match) Player2() *Player { return m.player2 }

// Label names the match for reporting
func (m *Match) Label() string {
	return fmt.Sprintf("%s vs. %s", m.player1.Name(), m.player2.Name())
}

// TurnsPlayed returns the number of completed turns
func (m *Match) TurnsPlayed() int { return m.turns }

// Totals returns the points each side has earned in this match so far
func (m *Match) Totals() (Points, Points) { return m.total1, m.total2 }

// History returns a snapshot view of the turns played so far
func (m *Match) History() History {
	n := len(m.history)
	return History{records: m.history[:n:n]}
}

// PlayTurn asks both strategies for an action against the same pre-turn
// history, records the turn and resolves the payoff.
//
// A strategy that panics or returns an invalid Action aborts the match with
// a panic; there is no recovery path for a misbehaving strategy.
func (m *Match) PlayTurn() (TurnResult, TurnResult) {
	snapshot := m.History()

	a1 := m.player1.Decide(snapshot)
	a2 := m.player2.Decide(snapshot)
	if !a1.Valid() {
		panic(fmt.Sprintf("strategy for %s returned invalid %s", m.player1.Name(), a1))
	}
	if !a2.Valid() {
		panic(fmt.Sprintf("strategy for %s returned invalid %s", m.player2.Name(), a2))
	}

	m.history = append(m.history, TurnRecord{
		Player1: m.player1.ID(),
		Action1: a1,
		Player2: m.player2.ID(),
		Action2: a2,
	})
	m.turns++

	p1, p2 := Resolve(a1, a2)
	m.total1 += p1
	m.total2 += p2

	return TurnResult{Player: m.player1.ID(), Action: a1, Points: p1},
		TurnResult{Player: m.player2.ID(), Action: a2, Points: p2}
}
