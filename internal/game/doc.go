// Package game implements the iterated two-player dilemma played inside a
// tournament.
//
// The main type is Match, which pairs two players for a run of turns. On
// every turn both players' strategies observe the same History snapshot,
// choose an Action, and the pair of actions is resolved against a fixed
// payoff table.
//
// # Basic Usage
//
//	p1 := game.NewPlayer("Tit4Tat", titForTat)
//	p2 := game.NewPlayer("Grudge", grudge)
//	m := game.NewMatch(p1, p2)
//	for range 200 {
//	    r1, r2 := m.PlayTurn()
//	    // r1.Points, r2.Points
//	}
//
// # Roles
//
// A player is player 1 in some matches and player 2 in others. Strategies
// must work out which side of a TurnRecord is theirs by comparing their own
// PlayerID against the record, never by position. TurnRecord.Own and
// TurnRecord.Opponent do that comparison.
//
// # History
//
// History is a read-only view over the records appended so far. A view
// handed to a strategy stays valid after the match moves on: records are
// only ever appended and the view cannot see past its own length.
package game
