package game

// Strategy decides a player's next action.
//
// Decide receives the deciding player's own identity and a read-only view of
// the match history. On an empty history it must return a default action
// without inspecting anything. Implementations must not assume they were
// player 1; use TurnRecord.Own and TurnRecord.Opponent to read a record.
// Decide may be called from several goroutines when matches run in parallel.
type Strategy interface {
	Decide(self PlayerID, history History) Action
}

// StrategyFunc adapts an ordinary function to the Strategy interface
type StrategyFunc func(self PlayerID, history History) Action

func (f StrategyFunc) Decide(self PlayerID, history History) Action {
	return f(self, history)
}
