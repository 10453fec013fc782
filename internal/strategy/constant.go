package strategy

import "github.com/lox/dilemma/internal/game"

// Always plays the same action every turn
type Always game.Action

func (a Always) Decide(game.PlayerID, game.History) game.Action {
	return game.Action(a)
}
