package strategy

import "github.com/lox/dilemma/internal/game"

// TitForTat opens with cooperation, then copies the opponent's last action
type TitForTat struct {
	// Opening is the first move; Defect gives the "nasty" variant
	Opening game.Action
}

func (s TitForTat) Decide(self game.PlayerID, history game.History) game.Action {
	if last, ok := history.LastOpponentAction(self); ok {
		return last
	}
	return s.Opening
}

// AntiTitForTat does the opposite of whatever the opponent did last
type AntiTitForTat struct {
	Opening game.Action
}

func (s AntiTitForTat) Decide(self game.PlayerID, history game.History) game.Action {
	if last, ok := history.LastOpponentAction(self); ok {
		return last.Opposite()
	}
	return s.Opening
}

// Grudge cooperates until the opponent defects once, then defects forever
type Grudge struct{}

func (Grudge) Decide(self game.PlayerID, history game.History) game.Action {
	if history.OpponentDefected(self) {
		return game.Defect
	}
	return game.Cooperate
}

// FairNSquare is tit-for-tat that looks two turns back: after a turn where
// both defected it keeps defecting, and after a turn where it defected
// against a cooperator it makes amends by cooperating.
type FairNSquare struct{}

func (FairNSquare) Decide(self game.PlayerID, history game.History) game.Action {
	theirs, ok := history.LastOpponentAction(self)
	if !ok {
		return game.Cooperate
	}
	if history.Len() == 1 {
		return theirs
	}

	prompt := history.At(history.Len() - 2)
	myPrompt, _ := prompt.Own(self)
	theirPrompt, _ := prompt.Opponent(self)

	switch {
	case myPrompt == game.Defect && theirPrompt == game.Defect:
		return game.Defect
	case myPrompt == game.Defect && theirPrompt == game.Cooperate:
		return game.Cooperate
	}
	return theirs
}
