package strategy

import (
	"github.com/lox/dilemma/internal/game"
	"github.com/lox/dilemma/internal/randutil"
)

// Random cooperates or defects with equal probability
type Random struct {
	rng *randutil.Locked
}

// NewRandom creates a Random strategy drawing from its own generator
func NewRandom(seed int64) *Random {
	return &Random{rng: randutil.NewLocked(seed)}
}

func (r *Random) Decide(game.PlayerID, game.History) game.Action {
	if r.rng.IntN(2) == 0 {
		return game.Cooperate
	}
	return game.Defect
}

// Occasional plays tit-for-tat but defects out of the blue on a small
// fraction of turns after the first.
type Occasional struct {
	rng *randutil.Locked
	// Percent is the chance of an unprovoked defection, out of 100
	Percent int
}

// NewOccasional creates an Occasional strategy with its own generator
func NewOccasional(seed int64, percent int) *Occasional {
	return &Occasional{rng: randutil.NewLocked(seed), Percent: percent}
}

func (o *Occasional) Decide(self game.PlayerID, history game.History) game.Action {
	last, ok := history.LastOpponentAction(self)
	if !ok {
		return game.Cooperate
	}
	if o.rng.IntN(100) < o.Percent {
		return game.Defect
	}
	return last
}
