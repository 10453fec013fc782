package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/dilemma/internal/game"
)

// TurnResult is one player's view of a single turn
type TurnResult struct {
	Points   game.Points // Points earned this turn
	Action   game.Action // What the player chose
	Opponent game.Action // What the opponent chose
	Role     int         // 1 when the player was player 1 of the match, 2 otherwise
}

// Outcome classifies a turn from the player's side
type Outcome int

const (
	Reward     Outcome = iota // both cooperated
	Sucker                    // cooperated against a defector
	Temptation                // defected against a cooperator
	Punishment                // both defected
)

func (o Outcome) String() string {
	switch o {
	case Reward:
		return "reward"
	case Sucker:
		return "sucker"
	case Temptation:
		return "temptation"
	case Punishment:
		return "punishment"
	}
	return "unknown"
}

func classify(own, opp game.Action) Outcome {
	switch {
	case own == game.Cooperate && opp == game.Cooperate:
		return Reward
	case own == game.Cooperate:
		return Sucker
	case opp == game.Cooperate:
		return Temptation
	default:
		return Punishment
	}
}

// RoleStats tracks statistics for one side of the match pairing
type RoleStats struct {
	Turns  int
	Points float64
}

// Statistics accumulates per-turn payoffs for one player
type Statistics struct {
	Turns        int
	SumPoints    float64
	SumPoints2   float64   // Sum of squares for variance calculation
	Values       []float64 // Store all values for median/percentile calculation
	Cooperations int

	// Outcome analytics, indexed by Outcome
	Outcomes      [4]int
	OutcomePoints [4]float64

	// Role analytics. Index 0 unused, 1-2 for player 1 / player 2
	RoleResults [3]RoleStats
}

// Mean returns the average points per turn
func (s *Statistics) Mean() float64 {
	if s.Turns == 0 {
		return 0
	}
	return s.SumPoints / float64(s.Turns)
}

// Variance returns the sample variance of per-turn points
func (s *Statistics) Variance() float64 {
	if s.Turns < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumPoints2 - float64(s.Turns)*mean*mean) / float64(s.Turns-1)
	if v < 0 {
		// rounding on constant series
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation of per-turn points
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Turns == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Turns))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// CooperationRate returns the fraction of turns in which the player cooperated
func (s *Statistics) CooperationRate() float64 {
	if s.Turns == 0 {
		return 0
	}
	return float64(s.Cooperations) / float64(s.Turns)
}

// Add incorporates one turn into the statistics
func (s *Statistics) Add(result TurnResult) {
	points := float64(result.Points)
	s.Turns++
	s.SumPoints += points
	s.SumPoints2 += points * points
	s.Values = append(s.Values, points)

	if result.Action == game.Cooperate {
		s.Cooperations++
	}

	outcome := classify(result.Action, result.Opponent)
	s.Outcomes[outcome]++
	s.OutcomePoints[outcome] += points

	if result.Role == 1 || result.Role == 2 {
		s.RoleResults[result.Role].Turns++
		s.RoleResults[result.Role].Points += points
	}
}

// Median returns the median per-turn payoff
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// RoleMean returns the mean payoff when playing as player 1 or player 2
func (s *Statistics) RoleMean(role int) float64 {
	if role < 1 || role > 2 {
		return 0
	}
	rs := s.RoleResults[role]
	if rs.Turns == 0 {
		return 0
	}
	return rs.Points / float64(rs.Turns)
}

// Validate checks that the accounting is consistent
func (s *Statistics) Validate() error {
	if s.Turns <= 0 {
		return fmt.Errorf("invalid turns count: %d", s.Turns)
	}

	if len(s.Values) != s.Turns {
		return fmt.Errorf("values array length (%d) does not match turns count (%d)",
			len(s.Values), s.Turns)
	}

	var outcomeTurns int
	var outcomePoints float64
	for i := range s.Outcomes {
		outcomeTurns += s.Outcomes[i]
		outcomePoints += s.OutcomePoints[i]
	}
	if outcomeTurns != s.Turns {
		return fmt.Errorf("outcome turns total (%d) does not match turns (%d)", outcomeTurns, s.Turns)
	}
	if math.Abs(outcomePoints-s.SumPoints) > 1e-6 {
		return fmt.Errorf("ledger mismatch: points=%.2f, outcome points=%.2f", s.SumPoints, outcomePoints)
	}

	if s.Cooperations > s.Turns {
		return fmt.Errorf("cooperations (%d) exceed turns (%d)", s.Cooperations, s.Turns)
	}

	return nil
}
