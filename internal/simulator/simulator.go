// Package simulator measures one strategy against an opponent over many
// independent matches and summarises the per-turn payoff distribution.
package simulator

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/dilemma/internal/game"
	"github.com/lox/dilemma/internal/randutil"
	"github.com/lox/dilemma/internal/statistics"
	"github.com/lox/dilemma/internal/strategy"
)

// Mixed cycles the opponent through every registered strategy
const Mixed = "mixed"

// Config holds configuration for running simulations
type Config struct {
	Matches   int
	Subject   string
	Opponent  string
	MinRounds int
	MaxRounds int // exclusive; <= MinRounds pins the round count
	Seed      int64
	Timeout   time.Duration // per match; zero disables the guard
	Logger    *log.Logger
}

// Simulator plays the subject strategy against its opponents
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays every match and returns the subject's statistics along with a
// description of the opponent field.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, string, error) {
	if !strategy.Exists(s.config.Subject) {
		return nil, "", fmt.Errorf("subject: %w: %s", strategy.ErrUnknownStrategy, s.config.Subject)
	}

	opponents := []string{s.config.Opponent}
	opponentInfo := s.config.Opponent
	if s.config.Opponent == Mixed {
		opponents = strategy.Names()
		opponentInfo = fmt.Sprintf("mixed(%s)", strings.Join(opponents, ","))
	} else if !strategy.Exists(s.config.Opponent) {
		return nil, "", fmt.Errorf("opponent: %w: %s", strategy.ErrUnknownStrategy, s.config.Opponent)
	}

	stats := &statistics.Statistics{}
	for i := 0; i < s.config.Matches; i++ {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		matchSeed := randutil.Derive(s.config.Seed, i)
		opponent := opponents[i%len(opponents)]

		// Alternate seats so neither side keeps the player 1 slot
		seat := i%2 + 1

		results, err := s.playMatchWithTimeout(ctx, opponent, matchSeed, seat)
		if err != nil {
			return nil, "", fmt.Errorf("match %d vs %s: %w", i+1, opponent, err)
		}
		for _, r := range results {
			stats.Add(r)
		}

		s.config.Logger.Debug("Match simulated", "match", i+1, "opponent", opponent, "turns", len(results))
	}

	if err := stats.Validate(); err != nil {
		return nil, "", fmt.Errorf("statistics validation failed: %w", err)
	}

	return stats, opponentInfo, nil
}

// playMatchWithTimeout runs a single match, giving up on a strategy that
// hangs
func (s *Simulator) playMatchWithTimeout(ctx context.Context, opponent string, matchSeed int64, seat int) ([]statistics.TurnResult, error) {
	if s.config.Timeout <= 0 {
		return s.playMatch(opponent, matchSeed, seat)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	type result struct {
		turns []statistics.TurnResult
		err   error
	}
	resultCh := make(chan result, 1)

	go func() {
		turns, err := s.playMatch(opponent, matchSeed, seat)
		resultCh <- result{turns, err}
	}()

	select {
	case r := <-resultCh:
		return r.turns, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("match timed out after %v (seed: %d, seat: %d)", s.config.Timeout, matchSeed, seat)
	}
}

// playMatch plays fresh strategy instances against each other and returns
// the subject's side of every turn
func (s *Simulator) playMatch(opponent string, matchSeed int64, seat int) ([]statistics.TurnResult, error) {
	subject, err := strategy.New(s.config.Subject, randutil.Derive(matchSeed, 0))
	if err != nil {
		return nil, err
	}
	other, err := strategy.New(opponent, randutil.Derive(matchSeed, 1))
	if err != nil {
		return nil, err
	}

	us := game.NewPlayer(s.config.Subject, subject)
	them := game.NewPlayer(opponent, other)

	var m *game.Match
	if seat == 1 {
		m = game.NewMatch(us, them)
	} else {
		m = game.NewMatch(them, us)
	}

	rounds := randutil.IntRange(randutil.New(matchSeed), s.config.MinRounds, s.config.MaxRounds)
	turns := make([]statistics.TurnResult, 0, rounds)
	for range rounds {
		r1, r2 := m.PlayTurn()
		own, opp := r1, r2
		if seat == 2 {
			own, opp = r2, r1
		}
		turns = append(turns, statistics.TurnResult{
			Points:   own.Points,
			Action:   own.Action,
			Opponent: opp.Action,
			Role:     seat,
		})
	}
	return turns, nil
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, subject, opponentInfo string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== %s vs %s ===\n", subject, opponentInfo)
	fmt.Fprintf(w, "Turns played: %d\n", stats.Turns)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f points/turn\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f points/turn\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] points/turn\n", low, high)
	fmt.Fprintf(w, "Cooperation rate: %.1f%%\n", stats.CooperationRate()*100)

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	for _, o := range []statistics.Outcome{statistics.Reward, statistics.Sucker, statistics.Temptation, statistics.Punishment} {
		n := stats.Outcomes[o]
		pct := 0.0
		if stats.Turns > 0 {
			pct = float64(n) / float64(stats.Turns) * 100
		}
		fmt.Fprintf(w, "%-10s %8d turns (%5.1f%%)\n", o, n, pct)
	}

	fmt.Fprintf(w, "\n=== SEAT ANALYSIS ===\n")
	for role := 1; role <= 2; role++ {
		rs := stats.RoleResults[role]
		if rs.Turns > 0 {
			fmt.Fprintf(w, "Player %d: %d turns, %.3f points/turn\n", role, rs.Turns, stats.RoleMean(role))
		}
	}
}
