package main

import (
	"os"
	"time"

	"github.com/lox/dilemma/cmd/dilemma/shared"
	"github.com/lox/dilemma/internal/simulator"
)

// SimulateCmd evaluates one strategy over many independent matches
type SimulateCmd struct {
	Subject   string        `arg:"" help:"Strategy to evaluate"`
	Opponent  string        `default:"mixed" help:"Opponent strategy, or mixed to cycle through all of them"`
	Matches   int           `default:"1000" help:"Number of matches to simulate"`
	MinRounds int           `default:"150" help:"Minimum rounds per match"`
	MaxRounds int           `default:"250" help:"Maximum rounds per match (exclusive)"`
	Seed      int64         `default:"0" help:"RNG seed (0 for random)"`
	Timeout   time.Duration `default:"5s" help:"Per-match timeout"`
	Debug     bool          `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	level := "info"
	if c.Debug {
		level = "debug"
	}
	logger, err := shared.SetupLogger(os.Stderr, level, false)
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Starting simulation",
		"subject", c.Subject,
		"opponent", c.Opponent,
		"matches", c.Matches,
		"seed", seed)

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	sim := simulator.New(simulator.Config{
		Matches:   c.Matches,
		Subject:   c.Subject,
		Opponent:  c.Opponent,
		MinRounds: c.MinRounds,
		MaxRounds: c.MaxRounds,
		Seed:      seed,
		Timeout:   c.Timeout,
		Logger:    logger,
	})

	stats, opponentInfo, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, stats, c.Subject, opponentInfo)
	return nil
}
