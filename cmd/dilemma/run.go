package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/dilemma/cmd/dilemma/shared"
	"github.com/lox/dilemma/internal/config"
	"github.com/lox/dilemma/internal/monitor"
	"github.com/lox/dilemma/internal/server"
	"github.com/lox/dilemma/internal/strategy"
	"github.com/lox/dilemma/internal/tournament"
	"github.com/lox/dilemma/internal/tui"
	"github.com/muesli/termenv"
)

// RunCmd plays a single tournament
type RunCmd struct {
	Config    string   `short:"c" type:"path" help:"Path to HCL tournament file"`
	Name      string   `help:"Tournament name"`
	MinRounds *int     `help:"Minimum rounds per match"`
	MaxRounds *int     `help:"Maximum rounds per match (exclusive)"`
	Seed      *int64   `help:"Deterministic RNG seed; 0 picks one from the clock"`
	Parallel  int      `help:"Matches to play concurrently"`
	Format    string   `short:"f" help:"Output format: pretty, dots, log, tui or none"`
	Turns     bool     `help:"Print every turn (pretty format)"`
	Stats     bool     `help:"Print per-player statistics when finished"`
	Output    string   `short:"o" type:"path" help:"Write JSON results to this file"`
	Listen    string   `help:"Broadcast live events over websocket on this address, e.g. :8080"`
	LogLevel  string   `help:"Log level (debug, info, warn, error)"`
	NoColor   bool     `help:"Disable coloured output"`
	Players   []string `arg:"" optional:"" help:"Players as name=strategy; defaults to the configured or classic roster"`
}

func (c *RunCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	report := cfg.Report

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger, err := shared.SetupLogger(os.Stderr, report.LogLevel, c.NoColor)
	if err != nil {
		return err
	}
	if report.Format == "tui" && logger.GetLevel() < log.ErrorLevel {
		// Keep the alternate screen clean
		logger.SetLevel(log.ErrorLevel)
	}

	if cfg.Tournament.Seed == 0 {
		cfg.Tournament.Seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", cfg.Tournament.Seed)
	} else {
		logger.Info("Using deterministic seed", "seed", cfg.Tournament.Seed)
	}

	roster, err := strategy.BuildRoster(cfg.Roster(), cfg.Tournament.Seed)
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	var monitors []monitor.Monitor
	var program *tea.Program
	switch report.Format {
	case "pretty":
		monitors = append(monitors, monitor.NewPrettyMonitor(os.Stdout, report.ShowTurns))
	case "dots":
		monitors = append(monitors, monitor.NewDotsMonitor(os.Stdout))
	case "log":
		monitors = append(monitors, monitor.NewLogMonitor(logger))
	case "tui":
		program = tea.NewProgram(tui.NewModel(logger), tea.WithAltScreen())
		monitors = append(monitors, tui.NewMonitor(program))
	}

	var stats *monitor.StatsMonitor
	if c.Stats {
		stats = monitor.NewStatsMonitor()
		monitors = append(monitors, stats)
	}

	clock := quartz.NewReal()
	hubDone := make(chan error, 1)
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	if report.Listen != "" {
		hub := server.NewHub(logger, clock)
		monitors = append(monitors, hub)
		go func() { hubDone <- hub.ListenAndServe(hubCtx, report.Listen) }()
	} else {
		hubDone <- nil
	}

	tcfg := cfg.TournamentConfig()
	tcfg.Logger = logger
	tcfg.Monitor = monitor.NewMultiMonitor(monitors...)
	tcfg.Clock = clock

	t, err := tournament.New(tcfg, roster)
	if err != nil {
		return err
	}

	logger.Debug("Tournament scheduled",
		"run_id", t.RunID(),
		"name", t.Name(),
		"players", len(roster),
		"matches", len(t.Matches()),
		"rounds", t.Rounds())

	if program != nil {
		err = playWithTUI(ctx, t, program)
	} else {
		err = t.Play(ctx)
	}

	stopHub()
	if hubErr := <-hubDone; hubErr != nil {
		logger.Error("Websocket server failed", "error", hubErr)
	}

	if stats != nil {
		stats.Report(os.Stdout)
	}

	if report.Output != "" {
		if werr := t.WriteResult(report.Output); werr != nil {
			return werr
		}
		logger.Info("Results written", "path", report.Output)
	}

	if errors.Is(err, context.Canceled) {
		logger.Warn("Tournament cancelled")
		return nil
	}
	return err
}

// playWithTUI runs the tournament in the background while the program owns
// the terminal. Quitting the program stops play.
func playWithTUI(ctx context.Context, t *tournament.Tournament, program *tea.Program) error {
	playCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		err := t.Play(playCtx)
		if err != nil {
			program.Send(tui.ErrMsg{Err: err})
		}
		done <- err
	}()

	_, runErr := program.Run()
	cancel()
	playErr := <-done

	if runErr != nil {
		return fmt.Errorf("tui: %w", runErr)
	}
	if playErr == nil {
		fmt.Fprintln(os.Stdout, monitor.FormatScoreboard(t.Summary()))
	}
	return playErr
}

// loadConfig merges the config file, then command line overrides
func (c *RunCmd) loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if c.Config != "" {
		loaded, err := config.LoadConfig(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	t := cfg.Tournament
	if c.Name != "" {
		t.Name = c.Name
	}
	if c.MinRounds != nil {
		t.MinRounds = c.MinRounds
		if c.MaxRounds == nil && *t.MaxRounds < *c.MinRounds {
			t.MaxRounds = c.MinRounds
		}
	}
	if c.MaxRounds != nil {
		t.MaxRounds = c.MaxRounds
	}
	if c.Seed != nil {
		t.Seed = *c.Seed
	}
	if c.Parallel > 0 {
		t.Parallelism = c.Parallel
	}

	r := cfg.Report
	if c.Format != "" {
		r.Format = c.Format
	}
	if c.Turns {
		r.ShowTurns = true
	}
	if c.Output != "" {
		r.Output = c.Output
	}
	if c.Listen != "" {
		r.Listen = c.Listen
	}
	if c.LogLevel != "" {
		r.LogLevel = c.LogLevel
	}

	if len(c.Players) > 0 {
		players, err := parsePlayers(c.Players)
		if err != nil {
			return nil, err
		}
		cfg.Players = players
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parsePlayers reads name=strategy arguments
func parsePlayers(args []string) ([]config.PlayerConfig, error) {
	players := make([]config.PlayerConfig, 0, len(args))
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i <= 0 || i == len(arg)-1 {
			return nil, fmt.Errorf("invalid player %q, expected name=strategy", arg)
		}
		players = append(players, config.PlayerConfig{
			Name:     strings.TrimSpace(arg[:i]),
			Strategy: strings.TrimSpace(arg[i+1:]),
		})
	}
	return players, nil
}
