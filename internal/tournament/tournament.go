package tournament

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/dilemma/internal/game"
	"github.com/lox/dilemma/internal/monitor"
	"github.com/lox/dilemma/internal/randutil"
	"github.com/lox/dilemma/internal/runid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultName      = "Tournament"
	DefaultMinRounds = 150
	DefaultMaxRounds = 250
)

var (
	ErrAlreadyPlayed   = errors.New("tournament already played")
	ErrDuplicatePlayer = errors.New("duplicate player")
)

// Config controls a tournament run. A zero Name, Logger, Monitor or Clock
// selects a default; round bounds are taken as given.
type Config struct {
	Name      string
	MinRounds int
	MaxRounds int // exclusive; <= MinRounds pins the round count to MinRounds
	Seed      int64

	// Parallelism is the number of matches played concurrently. Values
	// below 2 play matches one after another in schedule order.
	Parallelism int

	Logger  *log.Logger
	Monitor monitor.Monitor
	Clock   quartz.Clock
}

// DefaultConfig returns the classic 150 to 250 round tournament
func DefaultConfig() Config {
	return Config{
		Name:      DefaultName,
		MinRounds: DefaultMinRounds,
		MaxRounds: DefaultMaxRounds,
	}
}

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	if c.Monitor == nil {
		c.Monitor = monitor.NullMonitor{}
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
}

// Validate checks the round range
func (c Config) Validate() error {
	if c.MinRounds < 0 {
		return fmt.Errorf("min rounds must be non-negative, got %d", c.MinRounds)
	}
	if c.MaxRounds < c.MinRounds {
		return fmt.Errorf("max rounds (%d) must not be below min rounds (%d)", c.MaxRounds, c.MinRounds)
	}
	return nil
}

// Tournament owns one match per unordered pair of the roster and the
// scoreboard they all feed. Players are shared between matches.
type Tournament struct {
	cfg     Config
	runID   string
	players []*game.Player
	pairs   []Pair
	matches []*game.Match
	rounds  int

	scoreboard *Scoreboard
	logger     *log.Logger
	monitor    monitor.Monitor
	clock      quartz.Clock

	played    atomic.Bool
	mu        sync.Mutex
	startedAt time.Time
	duration  time.Duration
	err       error
}

// New schedules a round-robin over the roster and fixes the round count.
// Rosters with fewer than two players are valid and produce no matches.
func New(cfg Config, roster []*game.Player) (*Tournament, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[game.PlayerID]struct{}, len(roster))
	for _, p := range roster {
		if _, dup := seen[p.ID()]; dup {
			return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicatePlayer, p.Name(), p.ID())
		}
		seen[p.ID()] = struct{}{}
	}

	rng := randutil.New(cfg.Seed)
	t := &Tournament{
		cfg:        cfg,
		runID:      runid.New(),
		players:    roster,
		pairs:      Pairs(len(roster)),
		rounds:     randutil.IntRange(rng, cfg.MinRounds, cfg.MaxRounds),
		scoreboard: NewScoreboard(roster),
		logger:     cfg.Logger.WithPrefix("tournament"),
		clock:      cfg.Clock,
	}

	t.monitor = cfg.Monitor
	if cfg.Parallelism > 1 {
		t.monitor = monitor.Synchronized(cfg.Monitor)
	}

	t.matches = make([]*game.Match, len(t.pairs))
	for i, pair := range t.pairs {
		t.matches[i] = game.NewMatch(roster[pair.First], roster[pair.Second])
	}

	return t, nil
}

func (t *Tournament) Name() string            { return t.cfg.Name }
func (t *Tournament) RunID() string           { return t.runID }
func (t *Tournament) Seed() int64             { return t.cfg.Seed }
func (t *Tournament) Rounds() int             { return t.rounds }
func (t *Tournament) Players() []*game.Player { return t.players }
func (t *Tournament) Matches() []*game.Match  { return t.matches }
func (t *Tournament) Scoreboard() *Scoreboard { return t.scoreboard }

// Play drives every match through all of its turns. It may only be called
// once. Cancelling ctx stops play between turns and returns ctx's error.
//
// A strategy that panics or returns an invalid action is not recovered.
func (t *Tournament) Play(ctx context.Context) error {
	if !t.played.CompareAndSwap(false, true) {
		return ErrAlreadyPlayed
	}

	start := t.clock.Now()
	t.mu.Lock()
	t.startedAt = start
	t.mu.Unlock()

	t.logger.Debug("Starting tournament",
		"run_id", t.runID,
		"players", len(t.players),
		"matches", len(t.matches),
		"rounds", t.rounds,
		"parallelism", t.cfg.Parallelism)

	t.monitor.OnTournamentStart(monitor.TournamentStart{
		RunID:   t.runID,
		Name:    t.cfg.Name,
		Rounds:  t.rounds,
		Matches: len(t.matches),
		Players: t.playerInfos(),
	})

	var err error
	if t.cfg.Parallelism > 1 {
		err = t.playParallel(ctx)
	} else {
		err = t.playSequential(ctx)
	}

	t.mu.Lock()
	t.duration = t.clock.Since(start)
	t.err = err
	t.mu.Unlock()

	if err != nil {
		t.logger.Warn("Tournament stopped", "error", err)
		return err
	}

	t.monitor.OnTournamentComplete(t.Summary())
	return nil
}

func (t *Tournament) playSequential(ctx context.Context) error {
	for i := range t.matches {
		if err := t.playMatch(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tournament) playParallel(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.cfg.Parallelism)
	for i := range t.matches {
		g.Go(func() error {
			return t.playMatch(gctx, i)
		})
	}
	return g.Wait()
}

func (t *Tournament) playMatch(ctx context.Context, index int) error {
	m := t.matches[index]
	p1 := playerInfo(m.Player1())
	p2 := playerInfo(m.Player2())
	label := m.Label()

	for turn := 1; turn <= t.rounds; turn++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		r1, r2 := m.PlayTurn()
		t.scoreboard.Add(r1.Player, r1.Points, r1.Action)
		t.scoreboard.Add(r2.Player, r2.Points, r2.Action)

		t.monitor.OnTurn(monitor.TurnEvent{
			Match:      label,
			MatchIndex: index,
			Turn:       turn,
			Player1:    p1,
			Player2:    p2,
			Action1:    r1.Action,
			Action2:    r2.Action,
			Points1:    r1.Points,
			Points2:    r2.Points,
		})
	}

	t.monitor.OnMatchComplete(t.outcome(index))
	return nil
}

func (t *Tournament) outcome(index int) monitor.MatchOutcome {
	m := t.matches[index]
	points1, points2 := m.Totals()
	return monitor.MatchOutcome{
		Match:      m.Label(),
		MatchIndex: index,
		Player1:    playerInfo(m.Player1()),
		Player2:    playerInfo(m.Player2()),
		Turns:      m.TurnsPlayed(),
		Points1:    points1,
		Points2:    points2,
	}
}

// Summary returns the current standings
func (t *Tournament) Summary() monitor.Summary {
	t.mu.Lock()
	duration := t.duration
	t.mu.Unlock()

	return monitor.Summary{
		RunID:     t.runID,
		Name:      t.cfg.Name,
		Rounds:    t.rounds,
		Matches:   len(t.matches),
		Standings: t.scoreboard.Standings(),
		Duration:  duration,
	}
}

func (t *Tournament) playerInfos() []monitor.PlayerInfo {
	infos := make([]monitor.PlayerInfo, len(t.players))
	for i, p := range t.players {
		infos[i] = playerInfo(p)
	}
	return infos
}

func playerInfo(p *game.Player) monitor.PlayerInfo {
	return monitor.PlayerInfo{ID: p.ID(), Name: p.Name()}
}
