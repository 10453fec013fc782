package tournament

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/dilemma/internal/game"
	"github.com/lox/dilemma/internal/monitor"
	"github.com/lox/dilemma/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMonitor struct {
	mu       sync.Mutex
	starts   []monitor.TournamentStart
	turns    []monitor.TurnEvent
	outcomes []monitor.MatchOutcome
	summary  *monitor.Summary
	onTurn   func(monitor.TurnEvent)
	onMatch  func(monitor.MatchOutcome)
}

func (r *recordingMonitor) OnTournamentStart(s monitor.TournamentStart) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts = append(r.starts, s)
}

func (r *recordingMonitor) OnTurn(e monitor.TurnEvent) {
	r.mu.Lock()
	r.turns = append(r.turns, e)
	r.mu.Unlock()
	if r.onTurn != nil {
		r.onTurn(e)
	}
}

func (r *recordingMonitor) OnMatchComplete(o monitor.MatchOutcome) {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, o)
	r.mu.Unlock()
	if r.onMatch != nil {
		r.onMatch(o)
	}
}

func (r *recordingMonitor) OnTournamentComplete(s monitor.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary = &s
}

func fixedRounds(n int) Config {
	return Config{Name: "Test", MinRounds: n, MaxRounds: n}
}

// classicRoster is a reciprocator, a defector and a cooperator, in that order
func classicRoster() []*game.Player {
	return []*game.Player{
		game.NewPlayer("Tit4Tat", strategy.TitForTat{Opening: game.Cooperate}),
		game.NewPlayer("Deflector", strategy.Always(game.Defect)),
		game.NewPlayer("Coop", strategy.Always(game.Cooperate)),
	}
}

func TestNewValidation(t *testing.T) {
	roster := classicRoster()

	t.Run("negative min rounds", func(t *testing.T) {
		_, err := New(Config{MinRounds: -1, MaxRounds: 10}, roster)
		require.Error(t, err)
	})

	t.Run("max below min", func(t *testing.T) {
		_, err := New(Config{MinRounds: 10, MaxRounds: 5}, roster)
		require.Error(t, err)
	})

	t.Run("duplicate player", func(t *testing.T) {
		_, err := New(fixedRounds(5), []*game.Player{roster[0], roster[1], roster[0]})
		require.ErrorIs(t, err, ErrDuplicatePlayer)
	})

	t.Run("defaults", func(t *testing.T) {
		tour, err := New(Config{}, nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultName, tour.Name())
		assert.Zero(t, tour.Rounds())
		assert.NotEmpty(t, tour.RunID())
	})
}

func TestRoundCount(t *testing.T) {
	cfg := DefaultConfig()
	for seed := range int64(200) {
		cfg.Seed = seed
		tour, err := New(cfg, classicRoster())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, tour.Rounds(), DefaultMinRounds)
		assert.Less(t, tour.Rounds(), DefaultMaxRounds, "upper bound is exclusive")
	}

	cfg.Seed = 42
	a, err := New(cfg, classicRoster())
	require.NoError(t, err)
	b, err := New(cfg, classicRoster())
	require.NoError(t, err)
	assert.Equal(t, a.Rounds(), b.Rounds(), "same seed, same round count")

	pinned, err := New(fixedRounds(7), classicRoster())
	require.NoError(t, err)
	assert.Equal(t, 7, pinned.Rounds())
}

func TestSchedule(t *testing.T) {
	roster := classicRoster()
	tour, err := New(fixedRounds(1), roster)
	require.NoError(t, err)

	labels := make([]string, 0, len(tour.Matches()))
	for _, m := range tour.Matches() {
		labels = append(labels, m.Label())
	}
	assert.Equal(t, []string{
		"Tit4Tat vs. Deflector",
		"Tit4Tat vs. Coop",
		"Deflector vs. Coop",
	}, labels)

	assert.Same(t, roster[0], tour.Matches()[0].Player1())
	assert.Same(t, roster[0], tour.Matches()[1].Player1(), "players are shared between matches")
}

func TestPlay(t *testing.T) {
	roster := classicRoster()
	rec := &recordingMonitor{}
	cfg := fixedRounds(10)
	cfg.Monitor = rec

	tour, err := New(cfg, roster)
	require.NoError(t, err)
	require.NoError(t, tour.Play(context.Background()))

	// Tit4Tat vs Deflector: C/D then D/D for nine turns => 9 - 14
	// Tit4Tat vs Coop: mutual cooperation => 30 - 30
	// Deflector vs Coop: 50 - 0
	sb := tour.Scoreboard()
	assert.Equal(t, game.Points(39), sb.Points(roster[0].ID()))
	assert.Equal(t, game.Points(64), sb.Points(roster[1].ID()))
	assert.Equal(t, game.Points(30), sb.Points(roster[2].ID()))

	require.Len(t, rec.starts, 1)
	assert.Equal(t, 10, rec.starts[0].Rounds)
	assert.Equal(t, 3, rec.starts[0].Matches)
	assert.Len(t, rec.starts[0].Players, 3)

	require.Len(t, rec.turns, 30)
	first := rec.turns[0]
	assert.Equal(t, "Tit4Tat vs. Deflector", first.Match)
	assert.Equal(t, 1, first.Turn)
	assert.Equal(t, game.Cooperate, first.Action1)
	assert.Equal(t, game.Defect, first.Action2)
	assert.Equal(t, game.Points(0), first.Points1)
	assert.Equal(t, game.Points(5), first.Points2)
	assert.Equal(t, 10, rec.turns[9].Turn)
	assert.Equal(t, game.Defect, rec.turns[9].Action1)

	require.Len(t, rec.outcomes, 3)
	assert.Equal(t, monitor.MatchOutcome{
		Match: "Tit4Tat vs. Deflector", MatchIndex: 0,
		Player1: monitor.PlayerInfo{ID: roster[0].ID(), Name: "Tit4Tat"},
		Player2: monitor.PlayerInfo{ID: roster[1].ID(), Name: "Deflector"},
		Turns:   10, Points1: 9, Points2: 14,
	}, rec.outcomes[0])
	assert.Equal(t, game.Points(50), rec.outcomes[2].Points1)
	assert.Equal(t, game.Points(0), rec.outcomes[2].Points2)

	require.NotNil(t, rec.summary)
	require.Len(t, rec.summary.Standings, 3)
	assert.Equal(t, "Deflector", rec.summary.Standings[0].Name)
	assert.Equal(t, "Tit4Tat", rec.summary.Standings[1].Name)
	assert.Equal(t, "Coop", rec.summary.Standings[2].Name)
}

func TestPlayEveryMatchRunsAllRounds(t *testing.T) {
	roster, err := strategy.BuildRoster(strategy.DefaultRoster, 99)
	require.NoError(t, err)

	rec := &recordingMonitor{}
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Monitor = rec

	tour, err := New(cfg, roster)
	require.NoError(t, err)
	require.NoError(t, tour.Play(context.Background()))

	n := len(roster)
	assert.Len(t, tour.Matches(), n*(n-1)/2)
	assert.Len(t, rec.outcomes, n*(n-1)/2)
	assert.Len(t, rec.turns, n*(n-1)/2*tour.Rounds())

	// scoreboard totals equal the sum of each player's match totals
	sums := make(map[game.PlayerID]game.Points)
	for _, m := range tour.Matches() {
		assert.Equal(t, tour.Rounds(), m.TurnsPlayed())
		assert.Equal(t, tour.Rounds(), m.History().Len())
		p1, p2 := m.Totals()
		sums[m.Player1().ID()] += p1
		sums[m.Player2().ID()] += p2
	}
	for _, e := range tour.Scoreboard().Entries() {
		assert.Equal(t, sums[e.ID], e.Points, e.Name)
	}
}

func TestPlayDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		roster []*game.Player
		rounds int
	}{
		{"empty roster", nil, 10},
		{"single player", classicRoster()[:1], 10},
		{"zero rounds", classicRoster(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingMonitor{}
			cfg := fixedRounds(tt.rounds)
			cfg.Monitor = rec

			tour, err := New(cfg, tt.roster)
			require.NoError(t, err)
			require.NoError(t, tour.Play(context.Background()))

			assert.Empty(t, rec.turns)
			assert.Equal(t, len(tt.roster), tour.Scoreboard().Len())
			for _, e := range tour.Scoreboard().Entries() {
				assert.Zero(t, e.Points)
			}
			assert.NotNil(t, rec.summary)
		})
	}
}

func TestPlayOnlyOnce(t *testing.T) {
	tour, err := New(fixedRounds(3), classicRoster())
	require.NoError(t, err)

	require.NoError(t, tour.Play(context.Background()))
	before := tour.Scoreboard().Entries()

	assert.ErrorIs(t, tour.Play(context.Background()), ErrAlreadyPlayed)
	assert.Equal(t, before, tour.Scoreboard().Entries())
}

func TestPlayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recordingMonitor{}
	rec.onTurn = func(e monitor.TurnEvent) {
		if e.Turn == 5 {
			cancel()
		}
	}

	cfg := fixedRounds(100)
	cfg.Monitor = rec
	tour, err := New(cfg, classicRoster())
	require.NoError(t, err)

	err = tour.Play(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, rec.turns, 5)
	assert.Empty(t, rec.outcomes)
	assert.Nil(t, rec.summary)

	res := tour.Result()
	assert.False(t, res.Completed)
	assert.Equal(t, context.Canceled.Error(), res.Error)
}

func TestPlayInvalidActionPanics(t *testing.T) {
	broken := game.StrategyFunc(func(game.PlayerID, game.History) game.Action {
		return game.Action(7)
	})
	roster := []*game.Player{
		game.NewPlayer("ok", strategy.Always(game.Cooperate)),
		game.NewPlayer("broken", broken),
	}

	tour, err := New(fixedRounds(3), roster)
	require.NoError(t, err)
	assert.Panics(t, func() {
		_ = tour.Play(context.Background())
	})
}

func TestParallelMatchesSequential(t *testing.T) {
	build := func() []*game.Player {
		return []*game.Player{
			game.NewPlayer("Tit4Tat", strategy.TitForTat{Opening: game.Cooperate}),
			game.NewPlayer("Nasty Tit4Tat", strategy.TitForTat{Opening: game.Defect}),
			game.NewPlayer("Fair'n'Square", strategy.FairNSquare{}),
			game.NewPlayer("Grudge", strategy.Grudge{}),
			game.NewPlayer("Deflector", strategy.Always(game.Defect)),
			game.NewPlayer("Coop", strategy.Always(game.Cooperate)),
			game.NewPlayer("Contrarian", strategy.AntiTitForTat{Opening: game.Cooperate}),
		}
	}

	play := func(parallelism int) ([]ScoreEntry, *recordingMonitor) {
		rec := &recordingMonitor{}
		cfg := fixedRounds(200)
		cfg.Parallelism = parallelism
		cfg.Monitor = rec

		tour, err := New(cfg, build())
		require.NoError(t, err)
		require.NoError(t, tour.Play(context.Background()))
		return tour.Scoreboard().Entries(), rec
	}

	seq, seqRec := play(1)
	par, parRec := play(4)

	require.Len(t, par, len(seq))
	for i := range seq {
		assert.Equal(t, seq[i].Name, par[i].Name)
		assert.Equal(t, seq[i].Points, par[i].Points, seq[i].Name)
	}
	assert.Len(t, parRec.turns, len(seqRec.turns))
	assert.Len(t, parRec.outcomes, len(seqRec.outcomes))
}

func TestResult(t *testing.T) {
	mock := quartz.NewMock(t)
	ctx := context.Background()

	rec := &recordingMonitor{}
	rec.onMatch = func(monitor.MatchOutcome) {
		mock.Advance(time.Second).MustWait(ctx)
	}

	cfg := fixedRounds(4)
	cfg.Name = "Result Cup"
	cfg.Seed = 7
	cfg.Clock = mock
	cfg.Monitor = rec

	start := mock.Now()
	tour, err := New(cfg, classicRoster())
	require.NoError(t, err)
	require.NoError(t, tour.Play(ctx))

	res := tour.Result()
	assert.Equal(t, tour.RunID(), res.RunID)
	assert.Equal(t, "Result Cup", res.Name)
	assert.Equal(t, int64(7), res.Seed)
	assert.Equal(t, 4, res.Rounds)
	assert.True(t, res.Completed)
	assert.Empty(t, res.Error)
	assert.True(t, start.Equal(res.StartedAt))
	assert.InDelta(t, 3.0, res.DurationSeconds, 1e-9)
	assert.Equal(t, 3*time.Second, rec.summary.Duration)
	assert.Len(t, res.Matches, 3)
	assert.Len(t, res.Standings, 3)
	assert.Len(t, res.Players, 3)

	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, tour.WriteResult(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Result Cup", doc["name"])
	assert.Equal(t, tour.RunID(), doc["run_id"])
	assert.Len(t, doc["matches"], 3)

	standings := doc["standings"].([]any)
	leader := standings[0].(map[string]any)
	assert.Equal(t, "Deflector", leader["name"])
	assert.Equal(t, "defect", leader["last_action"])
}
