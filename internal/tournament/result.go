package tournament

import (
	"time"

	"github.com/lox/dilemma/internal/fileutil"
	"github.com/lox/dilemma/internal/monitor"
)

// Result is the machine-readable record of a run
type Result struct {
	RunID           string                 `json:"run_id"`
	Name            string                 `json:"name"`
	Seed            int64                  `json:"seed"`
	Rounds          int                    `json:"rounds"`
	Players         []monitor.PlayerInfo   `json:"players"`
	StartedAt       time.Time              `json:"started_at"`
	DurationSeconds float64                `json:"duration_seconds"`
	Completed       bool                   `json:"completed"`
	Error           string                 `json:"error,omitempty"`
	Matches         []monitor.MatchOutcome `json:"matches"`
	Standings       []monitor.Standing     `json:"standings"`
}

// Result snapshots the tournament. Before Play it reports zero totals; it
// must not be called while Play is running.
func (t *Tournament) Result() Result {
	t.mu.Lock()
	startedAt, duration, err := t.startedAt, t.duration, t.err
	t.mu.Unlock()

	res := Result{
		RunID:           t.runID,
		Name:            t.cfg.Name,
		Seed:            t.cfg.Seed,
		Rounds:          t.rounds,
		Players:         t.playerInfos(),
		StartedAt:       startedAt,
		DurationSeconds: duration.Seconds(),
		Completed:       t.played.Load() && err == nil,
		Matches:         make([]monitor.MatchOutcome, len(t.matches)),
		Standings:       t.scoreboard.Standings(),
	}
	if err != nil {
		res.Error = err.Error()
	}
	for i := range t.matches {
		res.Matches[i] = t.outcome(i)
	}
	return res
}

// WriteResult atomically writes the run's Result as indented JSON
func (t *Tournament) WriteResult(filename string) error {
	return fileutil.WriteJSONAtomic(filename, t.Result())
}
