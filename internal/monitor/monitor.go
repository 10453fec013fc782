// Package monitor defines the reporting contract a tournament emits to, and
// the sinks that render or collect those events.
package monitor

import (
	"sync"
	"time"

	"github.com/lox/dilemma/internal/game"
)

// Monitor receives notifications about tournament progress and outcomes.
type Monitor interface {
	// OnTournamentStart is called once the round count and schedule are fixed.
	OnTournamentStart(start TournamentStart)

	// OnTurn is called after every turn of every match.
	OnTurn(turn TurnEvent)

	// OnMatchComplete is called after a match has played all of its turns.
	OnMatchComplete(outcome MatchOutcome)

	// OnTournamentComplete is called with the final scoreboard.
	OnTournamentComplete(summary Summary)
}

// PlayerInfo identifies a player in reporting events
type PlayerInfo struct {
	ID   game.PlayerID `json:"id"`
	Name string        `json:"name"`
}

// TournamentStart describes a tournament about to be played
type TournamentStart struct {
	RunID   string       `json:"run_id"`
	Name    string       `json:"name"`
	Rounds  int          `json:"rounds"`
	Matches int          `json:"matches"`
	Players []PlayerInfo `json:"players"`
}

// TurnEvent is the outcome of one turn of one match
type TurnEvent struct {
	Match      string      `json:"match"`
	MatchIndex int         `json:"match_index"`
	Turn       int         `json:"turn"` // 1-based
	Player1    PlayerInfo  `json:"player1"`
	Player2    PlayerInfo  `json:"player2"`
	Action1    game.Action `json:"action1"`
	Action2    game.Action `json:"action2"`
	Points1    game.Points `json:"points1"`
	Points2    game.Points `json:"points2"`
}

// MatchOutcome holds a finished match's totals
type MatchOutcome struct {
	Match      string      `json:"match"`
	MatchIndex int         `json:"match_index"`
	Player1    PlayerInfo  `json:"player1"`
	Player2    PlayerInfo  `json:"player2"`
	Turns      int         `json:"turns"`
	Points1    game.Points `json:"points1"`
	Points2    game.Points `json:"points2"`
}

// Standing is one scoreboard row
type Standing struct {
	Rank       int           `json:"rank"`
	ID         game.PlayerID `json:"id"`
	Name       string        `json:"name"`
	Points     game.Points   `json:"points"`
	LastAction *game.Action  `json:"last_action,omitempty"`
}

// Summary is the final state of a tournament
type Summary struct {
	RunID     string        `json:"run_id"`
	Name      string        `json:"name"`
	Rounds    int           `json:"rounds"`
	Matches   int           `json:"matches"`
	Standings []Standing    `json:"standings"`
	Duration  time.Duration `json:"duration"`
}

// NullMonitor is a no-op implementation.
type NullMonitor struct{}

func (NullMonitor) OnTournamentStart(TournamentStart) {}
func (NullMonitor) OnTurn(TurnEvent)                  {}
func (NullMonitor) OnMatchComplete(MatchOutcome)      {}
func (NullMonitor) OnTournamentComplete(Summary)      {}

// MultiMonitor fan-outs events to multiple monitors.
type MultiMonitor struct {
	monitors []Monitor
}

// NewMultiMonitor builds a composite monitor, automatically pruning nil entries and returning
// a NullMonitor when no monitors are provided.
func NewMultiMonitor(monitors ...Monitor) Monitor {
	filtered := make([]Monitor, 0, len(monitors))
	for _, monitor := range monitors {
		if monitor != nil {
			filtered = append(filtered, monitor)
		}
	}

	switch len(filtered) {
	case 0:
		return NullMonitor{}
	case 1:
		return filtered[0]
	default:
		return MultiMonitor{monitors: filtered}
	}
}

func (m MultiMonitor) OnTournamentStart(start TournamentStart) {
	for _, monitor := range m.monitors {
		monitor.OnTournamentStart(start)
	}
}

func (m MultiMonitor) OnTurn(turn TurnEvent) {
	for _, monitor := range m.monitors {
		monitor.OnTurn(turn)
	}
}

func (m MultiMonitor) OnMatchComplete(outcome MatchOutcome) {
	for _, monitor := range m.monitors {
		monitor.OnMatchComplete(outcome)
	}
}

func (m MultiMonitor) OnTournamentComplete(summary Summary) {
	for _, monitor := range m.monitors {
		monitor.OnTournamentComplete(summary)
	}
}

// SynchronizedMonitor serializes calls into a monitor that is not safe for
// concurrent use. Matches running in parallel report through one of these.
type SynchronizedMonitor struct {
	mu    sync.Mutex
	inner Monitor
}

// Synchronized wraps m so that at most one event is delivered at a time
func Synchronized(m Monitor) Monitor {
	switch m.(type) {
	case nil:
		return NullMonitor{}
	case NullMonitor, *SynchronizedMonitor:
		return m
	}
	return &SynchronizedMonitor{inner: m}
}

func (s *SynchronizedMonitor) OnTournamentStart(start TournamentStart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.OnTournamentStart(start)
}

func (s *SynchronizedMonitor) OnTurn(turn TurnEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.OnTurn(turn)
}

func (s *SynchronizedMonitor) OnMatchComplete(outcome MatchOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.OnMatchComplete(outcome)
}

func (s *SynchronizedMonitor) OnTournamentComplete(summary Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.OnTournamentComplete(summary)
}
