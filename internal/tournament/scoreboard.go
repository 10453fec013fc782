package tournament

import (
	"slices"
	"sync"

	"github.com/lox/dilemma/internal/game"
	"github.com/lox/dilemma/internal/monitor"
)

// ScoreEntry is a player's running tournament total
type ScoreEntry struct {
	ID         game.PlayerID
	Name       string
	Points     game.Points
	LastAction game.Action
	Played     bool // LastAction is only meaningful once the player has played a turn
}

// Scoreboard holds one entry per roster player. Keys are fixed at
// construction and points only ever increase. Add is safe for concurrent
// use.
type Scoreboard struct {
	mu      sync.RWMutex
	entries []ScoreEntry
	index   map[game.PlayerID]int
}

// NewScoreboard creates a zeroed entry for every player, in roster order.
// Callers must ensure IDs are unique.
func NewScoreboard(players []*game.Player) *Scoreboard {
	sb := &Scoreboard{
		entries: make([]ScoreEntry, len(players)),
		index:   make(map[game.PlayerID]int, len(players)),
	}
	for i, p := range players {
		sb.entries[i] = ScoreEntry{ID: p.ID(), Name: p.Name()}
		sb.index[p.ID()] = i
	}
	return sb
}

// Add credits points to a player and records the action they just played.
// It reports false for a player that is not on the board.
func (sb *Scoreboard) Add(id game.PlayerID, points game.Points, action game.Action) bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	i, ok := sb.index[id]
	if !ok {
		return false
	}
	e := &sb.entries[i]
	e.Points += points
	e.LastAction = action
	e.Played = true
	return true
}

// Len returns the number of entries
func (sb *Scoreboard) Len() int {
	return len(sb.entries)
}

// Entry returns a copy of a player's entry
func (sb *Scoreboard) Entry(id game.PlayerID) (ScoreEntry, bool) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	i, ok := sb.index[id]
	if !ok {
		return ScoreEntry{}, false
	}
	return sb.entries[i], true
}

// Points returns a player's total, zero for unknown players
func (sb *Scoreboard) Points(id game.PlayerID) game.Points {
	e, _ := sb.Entry(id)
	return e.Points
}

// Entries returns a copy of all entries in roster order
func (sb *Scoreboard) Entries() []ScoreEntry {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return slices.Clone(sb.entries)
}

// Standings ranks entries by points, highest first. Ties keep roster order
// and share a rank.
func (sb *Scoreboard) Standings() []monitor.Standing {
	entries := sb.Entries()
	slices.SortStableFunc(entries, func(a, b ScoreEntry) int {
		switch {
		case a.Points > b.Points:
			return -1
		case a.Points < b.Points:
			return 1
		}
		return 0
	})

	standings := make([]monitor.Standing, len(entries))
	for i, e := range entries {
		rank := i + 1
		if i > 0 && e.Points == entries[i-1].Points {
			rank = standings[i-1].Rank
		}
		standings[i] = monitor.Standing{Rank: rank, ID: e.ID, Name: e.Name, Points: e.Points}
		if e.Played {
			action := e.LastAction
			standings[i].LastAction = &action
		}
	}
	return standings
}
