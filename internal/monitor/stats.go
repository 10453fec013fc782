package monitor

import (
	"fmt"
	"io"

	"github.com/lox/dilemma/internal/game"
	"github.com/lox/dilemma/internal/statistics"
)

// StatsMonitor collects per-player statistics over every turn played.
type StatsMonitor struct {
	order []PlayerInfo
	stats map[game.PlayerID]*statistics.Statistics
}

func NewStatsMonitor() *StatsMonitor {
	return &StatsMonitor{stats: make(map[game.PlayerID]*statistics.Statistics)}
}

func (s *StatsMonitor) OnTournamentStart(start TournamentStart) {
	s.order = append(s.order[:0], start.Players...)
	clear(s.stats)
	for _, p := range start.Players {
		s.stats[p.ID] = &statistics.Statistics{}
	}
}

func (s *StatsMonitor) OnTurn(turn TurnEvent) {
	s.add(turn.Player1.ID, statistics.TurnResult{
		Points: turn.Points1, Action: turn.Action1, Opponent: turn.Action2, Role: 1,
	})
	s.add(turn.Player2.ID, statistics.TurnResult{
		Points: turn.Points2, Action: turn.Action2, Opponent: turn.Action1, Role: 2,
	})
}

func (s *StatsMonitor) add(id game.PlayerID, result statistics.TurnResult) {
	st, ok := s.stats[id]
	if !ok {
		st = &statistics.Statistics{}
		s.stats[id] = st
	}
	st.Add(result)
}

func (s *StatsMonitor) OnMatchComplete(MatchOutcome) {}

func (s *StatsMonitor) OnTournamentComplete(Summary) {}

// Stats returns the statistics gathered for a player
func (s *StatsMonitor) Stats(id game.PlayerID) (*statistics.Statistics, bool) {
	st, ok := s.stats[id]
	return st, ok
}

// Report prints a per-player statistics table in roster order
func (s *StatsMonitor) Report(w io.Writer) {
	fmt.Fprintf(w, "\n=== PER-TURN STATISTICS ===\n")
	fmt.Fprintf(w, "%-16s %6s %6s %6s %17s %6s %6s\n", "player", "turns", "mean", "sd", "95% CI", "coop", "sucker")
	for _, p := range s.order {
		st := s.stats[p.ID]
		if st == nil || st.Turns == 0 {
			fmt.Fprintf(w, "%-16s %6d\n", p.Name, 0)
			continue
		}
		low, high := st.ConfidenceInterval95()
		fmt.Fprintf(w, "%-16s %6d %6.3f %6.3f [%6.3f, %6.3f] %5.1f%% %6d\n",
			p.Name, st.Turns, st.Mean(), st.StdDev(), low, high,
			st.CooperationRate()*100, st.Outcomes[statistics.Sucker])
	}
}
