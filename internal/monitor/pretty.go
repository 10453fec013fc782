package monitor

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// PrettyMonitor prints a human-readable account of the tournament: optional
// per-turn lines, one line per finished match and a final scoreboard.
type PrettyMonitor struct {
	writer    io.Writer
	showTurns bool
}

// NewPrettyMonitor creates a new pretty print monitor
func NewPrettyMonitor(writer io.Writer, showTurns bool) *PrettyMonitor {
	if writer == nil {
		writer = os.Stdout
	}
	return &PrettyMonitor{writer: writer, showTurns: showTurns}
}

func (p *PrettyMonitor) OnTournamentStart(start TournamentStart) {
	fmt.Fprintln(p.writer, headerStyle.Render(fmt.Sprintf("%s: playing %d rounds tournament", start.Name, start.Rounds)))
}

func (p *PrettyMonitor) OnTurn(turn TurnEvent) {
	if !p.showTurns {
		return
	}
	fmt.Fprintln(p.writer, turnStyle.Render(fmt.Sprintf("Game %s round %d: %s - %s => %d - %d",
		turn.Match, turn.Turn, turn.Action1, turn.Action2, turn.Points1, turn.Points2)))
}

func (p *PrettyMonitor) OnMatchComplete(outcome MatchOutcome) {
	fmt.Fprintln(p.writer, matchStyle.Render(fmt.Sprintf("Game %s finished: %d - %d",
		outcome.Match, outcome.Points1, outcome.Points2)))
}

func (p *PrettyMonitor) OnTournamentComplete(summary Summary) {
	fmt.Fprintln(p.writer, "Tournament complete")
	fmt.Fprintln(p.writer, FormatScoreboard(summary))
}

// FormatScoreboard renders the standings in a bordered box
func FormatScoreboard(summary Summary) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(summary.Name))
	b.WriteString("\n")

	if len(summary.Standings) == 0 {
		b.WriteString("no players")
		return boardStyle.Render(b.String())
	}

	nameWidth := 0
	for _, s := range summary.Standings {
		nameWidth = max(nameWidth, len(s.Name))
	}

	for i, s := range summary.Standings {
		line := fmt.Sprintf("%2d. %-*s %6d points", s.Rank, nameWidth, s.Name, s.Points)
		if s.Rank == 1 {
			line = leaderStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(summary.Standings)-1 {
			b.WriteString("\n")
		}
	}

	return boardStyle.Render(b.String())
}
