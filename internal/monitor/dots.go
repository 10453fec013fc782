package monitor

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/dilemma/internal/game"
)

// DotsMonitor prints one coloured dot per turn: green when both cooperate,
// red when both defect, yellow when one side exploits the other.
type DotsMonitor struct {
	writer    io.Writer
	dotCount  int
	turns     int
	matches   int
	lineWidth int // Wrap after this many dots
}

// NewDotsMonitor creates a new dots monitor.
func NewDotsMonitor(writer io.Writer) *DotsMonitor {
	if writer == nil {
		writer = os.Stdout
	}

	return &DotsMonitor{
		writer:    writer,
		lineWidth: 80,
	}
}

func (d *DotsMonitor) OnTournamentStart(TournamentStart) {}

func (d *DotsMonitor) OnTurn(turn TurnEvent) {
	d.turns++
	fmt.Fprint(d.writer, selectDot(turn.Action1, turn.Action2))

	d.dotCount++
	if d.dotCount >= d.lineWidth {
		fmt.Fprintln(d.writer)
		d.dotCount = 0
	}
}

func (d *DotsMonitor) OnMatchComplete(MatchOutcome) {
	d.matches++
}

func (d *DotsMonitor) OnTournamentComplete(summary Summary) {
	if d.dotCount > 0 {
		fmt.Fprintln(d.writer)
		d.dotCount = 0
	}
	fmt.Fprintf(d.writer, "\nCompleted %d matches, %d turns\n", d.matches, d.turns)
}

func selectDot(a1, a2 game.Action) string {
	switch {
	case a1 == game.Cooperate && a2 == game.Cooperate:
		return rewardDot
	case a1 == game.Defect && a2 == game.Defect:
		return punishmentDot
	default:
		return exploitDot
	}
}
