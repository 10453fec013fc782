package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/dilemma/internal/monitor"
)

// Sender delivers messages to a running program; *tea.Program satisfies it
type Sender interface {
	Send(msg tea.Msg)
}

// Monitor forwards tournament events into a Bubble Tea program
type Monitor struct {
	program Sender
}

func NewMonitor(program Sender) *Monitor {
	return &Monitor{program: program}
}

func (m *Monitor) OnTournamentStart(start monitor.TournamentStart) {
	m.program.Send(StartMsg(start))
}

func (m *Monitor) OnTurn(turn monitor.TurnEvent) {
	m.program.Send(TurnMsg(turn))
}

func (m *Monitor) OnMatchComplete(outcome monitor.MatchOutcome) {
	m.program.Send(MatchMsg(outcome))
}

func (m *Monitor) OnTournamentComplete(summary monitor.Summary) {
	m.program.Send(CompleteMsg(summary))
}

var _ monitor.Monitor = (*Monitor)(nil)
