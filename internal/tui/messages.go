package tui

import "github.com/lox/dilemma/internal/monitor"

// Tournament events delivered to the model
type (
	StartMsg    monitor.TournamentStart
	TurnMsg     monitor.TurnEvent
	MatchMsg    monitor.MatchOutcome
	CompleteMsg monitor.Summary
)

// ErrMsg reports a tournament that stopped early
type ErrMsg struct{ Err error }
