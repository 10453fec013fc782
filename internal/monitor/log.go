package monitor

import "github.com/charmbracelet/log"

// LogMonitor writes events as structured log records. Turns are logged at
// debug level; everything else at info.
type LogMonitor struct {
	logger *log.Logger
}

func NewLogMonitor(logger *log.Logger) *LogMonitor {
	return &LogMonitor{logger: logger.WithPrefix("tournament")}
}

func (l *LogMonitor) OnTournamentStart(start TournamentStart) {
	l.logger.Info("Tournament starting",
		"run_id", start.RunID,
		"name", start.Name,
		"rounds", start.Rounds,
		"matches", start.Matches,
		"players", len(start.Players))
}

func (l *LogMonitor) OnTurn(turn TurnEvent) {
	l.logger.Debug("Turn played",
		"match", turn.Match,
		"turn", turn.Turn,
		"action1", turn.Action1,
		"action2", turn.Action2,
		"points1", turn.Points1,
		"points2", turn.Points2)
}

func (l *LogMonitor) OnMatchComplete(outcome MatchOutcome) {
	l.logger.Info("Match finished",
		"match", outcome.Match,
		"turns", outcome.Turns,
		"points1", outcome.Points1,
		"points2", outcome.Points2)
}

func (l *LogMonitor) OnTournamentComplete(summary Summary) {
	fields := []any{"name", summary.Name, "duration", summary.Duration}
	if len(summary.Standings) > 0 {
		leader := summary.Standings[0]
		fields = append(fields, "leader", leader.Name, "points", leader.Points)
	}
	l.logger.Info("Tournament complete", fields...)
}
