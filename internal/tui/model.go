// Package tui renders a live tournament view with Bubble Tea.
package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/dilemma/internal/game"
	"github.com/lox/dilemma/internal/monitor"
)

const maxLogLines = 500

// Model is the Bubble Tea model for a running tournament
type Model struct {
	logger *log.Logger

	progress progress.Model
	logView  viewport.Model
	logLines []string

	name         string
	rounds       int
	totalMatches int
	turnsPlayed  int
	matchesDone  int
	players      []monitor.PlayerInfo
	points       map[game.PlayerID]game.Points

	summary  *monitor.Summary
	err      error
	quitting bool

	width  int
	height int
}

// NewModel creates a model waiting for a tournament to start
func NewModel(logger *log.Logger) *Model {
	vp := viewport.New(60, 10)
	vp.SetContent("")

	return &Model{
		logger:   logger.WithPrefix("tui"),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		logView:  vp,
		points:   make(map[game.PlayerID]game.Points),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(10, min(msg.Width-4, 80))
		m.logView.Width = max(10, msg.Width-4)
		m.logView.Height = max(3, msg.Height-len(m.players)-10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case StartMsg:
		m.name = msg.Name
		m.rounds = msg.Rounds
		m.totalMatches = msg.Matches
		m.players = msg.Players
		clear(m.points)
		for _, p := range msg.Players {
			m.points[p.ID] = 0
		}
		m.appendLog(InfoStyle.Render(fmt.Sprintf("%s: playing %d rounds, %d matches", msg.Name, msg.Rounds, msg.Matches)))
		return m, nil

	case TurnMsg:
		m.turnsPlayed++
		m.points[msg.Player1.ID] += msg.Points1
		m.points[msg.Player2.ID] += msg.Points2
		return m, nil

	case MatchMsg:
		m.matchesDone++
		m.appendLog(fmt.Sprintf("Game %s finished: %d - %d", msg.Match, msg.Points1, msg.Points2))
		return m, nil

	case CompleteMsg:
		summary := monitor.Summary(msg)
		m.summary = &summary
		for _, s := range summary.Standings {
			m.points[s.ID] = s.Points
		}
		m.appendLog(SuccessStyle.Render("Tournament complete"))
		m.logger.Debug("Tournament complete", "duration", summary.Duration)
		return m, nil

	case ErrMsg:
		m.err = msg.Err
		m.appendLog(fmt.Sprintf("Tournament stopped: %v", msg.Err))
		return m, nil
	}

	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

func (m *Model) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
	m.logView.SetContent(strings.Join(m.logLines, "\n"))
	m.logView.GotoBottom()
}

// Progress returns the fraction of turns played
func (m *Model) Progress() float64 {
	if m.summary != nil {
		return 1
	}
	total := m.rounds * m.totalMatches
	if total == 0 {
		return 0
	}
	return min(1, float64(m.turnsPlayed)/float64(total))
}

// Done reports whether the tournament has finished or stopped
func (m *Model) Done() bool {
	return m.summary != nil || m.err != nil
}

// Standings ranks players by their running totals
func (m *Model) Standings() []monitor.Standing {
	standings := make([]monitor.Standing, len(m.players))
	for i, p := range m.players {
		standings[i] = monitor.Standing{ID: p.ID, Name: p.Name, Points: m.points[p.ID]}
	}
	slices.SortStableFunc(standings, func(a, b monitor.Standing) int {
		return cmp.Compare(b.Points, a.Points)
	})
	for i := range standings {
		standings[i].Rank = i + 1
		if i > 0 && standings[i].Points == standings[i-1].Points {
			standings[i].Rank = standings[i-1].Rank
		}
	}
	return standings
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.name == "" {
		b.WriteString(InfoStyle.Render("Waiting for tournament to start..."))
		return b.String()
	}

	b.WriteString(HeaderStyle.Render(m.name))
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(m.Progress()))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("match %d/%d  turns %d", m.matchesDone, m.totalMatches, m.turnsPlayed)))
	b.WriteString("\n\n")
	b.WriteString(paneStyle.Render(m.standingsView()))
	b.WriteString("\n")
	b.WriteString(paneStyle.Render(m.logView.View()))
	b.WriteString("\n")

	if m.Done() {
		b.WriteString(InfoStyle.Render("Press q to quit"))
	} else {
		b.WriteString(InfoStyle.Render("Press q to stop"))
	}
	return b.String()
}

func (m *Model) standingsView() string {
	standings := m.Standings()
	if len(standings) == 0 {
		return InfoStyle.Render("no players")
	}

	nameWidth := 0
	for _, s := range standings {
		nameWidth = max(nameWidth, lipgloss.Width(s.Name))
	}

	lines := make([]string, len(standings))
	for i, s := range standings {
		line := fmt.Sprintf("%2d. %-*s %6d points", s.Rank, nameWidth, s.Name, s.Points)
		if s.Rank == 1 && s.Points > 0 {
			lines[i] = LeaderStyle.Render(line)
		} else {
			lines[i] = PlayerStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
