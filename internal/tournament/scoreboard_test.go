package tournament

import (
	"sync"
	"testing"

	"github.com/lox/dilemma/internal/game"
	"github.com/lox/dilemma/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func players(names ...string) []*game.Player {
	ps := make([]*game.Player, len(names))
	for i, n := range names {
		ps[i] = game.NewPlayer(n, strategy.Always(game.Cooperate))
	}
	return ps
}

func TestScoreboardStartsAtZero(t *testing.T) {
	ps := players("a", "b", "c")
	sb := NewScoreboard(ps)

	require.Equal(t, 3, sb.Len())
	for i, e := range sb.Entries() {
		assert.Equal(t, ps[i].ID(), e.ID)
		assert.Equal(t, ps[i].Name(), e.Name)
		assert.Zero(t, e.Points)
		assert.False(t, e.Played)
	}
}

func TestScoreboardAdd(t *testing.T) {
	ps := players("a", "b")
	sb := NewScoreboard(ps)

	assert.True(t, sb.Add(ps[0].ID(), 3, game.Cooperate))
	assert.True(t, sb.Add(ps[0].ID(), 5, game.Defect))
	assert.False(t, sb.Add(game.NewPlayerID(), 5, game.Defect), "unknown player")

	e, ok := sb.Entry(ps[0].ID())
	require.True(t, ok)
	assert.Equal(t, game.Points(8), e.Points)
	assert.Equal(t, game.Defect, e.LastAction)
	assert.True(t, e.Played)

	assert.Zero(t, sb.Points(ps[1].ID()))
	assert.Zero(t, sb.Points(game.NewPlayerID()))
	assert.Equal(t, 2, sb.Len(), "unknown players are never added")
}

func TestScoreboardConcurrentAdd(t *testing.T) {
	ps := players("a", "b")
	sb := NewScoreboard(ps)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				sb.Add(ps[0].ID(), 1, game.Cooperate)
				sb.Add(ps[1].ID(), 5, game.Defect)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, game.Points(16000), sb.Points(ps[0].ID()))
	assert.Equal(t, game.Points(80000), sb.Points(ps[1].ID()))
}

func TestScoreboardStandings(t *testing.T) {
	ps := players("a", "b", "c", "d")
	sb := NewScoreboard(ps)
	sb.Add(ps[0].ID(), 3, game.Cooperate)
	sb.Add(ps[1].ID(), 10, game.Defect)
	sb.Add(ps[2].ID(), 3, game.Cooperate)

	standings := sb.Standings()
	require.Len(t, standings, 4)

	assert.Equal(t, "b", standings[0].Name)
	assert.Equal(t, 1, standings[0].Rank)
	require.NotNil(t, standings[0].LastAction)
	assert.Equal(t, game.Defect, *standings[0].LastAction)

	// tied players share a rank and keep roster order
	assert.Equal(t, "a", standings[1].Name)
	assert.Equal(t, "c", standings[2].Name)
	assert.Equal(t, 2, standings[1].Rank)
	assert.Equal(t, 2, standings[2].Rank)

	assert.Equal(t, "d", standings[3].Name)
	assert.Equal(t, 4, standings[3].Rank)
	assert.Nil(t, standings[3].LastAction, "d never played")
}
