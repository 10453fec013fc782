package strategy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lox/dilemma/internal/game"
	"github.com/lox/dilemma/internal/randutil"
)

// ErrUnknownStrategy is returned when a name is not registered
var ErrUnknownStrategy = errors.New("unknown strategy")

// Factory builds a strategy. Randomized strategies seed their own
// generator from seed; deterministic ones ignore it.
type Factory func(seed int64) game.Strategy

type entry struct {
	description string
	factory     Factory
}

var registry = map[string]entry{
	"tit-for-tat": {
		"cooperate first, then copy the opponent's last move",
		func(int64) game.Strategy { return TitForTat{Opening: game.Cooperate} },
	},
	"nasty-tit-for-tat": {
		"defect first, then copy the opponent's last move",
		func(int64) game.Strategy { return TitForTat{Opening: game.Defect} },
	},
	"fair-n-square": {
		"tit-for-tat that keeps punishing mutual defection and forgives its own",
		func(int64) game.Strategy { return FairNSquare{} },
	},
	"random": {
		"cooperate or defect with equal probability",
		func(seed int64) game.Strategy { return NewRandom(seed) },
	},
	"always-cooperate": {
		"always cooperate",
		func(int64) game.Strategy { return Always(game.Cooperate) },
	},
	"always-defect": {
		"always defect",
		func(int64) game.Strategy { return Always(game.Defect) },
	},
	"two-percent": {
		"tit-for-tat with a 2% chance of defecting unprovoked",
		func(seed int64) game.Strategy { return NewOccasional(seed, 2) },
	},
	"grudge": {
		"cooperate until the opponent defects once, then defect forever",
		func(int64) game.Strategy { return Grudge{} },
	},
	"anti-tit-for-tat": {
		"cooperate first, then do the opposite of the opponent's last move",
		func(int64) game.Strategy { return AntiTitForTat{Opening: game.Cooperate} },
	},
	"nasty-anti-tit-for-tat": {
		"defect first, then do the opposite of the opponent's last move",
		func(int64) game.Strategy { return AntiTitForTat{Opening: game.Defect} },
	},
}

// New builds the named strategy
func New(name string, seed int64) (game.Strategy, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return e.factory(seed), nil
}

// Exists reports whether name is registered
func Exists(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names returns all registered strategy names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line description of the named strategy
func Describe(name string) string {
	return registry[name].description
}

// Entry pairs a display name with a registered strategy name
type Entry struct {
	Name     string
	Strategy string
}

// DefaultRoster is the classic eight-player line-up
var DefaultRoster = []Entry{
	{"Tit4Tat", "tit-for-tat"},
	{"Fair'n'Square", "fair-n-square"},
	{"Randoom", "random"},
	{"Coop", "always-cooperate"},
	{"Deflector", "always-defect"},
	{"Nasty Tit4Tat", "nasty-tit-for-tat"},
	{"2% deflect", "two-percent"},
	{"Grudge", "grudge"},
}

// BuildRoster creates one player per entry, in order. The i-th player's
// strategy is seeded with a seed derived from the run seed.
func BuildRoster(entries []Entry, seed int64) ([]*game.Player, error) {
	players := make([]*game.Player, 0, len(entries))
	for i, e := range entries {
		s, err := New(e.Strategy, randutil.Derive(seed, i))
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", e.Name, err)
		}
		players = append(players, game.NewPlayer(e.Name, s))
	}
	return players, nil
}
