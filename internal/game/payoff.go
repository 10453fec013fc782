package game

// Points awarded per turn. Totals only ever grow.
type Points = uint64

// payoffs[a1][a2] holds the points for player 1 and player 2.
var payoffs = [2][2][2]Points{
	Cooperate: {
		Cooperate: {3, 3},
		Defect:    {0, 5},
	},
	Defect: {
		Cooperate: {5, 0},
		Defect:    {1, 1},
	},
}

// Resolve maps a pair of actions to the points each side receives.
// The table is fixed:
//
//	C/C -> 3/3   C/D -> 0/5   D/C -> 5/0   D/D -> 1/1
func Resolve(a1, a2 Action) (Points, Points) {
	p := payoffs[a1][a2]
	return p[0], p[1]
}
