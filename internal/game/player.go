package game

import "github.com/google/uuid"

// PlayerID identifies a player for the lifetime of the process. Strategies
// use it to find their own side of a TurnRecord.
type PlayerID uuid.UUID

// NewPlayerID returns a fresh random identifier
func NewPlayerID() PlayerID {
	return PlayerID(uuid.New())
}

// ParsePlayerID parses the canonical UUID form produced by String
func ParsePlayerID(s string) (PlayerID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return PlayerID{}, err
	}
	return PlayerID(u), nil
}

func (id PlayerID) String() string {
	return uuid.UUID(id).String()
}

// Short returns the first eight characters, enough to tell players apart in logs
func (id PlayerID) Short() string {
	return id.String()[:8]
}

func (id PlayerID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *PlayerID) UnmarshalText(text []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(text)
}

// Player is an immutable participant: an identity, a display name and the
// strategy that decides its moves. The same Player takes part in many matches.
type Player struct {
	id       PlayerID
	name     string
	strategy Strategy
}

// NewPlayer creates a player with a fresh identity
func NewPlayer(name string, strategy Strategy) *Player {
	return &Player{
		id:       NewPlayerID(),
		name:     name,
		strategy: strategy,
	}
}

func (p *Player) ID() PlayerID       { return p.id }
func (p *Player) Name() string       { return p.name }
func (p *Player) Strategy() Strategy { return p.strategy }

// Decide asks the player's strategy for its next action given the shared history
func (p *Player) Decide(history History) Action {
	return p.strategy.Decide(p.id, history)
}
