package game

import (
	"fmt"
	"strings"
)

// Action is one of the two moves a player can make in a turn.
type Action uint8

const (
	Cooperate Action = iota
	Defect
)

// String returns the display name of the action
func (a Action) String() string {
	switch a {
	case Cooperate:
		return "Cooperate"
	case Defect:
		return "Defect"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Valid reports whether a is one of the two defined actions
func (a Action) Valid() bool {
	return a == Cooperate || a == Defect
}

// Opposite returns the other action
func (a Action) Opposite() Action {
	if a == Cooperate {
		return Defect
	}
	return Cooperate
}

// ParseAction converts a string to an Action.
// Accepts "cooperate"/"c" and "defect"/"d" in any case.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cooperate", "c":
		return Cooperate, nil
	case "defect", "d":
		return Defect, nil
	default:
		return Cooperate, fmt.Errorf("unknown action %q", s)
	}
}

// MarshalText encodes the action as its lower-case name
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid action %d", uint8(a))
	}
	return []byte(strings.ToLower(a.String())), nil
}

// UnmarshalText decodes an action name produced by MarshalText
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
