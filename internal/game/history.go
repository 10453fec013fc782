package game

import "iter"

// TurnRecord is one completed turn of a match
type TurnRecord struct {
	Player1 PlayerID `json:"player1"`
	Action1 Action   `json:"action1"`
	Player2 PlayerID `json:"player2"`
	Action2 Action   `json:"action2"`
}

// Own returns the action that self played in this turn, and false if self
// did not take part in it.
func (r TurnRecord) Own(self PlayerID) (Action, bool) {
	switch self {
	case r.Player1:
		return r.Action1, true
	case r.Player2:
		return r.Action2, true
	}
	return Cooperate, false
}

// Opponent returns the action played against self in this turn, and false
// if self did not take part in it.
func (r TurnRecord) Opponent(self PlayerID) (Action, bool) {
	switch self {
	case r.Player1:
		return r.Action2, true
	case r.Player2:
		return r.Action1, true
	}
	return Cooperate, false
}

// History is a read-only, chronological view of a match's turns.
// The zero value is an empty history.
type History struct {
	records []TurnRecord
}

// NewHistory builds a history from records, copying them
func NewHistory(records ...TurnRecord) History {
	return History{records: append([]TurnRecord(nil), records...)}
}

// Len returns the number of turns recorded
func (h History) Len() int { return len(h.records) }

// At returns the i-th turn, oldest first. It panics if i is out of range.
func (h History) At(i int) TurnRecord { return h.records[i] }

// Last returns the most recent turn
func (h History) Last() (TurnRecord, bool) {
	if len(h.records) == 0 {
		return TurnRecord{}, false
	}
	return h.records[len(h.records)-1], true
}

// Records returns a copy of all turns
func (h History) Records() []TurnRecord {
	return append([]TurnRecord(nil), h.records...)
}

// All iterates over turns in chronological order
func (h History) All() iter.Seq2[int, TurnRecord] {
	return func(yield func(int, TurnRecord) bool) {
		for i, r := range h.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// LastOpponentAction returns what self's opponent played in the latest turn
func (h History) LastOpponentAction(self PlayerID) (Action, bool) {
	last, ok := h.Last()
	if !ok {
		return Cooperate, false
	}
	return last.Opponent(self)
}

// OpponentDefected reports whether self's opponent has defected in any turn
func (h History) OpponentDefected(self PlayerID) bool {
	for _, r := range h.records {
		if a, ok := r.Opponent(self); ok && a == Defect {
			return true
		}
	}
	return false
}
