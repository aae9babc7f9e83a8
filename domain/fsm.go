package domain

import "chat-courier/errors"

// transitions is the whole lifecycle: a single forward path.
var transitions = map[State]State{
	StateCreated:  StateAccepted,
	StateAccepted: StatePersisted,
}

func InitialState() State {
	return StateCreated
}

func IsValidState(s State) bool {
	switch s {
	case StateCreated, StateAccepted, StatePersisted:
		return true
	}
	return false
}

func IsTerminal(s State) bool {
	return s == StatePersisted
}

func IsValidTransition(from, to State) bool {
	next, ok := transitions[from]
	return ok && next == to
}

// AllowedTransitions lists the legal pairs as "FROM->TO".
func AllowedTransitions() []string {
	return []string{
		string(StateCreated) + "->" + string(StateAccepted),
		string(StateAccepted) + "->" + string(StatePersisted),
	}
}

// AssertTransition returns an invalid_transition DomainError for any pair
// outside the lifecycle.
func AssertTransition(from, to State) error {
	if IsValidTransition(from, to) {
		return nil
	}
	return errors.NewInvalidTransition(string(from), string(to), AllowedTransitions())
}
