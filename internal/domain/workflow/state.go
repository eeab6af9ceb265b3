package workflow

import "github.com/billedapp/billflow/internal/domain/entity"

// State represents a review state in the bill lifecycle.
type State string

const (
	StatePending  State = "pending"
	StateAccepted State = "accepted"
	StateRefused  State = "refused"
)

var validStates = map[State]bool{
	StatePending:  true,
	StateAccepted: true,
	StateRefused:  true,
}

var terminalStates = map[State]bool{
	StateAccepted: true,
	StateRefused:  true,
}

// FromStatus converts a stored bill status to a workflow state.
func FromStatus(s entity.Status) State {
	return State(s)
}

// Status converts the state back to a stored bill status.
func (s State) Status() entity.Status {
	return entity.Status(s)
}

// IsTerminal returns true if no further transitions are allowed from the state.
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// IsValid returns true if the state is a valid review state.
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}
