package matrix

import "fmt"

// --- Lifecycle state machine for document records ---
//
// Draft -> Review -> {Approved, Rejected}; Approved -> Baselined;
// Baselined -> Modified -> Review (cycle); any non-archived state
// -> Deprecated -> Archived (terminal). Generated and Enhanced are
// alternate entry states reachable only at creation and flow into
// Review exactly like Draft.

// DocState represents a document's lifecycle state.
type DocState string

const (
	StateDraft      DocState = "draft"
	StateGenerated  DocState = "generated"
	StateEnhanced   DocState = "enhanced"
	StateReview     DocState = "review"
	StateApproved   DocState = "approved"
	StateRejected   DocState = "rejected"
	StateBaselined  DocState = "baselined"
	StateModified   DocState = "modified"
	StateDeprecated DocState = "deprecated"
	StateArchived   DocState = "archived"
)

// stateTransitions defines the allowed next states for each state.
// StateDeprecated is additionally reachable from every non-archived
// state; see CanTransition.
var stateTransitions = map[DocState][]DocState{
	StateDraft:      {StateReview},
	StateGenerated:  {StateReview},
	StateEnhanced:   {StateReview},
	StateReview:     {StateApproved, StateRejected},
	StateApproved:   {StateBaselined},
	StateRejected:   {StateReview},
	StateBaselined:  {StateModified},
	StateModified:   {StateReview},
	StateDeprecated: {StateArchived},
	StateArchived:   {},
}

// entryStates is the set of states a record may be created in. Which one
// applies is determined by the generation method, never chosen directly.
var entryStates = map[DocState]bool{
	StateDraft:     true,
	StateGenerated: true,
	StateEnhanced:  true,
}

// EntryState returns the lifecycle state a new record starts in for the
// given generation method.
func EntryState(m Method) DocState {
	switch m {
	case MethodGenerated:
		return StateGenerated
	case MethodEnhanced:
		return StateEnhanced
	default:
		return StateDraft
	}
}

// ValidateState returns an error if the state is not recognized.
func ValidateState(s DocState) error {
	if _, ok := stateTransitions[s]; !ok {
		return fmt.Errorf("invalid document state %q", s)
	}
	return nil
}

// CanTransition reports whether a record may move from one lifecycle state
// to another. Entry states are only reachable at creation. Deprecation is
// allowed from any non-archived state; Archived is terminal.
func CanTransition(from, to DocState) error {
	if err := ValidateState(from); err != nil {
		return err
	}
	if err := ValidateState(to); err != nil {
		return err
	}
	if from == StateArchived {
		return fmt.Errorf("%w: %q is terminal", ErrInvalidStateTransition, from)
	}
	if entryStates[to] {
		return fmt.Errorf("%w: %q is an entry state, reachable only at creation", ErrInvalidStateTransition, to)
	}
	if to == StateDeprecated {
		return nil
	}
	for _, next := range stateTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, from, to)
}
