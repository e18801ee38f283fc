package matrix

import "errors"

// Sentinel errors for the tracking matrix. Every mutating operation either
// fully succeeds or reports exactly one of these kinds (wrapped with
// context), leaving prior state unchanged. None are retried by the core;
// the caller decides. ErrEvaluationAborted in particular is safe to retry
// immediately once the graph is quiesced, since a pass is idempotent.
var (
	// ErrDuplicateIdentifier is returned when registering an ID that
	// already exists in the registry.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrNotFound is returned when a document ID is not registered.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidVersionTransition is returned when an update does not
	// strictly increase the document version.
	ErrInvalidVersionTransition = errors.New("invalid version transition")

	// ErrInvalidStateTransition is returned when a lifecycle state change
	// is not allowed by the state machine.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrSelfReference is returned when an edge would connect a document
	// to itself.
	ErrSelfReference = errors.New("self-referencing edge")

	// ErrDuplicateEdge is returned when an identical (source, target, kind)
	// edge already exists.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrArchived is returned when a mutating operation targets an
	// archived record. Archived records are audit-trail only.
	ErrArchived = errors.New("document is archived")

	// ErrEvaluationAborted is returned when the registry or graph was
	// mutated while an evaluation pass was in flight. No statuses are
	// written back; the caller must retry the full pass.
	ErrEvaluationAborted = errors.New("evaluation aborted")
)
