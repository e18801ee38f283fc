// Package matrix implements the document tracking matrix: a registry of
// versioned document records, a directed relationship graph between them,
// and a consistency evaluator that marks dependents stale or conflicted
// when a document they depend on changes.
//
// The package follows the same design principles as the rest of the codebase:
// - SRP: types, state machine, registry, graph, and evaluator in separate files
// - DIP: callers depend on the Matrix facade; persistence is a collaborator
// - Registry and Graph are unsynchronized building blocks; the Matrix
//   serializes every operation on a single lock (solo-developer workloads,
//   not multi-tenant throughput)
package matrix

import "fmt"

// ─── Document type enum ──────────────────────────────────────────────────────

// DocType categorizes what kind of artifact a document record tracks.
type DocType string

const (
	TypeRequirements DocType = "requirements"
	TypeDesign       DocType = "design"
	TypeTest         DocType = "test"
	TypeOperations   DocType = "operations"
	TypeManagement   DocType = "management"
	TypeGeneral      DocType = "general"
)

// validTypes is the set of allowed document types.
var validTypes = map[DocType]bool{
	TypeRequirements: true,
	TypeDesign:       true,
	TypeTest:         true,
	TypeOperations:   true,
	TypeManagement:   true,
	TypeGeneral:      true,
}

// ValidateType returns an error if the type is not recognized.
func ValidateType(t DocType) error {
	if !validTypes[t] {
		return fmt.Errorf("invalid document type %q: must be one of: requirements, design, test, operations, management, general", t)
	}
	return nil
}

// ─── Generation method enum ──────────────────────────────────────────────────

// Method records how a document came into existence. It determines the
// entry state of a new record and never changes afterwards.
type Method string

const (
	MethodManual    Method = "manual"
	MethodGenerated Method = "generated"
	MethodEnhanced  Method = "enhanced"
)

// validMethods is the set of allowed generation methods.
var validMethods = map[Method]bool{
	MethodManual:    true,
	MethodGenerated: true,
	MethodEnhanced:  true,
}

// ValidateMethod returns an error if the method is not recognized.
func ValidateMethod(m Method) error {
	if !validMethods[m] {
		return fmt.Errorf("invalid generation method %q: must be one of: manual, generated, enhanced", m)
	}
	return nil
}

// ─── Relationship kind enum ──────────────────────────────────────────────────

// RelationKind is the type of a directed edge between two document records.
type RelationKind string

const (
	KindDependsOn   RelationKind = "depends-on"
	KindReferences  RelationKind = "references"
	KindDerivedFrom RelationKind = "derived-from"
)

// validKinds is the set of allowed relationship kinds.
var validKinds = map[RelationKind]bool{
	KindDependsOn:   true,
	KindReferences:  true,
	KindDerivedFrom: true,
}

// ValidateKind returns an error if the relationship kind is not recognized.
func ValidateKind(k RelationKind) error {
	if !validKinds[k] {
		return fmt.Errorf("invalid relationship kind %q: must be one of: depends-on, references, derived-from", k)
	}
	return nil
}

// ─── Consistency state enum ──────────────────────────────────────────────────

// ConsistencyState is the derived verdict on whether a document is up to
// date with its dependencies.
type ConsistencyState string

const (
	Consistent ConsistencyState = "consistent"
	Stale      ConsistencyState = "stale"
	Conflicted ConsistencyState = "conflicted"
)

// ─── Core data structures ────────────────────────────────────────────────────

// ConsistencyStatus is the evaluator's verdict attached to a DocumentRecord.
// It is derived, never edited directly: the evaluator recomputes it whenever
// a document reachable via an incoming edge changes version.
type ConsistencyStatus struct {
	State ConsistencyState `json:"state"`
	// ComputedAt is the RFC3339 timestamp of the evaluation pass that
	// produced this verdict. Empty until the first pass touches the record.
	ComputedAt string `json:"computed_at,omitempty"`
	// ContributingEdges lists the edge IDs that caused a non-consistent
	// verdict. Empty for consistent records.
	ContributingEdges []int64 `json:"contributing_edges,omitempty"`
}

// DocumentRecord is one tracked artifact in the matrix.
//
// The ID is immutable once assigned and the version only increases within
// a record's lifetime. Archived records are retained for the audit trail,
// remain queryable, and are excluded from active consistency scans.
type DocumentRecord struct {
	ID      string   `json:"id"`
	Type    DocType  `json:"type"`
	Version string   `json:"version"` // semantic version triple, e.g. "1.2.0"
	State   DocState `json:"state"`
	Method  Method   `json:"method"`
	// QualityScore is 0-100, nil until the first quality evaluation.
	// The scoring function itself is pluggable (Config.Scorer) and external
	// to the matrix.
	QualityScore *int   `json:"quality_score,omitempty"`
	LastReviewAt string `json:"last_review_at,omitempty"`
	Consistency  ConsistencyStatus `json:"consistency"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

// RelationshipEdge is a directed dependency from Source to Target, e.g. a
// design document that depends on a requirements document.
//
// Edges are owned by the graph and created/removed only through explicit
// registration calls, never inferred from content. KnownVersion is the
// version of Target the author of Source last synced against; the evaluator
// compares it to Target's current version to decide staleness.
type RelationshipEdge struct {
	ID           int64        `json:"id"`
	Source       string       `json:"source"`
	Target       string       `json:"target"`
	Kind         RelationKind `json:"kind"`
	KnownVersion string       `json:"known_version"`
	CreatedAt    string       `json:"created_at"`
}

// RegisterParams holds the input for registering a new document.
type RegisterParams struct {
	ID      string  `json:"id"`
	Type    DocType `json:"type"`
	Version string  `json:"version"`
	Method  Method  `json:"method,omitempty"` // default: manual
}

// Stats holds aggregate matrix statistics for the reporting layer.
type Stats struct {
	TotalDocuments    int                      `json:"total_documents"`
	ActiveDocuments   int                      `json:"active_documents"`
	ArchivedDocuments int                      `json:"archived_documents"`
	TotalEdges        int                      `json:"total_edges"`
	ByConsistency     map[ConsistencyState]int `json:"by_consistency"`
}
