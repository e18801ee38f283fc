package matrix

import (
	"fmt"
	"sync"
	"time"
)

// ─── Config ──────────────────────────────────────────────────────────────────

// Scorer is a pluggable quality evaluation function returning 0-100 for a
// document. Scoring (model inference, LLM calls) is an external concern:
// the matrix invokes it outside its lock and merely records the result.
type Scorer func(rec DocumentRecord) int

// Config holds tracking matrix configuration. It is passed explicitly at
// construction — the matrix keeps no ambient global state.
type Config struct {
	// EvalTimeout bounds a single consistency pass. Defensive only;
	// zero disables the watchdog.
	EvalTimeout time.Duration
	// MaxExportRecords caps a bulk export. Zero means unlimited.
	MaxExportRecords int
	// Scorer, when set, refreshes quality scores for records touched by
	// a notify pass. Nil leaves scores alone.
	Scorer Scorer
}

// DefaultConfig returns the default matrix configuration.
func DefaultConfig() Config {
	return Config{
		EvalTimeout:      10 * time.Second,
		MaxExportRecords: 0,
	}
}

// ─── Matrix ──────────────────────────────────────────────────────────────────

// Matrix is the tracking matrix facade: registry, relationship graph, and
// consistency evaluator behind one lock.
//
// Every operation — mutating or not — serializes on a single mutex, which
// makes each NotifyChanged call a transaction: no other mutation can
// interleave with an in-flight evaluation pass. A pass is O(nodes + edges)
// with no I/O under the lock, so nothing blocks indefinitely. Persistence
// and quality scoring are external collaborators invoked outside it.
type Matrix struct {
	mu   sync.Mutex
	cfg  Config
	reg  *Registry
	g    *Graph
	eval *Evaluator
}

// New creates an empty tracking matrix with the given configuration.
func New(cfg Config) *Matrix {
	return &Matrix{
		cfg:  cfg,
		reg:  NewRegistry(),
		g:    NewGraph(),
		eval: &Evaluator{Timeout: cfg.EvalTimeout},
	}
}

// Register adds a new document to the registry.
func (m *Matrix) Register(p RegisterParams) (*DocumentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reg.Register(p)
}

// Get returns a document record by ID, archived included.
func (m *Matrix) Get(id string) (*DocumentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reg.Get(id)
}

// Update bumps a document's version (strict increase) and optionally its
// lifecycle state, refreshing the known versions on its outgoing edges.
// It does not run a consistency pass — use NotifyChanged for change events
// that should propagate.
func (m *Matrix) Update(id, newVersion string, newState DocState) (*DocumentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, err := m.reg.Update(id, newVersion, newState)
	if err != nil {
		return nil, err
	}
	m.refreshOutgoing(id)
	return rec, nil
}

// Archive moves a document to the terminal archived state. The record
// stays queryable but drops out of consistency propagation.
func (m *Matrix) Archive(id string) (*DocumentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reg.Archive(id)
}

// AddEdge creates a directed relationship between two registered
// documents. The edge's known version is captured from the target's
// current version.
func (m *Matrix) AddEdge(source, target string, kind RelationKind) (*RelationshipEdge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if source == target {
		// Checked before endpoint lookup so a self-loop on an unknown ID
		// still reports the more specific error.
		return nil, fmt.Errorf("%w: %q", ErrSelfReference, source)
	}
	if _, err := m.reg.Get(source); err != nil {
		return nil, err
	}
	targetRec, err := m.reg.Get(target)
	if err != nil {
		return nil, err
	}
	return m.g.AddEdge(source, target, kind, targetRec.Version)
}

// RemoveEdge deletes every edge between source and target. Idempotent.
func (m *Matrix) RemoveEdge(source, target string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.g.RemoveEdge(source, target)
}

// IncomingEdges returns all edges pointing at id.
func (m *Matrix) IncomingEdges(id string) []RelationshipEdge {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.g.IncomingEdges(id)
}

// OutgoingEdges returns all edges originating at id.
func (m *Matrix) OutgoingEdges(id string) []RelationshipEdge {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.g.OutgoingEdges(id)
}

// ReachableFrom returns the IDs transitively reachable from id.
func (m *Matrix) ReachableFrom(id string) map[string]bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.g.ReachableFrom(id)
}

// NotifyChanged is the single write path into the evaluation pipeline:
// it records the new version, then runs a full consistency pass before
// returning. The report lists every record whose status changed. All
// propagation is synchronous — there is no deferred consistency.
//
// When a Scorer is configured, quality scores for the touched records are
// refreshed after the pass, outside the lock.
func (m *Matrix) NotifyChanged(id, newVersion string) (*EvaluationReport, error) {
	m.mu.Lock()
	if _, err := m.reg.Update(id, newVersion, ""); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.refreshOutgoing(id)

	report, err := m.eval.Evaluate(m.reg, m.g, id)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.mu.Unlock()

	if m.cfg.Scorer != nil {
		m.rescore(report)
	}
	return report, nil
}

// rescore runs the external quality scorer for the changed document and
// every record the pass updated, then writes the results back under the
// lock. The scorer runs unlocked: it may do model inference or LLM calls.
func (m *Matrix) rescore(report *EvaluationReport) {
	ids := []string{report.ChangedID}
	for _, rec := range report.Updated {
		if rec.ID != report.ChangedID {
			ids = append(ids, rec.ID)
		}
	}

	scores := make(map[string]int, len(ids))
	for _, id := range ids {
		rec, err := m.Get(id)
		if err != nil {
			continue
		}
		scores[id] = clampScore(m.cfg.Scorer(*rec))
	}

	m.mu.Lock()
	for id, score := range scores {
		m.reg.setQualityScore(id, score)
	}
	m.mu.Unlock()

	for i, rec := range report.Updated {
		if score, ok := scores[rec.ID]; ok {
			s := score
			report.Updated[i].QualityScore = &s
		}
	}
}

// Stats returns aggregate counts for the reporting layer.
func (m *Matrix) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := Stats{ByConsistency: make(map[ConsistencyState]int)}
	for _, rec := range m.reg.All() {
		stats.TotalDocuments++
		if rec.State == StateArchived {
			stats.ArchivedDocuments++
		} else {
			stats.ActiveDocuments++
			stats.ByConsistency[rec.Consistency.State]++
		}
	}
	stats.TotalEdges = len(m.g.Edges())
	return stats
}

// refreshOutgoing re-syncs the known versions on id's outgoing edges to
// the current versions of their targets. Caller holds the lock.
func (m *Matrix) refreshOutgoing(id string) {
	m.g.refreshKnownVersions(id, func(target string) (string, bool) {
		rec, err := m.reg.Get(target)
		if err != nil {
			return "", false
		}
		return rec.Version, true
	})
}
