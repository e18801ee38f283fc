package matrix

import "fmt"

// ─── Registry ────────────────────────────────────────────────────────────────

// Registry is the authoritative mapping from document identifier to its
// DocumentRecord.
//
// Registry is not safe for concurrent use on its own; the Matrix serializes
// access. The generation counter increments on every successful mutation so
// the evaluator can detect interleaved writes.
type Registry struct {
	records    map[string]*DocumentRecord
	generation uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]*DocumentRecord)}
}

// Generation returns the mutation counter. It increments on every
// successful Register, Update, or Archive.
func (r *Registry) Generation() uint64 {
	return r.generation
}

// Register creates a new document record. The generation method picks the
// entry state (manual -> draft, generated/enhanced -> themselves). Fails
// with ErrDuplicateIdentifier if the ID is taken, leaving the existing
// record unmodified.
func (r *Registry) Register(p RegisterParams) (*DocumentRecord, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrNotFound)
	}
	if err := ValidateType(p.Type); err != nil {
		return nil, err
	}
	method := p.Method
	if method == "" {
		method = MethodManual
	}
	if err := ValidateMethod(method); err != nil {
		return nil, err
	}
	version, err := ParseVersion(p.Version)
	if err != nil {
		return nil, err
	}
	if _, exists := r.records[p.ID]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateIdentifier, p.ID)
	}

	now := nowRFC3339()
	rec := &DocumentRecord{
		ID:          p.ID,
		Type:        p.Type,
		Version:     version,
		State:       EntryState(method),
		Method:      method,
		Consistency: ConsistencyStatus{State: Consistent},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.records[p.ID] = rec
	r.generation++

	out := *rec
	return &out, nil
}

// Get returns a copy of the record, or ErrNotFound. Archived records
// remain queryable.
func (r *Registry) Get(id string) (*DocumentRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	out := *rec
	return &out, nil
}

// Update bumps a record to a strictly higher version and optionally moves
// it to a new lifecycle state (empty newState keeps the current one, except
// that a content change to a baselined record moves it to modified).
//
// Fails with ErrNotFound for unknown IDs, ErrArchived for archived records,
// ErrInvalidVersionTransition when the version does not strictly increase,
// and ErrInvalidStateTransition for disallowed state moves. On failure the
// record is left unchanged.
func (r *Registry) Update(id, newVersion string, newState DocState) (*DocumentRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if rec.State == StateArchived {
		return nil, fmt.Errorf("%w: %q", ErrArchived, id)
	}
	version, err := ParseVersion(newVersion)
	if err != nil {
		return nil, err
	}
	if !versionIncreases(rec.Version, version) {
		return nil, fmt.Errorf("%w: %q, %s -> %s", ErrInvalidVersionTransition, id, rec.Version, version)
	}

	state := newState
	if state == "" {
		// A content change to a baselined document re-opens it.
		if rec.State == StateBaselined {
			state = StateModified
		} else {
			state = rec.State
		}
	}
	if state != rec.State {
		if err := CanTransition(rec.State, state); err != nil {
			return nil, err
		}
	}

	rec.Version = version
	rec.State = state
	rec.UpdatedAt = nowRFC3339()
	if state == StateReview {
		rec.LastReviewAt = rec.UpdatedAt
	}
	r.generation++

	out := *rec
	return &out, nil
}

// Archive moves a record to the terminal archived state. The record stays
// queryable for the audit trail but is excluded from active consistency
// scans. Archiving an already-archived record is a no-op.
func (r *Registry) Archive(id string) (*DocumentRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if rec.State != StateArchived {
		rec.State = StateArchived
		rec.UpdatedAt = nowRFC3339()
		r.generation++
	}
	out := *rec
	return &out, nil
}

// All returns copies of every record, archived included.
func (r *Registry) All() []DocumentRecord {
	result := make([]DocumentRecord, 0, len(r.records))
	for _, rec := range r.records {
		result = append(result, *rec)
	}
	return result
}

// isActive reports whether the record exists and is not archived.
// Used by the evaluator to bound propagation.
func (r *Registry) isActive(id string) bool {
	rec, ok := r.records[id]
	return ok && rec.State != StateArchived
}

// setConsistency writes an evaluated status back to a record. Write-back
// is part of an evaluation pass and does not bump the generation counter:
// the counter tracks externally visible mutations only.
func (r *Registry) setConsistency(id string, status ConsistencyStatus) {
	if rec, ok := r.records[id]; ok {
		rec.Consistency = status
	}
}

// setQualityScore records an external quality evaluation, clamped to 0-100.
func (r *Registry) setQualityScore(id string, score int) {
	rec, ok := r.records[id]
	if !ok {
		return
	}
	score = clampScore(score)
	rec.QualityScore = &score
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// load inserts a previously persisted record verbatim, used for startup
// rehydration. Overwrites any existing record with the same ID.
func (r *Registry) load(rec DocumentRecord) {
	stored := rec
	r.records[rec.ID] = &stored
}
