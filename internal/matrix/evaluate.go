package matrix

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ─── Consistency evaluator ───────────────────────────────────────────────────

// EvaluationReport is the outcome of one consistency pass.
type EvaluationReport struct {
	// PassID uniquely identifies this evaluation pass.
	PassID string `json:"pass_id"`
	// ChangedID is the document whose change triggered the pass.
	ChangedID string `json:"changed_id"`
	// Visited is how many active documents the pass examined.
	Visited int `json:"visited"`
	// Updated holds copies of every record whose consistency status
	// changed, after write-back.
	Updated []DocumentRecord `json:"updated"`
	// ComputedAt is when the pass finished.
	ComputedAt string `json:"computed_at"`
}

// evalHooks allows tests to interleave mutations with a pass to exercise
// the abort path. Production code leaves it zero-valued.
type evalHooks struct {
	afterWalk func()
}

// Evaluator computes ConsistencyStatus for documents affected by a change.
//
// The pass is all-or-nothing: statuses are staged during the walk and only
// written back after verifying that neither the registry nor the graph was
// mutated mid-pass (generation counters). Under the Matrix lock the check
// always passes; it protects direct users of the evaluator.
type Evaluator struct {
	// Timeout is a defensive watchdog, not a correctness requirement:
	// a pass is bounded by O(nodes + edges) with no I/O. Zero disables it.
	Timeout time.Duration

	hooks evalHooks
}

// Evaluate runs one consistency pass for a change to changedID.
//
// Propagation is breadth-first from the changed node outward through
// incoming edges; each node is visited at most once per pass. A dependent
// is staged stale when its edge's last-known version of the target differs
// from the target's current version. A cycle back into the walked set with
// the near side already non-consistent stages both ends conflicted instead
// of looping. Archived records never participate.
func (ev *Evaluator) Evaluate(reg *Registry, g *Graph, changedID string) (*EvaluationReport, error) {
	passID := uuid.NewString()
	started := timeNow()
	regGen, graphGen := reg.Generation(), g.Generation()

	changed, err := reg.Get(changedID)
	if err != nil {
		return nil, err
	}
	if changed.State == StateArchived {
		return nil, fmt.Errorf("%w: %q", ErrArchived, changedID)
	}

	// Staged verdicts; nothing is written back until the pass completes.
	staged := map[string]*ConsistencyStatus{
		changedID: recomputeOwn(reg, g, changedID),
	}

	visited := map[string]bool{changedID: true}
	queue := []string{changedID}

	for len(queue) > 0 {
		if ev.Timeout > 0 && timeNow().Sub(started) > ev.Timeout {
			return nil, fmt.Errorf("%w: pass %s exceeded %s", ErrEvaluationAborted, passID, ev.Timeout)
		}
		current := queue[0]
		queue = queue[1:]

		for _, edge := range g.IncomingEdges(current) {
			dependent := edge.Source
			if !reg.isActive(dependent) {
				continue
			}

			if visited[dependent] {
				// Cycle: the dependent was already walked this pass. If the
				// node we arrived at is itself out of date, neither side can
				// be reconciled independently — both become conflicted.
				if cur := staged[current]; cur != nil && cur.State != Consistent {
					markConflicted(staged, current, edge.ID)
					markConflicted(staged, dependent, edge.ID)
				}
				continue
			}
			visited[dependent] = true

			target, err := reg.Get(edge.Target)
			if err != nil {
				continue
			}
			if edge.KnownVersion != target.Version {
				staged[dependent] = &ConsistencyStatus{
					State:             Stale,
					ContributingEdges: []int64{edge.ID},
				}
				// Only out-of-date nodes propagate further: a dependent whose
				// recorded version still matches has nothing to pass on.
				queue = append(queue, dependent)
			}
		}
	}

	if ev.hooks.afterWalk != nil {
		ev.hooks.afterWalk()
	}

	// All-or-nothing: refuse to write back if anything moved underneath us.
	if reg.Generation() != regGen || g.Generation() != graphGen {
		return nil, fmt.Errorf("%w: pass %s: registry or graph mutated mid-pass", ErrEvaluationAborted, passID)
	}

	computedAt := nowRFC3339()
	report := &EvaluationReport{
		PassID:     passID,
		ChangedID:  changedID,
		Visited:    len(visited),
		ComputedAt: computedAt,
	}

	var updatedIDs []string
	for id, status := range staged {
		prev, err := reg.Get(id)
		if err != nil {
			continue
		}
		status.ComputedAt = computedAt
		if prev.Consistency.State == status.State && equalEdgeIDs(prev.Consistency.ContributingEdges, status.ContributingEdges) {
			continue
		}
		reg.setConsistency(id, *status)
		updatedIDs = append(updatedIDs, id)
	}

	sort.Strings(updatedIDs)
	for _, id := range updatedIDs {
		rec, err := reg.Get(id)
		if err != nil {
			continue
		}
		report.Updated = append(report.Updated, *rec)
	}
	return report, nil
}

// recomputeOwn derives the changed document's own status from its outgoing
// depends-on edges. After an update its known versions were refreshed, so
// this normally yields Consistent — which is exactly how a stale document
// recovers once its author re-syncs.
func recomputeOwn(reg *Registry, g *Graph, id string) *ConsistencyStatus {
	status := &ConsistencyStatus{State: Consistent}
	for _, edge := range g.OutgoingEdges(id) {
		target, err := reg.Get(edge.Target)
		if err != nil || target.State == StateArchived {
			continue
		}
		if edge.KnownVersion != target.Version {
			status.State = Stale
			status.ContributingEdges = append(status.ContributingEdges, edge.ID)
		}
	}
	return status
}

// markConflicted upgrades a staged verdict to conflicted, accumulating the
// cycle edge that caused it.
func markConflicted(staged map[string]*ConsistencyStatus, id string, edgeID int64) {
	status := staged[id]
	if status == nil {
		status = &ConsistencyStatus{}
		staged[id] = status
	}
	status.State = Conflicted
	for _, existing := range status.ContributingEdges {
		if existing == edgeID {
			return
		}
	}
	status.ContributingEdges = append(status.ContributingEdges, edgeID)
}

func equalEdgeIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]int64(nil), a...)
	bs := append([]int64(nil), b...)
	sort.Slice(as, func(i, j int) bool { return as[i] < as[j] })
	sort.Slice(bs, func(i, j int) bool { return bs[i] < bs[j] })
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
