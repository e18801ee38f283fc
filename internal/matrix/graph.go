package matrix

import (
	"fmt"
	"sort"
)

// ─── Relationship graph ──────────────────────────────────────────────────────

// Graph maintains the directed relationship edges between document records
// and answers incoming-edge and reachability queries.
//
// The graph may contain cycles (mutual cross-references are a first-class
// case); every traversal uses an explicit visited set, never recursion, so
// termination is guaranteed. Like Registry, Graph is unsynchronized on its
// own and carries a generation counter for the evaluator's abort check.
type Graph struct {
	edges      map[int64]*RelationshipEdge
	bySource   map[string]map[int64]*RelationshipEdge
	byTarget   map[string]map[int64]*RelationshipEdge
	nextID     int64
	generation uint64
}

// NewGraph creates an empty relationship graph.
func NewGraph() *Graph {
	return &Graph{
		edges:    make(map[int64]*RelationshipEdge),
		bySource: make(map[string]map[int64]*RelationshipEdge),
		byTarget: make(map[string]map[int64]*RelationshipEdge),
		nextID:   1,
	}
}

// Generation returns the mutation counter. It increments on every
// successful AddEdge or RemoveEdge that changed the graph.
func (g *Graph) Generation() uint64 {
	return g.generation
}

// AddEdge creates a directed edge from source to target. KnownVersion is
// the target version the source author synced against (the caller passes
// the target's current version). Fails with ErrSelfReference when
// source == target and ErrDuplicateEdge when the (source, target, kind)
// triple already exists. Endpoint existence is checked by the Matrix,
// which owns the registry.
func (g *Graph) AddEdge(source, target string, kind RelationKind, knownVersion string) (*RelationshipEdge, error) {
	if source == target {
		return nil, fmt.Errorf("%w: %q", ErrSelfReference, source)
	}
	if err := ValidateKind(kind); err != nil {
		return nil, err
	}
	for _, e := range g.bySource[source] {
		if e.Target == target && e.Kind == kind {
			return nil, fmt.Errorf("%w: %s -> %s (%s)", ErrDuplicateEdge, source, target, kind)
		}
	}

	edge := &RelationshipEdge{
		ID:           g.nextID,
		Source:       source,
		Target:       target,
		Kind:         kind,
		KnownVersion: knownVersion,
		CreatedAt:    nowRFC3339(),
	}
	g.nextID++
	g.insert(edge)
	g.generation++

	out := *edge
	return &out, nil
}

// RemoveEdge deletes every edge between source and target, regardless of
// kind, and returns how many were removed. Idempotent: removing absent
// edges is not an error and leaves the graph unchanged.
func (g *Graph) RemoveEdge(source, target string) int {
	removed := 0
	for id, e := range g.bySource[source] {
		if e.Target == target {
			g.delete(id)
			removed++
		}
	}
	if removed > 0 {
		g.generation++
	}
	return removed
}

// IncomingEdges returns copies of all edges whose target is id, ordered by
// edge ID for deterministic evaluation passes.
func (g *Graph) IncomingEdges(id string) []RelationshipEdge {
	return sortedCopies(g.byTarget[id])
}

// OutgoingEdges returns copies of all edges whose source is id, ordered by
// edge ID.
func (g *Graph) OutgoingEdges(id string) []RelationshipEdge {
	return sortedCopies(g.bySource[id])
}

// Edges returns copies of every edge in the graph, ordered by edge ID.
func (g *Graph) Edges() []RelationshipEdge {
	return sortedCopies(g.edges)
}

// ReachableFrom returns the set of document IDs reachable from id by
// following outgoing edges transitively. The starting node is not included
// unless it sits on a cycle. Cycle-safe via the visited set.
func (g *Graph) ReachableFrom(id string) map[string]bool {
	visited := make(map[string]bool)
	reachable := make(map[string]bool)
	stack := []string{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.bySource[current] {
			if !reachable[e.Target] {
				reachable[e.Target] = true
			}
			if !visited[e.Target] {
				visited[e.Target] = true
				stack = append(stack, e.Target)
			}
		}
	}
	return reachable
}

// refreshKnownVersions updates KnownVersion on every outgoing edge of
// source to the target versions reported by lookup. Called when a document
// is updated: its author is taken to have re-synced against current
// dependencies. Returns copies of the refreshed edges.
func (g *Graph) refreshKnownVersions(source string, lookup func(id string) (string, bool)) []RelationshipEdge {
	var refreshed []RelationshipEdge
	for _, e := range g.bySource[source] {
		version, ok := lookup(e.Target)
		if !ok || e.KnownVersion == version {
			continue
		}
		e.KnownVersion = version
		refreshed = append(refreshed, *e)
	}
	sort.Slice(refreshed, func(i, j int) bool { return refreshed[i].ID < refreshed[j].ID })
	return refreshed
}

// load inserts a previously persisted edge verbatim, used for startup
// rehydration. Keeps nextID ahead of every loaded edge.
func (g *Graph) load(e RelationshipEdge) {
	stored := e
	g.insert(&stored)
	if e.ID >= g.nextID {
		g.nextID = e.ID + 1
	}
}

func (g *Graph) insert(e *RelationshipEdge) {
	g.edges[e.ID] = e
	if g.bySource[e.Source] == nil {
		g.bySource[e.Source] = make(map[int64]*RelationshipEdge)
	}
	if g.byTarget[e.Target] == nil {
		g.byTarget[e.Target] = make(map[int64]*RelationshipEdge)
	}
	g.bySource[e.Source][e.ID] = e
	g.byTarget[e.Target][e.ID] = e
}

func (g *Graph) delete(id int64) {
	e, ok := g.edges[id]
	if !ok {
		return
	}
	delete(g.edges, id)
	delete(g.bySource[e.Source], id)
	delete(g.byTarget[e.Target], id)
}

func sortedCopies(m map[int64]*RelationshipEdge) []RelationshipEdge {
	result := make([]RelationshipEdge, 0, len(m))
	for _, e := range m {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
