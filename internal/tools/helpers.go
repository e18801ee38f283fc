// Package tools provides the MCP tool handlers for the tracking matrix.
//
// Each handler follows the same pattern:
// - A struct with dependencies (matrix.Matrix, store.Store) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Handlers are the inbound boundary: the document generator or editor
// integration calls them whenever a document is created, edited, or its
// relationships change. After a successful core mutation the handler
// persists a snapshot through the store — persistence never runs inside
// the matrix lock.
package tools

import (
	"fmt"
	"strings"

	"github.com/Org-EthereaLogic/docmatrix/internal/matrix"
	"github.com/Org-EthereaLogic/docmatrix/internal/store"
)

// Persister is the slice of the store the tools need. Nil at the call
// sites means persistence is unavailable: the matrix still works
// in-memory and the server logs a warning at startup.
type Persister interface {
	SaveSnapshot(snapshot matrix.ExportData) error
}

var _ Persister = (*store.Store)(nil)

// persist writes the current matrix state through p, tolerating a nil
// persister. A failed write is reported to the caller so the external
// collaborator can decide whether to retry.
func persist(p Persister, m *matrix.Matrix) error {
	if p == nil {
		return nil
	}
	if err := p.SaveSnapshot(m.Snapshot()); err != nil {
		return fmt.Errorf("persisting matrix: %w", err)
	}
	return nil
}

// formatRecord renders a document record as a compact Markdown block.
func formatRecord(rec *matrix.DocumentRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**%s** (%s) v%s\n", rec.ID, rec.Type, rec.Version))
	sb.WriteString(fmt.Sprintf("- State: %s\n", rec.State))
	sb.WriteString(fmt.Sprintf("- Method: %s\n", rec.Method))
	sb.WriteString(fmt.Sprintf("- Consistency: %s", rec.Consistency.State))
	if len(rec.Consistency.ContributingEdges) > 0 {
		sb.WriteString(fmt.Sprintf(" (edges %s)", joinEdgeIDs(rec.Consistency.ContributingEdges)))
	}
	sb.WriteString("\n")
	if rec.QualityScore != nil {
		sb.WriteString(fmt.Sprintf("- Quality: %d/100\n", *rec.QualityScore))
	}
	return sb.String()
}

func joinEdgeIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(parts, ", ")
}
