package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/Org-EthereaLogic/docmatrix/internal/matrix"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── StatsTool ───────────────────────────────────────────────────────────────

// StatsTool handles the doc_stats MCP tool.
type StatsTool struct {
	m *matrix.Matrix
}

// NewStatsTool creates a StatsTool with the given matrix.
func NewStatsTool(m *matrix.Matrix) *StatsTool {
	return &StatsTool{m: m}
}

// Definition returns the MCP tool definition for doc_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("doc_stats",
		mcp.WithDescription(
			"Show tracking matrix statistics — document counts, edge counts, and a consistency breakdown.",
		),
	)
}

// Handle processes the doc_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := t.m.Stats()

	var sb strings.Builder
	sb.WriteString("## Matrix Statistics\n\n")
	sb.WriteString(fmt.Sprintf("- **Documents**: %d (%d active, %d archived)\n",
		stats.TotalDocuments, stats.ActiveDocuments, stats.ArchivedDocuments))
	sb.WriteString(fmt.Sprintf("- **Relationships**: %d\n", stats.TotalEdges))

	if stats.ActiveDocuments > 0 {
		sb.WriteString(fmt.Sprintf("- **Consistency**: %d consistent, %d stale, %d conflicted\n",
			stats.ByConsistency[matrix.Consistent],
			stats.ByConsistency[matrix.Stale],
			stats.ByConsistency[matrix.Conflicted]))
	} else {
		sb.WriteString("- **Consistency**: no active documents\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}
