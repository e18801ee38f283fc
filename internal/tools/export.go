package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Org-EthereaLogic/docmatrix/internal/matrix"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── ExportTool ──────────────────────────────────────────────────────────────

// ExportTool handles the doc_export MCP tool. Rendering lives here, not
// in the core: the matrix hands over a logical dump and this tool turns
// it into json, markdown, or csv for the reporting layer.
type ExportTool struct {
	m *matrix.Matrix
}

// NewExportTool creates an ExportTool with the given matrix.
func NewExportTool(m *matrix.Matrix) *ExportTool {
	return &ExportTool{m: m}
}

// Definition returns the MCP tool definition for doc_export.
func (t *ExportTool) Definition() mcp.Tool {
	return mcp.NewTool("doc_export",
		mcp.WithDescription(
			"Export every tracked document with its consistency status, plus all "+
				"relationship edges, for display in a CLI or editor panel.",
		),
		mcp.WithString("format",
			mcp.Description("Output format: json (default), markdown, csv"),
		),
	)
}

// Handle processes the doc_export tool call.
func (t *ExportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := req.GetString("format", "json")
	data := t.m.Export()

	switch format {
	case "json":
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to render export: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	case "markdown":
		return mcp.NewToolResultText(renderMarkdown(data)), nil
	case "csv":
		return mcp.NewToolResultText(renderCSV(data)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q: must be json, markdown, or csv", format)), nil
	}
}

// renderMarkdown produces a two-table markdown view of the export.
func renderMarkdown(data matrix.ExportData) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Tracking Matrix (%s)\n\n", data.ExportedAt))

	sb.WriteString("## Documents\n\n")
	sb.WriteString("| ID | Type | Version | State | Consistency | Quality |\n")
	sb.WriteString("|----|------|---------|-------|-------------|--------|\n")
	for _, rec := range data.Documents {
		quality := "-"
		if rec.QualityScore != nil {
			quality = fmt.Sprintf("%d", *rec.QualityScore)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			rec.ID, rec.Type, rec.Version, rec.State, rec.Consistency.State, quality))
	}

	sb.WriteString("\n## Relationships\n\n")
	if len(data.Edges) == 0 {
		sb.WriteString("_none_\n")
		return sb.String()
	}
	sb.WriteString("| Edge | Source | Target | Kind | Known version |\n")
	sb.WriteString("|------|--------|--------|------|---------------|\n")
	for _, e := range data.Edges {
		sb.WriteString(fmt.Sprintf("| #%d | %s | %s | %s | %s |\n",
			e.ID, e.Source, e.Target, e.Kind, e.KnownVersion))
	}
	return sb.String()
}

// renderCSV produces a documents-only CSV (one row per record).
func renderCSV(data matrix.ExportData) string {
	var sb strings.Builder
	sb.WriteString("id,type,version,state,method,consistency,quality_score\n")
	for _, rec := range data.Documents {
		quality := ""
		if rec.QualityScore != nil {
			quality = fmt.Sprintf("%d", *rec.QualityScore)
		}
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s\n",
			csvField(rec.ID), rec.Type, rec.Version, rec.State, rec.Method,
			rec.Consistency.State, quality))
	}
	return sb.String()
}

// csvField quotes a field if it contains a comma or quote.
func csvField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
