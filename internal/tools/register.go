package tools

import (
	"context"
	"fmt"

	"github.com/Org-EthereaLogic/docmatrix/internal/matrix"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── RegisterTool ────────────────────────────────────────────────────────────

// RegisterTool handles the doc_register MCP tool.
type RegisterTool struct {
	m *matrix.Matrix
	p Persister
}

// NewRegisterTool creates a RegisterTool with its dependencies.
func NewRegisterTool(m *matrix.Matrix, p Persister) *RegisterTool {
	return &RegisterTool{m: m, p: p}
}

// Definition returns the MCP tool definition for doc_register.
func (t *RegisterTool) Definition() mcp.Tool {
	return mcp.NewTool("doc_register",
		mcp.WithDescription(
			"Register a new document in the tracking matrix. Call this when a document is "+
				"first created so its version and relationships can be tracked.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Unique document identifier (e.g. 'REQ-1', 'DES-payments'). Immutable once assigned."),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Document type: requirements, design, test, operations, management, general"),
		),
		mcp.WithString("version",
			mcp.Required(),
			mcp.Description("Initial semantic version, e.g. '1.0.0'"),
		),
		mcp.WithString("method",
			mcp.Description("How the document was produced: manual (default), generated, enhanced. Determines the entry state."),
		),
	)
}

// Handle processes the doc_register tool call.
func (t *RegisterTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}
	docType := req.GetString("type", "")
	if docType == "" {
		return mcp.NewToolResultError("'type' is required"), nil
	}
	version := req.GetString("version", "")
	if version == "" {
		return mcp.NewToolResultError("'version' is required"), nil
	}
	method := req.GetString("method", string(matrix.MethodManual))

	rec, err := t.m.Register(matrix.RegisterParams{
		ID:      id,
		Type:    matrix.DocType(docType),
		Version: version,
		Method:  matrix.Method(method),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to register document: %v", err)), nil
	}
	if err := persist(t.p, t.m); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Document registered:\n\n%s", formatRecord(rec))), nil
}
