// Package resources implements MCP resource handlers for the tracking matrix.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (docmatrix://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Org-EthereaLogic/docmatrix/internal/matrix"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages tracking matrix resource endpoints.
type Handler struct {
	m *matrix.Matrix
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(m *matrix.Matrix) *Handler {
	return &Handler{m: m}
}

// ExportResource returns the MCP resource definition for the matrix export.
func (h *Handler) ExportResource() mcp.Resource {
	return mcp.NewResource(
		"docmatrix://matrix/export",
		"Tracking Matrix Export",
		mcp.WithResourceDescription("All tracked documents with consistency statuses plus relationship edges"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleExport returns the matrix export as JSON.
func (h *Handler) HandleExport(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(h.m.Export(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling export: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// StatusResource returns the MCP resource definition for matrix statistics.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"docmatrix://matrix/status",
		"Tracking Matrix Status",
		mcp.WithResourceDescription("Document counts, edge counts, and consistency breakdown"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStatus returns aggregate matrix statistics as JSON.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(h.m.Stats(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
