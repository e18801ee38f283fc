package resources

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Org-EthereaLogic/docmatrix/internal/matrix"
	"github.com/mark3labs/mcp-go/mcp"
)

func seededMatrix(t *testing.T) *matrix.Matrix {
	t.Helper()
	m := matrix.New(matrix.DefaultConfig())
	if _, err := m.Register(matrix.RegisterParams{ID: "REQ-1", Type: matrix.TypeRequirements, Version: "1.0.0"}); err != nil {
		t.Fatalf("register REQ-1: %v", err)
	}
	if _, err := m.Register(matrix.RegisterParams{ID: "DES-1", Type: matrix.TypeDesign, Version: "1.0.0"}); err != nil {
		t.Fatalf("register DES-1: %v", err)
	}
	if _, err := m.AddEdge("DES-1", "REQ-1", matrix.KindDependsOn); err != nil {
		t.Fatalf("add edge: %v", err)
	}
	return m
}

func makeReadReq(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func textContents(t *testing.T, contents []mcp.ResourceContents) mcp.TextResourceContents {
	t.Helper()
	if len(contents) != 1 {
		t.Fatalf("expected 1 resource content, got %d", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}
	return tc
}

func TestExportResource_Definition(t *testing.T) {
	h := NewHandler(seededMatrix(t))
	res := h.ExportResource()

	if res.URI != "docmatrix://matrix/export" {
		t.Errorf("URI = %q, want docmatrix://matrix/export", res.URI)
	}
	if res.MIMEType != "application/json" {
		t.Errorf("MIME type = %q, want application/json", res.MIMEType)
	}
}

func TestHandleExport_ReturnsDocumentsAndEdges(t *testing.T) {
	h := NewHandler(seededMatrix(t))

	contents, err := h.HandleExport(context.Background(), makeReadReq("docmatrix://matrix/export"))
	if err != nil {
		t.Fatalf("HandleExport: %v", err)
	}

	tc := textContents(t, contents)
	if tc.MIMEType != "application/json" {
		t.Errorf("MIME type = %q, want application/json", tc.MIMEType)
	}

	var data matrix.ExportData
	if err := json.Unmarshal([]byte(tc.Text), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(data.Documents) != 2 {
		t.Errorf("exported %d documents, want 2", len(data.Documents))
	}
	if len(data.Edges) != 1 {
		t.Errorf("exported %d edges, want 1", len(data.Edges))
	}
}

func TestHandleStatus_ReturnsStats(t *testing.T) {
	h := NewHandler(seededMatrix(t))

	contents, err := h.HandleStatus(context.Background(), makeReadReq("docmatrix://matrix/status"))
	if err != nil {
		t.Fatalf("HandleStatus: %v", err)
	}

	tc := textContents(t, contents)
	var stats matrix.Stats
	if err := json.Unmarshal([]byte(tc.Text), &stats); err != nil {
		t.Fatalf("status is not valid JSON: %v", err)
	}
	if stats.TotalDocuments != 2 || stats.ActiveDocuments != 2 {
		t.Errorf("stats = %+v, want 2 total, 2 active", stats)
	}
	if stats.TotalEdges != 1 {
		t.Errorf("edges = %d, want 1", stats.TotalEdges)
	}
	if !strings.Contains(tc.Text, "by_consistency") {
		t.Errorf("expected consistency breakdown in status, got: %s", tc.Text)
	}
}

func TestHandleStatus_EmptyMatrix(t *testing.T) {
	h := NewHandler(matrix.New(matrix.DefaultConfig()))

	contents, err := h.HandleStatus(context.Background(), makeReadReq("docmatrix://matrix/status"))
	if err != nil {
		t.Fatalf("HandleStatus: %v", err)
	}

	var stats matrix.Stats
	if err := json.Unmarshal([]byte(textContents(t, contents).Text), &stats); err != nil {
		t.Fatalf("status is not valid JSON: %v", err)
	}
	if stats.TotalDocuments != 0 {
		t.Errorf("total = %d, want 0", stats.TotalDocuments)
	}
}
