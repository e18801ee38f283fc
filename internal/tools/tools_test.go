package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/Org-EthereaLogic/docmatrix/internal/matrix"
	"github.com/Org-EthereaLogic/docmatrix/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

var ctx = context.Background()

// newTestMatrix creates an empty in-memory matrix for testing.
func newTestMatrix(t *testing.T) *matrix.Matrix {
	t.Helper()
	return matrix.New(matrix.DefaultConfig())
}

// newTestStore creates a store.Store in a temp directory for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(store.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// mustNotError asserts the Handle call returns no Go error and no tool error.
func mustNotError(t *testing.T, r *mcp.CallToolResult, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	if r.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(r))
	}
}

// mustBeToolError asserts the Handle call returns a tool error (not a Go error).
func mustBeToolError(t *testing.T, r *mcp.CallToolResult, err error, wantSubstr string) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	if !r.IsError {
		t.Fatalf("expected tool error containing %q, got success: %s", wantSubstr, resultText(r))
	}
	if wantSubstr != "" && !strings.Contains(resultText(r), wantSubstr) {
		t.Errorf("error text %q does not contain %q", resultText(r), wantSubstr)
	}
}

// seedDocument registers a document directly through the matrix.
func seedDocument(t *testing.T, m *matrix.Matrix, id string, docType matrix.DocType, version string) {
	t.Helper()
	if _, err := m.Register(matrix.RegisterParams{ID: id, Type: docType, Version: version}); err != nil {
		t.Fatalf("seed document %s: %v", id, err)
	}
}

// seedEdge creates a relationship directly through the matrix.
func seedEdge(t *testing.T, m *matrix.Matrix, source, target string, kind matrix.RelationKind) {
	t.Helper()
	if _, err := m.AddEdge(source, target, kind); err != nil {
		t.Fatalf("seed edge %s -> %s: %v", source, target, err)
	}
}

// ─── RegisterTool ────────────────────────────────────────────────────────────

func TestRegisterTool_Definition(t *testing.T) {
	tool := NewRegisterTool(newTestMatrix(t), nil)
	def := tool.Definition()

	if def.Name != "doc_register" {
		t.Errorf("tool name = %q, want %q", def.Name, "doc_register")
	}

	props := def.InputSchema.Properties
	for _, p := range []string{"id", "type", "version", "method"} {
		if _, ok := props[p]; !ok {
			t.Errorf("missing %q parameter", p)
		}
	}

	required := map[string]bool{}
	for _, r := range def.InputSchema.Required {
		required[r] = true
	}
	for _, p := range []string{"id", "type", "version"} {
		if !required[p] {
			t.Errorf("%q should be required", p)
		}
	}
	if required["method"] {
		t.Error("'method' should be optional")
	}
}

func TestRegisterTool_Success(t *testing.T) {
	m := newTestMatrix(t)
	tool := NewRegisterTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "REQ-1",
		"type":    "requirements",
		"version": "1.0.0",
	}))

	mustNotError(t, r, err)
	text := resultText(r)

	if !strings.Contains(text, "REQ-1") {
		t.Errorf("expected document id in response, got: %s", text)
	}
	if !strings.Contains(text, "draft") {
		t.Errorf("expected draft entry state, got: %s", text)
	}

	rec, err := m.Get("REQ-1")
	if err != nil {
		t.Fatalf("document not in matrix after register: %v", err)
	}
	if rec.Version != "1.0.0" {
		t.Errorf("version = %q, want 1.0.0", rec.Version)
	}
}

func TestRegisterTool_GeneratedMethod(t *testing.T) {
	m := newTestMatrix(t)
	tool := NewRegisterTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "DES-1",
		"type":    "design",
		"version": "1.0.0",
		"method":  "generated",
	}))

	mustNotError(t, r, err)
	if !strings.Contains(resultText(r), "generated") {
		t.Errorf("expected generated entry state, got: %s", resultText(r))
	}
}

func TestRegisterTool_Duplicate(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	tool := NewRegisterTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "REQ-1",
		"type":    "requirements",
		"version": "2.0.0",
	}))

	mustBeToolError(t, r, err, "duplicate identifier")
}

func TestRegisterTool_MissingID(t *testing.T) {
	tool := NewRegisterTool(newTestMatrix(t), nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"type":    "requirements",
		"version": "1.0.0",
	}))

	mustBeToolError(t, r, err, "id")
}

func TestRegisterTool_InvalidType(t *testing.T) {
	tool := NewRegisterTool(newTestMatrix(t), nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "X-1",
		"type":    "poetry",
		"version": "1.0.0",
	}))

	mustBeToolError(t, r, err, "poetry")
}

func TestRegisterTool_Persists(t *testing.T) {
	m := newTestMatrix(t)
	s := newTestStore(t)
	tool := NewRegisterTool(m, s)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "REQ-1",
		"type":    "requirements",
		"version": "1.0.0",
	}))
	mustNotError(t, r, err)

	docs, _, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "REQ-1" {
		t.Errorf("expected persisted REQ-1, got %+v", docs)
	}
}

// ─── UpdateTool ──────────────────────────────────────────────────────────────

func TestUpdateTool_VersionBump(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	tool := NewUpdateTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "REQ-1",
		"version": "1.1.0",
	}))

	mustNotError(t, r, err)
	if !strings.Contains(resultText(r), "1.1.0") {
		t.Errorf("expected new version in response, got: %s", resultText(r))
	}
}

func TestUpdateTool_StateChange(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	tool := NewUpdateTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "REQ-1",
		"version": "1.1.0",
		"state":   "review",
	}))

	mustNotError(t, r, err)
	if !strings.Contains(resultText(r), "review") {
		t.Errorf("expected review state in response, got: %s", resultText(r))
	}
}

func TestUpdateTool_VersionMustIncrease(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "2.0.0")
	tool := NewUpdateTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "REQ-1",
		"version": "1.9.0",
	}))

	mustBeToolError(t, r, err, "")
}

func TestUpdateTool_NotFound(t *testing.T) {
	tool := NewUpdateTool(newTestMatrix(t), nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "MISSING",
		"version": "1.0.0",
	}))

	mustBeToolError(t, r, err, "MISSING")
}

func TestUpdateTool_MissingVersion(t *testing.T) {
	tool := NewUpdateTool(newTestMatrix(t), nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id": "REQ-1",
	}))

	mustBeToolError(t, r, err, "version")
}

// ─── ArchiveTool ─────────────────────────────────────────────────────────────

func TestArchiveTool_Success(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	tool := NewArchiveTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id": "REQ-1",
	}))

	mustNotError(t, r, err)
	if !strings.Contains(resultText(r), "archived") {
		t.Errorf("expected archived confirmation, got: %s", resultText(r))
	}

	rec, err := m.Get("REQ-1")
	if err != nil {
		t.Fatalf("archived document should stay queryable: %v", err)
	}
	if rec.State != matrix.StateArchived {
		t.Errorf("state = %q, want archived", rec.State)
	}
}

func TestArchiveTool_NotFound(t *testing.T) {
	tool := NewArchiveTool(newTestMatrix(t), nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id": "MISSING",
	}))

	mustBeToolError(t, r, err, "MISSING")
}

// ─── NotifyChangedTool ───────────────────────────────────────────────────────

func TestNotifyChangedTool_MarksDependentStale(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	seedDocument(t, m, "DES-1", matrix.TypeDesign, "1.0.0")
	seedEdge(t, m, "DES-1", "REQ-1", matrix.KindDependsOn)

	tool := NewNotifyChangedTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "REQ-1",
		"version": "1.1.0",
	}))

	mustNotError(t, r, err)
	text := resultText(r)

	if !strings.Contains(text, "DES-1") {
		t.Errorf("expected DES-1 in status changes, got: %s", text)
	}
	if !strings.Contains(text, "stale") {
		t.Errorf("expected stale marking, got: %s", text)
	}

	rec, _ := m.Get("DES-1")
	if rec.Consistency.State != matrix.Stale {
		t.Errorf("DES-1 consistency = %q, want stale", rec.Consistency.State)
	}
}

func TestNotifyChangedTool_NoDependents(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	tool := NewNotifyChangedTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "REQ-1",
		"version": "1.1.0",
	}))

	mustNotError(t, r, err)
	if !strings.Contains(resultText(r), "No consistency statuses changed") {
		t.Errorf("expected no-change message, got: %s", resultText(r))
	}
}

func TestNotifyChangedTool_MutualDependencyConflicts(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	seedDocument(t, m, "DES-1", matrix.TypeDesign, "1.0.0")
	seedEdge(t, m, "DES-1", "REQ-1", matrix.KindDependsOn)
	seedEdge(t, m, "REQ-1", "DES-1", matrix.KindReferences)

	tool := NewNotifyChangedTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "REQ-1",
		"version": "1.1.0",
	}))

	mustNotError(t, r, err)
	if !strings.Contains(resultText(r), "conflicted") {
		t.Errorf("expected conflicted marking for mutual dependency, got: %s", resultText(r))
	}
}

func TestNotifyChangedTool_ArchivedRejected(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	if _, err := m.Archive("REQ-1"); err != nil {
		t.Fatalf("archive: %v", err)
	}
	tool := NewNotifyChangedTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "REQ-1",
		"version": "1.1.0",
	}))

	mustBeToolError(t, r, err, "")
}

func TestNotifyChangedTool_Persists(t *testing.T) {
	m := newTestMatrix(t)
	s := newTestStore(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	seedDocument(t, m, "DES-1", matrix.TypeDesign, "1.0.0")
	seedEdge(t, m, "DES-1", "REQ-1", matrix.KindDependsOn)

	tool := NewNotifyChangedTool(m, s)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id":      "REQ-1",
		"version": "1.1.0",
	}))
	mustNotError(t, r, err)

	docs, edges, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(docs) != 2 || len(edges) != 1 {
		t.Fatalf("persisted %d docs, %d edges; want 2, 1", len(docs), len(edges))
	}
	for _, d := range docs {
		if d.ID == "DES-1" && d.Consistency.State != matrix.Stale {
			t.Errorf("persisted DES-1 consistency = %q, want stale", d.Consistency.State)
		}
	}
}

// ─── RelateTool / UnrelateTool ───────────────────────────────────────────────

func TestRelateTool_Success(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.2.0")
	seedDocument(t, m, "DES-1", matrix.TypeDesign, "1.0.0")

	tool := NewRelateTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"source": "DES-1",
		"target": "REQ-1",
		"kind":   "depends-on",
	}))

	mustNotError(t, r, err)
	text := resultText(r)

	if !strings.Contains(text, "Edge ID:") {
		t.Errorf("expected edge ID in response, got: %s", text)
	}
	// The target's current version is captured as the known version.
	if !strings.Contains(text, "1.2.0") {
		t.Errorf("expected known version 1.2.0, got: %s", text)
	}
}

func TestRelateTool_SelfReference(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	tool := NewRelateTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"source": "REQ-1",
		"target": "REQ-1",
		"kind":   "depends-on",
	}))

	mustBeToolError(t, r, err, "")
}

func TestRelateTool_UnknownEndpoint(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	tool := NewRelateTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"source": "REQ-1",
		"target": "MISSING",
		"kind":   "depends-on",
	}))

	mustBeToolError(t, r, err, "MISSING")
}

func TestRelateTool_MissingKind(t *testing.T) {
	tool := NewRelateTool(newTestMatrix(t), nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"source": "A",
		"target": "B",
	}))

	mustBeToolError(t, r, err, "kind")
}

func TestUnrelateTool_Success(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	seedDocument(t, m, "DES-1", matrix.TypeDesign, "1.0.0")
	seedEdge(t, m, "DES-1", "REQ-1", matrix.KindDependsOn)

	tool := NewUnrelateTool(m, nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"source": "DES-1",
		"target": "REQ-1",
	}))

	mustNotError(t, r, err)
	if !strings.Contains(resultText(r), "Removed 1") {
		t.Errorf("expected removal count, got: %s", resultText(r))
	}
	if edges := m.IncomingEdges("REQ-1"); len(edges) != 0 {
		t.Errorf("edge should be gone, got %d", len(edges))
	}
}

func TestUnrelateTool_Idempotent(t *testing.T) {
	tool := NewUnrelateTool(newTestMatrix(t), nil)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"source": "A",
		"target": "B",
	}))

	mustNotError(t, r, err)
	if !strings.Contains(resultText(r), "nothing to remove") {
		t.Errorf("expected nothing-to-remove message, got: %s", resultText(r))
	}
}

// ─── GetTool / IncomingTool ──────────────────────────────────────────────────

func TestGetTool_Success(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	tool := NewGetTool(m)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id": "REQ-1",
	}))

	mustNotError(t, r, err)
	text := resultText(r)

	if !strings.Contains(text, "REQ-1") {
		t.Errorf("expected document id, got: %s", text)
	}
	if !strings.Contains(text, "consistent") {
		t.Errorf("expected consistency status, got: %s", text)
	}
}

func TestGetTool_NotFound(t *testing.T) {
	tool := NewGetTool(newTestMatrix(t))

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id": "MISSING",
	}))

	mustBeToolError(t, r, err, "MISSING")
}

func TestIncomingTool_ListsEdges(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	seedDocument(t, m, "DES-1", matrix.TypeDesign, "1.0.0")
	seedDocument(t, m, "TST-1", matrix.TypeTest, "1.0.0")
	seedEdge(t, m, "DES-1", "REQ-1", matrix.KindDependsOn)
	seedEdge(t, m, "TST-1", "REQ-1", matrix.KindDerivedFrom)

	tool := NewIncomingTool(m)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id": "REQ-1",
	}))

	mustNotError(t, r, err)
	text := resultText(r)

	if !strings.Contains(text, "2 incoming edge(s)") {
		t.Errorf("expected 2 edges, got: %s", text)
	}
	if !strings.Contains(text, "DES-1") || !strings.Contains(text, "TST-1") {
		t.Errorf("expected both dependents listed, got: %s", text)
	}
}

func TestIncomingTool_NoEdges(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	tool := NewIncomingTool(m)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id": "REQ-1",
	}))

	mustNotError(t, r, err)
	if !strings.Contains(resultText(r), "No documents depend on REQ-1") {
		t.Errorf("expected empty message, got: %s", resultText(r))
	}
}

func TestIncomingTool_NotFound(t *testing.T) {
	tool := NewIncomingTool(newTestMatrix(t))

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"id": "MISSING",
	}))

	mustBeToolError(t, r, err, "MISSING")
}

// ─── ExportTool ──────────────────────────────────────────────────────────────

func TestExportTool_JSON(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	tool := NewExportTool(m)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{}))

	mustNotError(t, r, err)
	text := resultText(r)

	if !strings.Contains(text, `"documents"`) {
		t.Errorf("expected JSON documents array, got: %s", text)
	}
	if !strings.Contains(text, "REQ-1") {
		t.Errorf("expected REQ-1 in export, got: %s", text)
	}
}

func TestExportTool_Markdown(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	seedDocument(t, m, "DES-1", matrix.TypeDesign, "1.0.0")
	seedEdge(t, m, "DES-1", "REQ-1", matrix.KindDependsOn)

	tool := NewExportTool(m)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"format": "markdown",
	}))

	mustNotError(t, r, err)
	text := resultText(r)

	if !strings.Contains(text, "## Documents") {
		t.Errorf("expected documents table, got: %s", text)
	}
	if !strings.Contains(text, "## Relationships") {
		t.Errorf("expected relationships table, got: %s", text)
	}
	if !strings.Contains(text, "| DES-1 |") {
		t.Errorf("expected DES-1 row, got: %s", text)
	}
}

func TestExportTool_CSV(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	tool := NewExportTool(m)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"format": "csv",
	}))

	mustNotError(t, r, err)
	text := resultText(r)

	if !strings.HasPrefix(text, "id,type,version") {
		t.Errorf("expected CSV header, got: %s", text)
	}
	if !strings.Contains(text, "REQ-1,requirements,1.0.0") {
		t.Errorf("expected REQ-1 row, got: %s", text)
	}
}

func TestExportTool_UnknownFormat(t *testing.T) {
	tool := NewExportTool(newTestMatrix(t))

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{
		"format": "xml",
	}))

	mustBeToolError(t, r, err, "xml")
}

// ─── StatsTool ───────────────────────────────────────────────────────────────

func TestStatsTool_Empty(t *testing.T) {
	tool := NewStatsTool(newTestMatrix(t))

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{}))

	mustNotError(t, r, err)
	text := resultText(r)

	if !strings.Contains(text, "Documents") {
		t.Errorf("expected document counts, got: %s", text)
	}
	if !strings.Contains(text, "no active documents") {
		t.Errorf("expected empty consistency line, got: %s", text)
	}
}

func TestStatsTool_WithData(t *testing.T) {
	m := newTestMatrix(t)
	seedDocument(t, m, "REQ-1", matrix.TypeRequirements, "1.0.0")
	seedDocument(t, m, "DES-1", matrix.TypeDesign, "1.0.0")
	seedDocument(t, m, "OLD-1", matrix.TypeGeneral, "1.0.0")
	if _, err := m.Archive("OLD-1"); err != nil {
		t.Fatalf("archive: %v", err)
	}
	seedEdge(t, m, "DES-1", "REQ-1", matrix.KindDependsOn)

	tool := NewStatsTool(m)

	r, err := tool.Handle(ctx, makeReq(map[string]interface{}{}))

	mustNotError(t, r, err)
	text := resultText(r)

	if !strings.Contains(text, "3 (2 active, 1 archived)") {
		t.Errorf("expected document breakdown, got: %s", text)
	}
	if !strings.Contains(text, "**Relationships**: 1") {
		t.Errorf("expected edge count, got: %s", text)
	}
	if !strings.Contains(text, "2 consistent") {
		t.Errorf("expected consistency breakdown, got: %s", text)
	}
}

// ─── Definitions ─────────────────────────────────────────────────────────────

func TestAllTools_HaveDefinitions(t *testing.T) {
	m := newTestMatrix(t)

	defs := []struct {
		name string
		def  mcp.Tool
	}{
		{"doc_register", NewRegisterTool(m, nil).Definition()},
		{"doc_update", NewUpdateTool(m, nil).Definition()},
		{"doc_notify_changed", NewNotifyChangedTool(m, nil).Definition()},
		{"doc_archive", NewArchiveTool(m, nil).Definition()},
		{"doc_relate", NewRelateTool(m, nil).Definition()},
		{"doc_unrelate", NewUnrelateTool(m, nil).Definition()},
		{"doc_get", NewGetTool(m).Definition()},
		{"doc_incoming", NewIncomingTool(m).Definition()},
		{"doc_export", NewExportTool(m).Definition()},
		{"doc_stats", NewStatsTool(m).Definition()},
	}

	for _, d := range defs {
		if d.def.Name != d.name {
			t.Errorf("tool name = %q, want %q", d.def.Name, d.name)
		}
		if d.def.Description == "" {
			t.Errorf("%s: missing description", d.name)
		}
	}
}
