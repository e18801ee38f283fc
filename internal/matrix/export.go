package matrix

import "sort"

// ExportData is the full serializable dump of the tracking matrix:
// every document record (with its consistency status) plus every edge.
// How the dump is rendered — JSON, CSV, Markdown — is a serialization
// concern for the caller, not the core.
type ExportData struct {
	Version    string             `json:"version"`
	ExportedAt string             `json:"exported_at"`
	Documents  []DocumentRecord   `json:"documents"`
	Edges      []RelationshipEdge `json:"edges"`
}

// exportVersion identifies the dump layout.
const exportVersion = "1"

// Export returns a bulk dump for the reporting layer, documents ordered
// by ID. Config.MaxExportRecords, when set, truncates the document list;
// edges are never truncated so relationships stay reconstructible.
func (m *Matrix) Export() ExportData {
	m.mu.Lock()
	defer m.mu.Unlock()

	data := m.snapshotLocked()
	if max := m.cfg.MaxExportRecords; max > 0 && len(data.Documents) > max {
		data.Documents = data.Documents[:max]
	}
	return data
}

// Snapshot returns the complete, untruncated state of the matrix. The
// persistence collaborator uses it to write the durable copy after each
// mutation.
func (m *Matrix) Snapshot() ExportData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Matrix) snapshotLocked() ExportData {
	docs := m.reg.All()
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return ExportData{
		Version:    exportVersion,
		ExportedAt: nowRFC3339(),
		Documents:  docs,
		Edges:      m.g.Edges(),
	}
}

// Load rehydrates the matrix from previously persisted state, replacing
// records and edges wholesale. Used once at startup before any operation.
func (m *Matrix) Load(docs []DocumentRecord, edges []RelationshipEdge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range docs {
		m.reg.load(rec)
	}
	for _, e := range edges {
		m.g.load(e)
	}
}
