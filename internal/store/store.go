// Package store persists the tracking matrix to SQLite.
//
// The matrix core defines only the logical schema; this package owns the
// byte format. It follows the same store conventions as the rest of the
// codebase: WAL mode, idempotent migrations, and a snapshot write model —
// the matrix is sized for solo-developer workloads, so each mutation
// rewrites the full durable copy in one transaction rather than tracking
// dirty rows.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Org-EthereaLogic/docmatrix/internal/matrix"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Config holds store configuration.
type Config struct {
	// DataDir is where matrix.db lives. Created if missing.
	DataDir string
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".docmatrix")}
}

// Store is the durable copy of the tracking matrix.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New opens (or creates) the matrix database, applies performance pragmas,
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "matrix.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			id                      TEXT PRIMARY KEY,
			doc_type                TEXT NOT NULL,
			version                 TEXT NOT NULL,
			state                   TEXT NOT NULL,
			method                  TEXT NOT NULL,
			quality_score           INTEGER,
			last_review_at          TEXT,
			consistency             TEXT NOT NULL DEFAULT 'consistent',
			consistency_computed_at TEXT,
			contributing_edges      TEXT,
			created_at              TEXT NOT NULL,
			updated_at              TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_doc_state       ON documents(state);
		CREATE INDEX IF NOT EXISTS idx_doc_type        ON documents(doc_type);
		CREATE INDEX IF NOT EXISTS idx_doc_consistency ON documents(consistency);

		CREATE TABLE IF NOT EXISTS edges (
			id            INTEGER PRIMARY KEY,
			source_id     TEXT NOT NULL,
			target_id     TEXT NOT NULL,
			kind          TEXT NOT NULL,
			known_version TEXT NOT NULL,
			created_at    TEXT NOT NULL,
			FOREIGN KEY (source_id) REFERENCES documents(id),
			FOREIGN KEY (target_id) REFERENCES documents(id)
		);

		CREATE INDEX IF NOT EXISTS idx_edge_source ON edges(source_id);
		CREATE INDEX IF NOT EXISTS idx_edge_target ON edges(target_id);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_edge_unique ON edges(source_id, target_id, kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Snapshot persistence ────────────────────────────────────────────────────

// SaveSnapshot replaces the durable copy with the given matrix state in a
// single transaction. Either the whole snapshot lands or none of it does.
func (s *Store) SaveSnapshot(snapshot matrix.ExportData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Edges first: the unique index makes stale rows collide with re-inserts.
	if _, err := tx.Exec(`DELETE FROM edges`); err != nil {
		return fmt.Errorf("store: clear edges: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM documents`); err != nil {
		return fmt.Errorf("store: clear documents: %w", err)
	}

	for _, rec := range snapshot.Documents {
		contributing, err := marshalEdgeIDs(rec.Consistency.ContributingEdges)
		if err != nil {
			return fmt.Errorf("store: encode contributing edges for %q: %w", rec.ID, err)
		}
		_, err = tx.Exec(
			`INSERT INTO documents
				(id, doc_type, version, state, method, quality_score, last_review_at,
				 consistency, consistency_computed_at, contributing_edges, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, string(rec.Type), rec.Version, string(rec.State), string(rec.Method),
			nullableInt(rec.QualityScore), nullableString(rec.LastReviewAt),
			string(rec.Consistency.State), nullableString(rec.Consistency.ComputedAt),
			contributing, rec.CreatedAt, rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("store: insert document %q: %w", rec.ID, err)
		}
	}

	for _, e := range snapshot.Edges {
		_, err := tx.Exec(
			`INSERT INTO edges (id, source_id, target_id, kind, known_version, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.Source, e.Target, string(e.Kind), e.KnownVersion, e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("store: insert edge %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit snapshot: %w", err)
	}
	return nil
}

// LoadAll reads the full durable state for startup rehydration.
func (s *Store) LoadAll() ([]matrix.DocumentRecord, []matrix.RelationshipEdge, error) {
	docs, err := s.loadDocuments()
	if err != nil {
		return nil, nil, err
	}
	edges, err := s.loadEdges()
	if err != nil {
		return nil, nil, err
	}
	return docs, edges, nil
}

func (s *Store) loadDocuments() ([]matrix.DocumentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, doc_type, version, state, method, quality_score, last_review_at,
		        consistency, consistency_computed_at, contributing_edges, created_at, updated_at
		 FROM documents ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: query documents: %w", err)
	}
	defer rows.Close()

	var result []matrix.DocumentRecord
	for rows.Next() {
		var (
			rec          matrix.DocumentRecord
			docType      string
			state        string
			method       string
			quality      sql.NullInt64
			lastReview   sql.NullString
			consistency  string
			computedAt   sql.NullString
			contributing sql.NullString
		)
		if err := rows.Scan(
			&rec.ID, &docType, &rec.Version, &state, &method, &quality, &lastReview,
			&consistency, &computedAt, &contributing, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("store: scan document: %w", err)
		}
		rec.Type = matrix.DocType(docType)
		rec.State = matrix.DocState(state)
		rec.Method = matrix.Method(method)
		if quality.Valid {
			score := int(quality.Int64)
			rec.QualityScore = &score
		}
		rec.LastReviewAt = lastReview.String
		rec.Consistency = matrix.ConsistencyStatus{
			State:      matrix.ConsistencyState(consistency),
			ComputedAt: computedAt.String,
		}
		if contributing.Valid && contributing.String != "" {
			ids, err := unmarshalEdgeIDs(contributing.String)
			if err != nil {
				return nil, fmt.Errorf("store: decode contributing edges for %q: %w", rec.ID, err)
			}
			rec.Consistency.ContributingEdges = ids
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (s *Store) loadEdges() ([]matrix.RelationshipEdge, error) {
	rows, err := s.db.Query(
		`SELECT id, source_id, target_id, kind, known_version, created_at
		 FROM edges ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: query edges: %w", err)
	}
	defer rows.Close()

	var result []matrix.RelationshipEdge
	for rows.Next() {
		var (
			e    matrix.RelationshipEdge
			kind string
		)
		if err := rows.Scan(&e.ID, &e.Source, &e.Target, &kind, &e.KnownVersion, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan edge: %w", err)
		}
		e.Kind = matrix.RelationKind(kind)
		result = append(result, e)
	}
	return result, rows.Err()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func marshalEdgeIDs(ids []int64) (string, error) {
	if len(ids) == 0 {
		return "", nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalEdgeIDs(data string) ([]int64, error) {
	var ids []int64
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
