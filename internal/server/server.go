// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations
// and injects them into the tools/resources that depend on abstractions.
// No business logic lives here — only wiring.
package server

import (
	"log"

	"github.com/Org-EthereaLogic/docmatrix/internal/matrix"
	"github.com/Org-EthereaLogic/docmatrix/internal/resources"
	"github.com/Org-EthereaLogic/docmatrix/internal/store"
	"github.com/Org-EthereaLogic/docmatrix/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools and resources
// registered. This is the single place where all dependencies are resolved.
//
// The returned cleanup function closes the store's database connection and
// must be called on shutdown (typically via defer). It is always non-nil
// and safe to call even if the store failed to initialize.
func New() (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	m := matrix.New(matrix.DefaultConfig())

	// Persistence is an independent concern: if the store fails to
	// initialize, the matrix still works in-memory for the session.
	// We log a warning and skip snapshot writes.
	cleanup := noop
	var persister tools.Persister
	st, stErr := store.New(store.DefaultConfig())
	if stErr != nil {
		log.Printf("WARNING: persistence disabled: %v", stErr)
	} else {
		persister = st
		cleanup = func() {
			if err := st.Close(); err != nil {
				log.Printf("WARNING: store close: %v", err)
			}
		}

		docs, edges, err := st.LoadAll()
		if err != nil {
			log.Printf("WARNING: could not load previous snapshot: %v", err)
		} else {
			m.Load(docs, edges)
		}
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"docmatrix",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register registry tools ---

	registerTool := tools.NewRegisterTool(m, persister)
	s.AddTool(registerTool.Definition(), registerTool.Handle)

	updateTool := tools.NewUpdateTool(m, persister)
	s.AddTool(updateTool.Definition(), updateTool.Handle)

	archiveTool := tools.NewArchiveTool(m, persister)
	s.AddTool(archiveTool.Definition(), archiveTool.Handle)

	// --- Register relationship tools ---

	relateTool := tools.NewRelateTool(m, persister)
	s.AddTool(relateTool.Definition(), relateTool.Handle)

	unrelateTool := tools.NewUnrelateTool(m, persister)
	s.AddTool(unrelateTool.Definition(), unrelateTool.Handle)

	// --- Register the change notification tool ---

	notifyTool := tools.NewNotifyChangedTool(m, persister)
	s.AddTool(notifyTool.Definition(), notifyTool.Handle)

	// --- Register query tools ---

	getTool := tools.NewGetTool(m)
	s.AddTool(getTool.Definition(), getTool.Handle)

	incomingTool := tools.NewIncomingTool(m)
	s.AddTool(incomingTool.Definition(), incomingTool.Handle)

	exportTool := tools.NewExportTool(m)
	s.AddTool(exportTool.Definition(), exportTool.Handle)

	statsTool := tools.NewStatsTool(m)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(m)
	s.AddResource(resourceHandler.ExportResource(), resourceHandler.HandleExport)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when persistence
// is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the tracking matrix effectively.
func serverInstructions() string {
	return `You have access to docmatrix, a document tracking matrix MCP server.

docmatrix tracks project documents (requirements, designs, tests, runbooks),
their semantic versions, their lifecycle states, and the dependency
relationships between them. When a document changes, it tells you exactly
which other documents are now out of date.

## Core workflow

1. When a new document is created, call doc_register with a stable
   identifier (e.g. "REQ-1", "DES-payments"), its type, and its initial
   version.
2. When one document depends on or references another, call doc_relate.
   The direction matters: the SOURCE is the dependent, the TARGET is the
   dependency. "DES-1 depends-on REQ-1" means a change to REQ-1 affects DES-1.
3. When a document's CONTENT changes, call doc_notify_changed with the new
   version. The server walks the dependency graph and reports every document
   that is now stale or conflicted. Surface those to the user and offer to
   update them.
4. Use doc_update for bookkeeping-only moves (review outcomes, approval,
   baselining) that should not trigger propagation.
5. When a document is superseded, call doc_archive. Archived documents stay
   queryable but no longer participate in consistency checks.

## Lifecycle states

Documents move draft -> review -> approved or rejected, approved -> baselined,
and baselined -> modified -> review on later edits. Versions must strictly
increase on every update. Generated and enhanced documents enter at their
own states and join the same flow at review.

## Consistency statuses

- consistent: the document's recorded dependencies are up to date
- stale: a dependency changed since this document last synced with it
- conflicted: the document is part of a mutual (cyclic) dependency where
  both sides are out of date — flag these to the user, they need a human
  decision about which document is authoritative

## Querying

- doc_get: one document with its status
- doc_incoming: who depends on a document (the blast radius of a change)
- doc_export: the full matrix as json, markdown, or csv
- doc_stats: aggregate counts and consistency breakdown

The matrix persists across sessions. At the start of a session, doc_stats
is a cheap way to see what is already tracked.`
}
