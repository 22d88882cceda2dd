// Copyright (c) 2026 Datacore. All rights reserved.

package notes

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/datacore/datacore/internal/notes/document"
	"github.com/datacore/datacore/internal/platform/apperr"
	"github.com/datacore/datacore/internal/platform/clock"
	"github.com/datacore/datacore/internal/platform/constants"
	"github.com/datacore/datacore/pkg/slice"
	"github.com/datacore/datacore/pkg/uuid"
)

// Session is one workspace served over HTTP together with the editor and
// location it is bound to.
type Session struct {
	ID        string
	Workspace *Workspace
	Editor    *document.MemoryEditor
	Location  *MemoryLocation

	lastSeen time.Time
}

// Registry owns the open workspaces and closes the idle ones.
type Registry struct {
	repo        Repository
	logger      *slog.Logger
	clock       clock.Clock
	idleTimeout time.Duration
	options     []Option

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry. Workspaces it opens share repo and
// clk and receive opts.
func NewRegistry(repo Repository, idleTimeout time.Duration, clk clock.Clock, logger *slog.Logger, opts ...Option) *Registry {
	return &Registry{
		repo:        repo,
		logger:      logger,
		clock:       clk,
		idleTimeout: idleTimeout,
		options:     append([]Option{WithClock(clk)}, opts...),
		sessions:    make(map[string]*Session),
	}
}

/*
Open creates a workspace positioned at rawQuery and loads it.

A failure to load the note named by the query is logged; the workspace is
still returned with no active note.
*/
func (registry *Registry) Open(context context.Context, rawQuery string) (*Session, error) {
	location, err := NewMemoryLocation(rawQuery)
	if err != nil {
		return nil, apperr.ValidationError("Malformed query string", apperr.FieldError{Field: "query", Message: err.Error()})
	}

	id := uuid.New()
	editor := document.NewMemoryEditor()
	logger := registry.logger.With(slog.String("workspace_id", id))
	workspace := NewWorkspace(registry.repo, editor, location, logger, registry.options...)

	if err := workspace.Refresh(context); err != nil {
		logger.Warn("workspace_initial_load_failed", slog.Any("error", err))
	}

	session := &Session{
		ID:        id,
		Workspace: workspace,
		Editor:    editor,
		Location:  location,
		lastSeen:  registry.clock.Now(),
	}

	registry.mu.Lock()
	registry.sessions[id] = session
	registry.mu.Unlock()

	logger.Info("workspace_opened", slog.String("query", location.String()))
	return session, nil
}

// Get returns a session and marks it as used.
func (registry *Registry) Get(id string) (*Session, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Workspace")
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	session, ok := registry.sessions[id]
	if !ok {
		return nil, apperr.NotFound("Workspace")
	}
	session.lastSeen = registry.clock.Now()
	return session, nil
}

// Close closes and forgets a session.
func (registry *Registry) Close(id string) error {
	registry.mu.Lock()
	session, ok := registry.sessions[id]
	delete(registry.sessions, id)
	registry.mu.Unlock()

	if !ok {
		return apperr.NotFound("Workspace")
	}

	session.Workspace.Close()
	registry.logger.Info("workspace_closed", slog.String("workspace_id", id))
	return nil
}

// Len returns the number of open sessions.
func (registry *Registry) Len() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.sessions)
}

// Sweep closes every session idle for longer than the idle timeout and
// returns how many it closed.
func (registry *Registry) Sweep() int {
	cutoff := registry.clock.Now().Add(-registry.idleTimeout)

	registry.mu.Lock()
	all := make([]*Session, 0, len(registry.sessions))
	for _, session := range registry.sessions {
		all = append(all, session)
	}
	idle := slice.Filter(all, func(session *Session) bool {
		return session.lastSeen.Before(cutoff)
	})
	for _, session := range idle {
		delete(registry.sessions, session.ID)
	}
	registry.mu.Unlock()

	registry.closeAll(idle)
	if len(idle) > 0 {
		registry.logger.Info("workspaces_swept", slog.Int("count", len(idle)))
	}
	return len(idle)
}

// Run sweeps idle sessions until context is done.
func (registry *Registry) Run(context context.Context) {
	ticker := time.NewTicker(constants.SessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-context.Done():
			return
		case <-ticker.C:
			registry.Sweep()
		}
	}
}

// Shutdown closes every session.
func (registry *Registry) Shutdown() {
	registry.mu.Lock()
	all := make([]*Session, 0, len(registry.sessions))
	for id, session := range registry.sessions {
		all = append(all, session)
		delete(registry.sessions, id)
	}
	registry.mu.Unlock()

	registry.closeAll(all)
	registry.logger.Info("workspaces_shutdown", slog.Int("count", len(all)))
}

func (registry *Registry) closeAll(sessions []*Session) {
	workers := pool.New().WithMaxGoroutines(8)
	for _, session := range sessions {
		workers.Go(session.Workspace.Close)
	}
	workers.Wait()
}
