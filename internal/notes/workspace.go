// Copyright (c) 2026 Datacore. All rights reserved.

package notes

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"

	"github.com/datacore/datacore/internal/notes/document"
	"github.com/datacore/datacore/internal/platform/apperr"
	"github.com/datacore/datacore/internal/platform/clock"
	"github.com/datacore/datacore/internal/platform/validate"
)

// Editor is the structured-document editor a workspace drives.
//
// SetContent and SetEditable must not notify update listeners; every user
// mutation must.
type Editor interface {
	SetContent(doc document.Node)
	Content() document.Node
	SetEditable(editable bool)
	OnUpdate(listener func(document.Node))
	InsertNode(node document.Node) error
	LinkActive() bool
	SetLink(href string) error
	UnsetLink() error
}

// Option configures a [Workspace].
type Option func(*Workspace)

// WithFlushOnSwitch saves pending edits before another note is opened and
// on Close. By default pending edits are abandoned: saving happens on idle,
// not on switch.
func WithFlushOnSwitch(flush bool) Option {
	return func(workspace *Workspace) { workspace.flushOnSwitch = flush }
}

// WithClock replaces the wall clock driving the autosave debounce.
func WithClock(c clock.Clock) Option {
	return func(workspace *Workspace) { workspace.clock = c }
}

// Workspace is one open notes page.
//
// Three things run concurrently against it: caller operations, the autosave
// timer and editor update notifications. All state sits behind mu; backend
// calls are made without holding it. Writes to a note are serialized by
// saveMu so two PATCHes for the same note never overlap.
type Workspace struct {
	repo          Repository
	editor        Editor
	location      Location
	logger        *slog.Logger
	clock         clock.Clock
	autosave      *Scheduler
	flushOnSwitch bool

	lifetime context.Context
	cancel   context.CancelFunc

	saveMu sync.Mutex

	mu             sync.Mutex
	notes          []NoteSummary
	folders        []Folder
	tags           []Tag
	stats          Stats
	listEpoch      uint64
	activeEpoch    uint64
	active         *NoteFull
	title          string
	content        document.Node
	titleTouched   bool
	contentTouched bool
	revision       uint64
	status         SaveStatus
	saveErr        error
	closed         bool
}

// Snapshot is a copy of the workspace state for rendering.
type Snapshot struct {
	Selection   Selection     `json:"selection"`
	Query       string        `json:"query"`
	Notes       []NoteSummary `json:"notes"`
	Folders     []Folder      `json:"folders"`
	Tags        []Tag         `json:"tags"`
	Stats       Stats         `json:"stats"`
	Active      *NoteFull     `json:"active"`
	Status      SaveStatus    `json:"status"`
	SaveError   string        `json:"save_error,omitempty"`
	PendingSave bool          `json:"pending_save"`
}

// NewWorkspace binds an editor and a location to the backend. Call Refresh
// to load the initial state.
func NewWorkspace(repo Repository, editor Editor, location Location, logger *slog.Logger, opts ...Option) *Workspace {
	lifetime, cancel := context.WithCancel(context.Background())

	workspace := &Workspace{
		repo:     repo,
		editor:   editor,
		location: location,
		logger:   logger,
		clock:    clock.Real{},
		lifetime: lifetime,
		cancel:   cancel,
		notes:    make([]NoteSummary, 0),
		folders:  make([]Folder, 0),
		tags:     make([]Tag, 0),
		content:  document.Empty(),
		status:   StatusSaved,
	}
	for _, opt := range opts {
		opt(workspace)
	}
	workspace.autosave = NewScheduler(workspace.clock, AutosaveDelay)

	editor.SetEditable(false)
	editor.OnUpdate(workspace.ContentChanged)
	return workspace
}

// # Selection

// Selection returns the selection currently encoded in the location.
func (workspace *Workspace) Selection() Selection {
	return DecodeSelection(workspace.location.Query())
}

// ShowAll switches to "All Notes".
func (workspace *Workspace) ShowAll(context context.Context) error {
	return workspace.navigate(context, workspace.Selection().AllNotes())
}

// SelectView switches to a smart list.
func (workspace *Workspace) SelectView(context context.Context, view View) error {
	validator := &validate.Validator{}
	validator.OneOf(QueryView, string(view), string(ViewStarred), string(ViewRecent), string(ViewTrash))
	if err := validator.Err(); err != nil {
		return err
	}
	return workspace.navigate(context, workspace.Selection().WithView(view))
}

// SelectFolder lists the notes of one folder.
func (workspace *Workspace) SelectFolder(context context.Context, folder ID) error {
	if folder == "" {
		return validate.RequiredError(QueryFolder, "This field is required")
	}
	return workspace.navigate(context, workspace.Selection().WithFolder(folder))
}

// SelectTag lists the notes carrying a tag.
func (workspace *Workspace) SelectTag(context context.Context, tag string) error {
	if tag == "" {
		return validate.RequiredError(QueryTag, "This field is required")
	}
	return workspace.navigate(context, workspace.Selection().WithTag(tag))
}

// Search filters the list without closing the open note.
func (workspace *Workspace) Search(context context.Context, search string) error {
	return workspace.navigate(context, workspace.Selection().WithSearch(search))
}

// SelectNote opens a note; an empty id closes the open one.
func (workspace *Workspace) SelectNote(context context.Context, id ID) error {
	return workspace.navigate(context, workspace.Selection().WithNote(id))
}

// navigate writes next into the location and reloads whatever it changed.
// The list and the active note load concurrently; each owns its own slot.
func (workspace *Workspace) navigate(context context.Context, next Selection) error {
	previous := workspace.Selection()
	workspace.location.Replace(next.Apply(workspace.location.Query()))

	var (
		group   conc.WaitGroup
		loadErr error
	)
	if !previous.sameList(next) {
		group.Go(func() { workspace.reloadList(context) })
	}
	if previous.Note != next.Note || (next.Note != "" && workspace.activeID() != next.Note) {
		group.Go(func() { loadErr = workspace.loadActive(context, next.Note) })
	}
	group.Wait()

	return loadErr
}

// # Loading

// Refresh loads the list, the counters and the note named by the location.
func (workspace *Workspace) Refresh(context context.Context) error {
	selection := workspace.Selection()

	var (
		group   conc.WaitGroup
		loadErr error
	)
	group.Go(func() { workspace.reloadList(context) })
	group.Go(func() { _ = workspace.RefreshCounts(context) })
	if selection.Note != workspace.activeID() {
		group.Go(func() { loadErr = workspace.loadActive(context, selection.Note) })
	}
	group.Wait()

	return loadErr
}

// LoadList fetches the note list for the current selection. On failure the
// previous list is kept. A response overtaken by a newer request is dropped.
func (workspace *Workspace) LoadList(context context.Context) error {
	workspace.mu.Lock()
	workspace.listEpoch++
	epoch := workspace.listEpoch
	workspace.mu.Unlock()

	query := workspace.Selection().ListQuery()
	notes, err := workspace.repo.ListNotes(context, query)

	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	if epoch != workspace.listEpoch {
		workspace.logger.Debug("note_list_superseded", slog.String("query", query.Encode()))
		return nil
	}
	if err != nil {
		workspace.logger.Warn("note_list_load_failed", slog.String("query", query.Encode()), slog.Any("error", err))
		return err
	}

	if notes == nil {
		notes = make([]NoteSummary, 0)
	}
	workspace.notes = notes
	return nil
}

func (workspace *Workspace) reloadList(context context.Context) {
	_ = workspace.LoadList(context)
}

// RefreshCounts refetches stats, the folder tree and the tag list in
// parallel. Each slot is replaced only by its own successful response.
func (workspace *Workspace) RefreshCounts(context context.Context) error {
	tasks := pool.New().WithErrors()

	tasks.Go(func() error {
		stats, err := workspace.repo.Stats(context)
		if err != nil {
			return err
		}
		workspace.mu.Lock()
		workspace.stats = *stats
		workspace.mu.Unlock()
		return nil
	})
	tasks.Go(func() error {
		folders, err := workspace.repo.ListFolders(context)
		if err != nil {
			return err
		}
		workspace.mu.Lock()
		workspace.folders = folders
		workspace.mu.Unlock()
		return nil
	})
	tasks.Go(func() error {
		tags, err := workspace.repo.ListTags(context)
		if err != nil {
			return err
		}
		workspace.mu.Lock()
		workspace.tags = tags
		workspace.mu.Unlock()
		return nil
	})

	err := tasks.Wait()
	if err != nil {
		workspace.logger.Warn("note_counts_refresh_failed", slog.Any("error", err))
	}
	return err
}

// loadActive replaces the active note. Pending edits of the previous note
// are abandoned unless flush-on-switch is set. A missing note clears the
// active slot without touching the location, so a reload retries it.
func (workspace *Workspace) loadActive(context context.Context, id ID) error {
	workspace.leaveActive(context)

	workspace.mu.Lock()
	workspace.activeEpoch++
	epoch := workspace.activeEpoch
	if id == "" {
		workspace.clearActiveLocked()
		workspace.mu.Unlock()
		return nil
	}
	workspace.mu.Unlock()

	note, err := workspace.repo.GetNote(context, id)

	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	if epoch != workspace.activeEpoch {
		workspace.logger.Debug("note_load_superseded", slog.String("note_id", id.String()))
		return nil
	}
	if err != nil {
		workspace.clearActiveLocked()
		if apperr.Is(err, apperr.CodeNotFound) {
			workspace.logger.Info("note_not_found", slog.String("note_id", id.String()))
			return nil
		}
		workspace.logger.Warn("note_load_failed", slog.String("note_id", id.String()), slog.Any("error", err))
		return err
	}

	workspace.reconcileLocked(note)
	return nil
}

// leaveActive cancels the debounce and, with flush-on-switch, saves first.
func (workspace *Workspace) leaveActive(context context.Context) {
	pending := workspace.autosave.Cancel()

	workspace.mu.Lock()
	dirty := workspace.active != nil && (workspace.titleTouched || workspace.contentTouched)
	noteID := workspace.activeIDLocked()
	workspace.mu.Unlock()

	if !dirty {
		return
	}
	if !workspace.flushOnSwitch {
		workspace.logger.Info("pending_edits_abandoned",
			slog.String("note_id", noteID.String()),
			slog.Bool("debounce_pending", pending),
		)
		return
	}
	if err := workspace.save(context, false); err != nil {
		workspace.logger.Warn("flush_on_switch_failed", slog.String("note_id", noteID.String()), slog.Any("error", err))
	}
}

// reconcileLocked binds a freshly loaded note. The editor document is reset
// only when it differs from the note, to leave the cursor alone otherwise.
func (workspace *Workspace) reconcileLocked(note *NoteFull) {
	workspace.autosave.Cancel()

	workspace.active = note
	workspace.title = note.Title
	workspace.content = note.ContentJSON.Clone()
	workspace.titleTouched = false
	workspace.contentTouched = false
	workspace.revision++
	workspace.status = StatusSaved
	workspace.saveErr = nil

	if !document.Equal(workspace.editor.Content(), note.ContentJSON) {
		workspace.editor.SetContent(note.ContentJSON)
	}
	workspace.editor.SetEditable(!note.IsTrashed)
}

func (workspace *Workspace) clearActiveLocked() {
	workspace.autosave.Cancel()

	workspace.active = nil
	workspace.title = ""
	workspace.content = document.Empty()
	workspace.titleTouched = false
	workspace.contentTouched = false
	workspace.revision++
	workspace.status = StatusSaved
	workspace.saveErr = nil

	if !document.Equal(workspace.editor.Content(), document.Empty()) {
		workspace.editor.SetContent(document.Empty())
	}
	workspace.editor.SetEditable(false)
}

func (workspace *Workspace) activeID() ID {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	return workspace.activeIDLocked()
}

func (workspace *Workspace) activeIDLocked() ID {
	if workspace.active == nil {
		return ""
	}
	return workspace.active.ID
}

// # State

// Status returns the save status of the active note.
func (workspace *Workspace) Status() SaveStatus {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	return workspace.status
}

// Snapshot copies the current state. The active note carries the live
// title and document, including unsaved edits.
func (workspace *Workspace) Snapshot() Snapshot {
	query := workspace.location.Query()

	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	snapshot := Snapshot{
		Selection:   DecodeSelection(query),
		Query:       query.Encode(),
		Notes:       append([]NoteSummary(nil), workspace.notes...),
		Folders:     append([]Folder(nil), workspace.folders...),
		Tags:        append([]Tag(nil), workspace.tags...),
		Stats:       workspace.stats,
		Status:      workspace.status,
		PendingSave: workspace.autosave.Pending(),
	}
	if workspace.active != nil {
		active := *workspace.active
		active.Title = workspace.title
		active.ContentJSON = workspace.content.Clone()
		snapshot.Active = &active
	}
	if workspace.saveErr != nil {
		snapshot.SaveError = workspace.saveErr.Error()
	}
	return snapshot
}

// Close tears the workspace down. The debounce is cancelled; with
// flush-on-switch, pending edits are saved first.
func (workspace *Workspace) Close() {
	workspace.leaveActive(workspace.lifetime)

	workspace.mu.Lock()
	workspace.closed = true
	workspace.mu.Unlock()

	workspace.autosave.Cancel()
	workspace.cancel()
}

// Closed reports whether Close has run.
func (workspace *Workspace) Closed() bool {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	return workspace.closed
}
