// Copyright (c) 2026 Datacore. All rights reserved.

package notes

import (
	"context"
	"log/slog"
	"strings"

	"github.com/datacore/datacore/internal/notes/document"
	"github.com/datacore/datacore/internal/platform/apperr"
	"github.com/datacore/datacore/internal/platform/validate"
	"github.com/datacore/datacore/pkg/pointer"
)

// MaxTitleLength bounds note titles.
const MaxTitleLength = 255

func noActiveNote() *apperr.AppError {
	return validate.RequiredError(FieldNote, "No note is open")
}

// # Edits

// ContentChanged records a user edit of the active document and restarts
// the autosave debounce. It is registered as the editor's update listener.
func (workspace *Workspace) ContentChanged(doc document.Node) {
	workspace.mu.Lock()
	if workspace.closed || workspace.active == nil || workspace.active.IsTrashed {
		workspace.mu.Unlock()
		return
	}
	workspace.content = doc.Clone()
	workspace.contentTouched = true
	workspace.revision++
	workspace.status = StatusUnsaved
	workspace.mu.Unlock()

	workspace.autosave.Schedule(workspace.autosaveNow)
}

// SetTitle records a title edit of the active note and restarts the
// autosave debounce.
func (workspace *Workspace) SetTitle(title string) error {
	validator := &validate.Validator{}
	validator.MaxLen(FieldTitle, title, MaxTitleLength)
	if err := validator.Err(); err != nil {
		return err
	}

	workspace.mu.Lock()
	switch {
	case workspace.active == nil:
		workspace.mu.Unlock()
		return noActiveNote()
	case workspace.active.IsTrashed:
		workspace.mu.Unlock()
		return document.ErrReadOnly
	}
	workspace.title = title
	workspace.titleTouched = true
	workspace.revision++
	workspace.status = StatusUnsaved
	workspace.mu.Unlock()

	workspace.autosave.Schedule(workspace.autosaveNow)
	return nil
}

// ForceSave cancels the debounce and saves title and content right away.
// A save already in flight finishes first; this one then sends the
// current values.
func (workspace *Workspace) ForceSave(context context.Context) error {
	workspace.autosave.Cancel()
	return workspace.save(context, true)
}

func (workspace *Workspace) autosaveNow() {
	// Failures are recorded in the save status.
	_ = workspace.save(workspace.lifetime, false)
}

/*
save sends the pending edits of the active note.

An autosave sends only the fields touched since the last save; a forced
save always sends title and content. A response for a note that is no
longer active is dropped. The status becomes saved only when no edit
arrived while the request was in flight.
*/
func (workspace *Workspace) save(context context.Context, force bool) error {
	workspace.mu.Lock()
	if workspace.active == nil {
		workspace.mu.Unlock()
		return nil
	}
	epoch := workspace.activeEpoch
	workspace.mu.Unlock()

	workspace.saveMu.Lock()
	defer workspace.saveMu.Unlock()

	workspace.mu.Lock()
	if workspace.active == nil || epoch != workspace.activeEpoch || workspace.active.IsTrashed {
		workspace.mu.Unlock()
		return nil
	}

	titleTouched, contentTouched := workspace.titleTouched, workspace.contentTouched
	sendTitle := force || titleTouched
	sendContent := force || contentTouched
	if !sendTitle && !sendContent {
		workspace.mu.Unlock()
		return nil
	}

	update := NoteUpdate{}
	if sendTitle {
		update.Title = pointer.To(workspace.title)
	}
	if sendContent {
		update.ContentJSON = pointer.To(workspace.content.Clone())
	}
	noteID := workspace.active.ID
	revision := workspace.revision
	workspace.titleTouched = false
	workspace.contentTouched = false
	workspace.status = StatusSaving
	workspace.mu.Unlock()

	updated, err := workspace.repo.UpdateNote(context, noteID, update)

	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	if err != nil {
		workspace.logger.Warn("note_save_failed",
			slog.String("note_id", noteID.String()),
			slog.Bool("forced", force),
			slog.Any("error", err),
		)
		if epoch == workspace.activeEpoch {
			workspace.titleTouched = workspace.titleTouched || titleTouched
			workspace.contentTouched = workspace.contentTouched || contentTouched
			workspace.status = StatusError
			workspace.saveErr = err
		}
		return apperr.SaveFailure(err)
	}
	if epoch != workspace.activeEpoch {
		return nil
	}

	if sendTitle {
		workspace.active.Title = *update.Title
	}
	if sendContent {
		workspace.active.ContentJSON = *update.ContentJSON
	}
	if updated != nil {
		workspace.active.UpdatedAt = updated.UpdatedAt
		workspace.active.ContentText = updated.ContentText
	}
	workspace.updateListEntryLocked(workspace.active.NoteSummary)

	if workspace.revision == revision {
		workspace.status = StatusSaved
	} else {
		workspace.status = StatusUnsaved
	}
	workspace.saveErr = nil

	workspace.logger.Debug("note_saved",
		slog.String("note_id", noteID.String()),
		slog.Bool("forced", force),
		slog.Bool("title", sendTitle),
		slog.Bool("content", sendContent),
	)
	return nil
}

// updateListEntryLocked refreshes the list row of a note in place.
func (workspace *Workspace) updateListEntryLocked(summary NoteSummary) {
	for i := range workspace.notes {
		if workspace.notes[i].ID == summary.ID {
			workspace.notes[i] = summary
			return
		}
	}
}

// # Links

// ToggleLink removes the link under the cursor, or links the selection to
// input when there is none.
func (workspace *Workspace) ToggleLink(input string) error {
	if err := workspace.requireEditable(); err != nil {
		return err
	}
	if workspace.editor.LinkActive() {
		return workspace.editor.UnsetLink()
	}

	href := NormalizeHref(input)
	if href == "" {
		return validate.RequiredError(FieldHref, "This field is required")
	}
	return workspace.editor.SetLink(href)
}

// NormalizeHref turns user input into a link target. Anything without a
// scheme and not a relative reference is taken to be a web address.
func NormalizeHref(input string) string {
	href := strings.TrimSpace(input)
	switch {
	case href == "":
		return ""
	case strings.Contains(href, "://"),
		strings.HasPrefix(href, "mailto:"),
		strings.HasPrefix(href, "tel:"),
		strings.HasPrefix(href, "/"),
		strings.HasPrefix(href, "#"):
		return href
	default:
		return "https://" + href
	}
}

func (workspace *Workspace) requireEditable() error {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	switch {
	case workspace.active == nil:
		return noActiveNote()
	case workspace.active.IsTrashed:
		return document.ErrReadOnly
	}
	return nil
}
