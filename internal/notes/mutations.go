// Copyright (c) 2026 Datacore. All rights reserved.

package notes

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/datacore/datacore/internal/platform/validate"
	"github.com/datacore/datacore/pkg/pointer"
)

// Folder and tag name bounds.
const (
	MaxFolderNameLength = 100
	MaxTagNameLength    = 50
)

// # Notes

/*
CreateNote creates a note and opens it.

Parameters:
  - context: context.Context
  - title: string (may be empty)
  - folderID: *ID (nil files the note into the selected folder, if any)

Returns:
  - *NoteFull: The created note
  - error: Validation or backend errors
*/
func (workspace *Workspace) CreateNote(context context.Context, title string, folderID *ID) (*NoteFull, error) {
	validator := &validate.Validator{}
	validator.MaxLen(FieldTitle, title, MaxTitleLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if folderID == nil {
		if folder := workspace.Selection().Folder; folder != "" {
			folderID = &folder
		}
	}

	note, err := workspace.repo.CreateNote(context, NoteCreate{Title: title, FolderID: folderID})
	if err != nil {
		workspace.logger.Warn("note_create_failed", slog.Any("error", err))
		return nil, err
	}

	workspace.leaveActive(context)
	workspace.location.Replace(workspace.Selection().WithNote(note.ID).Apply(workspace.location.Query()))

	opened := *note
	opened.ContentJSON = note.ContentJSON.Clone()
	workspace.mu.Lock()
	workspace.activeEpoch++
	workspace.reconcileLocked(&opened)
	workspace.mu.Unlock()

	workspace.logger.Info("note_created", slog.String("note_id", note.ID.String()))
	workspace.afterMutation(context)
	return note, nil
}

// DeleteNote moves a note to the trash.
func (workspace *Workspace) DeleteNote(context context.Context, id ID) error {
	if err := workspace.repo.DeleteNote(context, id); err != nil {
		return err
	}
	workspace.dropActive(id)
	workspace.logger.Info("note_trashed", slog.String("note_id", id.String()))
	workspace.afterMutation(context)
	return nil
}

// RestoreNote takes a note out of the trash.
func (workspace *Workspace) RestoreNote(context context.Context, id ID) error {
	if err := workspace.repo.RestoreNote(context, id); err != nil {
		return err
	}

	workspace.mu.Lock()
	if workspace.active != nil && workspace.active.ID == id {
		workspace.active.IsTrashed = false
		workspace.editor.SetEditable(true)
	}
	workspace.mu.Unlock()

	workspace.logger.Info("note_restored", slog.String("note_id", id.String()))
	workspace.afterMutation(context)
	return nil
}

// PermanentlyDeleteNote removes a note for good.
func (workspace *Workspace) PermanentlyDeleteNote(context context.Context, id ID) error {
	if err := workspace.repo.PermanentlyDeleteNote(context, id); err != nil {
		return err
	}
	workspace.dropActive(id)
	workspace.logger.Info("note_deleted", slog.String("note_id", id.String()))
	workspace.afterMutation(context)
	return nil
}

// EmptyTrash deletes every trashed note.
func (workspace *Workspace) EmptyTrash(context context.Context) error {
	if err := workspace.repo.EmptyTrash(context); err != nil {
		return err
	}

	workspace.mu.Lock()
	var trashed ID
	if workspace.active != nil && workspace.active.IsTrashed {
		trashed = workspace.active.ID
	}
	workspace.mu.Unlock()
	if trashed != "" {
		workspace.dropActive(trashed)
	}

	workspace.logger.Info("trash_emptied")
	workspace.afterMutation(context)
	return nil
}

// MoveNote files a note into a folder; nil moves it to the root.
func (workspace *Workspace) MoveNote(context context.Context, id ID, folderID *ID) error {
	if err := workspace.repo.MoveNote(context, id, folderID); err != nil {
		return err
	}

	workspace.mu.Lock()
	if workspace.active != nil && workspace.active.ID == id {
		workspace.active.FolderID = pointer.Clone(folderID)
	}
	workspace.mu.Unlock()

	workspace.afterMutation(context)
	return nil
}

// ToggleStar flips the starred flag of a note.
func (workspace *Workspace) ToggleStar(context context.Context, id ID) error {
	workspace.mu.Lock()
	starred := false
	if workspace.active != nil && workspace.active.ID == id {
		starred = workspace.active.IsStarred
	} else {
		for _, summary := range workspace.notes {
			if summary.ID == id {
				starred = summary.IsStarred
				break
			}
		}
	}
	workspace.mu.Unlock()

	return workspace.patchMeta(context, id, NoteUpdate{IsStarred: pointer.To(!starred)})
}

// SetNoteTags replaces the tags of a note.
func (workspace *Workspace) SetNoteTags(context context.Context, id ID, tagIDs []ID) error {
	ids := append(make([]ID, 0, len(tagIDs)), tagIDs...)
	return workspace.patchMeta(context, id, NoteUpdate{TagIDs: &ids})
}

// patchMeta writes note metadata. Pending title and content edits are left
// alone; only the metadata of the response is merged.
func (workspace *Workspace) patchMeta(context context.Context, id ID, update NoteUpdate) error {
	workspace.saveMu.Lock()
	updated, err := workspace.repo.UpdateNote(context, id, update)
	workspace.saveMu.Unlock()
	if err != nil {
		workspace.logger.Warn("note_meta_update_failed", slog.String("note_id", id.String()), slog.Any("error", err))
		return err
	}

	workspace.mu.Lock()
	if updated != nil && workspace.active != nil && workspace.active.ID == updated.ID {
		workspace.active.IsStarred = updated.IsStarred
		workspace.active.Tags = updated.Tags
		workspace.active.FolderID = updated.FolderID
		workspace.active.UpdatedAt = updated.UpdatedAt
	}
	workspace.mu.Unlock()

	workspace.afterMutation(context)
	return nil
}

// dropActive closes a note that no longer exists where it was.
func (workspace *Workspace) dropActive(id ID) {
	workspace.mu.Lock()
	if workspace.active == nil || workspace.active.ID != id {
		workspace.mu.Unlock()
		return
	}
	workspace.activeEpoch++
	workspace.clearActiveLocked()
	workspace.mu.Unlock()

	if workspace.Selection().Note == id {
		workspace.location.Replace(workspace.Selection().WithNote("").Apply(workspace.location.Query()))
	}
}

// afterMutation reloads the list and the counters.
func (workspace *Workspace) afterMutation(context context.Context) {
	var group conc.WaitGroup
	group.Go(func() { workspace.reloadList(context) })
	group.Go(func() { _ = workspace.RefreshCounts(context) })
	group.Wait()
}

// # Folders and Tags

// CreateFolder creates a folder under parentID, or at the root.
func (workspace *Workspace) CreateFolder(context context.Context, name string, parentID *ID) (*Folder, error) {
	name = strings.TrimSpace(name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxFolderNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	folder, err := workspace.repo.CreateFolder(context, FolderCreate{Name: name, ParentID: parentID})
	if err != nil {
		return nil, err
	}

	workspace.logger.Info("folder_created", slog.String("folder_id", folder.ID.String()))
	_ = workspace.RefreshCounts(context)
	return folder, nil
}

// CreateTag creates a tag. An empty color falls back to the default.
func (workspace *Workspace) CreateTag(context context.Context, name, color string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if color == "" {
		color = DefaultTagColor
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxTagNameLength)
	validator.HexColor(FieldColor, color)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tag, err := workspace.repo.CreateTag(context, TagCreate{Name: name, Color: color})
	if err != nil {
		return nil, err
	}

	workspace.logger.Info("tag_created", slog.String("tag_id", tag.ID.String()))
	_ = workspace.RefreshCounts(context)
	return tag, nil
}
