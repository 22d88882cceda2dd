// Copyright (c) 2026 Datacore. All rights reserved.

/*
Package notes hosts the notes workspace: a URL-driven session that lists
notes, loads one into a structured-document editor and keeps the backend in
step with local edits.

Lifecycle of an edit:

	loaded ──type──▶ unsaved ──1500ms idle──▶ saving ──ok──▶ saved
	                    │                        └─err──▶ error
	                    └── force-save ─────────▶ saving

The backend owns every note; a [Workspace] holds only the view of it that
one open page needs. A [Registry] keeps workspaces alive between HTTP calls.
*/
package notes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/datacore/datacore/internal/notes/document"
)

// # Identifiers

// ID is a backend identifier. The backend may send it as a JSON number or
// string; it is held as text and written back as a number when it is one.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*id = ID(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("notes: id must be a string or number: %w", err)
	}
	*id = ID(number.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// numeric reports whether id is a canonical non-negative integer.
func (id ID) numeric() bool {
	if id == "" || len(id) > 18 || (len(id) > 1 && id[0] == '0') {
		return false
	}
	return strings.Trim(string(id), "0123456789") == ""
}

// # Notes

// TagRef is the tag summary embedded in a note.
type TagRef struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// NoteSummary is a list row.
type NoteSummary struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	ContentText string   `json:"content_text"`
	UpdatedAt   string   `json:"updated_at"`
	IsStarred   bool     `json:"is_starred"`
	IsTrashed   bool     `json:"is_trashed"`
	FolderID    *ID      `json:"folder_id"`
	Tags        []TagRef `json:"tags"`
}

// NoteFull is a note with its document.
type NoteFull struct {
	NoteSummary
	ContentJSON document.Node `json:"content_json"`
}

// NoteCreate is the body of POST /notes.
type NoteCreate struct {
	Title    string `json:"title"`
	FolderID *ID    `json:"folder_id,omitempty"`
}

// NoteUpdate is a partial PATCH /notes/{id}. Nil fields are not sent.
type NoteUpdate struct {
	Title       *string        `json:"title,omitempty"`
	ContentJSON *document.Node `json:"content_json,omitempty"`
	IsStarred   *bool          `json:"is_starred,omitempty"`
	TagIDs      *[]ID          `json:"tag_ids,omitempty"`
}

// Empty reports whether the update carries no field.
func (update NoteUpdate) Empty() bool {
	return update.Title == nil && update.ContentJSON == nil && update.IsStarred == nil && update.TagIDs == nil
}

// MoveInput is the body of POST /notes/{id}/move. A nil folder moves the note to the root.
type MoveInput struct {
	FolderID *ID `json:"folder_id"`
}

// # Folders & Tags

// Folder is a node of the folder tree.
type Folder struct {
	ID        ID       `json:"id"`
	Name      string   `json:"name"`
	ParentID  *ID      `json:"parent_id,omitempty"`
	Children  []Folder `json:"children"`
	NoteCount int      `json:"note_count"`
}

// FolderCreate is the body of POST /folders.
type FolderCreate struct {
	Name     string `json:"name"`
	ParentID *ID    `json:"parent_id,omitempty"`
}

// Tag is a label with its usage count.
type Tag struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	NoteCount int    `json:"note_count"`
}

// TagCreate is the body of POST /notes/tags.
type TagCreate struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Stats are the sidebar counters.
type Stats struct {
	Total   int `json:"total"`
	Starred int `json:"starred"`
	Trashed int `json:"trashed"`
}

// # Attachments

// Attachment is a file stored against a note.
type Attachment struct {
	ID          ID     `json:"id"`
	NoteID      ID     `json:"note_id,omitempty"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	URL         string `json:"url,omitempty"`
}

// # Session State

// SaveStatus is the autosave state of the active note.
type SaveStatus string

const (
	StatusSaved   SaveStatus = "saved"
	StatusUnsaved SaveStatus = "unsaved"
	StatusSaving  SaveStatus = "saving"
	StatusError   SaveStatus = "error"
)

// # Constants

const (
	// AutosaveDelay is the idle window after the last edit before a save.
	AutosaveDelay = 1500 * time.Millisecond

	// DefaultTagColor is used when a tag is created without a color.
	DefaultTagColor = "#6699cc"
)

// Field keys used by validators and error details.
const (
	FieldTitle    = "title"
	FieldName     = "name"
	FieldColor    = "color"
	FieldHref     = "href"
	FieldNote     = "note"
	FieldFolderID = "folder_id"
	FieldTagIDs   = "tag_ids"
	FieldFile     = "file"
)
