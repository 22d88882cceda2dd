// Copyright (c) 2026 Datacore. All rights reserved.

package notes

import (
	"context"
	"io"
	"net/url"
)

// Upload is a file to attach to a note.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Repository is the backend notes API.
type Repository interface {
	ListNotes(context context.Context, query url.Values) ([]NoteSummary, error)
	GetNote(context context.Context, id ID) (*NoteFull, error)
	CreateNote(context context.Context, input NoteCreate) (*NoteFull, error)
	UpdateNote(context context.Context, id ID, update NoteUpdate) (*NoteFull, error)
	DeleteNote(context context.Context, id ID) error
	RestoreNote(context context.Context, id ID) error
	PermanentlyDeleteNote(context context.Context, id ID) error
	EmptyTrash(context context.Context) error
	MoveNote(context context.Context, id ID, folderID *ID) error

	Stats(context context.Context) (*Stats, error)
	ListFolders(context context.Context) ([]Folder, error)
	CreateFolder(context context.Context, input FolderCreate) (*Folder, error)
	ListTags(context context.Context) ([]Tag, error)
	CreateTag(context context.Context, input TagCreate) (*Tag, error)

	ListAttachments(context context.Context, noteID ID) ([]Attachment, error)
	UploadAttachment(context context.Context, noteID ID, file Upload) (*Attachment, error)
	AttachmentURL(id ID) string
}
