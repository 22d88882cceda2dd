// Copyright (c) 2026 Datacore. All rights reserved.

package notes

import (
	"context"
	"net/url"

	"github.com/datacore/datacore/internal/platform/backend"
)

// HTTPRepository is the [Repository] backed by the Datacore backend.
type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(client *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

// # Notes

func (repository *HTTPRepository) ListNotes(context context.Context, query url.Values) ([]NoteSummary, error) {
	notes := make([]NoteSummary, 0)
	if err := repository.client.Get(context, "/notes", query, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (repository *HTTPRepository) GetNote(context context.Context, id ID) (*NoteFull, error) {
	var note NoteFull
	if err := repository.client.Get(context, notePath(id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (repository *HTTPRepository) CreateNote(context context.Context, input NoteCreate) (*NoteFull, error) {
	var note NoteFull
	if err := repository.client.Post(context, "/notes", input, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (repository *HTTPRepository) UpdateNote(context context.Context, id ID, update NoteUpdate) (*NoteFull, error) {
	var note NoteFull
	if err := repository.client.Patch(context, notePath(id), update, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (repository *HTTPRepository) DeleteNote(context context.Context, id ID) error {
	return repository.client.Delete(context, notePath(id), nil)
}

func (repository *HTTPRepository) RestoreNote(context context.Context, id ID) error {
	return repository.client.Post(context, notePath(id)+"/restore", nil, nil)
}

func (repository *HTTPRepository) PermanentlyDeleteNote(context context.Context, id ID) error {
	return repository.client.Delete(context, notePath(id)+"/permanent", nil)
}

func (repository *HTTPRepository) EmptyTrash(context context.Context) error {
	return repository.client.Post(context, "/notes/empty-trash", nil, nil)
}

func (repository *HTTPRepository) MoveNote(context context.Context, id ID, folderID *ID) error {
	return repository.client.Post(context, notePath(id)+"/move", MoveInput{FolderID: folderID}, nil)
}

// # Counters, Folders & Tags

func (repository *HTTPRepository) Stats(context context.Context) (*Stats, error) {
	var stats Stats
	if err := repository.client.Get(context, "/notes/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (repository *HTTPRepository) ListFolders(context context.Context) ([]Folder, error) {
	folders := make([]Folder, 0)
	if err := repository.client.Get(context, "/folders", nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

func (repository *HTTPRepository) CreateFolder(context context.Context, input FolderCreate) (*Folder, error) {
	var folder Folder
	if err := repository.client.Post(context, "/folders", input, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

func (repository *HTTPRepository) ListTags(context context.Context) ([]Tag, error) {
	tags := make([]Tag, 0)
	if err := repository.client.Get(context, "/notes/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (repository *HTTPRepository) CreateTag(context context.Context, input TagCreate) (*Tag, error) {
	var tag Tag
	if err := repository.client.Post(context, "/notes/tags", input, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// # Attachments

func (repository *HTTPRepository) ListAttachments(context context.Context, noteID ID) ([]Attachment, error) {
	attachments := make([]Attachment, 0)
	if err := repository.client.Get(context, notePath(noteID)+"/attachments", nil, &attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}

func (repository *HTTPRepository) UploadAttachment(context context.Context, noteID ID, file Upload) (*Attachment, error) {
	var attachment Attachment
	err := repository.client.Upload(context, notePath(noteID)+"/attachments", backend.File{
		Field:       FieldFile,
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Body:        file.Body,
	}, &attachment)
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

// AttachmentURL resolves the public file URL of an attachment.
func (repository *HTTPRepository) AttachmentURL(id ID) string {
	return repository.client.URL("/notes/attachments/" + url.PathEscape(string(id)))
}

func notePath(id ID) string {
	return "/notes/" + url.PathEscape(string(id))
}
