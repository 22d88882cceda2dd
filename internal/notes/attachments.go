// Copyright (c) 2026 Datacore. All rights reserved.

package notes

import (
	"context"
	"log/slog"
	"mime"
	"path"
	"strings"

	"github.com/datacore/datacore/internal/notes/document"
	"github.com/datacore/datacore/internal/platform/validate"
)

// UploadAttachment stores a file against the active note.
func (workspace *Workspace) UploadAttachment(context context.Context, upload Upload) (*Attachment, error) {
	noteID := workspace.activeID()
	if noteID == "" {
		return nil, noActiveNote()
	}

	validator := &validate.Validator{}
	validator.Required(FieldFile, strings.TrimSpace(upload.Filename))
	if err := validator.Err(); err != nil {
		return nil, err
	}
	if upload.ContentType == "" {
		upload.ContentType = contentTypeOf(upload.Filename)
	}

	attachment, err := workspace.repo.UploadAttachment(context, noteID, upload)
	if err != nil {
		workspace.logger.Warn("attachment_upload_failed",
			slog.String("note_id", noteID.String()),
			slog.String("filename", upload.Filename),
			slog.Any("error", err),
		)
		return nil, err
	}

	workspace.logger.Info("attachment_uploaded",
		slog.String("note_id", noteID.String()),
		slog.String("attachment_id", attachment.ID.String()),
	)
	return attachment, nil
}

// ListAttachments lists the files of the active note.
func (workspace *Workspace) ListAttachments(context context.Context) ([]Attachment, error) {
	noteID := workspace.activeID()
	if noteID == "" {
		return nil, noActiveNote()
	}
	return workspace.repo.ListAttachments(context, noteID)
}

// InsertAttachment places an attachment at the cursor: images inline, any
// other file as a link labelled with its filename.
func (workspace *Workspace) InsertAttachment(attachment Attachment) error {
	if err := workspace.requireEditable(); err != nil {
		return err
	}

	href := attachment.URL
	if href == "" {
		href = workspace.repo.AttachmentURL(attachment.ID)
	}

	if IsImage(attachment) {
		return workspace.editor.InsertNode(document.Image(href, attachment.Filename))
	}
	return workspace.editor.InsertNode(document.Paragraph(document.Text(attachment.Filename, document.Link(href))))
}

// IsImage reports whether an attachment renders inline.
func IsImage(attachment Attachment) bool {
	contentType := attachment.ContentType
	if contentType == "" {
		contentType = contentTypeOf(attachment.Filename)
	}
	return strings.HasPrefix(contentType, "image/")
}

func contentTypeOf(filename string) string {
	contentType := mime.TypeByExtension(strings.ToLower(path.Ext(filename)))
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}
