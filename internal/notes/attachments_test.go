// Copyright (c) 2026 Datacore. All rights reserved.

package notes_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacore/datacore/internal/notes"
	"github.com/datacore/datacore/internal/notes/document"
	"github.com/datacore/datacore/internal/platform/apperr"
)

func TestNormalizeHref(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"memory-alpha.fandom.com", "https://memory-alpha.fandom.com"},
		{"  example.com/path  ", "https://example.com/path"},
		{"http://example.com", "http://example.com"},
		{"ftp://files.example.com", "ftp://files.example.com"},
		{"mailto:picard@enterprise.fed", "mailto:picard@enterprise.fed"},
		{"tel:+15550100", "tel:+15550100"},
		{"/notes?note=3", "/notes?note=3"},
		{"#section", "#section"},
		{"   ", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, notes.NormalizeHref(tc.input), "input %q", tc.input)
	}
}

/*
TestWorkspace_InsertImageAttachment inserts an image node with the filename
as alt text and schedules an autosave.
*/
func TestWorkspace_InsertImageAttachment(t *testing.T) {
	repo := newFakeRepository(textNote("1", "A", "alpha"))
	f := newFixture(t, "note=1", repo)
	ctx := context.Background()

	attachment, err := f.workspace.UploadAttachment(ctx, notes.Upload{
		Filename: "bridge.png",
		Body:     strings.NewReader("png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", attachment.ContentType)
	assert.Equal(t, int64(3), attachment.Size)

	require.NoError(t, f.workspace.InsertAttachment(*attachment))

	doc := f.editor.Content()
	require.Len(t, doc.Content, 2)
	image := doc.Content[1]
	assert.Equal(t, document.TypeImage, image.Type)
	assert.Equal(t, "http://backend/api/notes/attachments/"+string(attachment.ID), image.Attr("src"))
	assert.Equal(t, "bridge.png", image.Attr("alt"))
	assert.Equal(t, notes.StatusUnsaved, f.workspace.Status())

	listed, err := f.workspace.ListAttachments(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

/*
TestWorkspace_InsertFileAttachment inserts a link labelled with the filename.
*/
func TestWorkspace_InsertFileAttachment(t *testing.T) {
	repo := newFakeRepository(textNote("1", "A", "alpha"))
	f := newFixture(t, "note=1", repo)

	err := f.workspace.InsertAttachment(notes.Attachment{
		ID:          "5",
		Filename:    "manifest.pdf",
		ContentType: "application/pdf",
		URL:         "https://files.example/manifest.pdf",
	})
	require.NoError(t, err)

	doc := f.editor.Content()
	require.Len(t, doc.Content, 2)
	text := doc.Content[1].Content[0]
	assert.Equal(t, "manifest.pdf", text.Text)
	require.True(t, text.HasMark(document.MarkLink))
	assert.Equal(t, "https://files.example/manifest.pdf", text.Marks[0].Attrs["href"])
}

func TestWorkspace_AttachmentsNeedActiveNote(t *testing.T) {
	f := newFixture(t, "", newFakeRepository())

	_, err := f.workspace.UploadAttachment(context.Background(), notes.Upload{Filename: "a.txt", Body: strings.NewReader("")})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	err = f.workspace.InsertAttachment(notes.Attachment{ID: "1", Filename: "a.txt"})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

/*
TestWorkspace_ToggleLink sets a link on the selected text, then unsets it.
*/
func TestWorkspace_ToggleLink(t *testing.T) {
	repo := newFakeRepository(textNote("1", "A", "alpha"))
	f := newFixture(t, "note=1", repo)

	require.NoError(t, f.editor.Select([]int{0, 0}))
	require.NoError(t, f.workspace.ToggleLink("memory-alpha.fandom.com"))

	text := f.editor.Content().Content[0].Content[0]
	require.True(t, text.HasMark(document.MarkLink))
	assert.Equal(t, "https://memory-alpha.fandom.com", text.Marks[0].Attrs["href"])

	require.NoError(t, f.workspace.ToggleLink(""))
	assert.False(t, f.editor.Content().Content[0].Content[0].HasMark(document.MarkLink))

	assert.True(t, apperr.Is(f.workspace.ToggleLink("  "), apperr.CodeValidation))
}
