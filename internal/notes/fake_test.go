// Copyright (c) 2026 Datacore. All rights reserved.

package notes_test

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/datacore/datacore/internal/notes"
	"github.com/datacore/datacore/internal/notes/document"
	"github.com/datacore/datacore/internal/platform/apperr"
	"github.com/datacore/datacore/internal/platform/clock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type updateCall struct {
	ID     notes.ID
	Update notes.NoteUpdate
}

// fakeRepository is an in-memory backend. GetNote and UpdateNote can be
// held open through gates to interleave responses.
type fakeRepository struct {
	mu          sync.Mutex
	notes       map[notes.ID]*notes.NoteFull
	folders     []notes.Folder
	tags        []notes.Tag
	attachments map[notes.ID][]notes.Attachment
	nextID      int

	listQueries []url.Values
	gets        []notes.ID
	updates     []updateCall
	deleted     []notes.ID
	moved       map[notes.ID]*notes.ID
	statsCalls  int

	getGates    map[notes.ID]chan struct{}
	updateGate  chan struct{}
	updateEnter chan struct{}
	updateErr   error
	listErr     error
}

func newFakeRepository(seed ...*notes.NoteFull) *fakeRepository {
	repo := &fakeRepository{
		notes:       make(map[notes.ID]*notes.NoteFull),
		attachments: make(map[notes.ID][]notes.Attachment),
		moved:       make(map[notes.ID]*notes.ID),
		getGates:    make(map[notes.ID]chan struct{}),
		nextID:      100,
	}
	for _, note := range seed {
		repo.notes[note.ID] = note
	}
	return repo
}

func textNote(id notes.ID, title, text string) *notes.NoteFull {
	return &notes.NoteFull{
		NoteSummary: notes.NoteSummary{ID: id, Title: title, ContentText: text, UpdatedAt: "2026-01-01T00:00:00Z"},
		ContentJSON: document.Doc(document.Paragraph(document.Text(text))),
	}
}

func (repo *fakeRepository) copyNote(note *notes.NoteFull) *notes.NoteFull {
	out := *note
	out.ContentJSON = note.ContentJSON.Clone()
	out.Tags = append([]notes.TagRef(nil), note.Tags...)
	return &out
}

func (repo *fakeRepository) updateCalls() []updateCall {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return append([]updateCall(nil), repo.updates...)
}

func (repo *fakeRepository) ListNotes(_ context.Context, query url.Values) ([]notes.NoteSummary, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.listQueries = append(repo.listQueries, query)
	if repo.listErr != nil {
		return nil, repo.listErr
	}

	out := make([]notes.NoteSummary, 0, len(repo.notes))
	for _, note := range repo.notes {
		trashed := query.Get("trashed") == "true"
		if note.IsTrashed != trashed {
			continue
		}
		if query.Get("starred") == "true" && !note.IsStarred {
			continue
		}
		if folder := query.Get("folder_id"); folder != "" && (note.FolderID == nil || string(*note.FolderID) != folder) {
			continue
		}
		out = append(out, note.NoteSummary)
	}
	return out, nil
}

func (repo *fakeRepository) GetNote(_ context.Context, id notes.ID) (*notes.NoteFull, error) {
	repo.mu.Lock()
	repo.gets = append(repo.gets, id)
	gate := repo.getGates[id]
	repo.mu.Unlock()

	if gate != nil {
		<-gate
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	note, ok := repo.notes[id]
	if !ok {
		return nil, apperr.NotFound("Note")
	}
	return repo.copyNote(note), nil
}

func (repo *fakeRepository) CreateNote(_ context.Context, input notes.NoteCreate) (*notes.NoteFull, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.nextID++
	note := &notes.NoteFull{
		NoteSummary: notes.NoteSummary{ID: notes.ID(strconv.Itoa(repo.nextID)), Title: input.Title, FolderID: input.FolderID},
		ContentJSON: document.Empty(),
	}
	repo.notes[note.ID] = note
	return repo.copyNote(note), nil
}

func (repo *fakeRepository) UpdateNote(_ context.Context, id notes.ID, update notes.NoteUpdate) (*notes.NoteFull, error) {
	repo.mu.Lock()
	repo.updates = append(repo.updates, updateCall{ID: id, Update: update})
	gate, enter, failure := repo.updateGate, repo.updateEnter, repo.updateErr
	repo.mu.Unlock()

	if enter != nil {
		enter <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if failure != nil {
		return nil, failure
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	note, ok := repo.notes[id]
	if !ok {
		return nil, apperr.NotFound("Note")
	}
	if update.Title != nil {
		note.Title = *update.Title
	}
	if update.ContentJSON != nil {
		note.ContentJSON = update.ContentJSON.Clone()
		note.ContentText = document.PlainText(note.ContentJSON)
	}
	if update.IsStarred != nil {
		note.IsStarred = *update.IsStarred
	}
	if update.TagIDs != nil {
		note.Tags = nil
		for _, tagID := range *update.TagIDs {
			note.Tags = append(note.Tags, notes.TagRef{ID: tagID, Name: "tag-" + string(tagID)})
		}
	}
	note.UpdatedAt = "2026-01-02T00:00:00Z"
	return repo.copyNote(note), nil
}

func (repo *fakeRepository) DeleteNote(_ context.Context, id notes.ID) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	note, ok := repo.notes[id]
	if !ok {
		return apperr.NotFound("Note")
	}
	note.IsTrashed = true
	return nil
}

func (repo *fakeRepository) RestoreNote(_ context.Context, id notes.ID) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	note, ok := repo.notes[id]
	if !ok {
		return apperr.NotFound("Note")
	}
	note.IsTrashed = false
	return nil
}

func (repo *fakeRepository) PermanentlyDeleteNote(_ context.Context, id notes.ID) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.deleted = append(repo.deleted, id)
	delete(repo.notes, id)
	return nil
}

func (repo *fakeRepository) EmptyTrash(_ context.Context) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for id, note := range repo.notes {
		if note.IsTrashed {
			delete(repo.notes, id)
		}
	}
	return nil
}

func (repo *fakeRepository) MoveNote(_ context.Context, id notes.ID, folderID *notes.ID) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	note, ok := repo.notes[id]
	if !ok {
		return apperr.NotFound("Note")
	}
	note.FolderID = folderID
	repo.moved[id] = folderID
	return nil
}

func (repo *fakeRepository) Stats(_ context.Context) (*notes.Stats, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.statsCalls++
	stats := &notes.Stats{}
	for _, note := range repo.notes {
		switch {
		case note.IsTrashed:
			stats.Trashed++
		default:
			stats.Total++
			if note.IsStarred {
				stats.Starred++
			}
		}
	}
	return stats, nil
}

func (repo *fakeRepository) ListFolders(_ context.Context) ([]notes.Folder, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return append([]notes.Folder(nil), repo.folders...), nil
}

func (repo *fakeRepository) CreateFolder(_ context.Context, input notes.FolderCreate) (*notes.Folder, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.nextID++
	folder := notes.Folder{ID: notes.ID(strconv.Itoa(repo.nextID)), Name: input.Name, ParentID: input.ParentID}
	repo.folders = append(repo.folders, folder)
	return &folder, nil
}

func (repo *fakeRepository) ListTags(_ context.Context) ([]notes.Tag, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return append([]notes.Tag(nil), repo.tags...), nil
}

func (repo *fakeRepository) CreateTag(_ context.Context, input notes.TagCreate) (*notes.Tag, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.nextID++
	tag := notes.Tag{ID: notes.ID(strconv.Itoa(repo.nextID)), Name: input.Name, Color: input.Color}
	repo.tags = append(repo.tags, tag)
	return &tag, nil
}

func (repo *fakeRepository) ListAttachments(_ context.Context, noteID notes.ID) ([]notes.Attachment, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return append([]notes.Attachment(nil), repo.attachments[noteID]...), nil
}

func (repo *fakeRepository) UploadAttachment(_ context.Context, noteID notes.ID, file notes.Upload) (*notes.Attachment, error) {
	body, err := io.ReadAll(file.Body)
	if err != nil {
		return nil, err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.nextID++
	attachment := notes.Attachment{
		ID:          notes.ID(strconv.Itoa(repo.nextID)),
		NoteID:      noteID,
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Size:        int64(len(body)),
	}
	repo.attachments[noteID] = append(repo.attachments[noteID], attachment)
	return &attachment, nil
}

func (repo *fakeRepository) AttachmentURL(id notes.ID) string {
	return "http://backend/api/notes/attachments/" + string(id)
}

// # Fixtures

type fixture struct {
	repo      *fakeRepository
	editor    *document.MemoryEditor
	location  *notes.MemoryLocation
	clock     *clock.Fake
	workspace *notes.Workspace
}

func newFixture(t *testing.T, rawQuery string, repo *fakeRepository, opts ...notes.Option) *fixture {
	t.Helper()

	location, err := notes.NewMemoryLocation(rawQuery)
	require.NoError(t, err)

	fake := clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	editor := document.NewMemoryEditor()
	options := append([]notes.Option{notes.WithClock(fake)}, opts...)
	workspace := notes.NewWorkspace(repo, editor, location, discardLogger(), options...)
	t.Cleanup(workspace.Close)

	require.NoError(t, workspace.Refresh(context.Background()))
	return &fixture{repo: repo, editor: editor, location: location, clock: fake, workspace: workspace}
}

// typeText appends text to the first paragraph as a user edit.
func (f *fixture) typeText(t *testing.T, text string) {
	t.Helper()
	doc := f.editor.Content()
	if len(doc.Content) == 0 {
		doc.Content = []document.Node{document.Paragraph()}
	}
	paragraph := &doc.Content[0]
	if len(paragraph.Content) == 0 {
		paragraph.Content = []document.Node{document.Text(text)}
	} else {
		paragraph.Content[0].Text += text
	}
	require.NoError(t, f.editor.Replace(doc))
}
