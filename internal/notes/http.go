// Copyright (c) 2026 Datacore. All rights reserved.

package notes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datacore/datacore/internal/notes/document"
	requestutil "github.com/datacore/datacore/internal/platform/request"
	"github.com/datacore/datacore/internal/platform/respond"
	"github.com/datacore/datacore/internal/platform/validate"
)

// maxUploadBytes caps attachment uploads held in memory while parsing.
const maxUploadBytes = 32 << 20

// # Handler Implementation

// Handler serves notes workspaces over HTTP. Every mutating endpoint
// answers with the resulting [Snapshot].
type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// # Request Bodies

type openRequest struct {
	Query string `json:"query"`
}

type openResponse struct {
	ID string `json:"id"`
	Snapshot
}

type selectionRequest struct {
	All    bool    `json:"all"`
	View   *View   `json:"view"`
	Folder *ID     `json:"folder"`
	Tag    *string `json:"tag"`
	Search *string `json:"search"`
	Note   *ID     `json:"note"`
}

type titleRequest struct {
	Title string `json:"title"`
}

type contentRequest struct {
	ContentJSON *document.Node `json:"content_json"`
}

type cursorRequest struct {
	Path []int `json:"path"`
}

type moveRequest struct {
	FolderID *ID `json:"folder_id"`
}

type tagsRequest struct {
	TagIDs []ID `json:"tag_ids"`
}

type linkRequest struct {
	Href string `json:"href"`
}

// Routes returns the workspace endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Sessions
	router.Post("/", handler.open)
	router.Get("/{id}", handler.get)
	router.Delete("/{id}", handler.close)

	// ## Selection and Editing
	router.Patch("/{id}/selection", handler.selection)
	router.Put("/{id}/title", handler.setTitle)
	router.Put("/{id}/content", handler.setContent)
	router.Post("/{id}/cursor", handler.setCursor)
	router.Post("/{id}/save", handler.save)
	router.Post("/{id}/link", handler.toggleLink)

	// ## Notes
	router.Post("/{id}/notes", handler.createNote)
	router.Delete("/{id}/notes/{noteID}", handler.deleteNote)
	router.Post("/{id}/notes/{noteID}/restore", handler.restoreNote)
	router.Delete("/{id}/notes/{noteID}/permanent", handler.purgeNote)
	router.Post("/{id}/notes/{noteID}/move", handler.moveNote)
	router.Post("/{id}/notes/{noteID}/star", handler.toggleStar)
	router.Put("/{id}/notes/{noteID}/tags", handler.setTags)
	router.Post("/{id}/trash/empty", handler.emptyTrash)

	// ## Folders and Tags
	router.Post("/{id}/folders", handler.createFolder)
	router.Post("/{id}/tags", handler.createTag)

	// ## Attachments
	router.Get("/{id}/attachments", handler.listAttachments)
	router.Post("/{id}/attachments", handler.uploadAttachment)

	return router
}

// ## Sessions

func (handler *Handler) open(writer http.ResponseWriter, request *http.Request) {
	var input openRequest
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	session, err := handler.registry.Open(request.Context(), input.Query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, openResponse{ID: session.ID, Snapshot: session.Workspace.Snapshot()})
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}
	respond.OK(writer, session.Workspace.Snapshot())
}

func (handler *Handler) close(writer http.ResponseWriter, request *http.Request) {
	if err := handler.registry.Close(requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// ## Selection and Editing

func (handler *Handler) selection(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	var input selectionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	workspace := session.Workspace
	context := request.Context()

	var err error
	switch {
	case input.All:
		err = workspace.ShowAll(context)
	case input.View != nil:
		err = workspace.SelectView(context, *input.View)
	case input.Folder != nil:
		err = workspace.SelectFolder(context, *input.Folder)
	case input.Tag != nil:
		err = workspace.SelectTag(context, *input.Tag)
	}
	if err == nil && input.Search != nil {
		err = workspace.Search(context, *input.Search)
	}
	if err == nil && input.Note != nil {
		err = workspace.SelectNote(context, *input.Note)
	}

	handler.reply(writer, request, session, err)
}

func (handler *Handler) setTitle(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	var input titleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.reply(writer, request, session, session.Workspace.SetTitle(input.Title))
}

func (handler *Handler) setContent(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.ContentJSON == nil {
		respond.Error(writer, request, validate.RequiredError("content_json", "This field is required"))
		return
	}

	handler.reply(writer, request, session, session.Editor.Replace(*input.ContentJSON))
}

func (handler *Handler) setCursor(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	var input cursorRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.reply(writer, request, session, session.Editor.Select(input.Path))
}

func (handler *Handler) save(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}
	handler.reply(writer, request, session, session.Workspace.ForceSave(request.Context()))
}

func (handler *Handler) toggleLink(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	var input linkRequest
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	handler.reply(writer, request, session, session.Workspace.ToggleLink(input.Href))
}

// ## Notes

func (handler *Handler) createNote(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	var input NoteCreate
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	if _, err := session.Workspace.CreateNote(request.Context(), input.Title, input.FolderID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session.Workspace.Snapshot())
}

func (handler *Handler) deleteNote(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}
	handler.reply(writer, request, session, session.Workspace.DeleteNote(request.Context(), noteIDFromRequest(request)))
}

func (handler *Handler) restoreNote(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}
	handler.reply(writer, request, session, session.Workspace.RestoreNote(request.Context(), noteIDFromRequest(request)))
}

func (handler *Handler) purgeNote(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}
	handler.reply(writer, request, session, session.Workspace.PermanentlyDeleteNote(request.Context(), noteIDFromRequest(request)))
}

func (handler *Handler) moveNote(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	var input moveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.reply(writer, request, session, session.Workspace.MoveNote(request.Context(), noteIDFromRequest(request), input.FolderID))
}

func (handler *Handler) toggleStar(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}
	handler.reply(writer, request, session, session.Workspace.ToggleStar(request.Context(), noteIDFromRequest(request)))
}

func (handler *Handler) setTags(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	var input tagsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.reply(writer, request, session, session.Workspace.SetNoteTags(request.Context(), noteIDFromRequest(request), input.TagIDs))
}

func (handler *Handler) emptyTrash(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}
	handler.reply(writer, request, session, session.Workspace.EmptyTrash(request.Context()))
}

// ## Folders and Tags

func (handler *Handler) createFolder(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	var input FolderCreate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	folder, err := session.Workspace.CreateFolder(request.Context(), input.Name, input.ParentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, folder)
}

func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	var input TagCreate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := session.Workspace.CreateTag(request.Context(), input.Name, input.Color)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, tag)
}

// ## Attachments

func (handler *Handler) listAttachments(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	attachments, err := session.Workspace.ListAttachments(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, attachments)
}

// uploadAttachment stores a multipart "file" part. With ?insert=true the
// attachment is also placed at the cursor.
func (handler *Handler) uploadAttachment(writer http.ResponseWriter, request *http.Request) {
	session, ok := handler.session(writer, request)
	if !ok {
		return
	}

	if err := request.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldFile, "Expected a multipart form"))
		return
	}
	file, header, err := request.FormFile(FieldFile)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldFile, "This field is required"))
		return
	}
	defer file.Close()

	attachment, err := session.Workspace.UploadAttachment(request.Context(), Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if requestutil.Query(request, "insert") == "true" {
		if err := session.Workspace.InsertAttachment(*attachment); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	respond.Created(writer, attachment)
}

// # Helpers

func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) (*Session, bool) {
	session, err := handler.registry.Get(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return nil, false
	}
	return session, true
}

// reply writes err, or the snapshot when there is none.
func (handler *Handler) reply(writer http.ResponseWriter, request *http.Request, session *Session, err error) {
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session.Workspace.Snapshot())
}

func noteIDFromRequest(request *http.Request) ID {
	return ID(requestutil.Param(request, "noteID"))
}
