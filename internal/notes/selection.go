// Copyright (c) 2026 Datacore. All rights reserved.

package notes

import (
	"net/url"
	"sync"
)

// View is one of the smart lists.
type View string

const (
	ViewStarred View = "starred"
	ViewRecent  View = "recent"
	ViewTrash   View = "trash"
)

// URL query keys owned by the workspace.
const (
	QueryView   = "view"
	QueryFolder = "folder"
	QueryTag    = "tag"
	QueryNote   = "note"
	QuerySearch = "search"
)

var selectionKeys = []string{QueryView, QueryFolder, QueryTag, QueryNote, QuerySearch}

// Selection is the URL-encoded state of the workspace. At most one of View,
// Folder and Tag is primary; when several are present View wins, then Folder.
type Selection struct {
	View   View   `json:"view,omitempty"`
	Folder ID     `json:"folder,omitempty"`
	Tag    string `json:"tag,omitempty"`
	Note   ID     `json:"note,omitempty"`
	Search string `json:"search,omitempty"`
}

// DecodeSelection reads a selection from URL query values.
func DecodeSelection(values url.Values) Selection {
	return Selection{
		View:   View(values.Get(QueryView)),
		Folder: ID(values.Get(QueryFolder)),
		Tag:    values.Get(QueryTag),
		Note:   ID(values.Get(QueryNote)),
		Search: values.Get(QuerySearch),
	}
}

// Encode returns the query values of s. Empty members are omitted.
func (s Selection) Encode() url.Values {
	return s.Apply(url.Values{})
}

// Apply writes s over a copy of values. Keys the selection does not own survive.
func (s Selection) Apply(values url.Values) url.Values {
	out := make(url.Values, len(values)+len(selectionKeys))
	for key, list := range values {
		out[key] = append([]string(nil), list...)
	}
	for _, key := range selectionKeys {
		out.Del(key)
	}

	set := func(key, value string) {
		if value != "" {
			out.Set(key, value)
		}
	}
	set(QueryView, string(s.View))
	set(QueryFolder, string(s.Folder))
	set(QueryTag, s.Tag)
	set(QueryNote, string(s.Note))
	set(QuerySearch, s.Search)
	return out
}

// # Transitions

// WithView selects a smart list. The open note is closed; search is kept.
func (s Selection) WithView(view View) Selection {
	return Selection{View: view, Search: s.Search}
}

// WithFolder selects a folder. The open note is closed; search is kept.
func (s Selection) WithFolder(folder ID) Selection {
	return Selection{Folder: folder, Search: s.Search}
}

// WithTag selects a tag. The open note is closed; search is kept.
func (s Selection) WithTag(tag string) Selection {
	return Selection{Tag: tag, Search: s.Search}
}

// AllNotes clears the primary selection and the open note.
func (s Selection) AllNotes() Selection {
	return Selection{Search: s.Search}
}

// WithSearch changes the search text and keeps everything else.
func (s Selection) WithSearch(search string) Selection {
	s.Search = search
	return s
}

// WithNote opens a note under the current scope.
func (s Selection) WithNote(note ID) Selection {
	s.Note = note
	return s
}

// ListQuery maps the selection to GET /notes parameters. Only the primary
// member is sent; the recent view sends no filter and leaves ordering to the backend.
func (s Selection) ListQuery() url.Values {
	query := url.Values{}
	switch {
	case s.View != "":
		switch s.View {
		case ViewStarred:
			query.Set("starred", "true")
		case ViewTrash:
			query.Set("trashed", "true")
		}
	case s.Folder != "":
		query.Set("folder_id", string(s.Folder))
	case s.Tag != "":
		query.Set("tag", s.Tag)
	}
	if s.Search != "" {
		query.Set("search", s.Search)
	}
	return query
}

// sameList reports whether a and b produce the same note list.
func (s Selection) sameList(other Selection) bool {
	return s.ListQuery().Encode() == other.ListQuery().Encode()
}

// # Location

// Location is the page URL as the workspace sees it. Writers read the
// current query, modify their keys and write the whole query back.
type Location interface {
	Query() url.Values
	Replace(query url.Values)
}

// MemoryLocation is a [Location] held in memory.
type MemoryLocation struct {
	mu    sync.Mutex
	query url.Values
}

// NewMemoryLocation parses an initial query string.
func NewMemoryLocation(rawQuery string) (*MemoryLocation, error) {
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, err
	}
	return &MemoryLocation{query: query}, nil
}

func (location *MemoryLocation) Query() url.Values {
	location.mu.Lock()
	defer location.mu.Unlock()
	return cloneValues(location.query)
}

func (location *MemoryLocation) Replace(query url.Values) {
	location.mu.Lock()
	defer location.mu.Unlock()
	location.query = cloneValues(query)
}

// String returns the encoded query string.
func (location *MemoryLocation) String() string {
	return location.Query().Encode()
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for key, list := range values {
		out[key] = append([]string(nil), list...)
	}
	return out
}
