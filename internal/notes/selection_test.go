// Copyright (c) 2026 Datacore. All rights reserved.

package notes_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacore/datacore/internal/notes"
)

/*
TestSelection_RoundTrip decodes and re-encodes query strings without loss,
up to key ordering.
*/
func TestSelection_RoundTrip(t *testing.T) {
	cases := []string{
		"",
		"view=starred",
		"view=trash&note=12",
		"folder=3&note=9&search=warp+core",
		"tag=urgent",
		"search=%C3%A9t%C3%A9",
		"view=recent&search=q",
	}

	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			values, err := url.ParseQuery(raw)
			require.NoError(t, err)

			encoded := notes.DecodeSelection(values).Encode()
			assert.Equal(t, values.Encode(), encoded.Encode())
		})
	}
}

func TestSelection_Transitions(t *testing.T) {
	start := notes.Selection{Folder: "3", Note: "9", Search: "warp"}

	assert.Equal(t, notes.Selection{View: notes.ViewTrash, Search: "warp"}, start.WithView(notes.ViewTrash))
	assert.Equal(t, notes.Selection{Tag: "urgent", Search: "warp"}, start.WithTag("urgent"))
	assert.Equal(t, notes.Selection{Folder: "4", Search: "warp"}, start.WithFolder("4"))
	assert.Equal(t, notes.Selection{Search: "warp"}, start.AllNotes())
	assert.Equal(t, notes.Selection{Folder: "3", Note: "9", Search: "core"}, start.WithSearch("core"))
	assert.Equal(t, notes.Selection{Folder: "3", Note: "1", Search: "warp"}, start.WithNote("1"))
}

/*
TestSelection_ListQuery maps the primary member and the search text.
*/
func TestSelection_ListQuery(t *testing.T) {
	cases := []struct {
		name      string
		selection notes.Selection
		expected  string
	}{
		{"all", notes.Selection{}, ""},
		{"starred", notes.Selection{View: notes.ViewStarred}, "starred=true"},
		{"trash", notes.Selection{View: notes.ViewTrash, Search: "x"}, "search=x&trashed=true"},
		{"recent sends nothing", notes.Selection{View: notes.ViewRecent}, ""},
		{"folder", notes.Selection{Folder: "5"}, "folder_id=5"},
		{"tag", notes.Selection{Tag: "ops"}, "tag=ops"},
		{"view wins", notes.Selection{View: notes.ViewStarred, Folder: "5"}, "starred=true"},
		{"note ignored", notes.Selection{Note: "1"}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.selection.ListQuery().Encode())
		})
	}
}

/*
TestSelection_ApplyPreservesForeignKeys keeps parameters the workspace does
not own.
*/
func TestSelection_ApplyPreservesForeignKeys(t *testing.T) {
	current := url.Values{"utm": {"mail"}, "folder": {"3"}, "note": {"9"}}

	next := notes.Selection{View: notes.ViewStarred}.Apply(current)

	assert.Equal(t, "utm=mail&view=starred", next.Encode())
	assert.Equal(t, "3", current.Get("folder"), "input is not mutated")
}

func TestMemoryLocation(t *testing.T) {
	location, err := notes.NewMemoryLocation("note=1&x=y")
	require.NoError(t, err)

	query := location.Query()
	query.Set("note", "2")
	assert.Equal(t, "note=1&x=y", location.String())

	location.Replace(query)
	assert.Equal(t, "note=2&x=y", location.String())

	_, err = notes.NewMemoryLocation("%zz")
	assert.Error(t, err)
}
