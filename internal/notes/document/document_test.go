// Copyright (c) 2026 Datacore. All rights reserved.

package document_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacore/datacore/internal/notes/document"
	"github.com/datacore/datacore/internal/platform/apperr"
)

// fullDoc exercises every content kind the save path must round-trip.
func fullDoc() document.Node {
	return document.Doc(
		document.Heading(1, document.Text("Captain's log")),
		document.Aligned(document.Paragraph(
			document.Text("Stardate ", document.Bold()),
			document.Text("41153.7", document.Italic(), document.Underline()),
			document.Text(" engage", document.Strike(), document.Highlight("#ffcc00")),
			document.HardBreak(),
			document.Text("warp", document.Code()),
			document.Text(" docs", document.Link("https://memory-alpha.fandom.com")),
		), document.AlignCenter),
		document.BulletList(document.ListItem(document.Paragraph(document.Text("one")))),
		document.OrderedList(document.ListItem(document.Paragraph(document.Text("two")))),
		document.TaskList(document.TaskItem(true, document.Paragraph(document.Text("done")))),
		document.Blockquote(document.Paragraph(document.Text("Make it so"))),
		document.CodeBlock("go", "fmt.Println(\"engage\")"),
		document.Table(
			document.TableRow(document.TableHeader(document.Paragraph(document.Text("Deck")))),
			document.TableRow(document.TableCell(document.Paragraph(document.Text("10")))),
		),
		document.Image("https://example.com/e.png", "Enterprise"),
		document.HorizontalRule(),
	)
}

/*
TestCanonical_RoundTrip shows a decoded tree keeps the identity of its original,
even though integers come back as float64.
*/
func TestCanonical_RoundTrip(t *testing.T) {
	original := fullDoc()

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded document.Node
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.True(t, document.Equal(original, decoded))
	assert.Equal(t, document.Canonical(original), document.Canonical(decoded))
}

func TestEqual(t *testing.T) {
	assert.True(t, document.Equal(document.Node{}, document.Empty()))
	assert.True(t, document.Equal(document.Doc(), document.Node{Type: document.TypeDoc, Content: []document.Node{}}))
	assert.False(t, document.Equal(
		document.Doc(document.Paragraph(document.Text("h"))),
		document.Doc(document.Paragraph(document.Text("hi"))),
	))

	withAttrs := document.Node{Type: document.TypeDoc, Attrs: map[string]any{"b": 1, "a": 2}}
	reordered := document.Node{Type: document.TypeDoc, Attrs: map[string]any{"a": 2.0, "b": 1.0}}
	assert.True(t, document.Equal(withAttrs, reordered))
}

func TestClone_IsDeep(t *testing.T) {
	original := fullDoc()
	clone := original.Clone()

	clone.Content[0].Content[0].Text = "changed"
	clone.Content[1].Attrs["textAlign"] = document.AlignRight

	assert.Equal(t, "Captain's log", original.Content[0].Content[0].Text)
	assert.Equal(t, document.AlignCenter, original.Content[1].Attrs["textAlign"])
}

func TestValidate_AcceptsEveryContentKind(t *testing.T) {
	assert.NoError(t, document.Validate(fullDoc()))
	assert.NoError(t, document.Validate(document.Node{}))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		doc   document.Node
		field string
	}{
		{"root not doc", document.Paragraph(), "content_json.type"},
		{"heading level 4", document.Doc(document.Heading(4, document.Text("x"))), "content_json.content.0.attrs.level"},
		{"heading level missing", document.Doc(document.Node{Type: document.TypeHeading}), "content_json.content.0.attrs.level"},
		{"justify", document.Doc(document.Aligned(document.Paragraph(), "justify")), "content_json.content.0.attrs.textAlign"},
		{"unknown node", document.Doc(document.Node{Type: "mention"}), "content_json.content.0.type"},
		{"unknown mark", document.Doc(document.Paragraph(document.Text("x", document.Mark{Type: "subscript"}))), "content_json.content.0.content.0.marks.0.type"},
		{"link without href", document.Doc(document.Paragraph(document.Text("x", document.Link(" ")))), "content_json.content.0.content.0.marks.0.attrs.href"},
		{"image without src", document.Doc(document.Image("", "alt")), "content_json.content.0.attrs.src"},
		{"empty text", document.Doc(document.Paragraph(document.Text(""))), "content_json.content.0.content.0.text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := document.Validate(tt.doc)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)

			fields := make([]string, 0, len(appErr.Details))
			for _, detail := range appErr.Details {
				fields = append(fields, detail.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestPlainText(t *testing.T) {
	doc := document.Doc(
		document.Heading(2, document.Text("Log")),
		document.Paragraph(document.Text("line one"), document.HardBreak(), document.Text("line two")),
		document.Image("https://example.com/a.png", "diagram"),
	)

	assert.Equal(t, "Log\nline one\nline two\ndiagram", document.PlainText(doc))
	assert.Equal(t, "", document.PlainText(document.Node{}))
}
