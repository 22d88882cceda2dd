// Copyright (c) 2026 Datacore. All rights reserved.

/*
Package document models the structured rich-text tree stored in a note's
content_json.

The tree follows the TipTap/ProseMirror JSON shape: every node has a type,
optional attrs, child content, and text nodes carry marks. The workspace
treats a document as a value: identity is the canonical JSON form, see
[Canonical] and [Equal].
*/
package document

// # Node Types

const (
	TypeDoc            = "doc"
	TypeParagraph      = "paragraph"
	TypeHeading        = "heading"
	TypeText           = "text"
	TypeHardBreak      = "hardBreak"
	TypeHorizontalRule = "horizontalRule"
	TypeBulletList     = "bulletList"
	TypeOrderedList    = "orderedList"
	TypeListItem       = "listItem"
	TypeTaskList       = "taskList"
	TypeTaskItem       = "taskItem"
	TypeBlockquote     = "blockquote"
	TypeCodeBlock      = "codeBlock"
	TypeTable          = "table"
	TypeTableRow       = "tableRow"
	TypeTableHeader    = "tableHeader"
	TypeTableCell      = "tableCell"
	TypeImage          = "image"
)

// # Mark Types

const (
	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkUnderline = "underline"
	MarkStrike    = "strike"
	MarkCode      = "code"
	MarkHighlight = "highlight"
	MarkLink      = "link"
)

// Text alignments accepted on paragraphs and headings.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// MaxHeadingLevel is the deepest heading the editor offers.
const MaxHeadingLevel = 3

// Mark is inline formatting on a text node.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Node is one element of the document tree. The zero Node is treated as an
// empty document.
type Node struct {
	Type    string         `json:"type,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Text    string         `json:"text,omitempty"`
}

// IsZero reports whether n carries nothing at all.
func (n Node) IsZero() bool {
	return n.Type == "" && len(n.Attrs) == 0 && len(n.Content) == 0 && len(n.Marks) == 0 && n.Text == ""
}

// Attr returns a string attribute, or "".
func (n Node) Attr(name string) string {
	value, _ := n.Attrs[name].(string)
	return value
}

// HasMark reports whether the node carries a mark of the given type.
func (n Node) HasMark(markType string) bool {
	for _, mark := range n.Marks {
		if mark.Type == markType {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of n.
func (n Node) Clone() Node {
	out := Node{Type: n.Type, Text: n.Text, Attrs: cloneAttrs(n.Attrs)}
	if n.Content != nil {
		out.Content = make([]Node, len(n.Content))
		for i, child := range n.Content {
			out.Content[i] = child.Clone()
		}
	}
	if n.Marks != nil {
		out.Marks = make([]Mark, len(n.Marks))
		for i, mark := range n.Marks {
			out.Marks[i] = Mark{Type: mark.Type, Attrs: cloneAttrs(mark.Attrs)}
		}
	}
	return out
}

func cloneAttrs(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for key, value := range attrs {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneAttrs(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
