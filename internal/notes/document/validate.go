// Copyright (c) 2026 Datacore. All rights reserved.

package document

import (
	"fmt"
	"strings"

	"github.com/datacore/datacore/internal/platform/validate"
)

var knownNodes = map[string]struct{}{
	TypeDoc: {}, TypeParagraph: {}, TypeHeading: {}, TypeText: {}, TypeHardBreak: {},
	TypeHorizontalRule: {}, TypeBulletList: {}, TypeOrderedList: {}, TypeListItem: {},
	TypeTaskList: {}, TypeTaskItem: {}, TypeBlockquote: {}, TypeCodeBlock: {},
	TypeTable: {}, TypeTableRow: {}, TypeTableHeader: {}, TypeTableCell: {}, TypeImage: {},
}

var knownMarks = map[string]struct{}{
	MarkBold: {}, MarkItalic: {}, MarkUnderline: {}, MarkStrike: {},
	MarkCode: {}, MarkHighlight: {}, MarkLink: {},
}

// Validate checks that a document only uses content kinds the editor can
// round-trip. Field paths in the returned error locate the offending node,
// e.g. "content_json.content.2.attrs.level".
func Validate(n Node) error {
	if n.IsZero() {
		return nil
	}

	validator := &validate.Validator{}
	validator.Custom("content_json.type", n.Type != TypeDoc, "root node must be a doc")
	walk(validator, "content_json", n)
	return validator.Err()
}

func walk(validator *validate.Validator, path string, n Node) {
	if _, ok := knownNodes[n.Type]; !ok {
		validator.Custom(path+".type", true, fmt.Sprintf("unknown node type %q", n.Type))
		return
	}

	switch n.Type {
	case TypeHeading:
		level, ok := intAttr(n.Attrs["level"])
		validator.Custom(path+".attrs.level", !ok || level < 1 || level > MaxHeadingLevel,
			fmt.Sprintf("heading level must be between 1 and %d", MaxHeadingLevel))
	case TypeImage:
		validator.Custom(path+".attrs.src", strings.TrimSpace(n.Attr("src")) == "", "image requires a src")
	case TypeText:
		validator.Custom(path+".text", n.Text == "", "text nodes must not be empty")
	}

	if align, ok := n.Attrs["textAlign"]; ok && align != nil {
		value, _ := align.(string)
		validator.OneOf(path+".attrs.textAlign", value, AlignLeft, AlignCenter, AlignRight)
	}

	for i, mark := range n.Marks {
		markPath := fmt.Sprintf("%s.marks.%d", path, i)
		if _, ok := knownMarks[mark.Type]; !ok {
			validator.Custom(markPath+".type", true, fmt.Sprintf("unknown mark type %q", mark.Type))
			continue
		}
		if mark.Type == MarkLink {
			href, _ := mark.Attrs["href"].(string)
			validator.Custom(markPath+".attrs.href", strings.TrimSpace(href) == "", "link requires an href")
		}
	}

	for i, child := range n.Content {
		walk(validator, fmt.Sprintf("%s.content.%d", path, i), child)
	}
}

// intAttr accepts the integer forms produced by builders and by JSON decoding.
func intAttr(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
