// Copyright (c) 2026 Datacore. All rights reserved.

package document

import (
	"encoding/json"
	"strings"
)

// Canonical returns the identity string of a document. Map keys are sorted,
// empty collections are dropped and the zero node renders as an empty doc,
// so a freshly decoded tree and its in-memory original compare equal.
func Canonical(n Node) string {
	if n.IsZero() {
		n = Empty()
	}
	payload, err := json.Marshal(n)
	if err != nil {
		// Attribute values that cannot be encoded still need a stable identity.
		return n.Type + ":" + err.Error()
	}
	return string(payload)
}

// Equal reports whether a and b are the same document.
func Equal(a, b Node) bool {
	return Canonical(a) == Canonical(b)
}

// PlainText flattens a document into preview text. Blocks end with a newline.
func PlainText(n Node) string {
	var builder strings.Builder
	writePlain(&builder, n)
	return strings.TrimSpace(builder.String())
}

func writePlain(builder *strings.Builder, n Node) {
	switch n.Type {
	case TypeText:
		builder.WriteString(n.Text)
		return
	case TypeHardBreak:
		builder.WriteByte('\n')
		return
	case TypeImage:
		if alt := n.Attr("alt"); alt != "" {
			builder.WriteString(alt)
		}
	}

	for _, child := range n.Content {
		writePlain(builder, child)
	}

	if isBlock(n.Type) {
		builder.WriteByte('\n')
	}
}

func isBlock(nodeType string) bool {
	switch nodeType {
	case TypeParagraph, TypeHeading, TypeCodeBlock, TypeImage, TypeHorizontalRule, TypeTableRow:
		return true
	}
	return false
}
