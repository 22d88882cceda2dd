// Copyright (c) 2026 Datacore. All rights reserved.

package document

// # Block Builders

// Empty returns a document with no content.
func Empty() Node {
	return Node{Type: TypeDoc}
}

func Doc(blocks ...Node) Node {
	return Node{Type: TypeDoc, Content: blocks}
}

func Paragraph(inline ...Node) Node {
	return Node{Type: TypeParagraph, Content: inline}
}

func Heading(level int, inline ...Node) Node {
	return Node{Type: TypeHeading, Attrs: map[string]any{"level": level}, Content: inline}
}

func Blockquote(blocks ...Node) Node {
	return Node{Type: TypeBlockquote, Content: blocks}
}

// CodeBlock holds raw code. An empty language leaves the block untagged.
func CodeBlock(language, code string) Node {
	node := Node{Type: TypeCodeBlock}
	if language != "" {
		node.Attrs = map[string]any{"language": language}
	}
	if code != "" {
		node.Content = []Node{Text(code)}
	}
	return node
}

func BulletList(items ...Node) Node {
	return Node{Type: TypeBulletList, Content: items}
}

func OrderedList(items ...Node) Node {
	return Node{Type: TypeOrderedList, Content: items}
}

func ListItem(blocks ...Node) Node {
	return Node{Type: TypeListItem, Content: blocks}
}

func TaskList(items ...Node) Node {
	return Node{Type: TypeTaskList, Content: items}
}

func TaskItem(checked bool, blocks ...Node) Node {
	return Node{Type: TypeTaskItem, Attrs: map[string]any{"checked": checked}, Content: blocks}
}

func Table(rows ...Node) Node {
	return Node{Type: TypeTable, Content: rows}
}

func TableRow(cells ...Node) Node {
	return Node{Type: TypeTableRow, Content: cells}
}

func TableHeader(blocks ...Node) Node {
	return Node{Type: TypeTableHeader, Content: blocks}
}

func TableCell(blocks ...Node) Node {
	return Node{Type: TypeTableCell, Content: blocks}
}

// Image references a file by URL. Alt is omitted when empty.
func Image(src, alt string) Node {
	attrs := map[string]any{"src": src}
	if alt != "" {
		attrs["alt"] = alt
	}
	return Node{Type: TypeImage, Attrs: attrs}
}

func HorizontalRule() Node {
	return Node{Type: TypeHorizontalRule}
}

func HardBreak() Node {
	return Node{Type: TypeHardBreak}
}

// Aligned returns a copy of a paragraph or heading with textAlign set.
func Aligned(node Node, align string) Node {
	out := node.Clone()
	if out.Attrs == nil {
		out.Attrs = make(map[string]any, 1)
	}
	out.Attrs["textAlign"] = align
	return out
}

// # Inline Builders

func Text(text string, marks ...Mark) Node {
	return Node{Type: TypeText, Text: text, Marks: marks}
}

func Bold() Mark      { return Mark{Type: MarkBold} }
func Italic() Mark    { return Mark{Type: MarkItalic} }
func Underline() Mark { return Mark{Type: MarkUnderline} }
func Strike() Mark    { return Mark{Type: MarkStrike} }
func Code() Mark      { return Mark{Type: MarkCode} }

// Highlight marks text with an optional color.
func Highlight(color string) Mark {
	if color == "" {
		return Mark{Type: MarkHighlight}
	}
	return Mark{Type: MarkHighlight, Attrs: map[string]any{"color": color}}
}

// Link marks text as a hyperlink. Links never open in a new tab on their own.
func Link(href string) Mark {
	return Mark{Type: MarkLink, Attrs: map[string]any{"href": href}}
}
