// Copyright (c) 2026 Datacore. All rights reserved.

package document

import (
	"slices"
	"sync"

	"github.com/datacore/datacore/internal/platform/apperr"
)

// Editor errors.
var (
	ErrReadOnly    = apperr.Conflict("The document is read-only")
	ErrNoSelection = apperr.ValidationError("The cursor is not on a text node")
)

// MemoryEditor is a headless editor holding one document.
//
// SetContent and SetEditable are programmatic and silent. Every other
// mutation is a user edit: it is rejected while the editor is read-only and
// notifies update listeners with a copy of the new document. Listeners run
// outside the editor lock and may call back into the editor.
type MemoryEditor struct {
	mu        sync.Mutex
	doc       Node
	editable  bool
	cursor    []int
	listeners []func(Node)
}

// NewMemoryEditor returns an editable editor holding an empty document.
func NewMemoryEditor() *MemoryEditor {
	return &MemoryEditor{doc: Empty(), editable: true}
}

// # Programmatic Access

func (editor *MemoryEditor) SetContent(doc Node) {
	editor.mu.Lock()
	defer editor.mu.Unlock()

	if doc.IsZero() {
		doc = Empty()
	}
	editor.doc = doc.Clone()
	editor.cursor = nil
}

func (editor *MemoryEditor) Content() Node {
	editor.mu.Lock()
	defer editor.mu.Unlock()
	return editor.doc.Clone()
}

func (editor *MemoryEditor) SetEditable(editable bool) {
	editor.mu.Lock()
	defer editor.mu.Unlock()
	editor.editable = editable
}

func (editor *MemoryEditor) Editable() bool {
	editor.mu.Lock()
	defer editor.mu.Unlock()
	return editor.editable
}

// OnUpdate registers a listener for user edits.
func (editor *MemoryEditor) OnUpdate(listener func(Node)) {
	editor.mu.Lock()
	defer editor.mu.Unlock()
	editor.listeners = append(editor.listeners, listener)
}

// # User Edits

// Replace swaps the whole document, as a paste-over or typing burst would.
func (editor *MemoryEditor) Replace(doc Node) error {
	if err := Validate(doc); err != nil {
		return err
	}
	return editor.edit(func() error {
		if doc.IsZero() {
			doc = Empty()
		}
		editor.doc = doc.Clone()
		editor.cursor = nil
		return nil
	})
}

// InsertNode inserts a block after the block holding the cursor, or at the
// end of the document. Inline nodes are wrapped in a paragraph.
func (editor *MemoryEditor) InsertNode(node Node) error {
	if node.Type == TypeText || node.Type == TypeHardBreak {
		node = Paragraph(node)
	}
	if err := Validate(Doc(node)); err != nil {
		return err
	}

	return editor.edit(func() error {
		position := len(editor.doc.Content)
		if len(editor.cursor) > 0 {
			position = editor.cursor[0] + 1
		}
		editor.doc.Type = TypeDoc
		editor.doc.Content = insertAt(editor.doc.Content, position, node.Clone())
		return nil
	})
}

// Select places the cursor on the text node at path, a list of child indexes
// starting from the document root.
func (editor *MemoryEditor) Select(path []int) error {
	editor.mu.Lock()
	defer editor.mu.Unlock()

	node, ok := resolve(&editor.doc, path)
	if !ok || node.Type != TypeText {
		return ErrNoSelection
	}
	editor.cursor = append([]int(nil), path...)
	return nil
}

// LinkActive reports whether the cursor sits on linked text.
func (editor *MemoryEditor) LinkActive() bool {
	editor.mu.Lock()
	defer editor.mu.Unlock()

	node, ok := resolve(&editor.doc, editor.cursor)
	return ok && len(editor.cursor) > 0 && node.HasMark(MarkLink)
}

// SetLink links the text under the cursor to href, replacing any previous
// link. Without a cursor the href is inserted as its own linked paragraph.
func (editor *MemoryEditor) SetLink(href string) error {
	if len(editor.cursorCopy()) == 0 {
		return editor.InsertNode(Paragraph(Text(href, Link(href))))
	}

	return editor.edit(func() error {
		node, ok := resolve(&editor.doc, editor.cursor)
		if !ok || node.Type != TypeText {
			return ErrNoSelection
		}
		node.Marks = append(withoutMark(node.Marks, MarkLink), Link(href))
		return nil
	})
}

// UnsetLink removes the link mark under the cursor.
func (editor *MemoryEditor) UnsetLink() error {
	return editor.edit(func() error {
		node, ok := resolve(&editor.doc, editor.cursor)
		if !ok || len(editor.cursor) == 0 || node.Type != TypeText {
			return ErrNoSelection
		}
		node.Marks = withoutMark(node.Marks, MarkLink)
		return nil
	})
}

// # Internals

// edit applies a user mutation and notifies listeners after unlocking.
func (editor *MemoryEditor) edit(mutate func() error) error {
	editor.mu.Lock()
	if !editor.editable {
		editor.mu.Unlock()
		return ErrReadOnly
	}
	if err := mutate(); err != nil {
		editor.mu.Unlock()
		return err
	}
	snapshot := editor.doc.Clone()
	listeners := slices.Clone(editor.listeners)
	editor.mu.Unlock()

	for _, listener := range listeners {
		listener(snapshot.Clone())
	}
	return nil
}

func (editor *MemoryEditor) cursorCopy() []int {
	editor.mu.Lock()
	defer editor.mu.Unlock()
	return append([]int(nil), editor.cursor...)
}

// resolve walks path from root and returns a pointer into the tree.
func resolve(root *Node, path []int) (*Node, bool) {
	node := root
	for _, index := range path {
		if index < 0 || index >= len(node.Content) {
			return nil, false
		}
		node = &node.Content[index]
	}
	return node, true
}

func insertAt(nodes []Node, position int, node Node) []Node {
	if position > len(nodes) {
		position = len(nodes)
	}
	nodes = append(nodes, Node{})
	copy(nodes[position+1:], nodes[position:])
	nodes[position] = node
	return nodes
}

func withoutMark(marks []Mark, markType string) []Mark {
	out := marks[:0:0]
	for _, mark := range marks {
		if mark.Type != markType {
			out = append(out, mark)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
