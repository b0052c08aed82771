// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// Modifications:
// Copyright 2024 Daniel Potapov
//  - New Node struct carrying the element kind, the ordered attribute list
//    and the self-closing flag of the source tag.

package htmltree

import (
	"golang.org/x/net/html/atom"
)

// A NodeType is the type of a Node.
type NodeType int32

const (
	TextNode NodeType = iota
	CommentNode
	CdataNode
	ElementNode
)

// An ElementKind describes how an element's content is tokenized and which
// children it may have.
type ElementKind int32

const (
	KindNormal ElementKind = iota
	KindVoid
	KindTemplate
	KindRawText
	KindEscapableRawText
	KindForeign
)

func (k ElementKind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindVoid:
		return "void"
	case KindTemplate:
		return "template"
	case KindRawText:
		return "rawtext"
	case KindEscapableRawText:
		return "escapable-rawtext"
	case KindForeign:
		return "foreign"
	}
	return "unknown"
}

// An Attribute is a single name-value pair on an element. Attributes are kept
// as an ordered list: duplicate names are allowed and retained in source
// order, and name casing is preserved exactly. Boolean attributes carry an
// empty Val.
type Attribute struct {
	Key, Val string
}

// A Node is a single node in the parse tree. The tree is linked the same way
// as in golang.org/x/net/html: owned children via FirstChild/NextSibling and
// an upward Parent relation established when a child is appended.
type Node struct {
	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node

	Type NodeType

	// DataAtom is the interned form of Data for standard HTML element names,
	// and zero otherwise.
	DataAtom atom.Atom

	// Data is the tag name for element nodes and the verbatim content for
	// text, comment and CDATA nodes. Character references are not decoded.
	Data string

	Kind ElementKind

	Attr []Attribute

	// SelfClosing records that the start tag ended in "/>" or that the
	// element is void. Self-closing elements have no children.
	SelfClosing bool
}

// InsertBefore inserts newChild as a child of n, immediately before oldChild
// in the sequence of n's children. oldChild may be nil, in which case
// newChild is appended to the end of n's children.
//
// It will panic if newChild already has a parent or siblings.
func (n *Node) InsertBefore(newChild, oldChild *Node) {
	if newChild.Parent != nil || newChild.PrevSibling != nil || newChild.NextSibling != nil {
		panic("htmltree: InsertBefore called for an attached child Node")
	}
	var prev, next *Node
	if oldChild != nil {
		prev, next = oldChild.PrevSibling, oldChild
	} else {
		prev = n.LastChild
	}
	if prev != nil {
		prev.NextSibling = newChild
	} else {
		n.FirstChild = newChild
	}
	if next != nil {
		next.PrevSibling = newChild
	} else {
		n.LastChild = newChild
	}
	newChild.Parent = n
	newChild.PrevSibling = prev
	newChild.NextSibling = next
}

// AppendChild adds a node c as a child of n.
//
// It will panic if c already has a parent or siblings, or if n cannot have
// children (void or self-closing element).
func (n *Node) AppendChild(c *Node) {
	if c.Parent != nil || c.PrevSibling != nil || c.NextSibling != nil {
		panic("htmltree: AppendChild called for an attached child Node")
	}
	if n.Type == ElementNode && (n.Kind == KindVoid || n.SelfClosing) {
		panic("htmltree: AppendChild called on a void or self-closing element")
	}
	last := n.LastChild
	if last != nil {
		last.NextSibling = c
	} else {
		n.FirstChild = c
	}
	n.LastChild = c
	c.Parent = n
	c.PrevSibling = last
}

// RemoveChild removes a node c that is a child of n. Afterwards, c will have
// no parent and no siblings.
//
// It will panic if c's parent is not n.
func (n *Node) RemoveChild(c *Node) {
	if c.Parent != n {
		panic("htmltree: RemoveChild called for a non-child Node")
	}
	if n.FirstChild == c {
		n.FirstChild = c.NextSibling
	}
	if c.NextSibling != nil {
		c.NextSibling.PrevSibling = c.PrevSibling
	}
	if n.LastChild == c {
		n.LastChild = c.PrevSibling
	}
	if c.PrevSibling != nil {
		c.PrevSibling.NextSibling = c.NextSibling
	}
	c.Parent = nil
	c.PrevSibling = nil
	c.NextSibling = nil
}
