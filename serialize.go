package htmltree

import "strings"

// SerializeOptions control the serializer. The zero value (or a nil pointer)
// selects the defaults.
type SerializeOptions struct {
	// RemoveComments drops comment nodes from the output.
	RemoveComments bool
}

// Attributes that serialize as a bare name regardless of their value.
// https://html.spec.whatwg.org/multipage/indices.html#attributes-3
var booleanAttributes = map[string]bool{
	"allowfullscreen": true, "async": true, "autofocus": true,
	"autoplay": true, "checked": true, "controls": true, "default": true,
	"defer": true, "disabled": true, "formnovalidate": true, "hidden": true,
	"inert": true, "ismap": true, "itemscope": true, "loop": true,
	"multiple": true, "muted": true, "nomodule": true, "novalidate": true,
	"open": true, "readonly": true, "required": true, "reversed": true,
	"selected": true,
}

// SerializeNode renders a node tree back to text. The transform is a pure
// fold: text, comment and CDATA contents are emitted verbatim (character
// references were never decoded), attribute values are double-quoted unless
// they contain '"', and void or self-closing elements emit neither a slash
// nor an end tag.
func SerializeNode(n *Node, opts *SerializeOptions) string {
	var b strings.Builder
	serializeNode(&b, n, opts)
	return b.String()
}

// SerializeFragments renders a list of sibling nodes in order.
func SerializeFragments(nodes []*Node, opts *SerializeOptions) string {
	var b strings.Builder
	for _, n := range nodes {
		serializeNode(&b, n, opts)
	}
	return b.String()
}

func serializeNode(b *strings.Builder, n *Node, opts *SerializeOptions) {
	switch n.Type {
	case TextNode:
		b.WriteString(n.Data)
	case CommentNode:
		if opts != nil && opts.RemoveComments {
			return
		}
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->")
	case CdataNode:
		b.WriteString("<![CDATA[")
		b.WriteString(n.Data)
		b.WriteString("]]>")
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.Data)
		for _, a := range n.Attr {
			b.WriteByte(' ')
			serializeAttr(b, a)
		}
		b.WriteByte('>')
		if n.SelfClosing || n.Kind == KindVoid {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			serializeNode(b, c, opts)
		}
		b.WriteString("</")
		b.WriteString(n.Data)
		b.WriteByte('>')
	}
}

func serializeAttr(b *strings.Builder, a Attribute) {
	if booleanAttributes[a.Key] {
		b.WriteString(a.Key)
		return
	}
	quote := byte('"')
	if strings.ContainsRune(a.Val, '"') {
		quote = '\''
	}
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteByte(quote)
	b.WriteString(a.Val)
	b.WriteByte(quote)
}
