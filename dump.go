package htmltree

import "github.com/beevik/etree"

// Outline renders a parse tree as an indented XML outline for diagnostics.
// The tree is rebuilt as an etree document, so attribute order survives but
// duplicate attribute names collapse to the last one; the outline is a
// debugging aid, not a serialization (use SerializeNode for that).
func Outline(nodes ...*Node) string {
	doc := etree.NewDocument()
	for _, n := range nodes {
		appendEtree(&doc.Element, n)
	}
	doc.Indent(2)
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

func appendEtree(dst *etree.Element, n *Node) {
	switch n.Type {
	case TextNode:
		dst.AddChild(etree.NewText(n.Data))
	case CommentNode:
		dst.AddChild(etree.NewComment(n.Data))
	case CdataNode:
		dst.AddChild(etree.NewCData(n.Data))
	case ElementNode:
		el := etree.NewElement(n.Data)
		for _, a := range n.Attr {
			el.CreateAttr(a.Key, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			appendEtree(el, c)
		}
		dst.AddChild(el)
	}
}
