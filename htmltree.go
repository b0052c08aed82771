// Package htmltree parses a practical subset of the HTML living standard
// into a typed node tree and serializes trees back to text. For valid inputs
// the round trip preserves the original bytes modulo three normalizations:
// the doctype is canonicalized, the self-closing slash is dropped, and end
// tags that were omitted in the source are written out explicitly.
//
// Character references are never decoded; text and attribute values are kept
// verbatim. The parser does not attempt browser-grade error recovery: any
// failure aborts the parse with a *ParseError carrying a byte offset.
package htmltree

// ParseElement parses exactly one element. The whole input must be consumed.
func ParseElement(input string) (*Node, error) {
	t := newTreeParser(input)
	n, pos, err := t.parseElement(0)
	if err != nil {
		return nil, err
	}
	if pos != len(input) {
		return nil, fail("Expected end of input", pos)
	}
	return n, nil
}

// ParseFragments parses a sequence of sibling text, element and comment
// nodes. Empty input yields an empty list.
func ParseFragments(input string) ([]*Node, error) {
	t := newTreeParser(input)
	nodes, pos, _, _, deepest := t.fragments(0)
	if pos != len(input) {
		if deepest == nil {
			deepest = fail("Invalid start tag", pos)
		}
		return nil, deepest
	}
	if nodes == nil {
		nodes = []*Node{}
	}
	return nodes, nil
}

// ParseHtml parses a whole document: an optional BOM (preserved as a text
// node), optional whitespace and comments, a required doctype, exactly one
// root element, and optional trailing whitespace and comments. The result is
// a flat fragment.
func ParseHtml(input string) ([]*Node, error) {
	t := newTreeParser(input)
	nodes, err := t.document()
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// ParseShadowRoot parses a fragment whose last element must be a declarative
// shadow-root template: <template shadowrootmode="open">.
func ParseShadowRoot(input string) ([]*Node, error) {
	t := newTreeParser(input)
	nodes, pos, lastElem, lastElemOff, deepest := t.fragments(0)
	if pos != len(input) {
		if deepest == nil {
			deepest = fail("Invalid start tag", pos)
		}
		return nil, deepest
	}
	if lastElem == nil {
		return nil, fail("Expected a template element", len(input))
	}
	if lastElem.Kind != KindTemplate {
		return nil, fail("Expected a template element", lastElemOff)
	}
	for _, a := range lastElem.Attr {
		if a.Key == "shadowrootmode" && a.Val == "open" {
			return nodes, nil
		}
	}
	return nil, fail("Expected a declarative shadow root", lastElemOff)
}

// MustParseElement is like ParseElement but panics on failure.
func MustParseElement(input string) *Node {
	n, err := ParseElement(input)
	if err != nil {
		panic(err)
	}
	return n
}

// MustParseFragments is like ParseFragments but panics on failure.
func MustParseFragments(input string) []*Node {
	nodes, err := ParseFragments(input)
	if err != nil {
		panic(err)
	}
	return nodes
}

// MustParseHtml is like ParseHtml but panics on failure.
func MustParseHtml(input string) []*Node {
	nodes, err := ParseHtml(input)
	if err != nil {
		panic(err)
	}
	return nodes
}

// MustParseShadowRoot is like ParseShadowRoot but panics on failure.
func MustParseShadowRoot(input string) []*Node {
	nodes, err := ParseShadowRoot(input)
	if err != nil {
		panic(err)
	}
	return nodes
}

// IsNode reports whether v is a non-nil *Node.
func IsNode(v any) bool {
	n, ok := v.(*Node)
	return ok && n != nil
}

// IsTextNode reports whether n is a text node.
func IsTextNode(n *Node) bool {
	return n != nil && n.Type == TextNode
}

// IsCommentNode reports whether n is a comment node.
func IsCommentNode(n *Node) bool {
	return n != nil && n.Type == CommentNode
}

// IsCdataNode reports whether n is a CDATA node.
func IsCdataNode(n *Node) bool {
	return n != nil && n.Type == CdataNode
}

// IsElementNode reports whether n is an element node.
func IsElementNode(n *Node) bool {
	return n != nil && n.Type == ElementNode
}
