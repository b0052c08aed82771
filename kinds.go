package htmltree

import "golang.org/x/net/html/atom"

// Section 13.1.2 of the HTML standard: void elements have no end tag, raw
// text elements swallow markup until their own end tag, and escapable raw
// text elements do the same but still carry character references (which this
// package preserves verbatim either way).
var (
	voidElements = map[atom.Atom]bool{
		atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
		atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
		atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
		atom.Wbr: true,
	}
	rawTextElements = map[atom.Atom]bool{
		atom.Script: true, atom.Style: true,
	}
	escapableRawTextElements = map[atom.Atom]bool{
		atom.Textarea: true, atom.Title: true,
	}
)

// Custom element names reserved by SVG and MathML.
var forbiddenCustomNames = map[string]bool{
	"annotation-xml":   true,
	"color-profile":    true,
	"font-face":        true,
	"font-face-src":    true,
	"font-face-uri":    true,
	"font-face-format": true,
	"font-face-name":   true,
	"missing-glyph":    true,
}

// classify maps a just-lexed tag name to its element kind, consulting and
// maintaining the foreign-namespace stack. Entering svg or math pushes the
// tag onto the stack; the caller pops it when the element's end tag is
// accepted (or immediately for a self-closing root).
func (t *treeParser) classify(name string) (kind ElementKind, pushed bool) {
	a := atom.Lookup([]byte(name))
	switch {
	case a == atom.Template:
		return KindTemplate, false
	case voidElements[a]:
		return KindVoid, false
	case rawTextElements[a]:
		return KindRawText, false
	case escapableRawTextElements[a]:
		return KindEscapableRawText, false
	case name == "svg" || name == "math":
		t.foreign = append(t.foreign, name)
		return KindForeign, true
	case len(t.foreign) > 0:
		return KindForeign, false
	}
	return KindNormal, false
}
