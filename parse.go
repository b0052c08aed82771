package htmltree

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/atom"
)

// A treeParser parses HTML source into a Node tree. There is no goal to
// recover from malformed input the way a browser does: any failure aborts the
// parse and no partial tree is returned. The foreign-namespace stack is
// confined to the parser instance and restored on every failure path, so a
// failed parse cannot leak state into the next one.
type treeParser struct {
	input string

	// foreign is the stack of open foreign roots ("svg" or "math"). While it
	// is non-empty, tag-name casing is preserved, CDATA sections are allowed,
	// and self-closing is accepted on foreign-kind tags. Names of template,
	// void, raw-text and escapable raw-text elements keep their own kind
	// there, so for example <title/> inside svg is still rejected.
	foreign []string
}

func newTreeParser(input string) *treeParser {
	return &treeParser{input: input}
}

func (t *treeParser) inForeign() bool {
	return len(t.foreign) > 0
}

// parseElement parses one element at pos. The foreign stack is restored to
// its entry depth when the parse fails partway through a foreign subtree.
func (t *treeParser) parseElement(pos int) (*Node, int, *ParseError) {
	depth := len(t.foreign)
	n, next, err := t.element(pos)
	if err != nil {
		t.foreign = t.foreign[:depth]
		return nil, pos, err
	}
	return n, next, nil
}

func (t *treeParser) element(pos int) (*Node, int, *ParseError) {
	name, attrs, slash, kind, pushed, i, err := t.startTag(pos)
	if err != nil {
		return nil, pos, err
	}

	selfClosing := slash || kind == KindVoid
	if slash && kind != KindVoid && kind != KindForeign {
		return nil, pos, fail("Unexpected self-closing tag on a non-void element", pos)
	}

	n := &Node{
		Type:        ElementNode,
		DataAtom:    atom.Lookup([]byte(name)),
		Data:        name,
		Kind:        kind,
		Attr:        attrs,
		SelfClosing: selfClosing,
	}

	if selfClosing {
		if pushed {
			// A self-closing <svg/> or <math/> opens no subtree.
			t.foreign = t.foreign[:len(t.foreign)-1]
		}
		if j := skipSpace(t.input, i); endTagAt(t.input, j, name) >= 0 {
			return nil, pos, fail("Unexpected end tag on a void element", j)
		}
		return n, i, nil
	}

	var childErr *ParseError
	switch kind {
	case KindRawText, KindEscapableRawText:
		end := rawTextEnd(t.input, i, name)
		if end > i {
			n.AppendChild(&Node{Type: TextNode, Data: t.input[i:end]})
		}
		i = end
	default:
		var children []*Node
		children, i, childErr = t.parseChildren(i, name)
		for _, c := range children {
			n.AppendChild(c)
		}
	}

	next, consumed, endErr := t.endTag(i, name)
	if endErr != nil {
		// Prefer the failure that stopped the children when it reaches
		// deeper into the input than the missing end tag itself; a child
		// that merely could not start is not worth reporting over it.
		if childErr != nil && childErr.Offset > i+1 {
			return nil, pos, childErr
		}
		return nil, pos, endErr
	}
	if consumed && pushed {
		t.foreign = t.foreign[:len(t.foreign)-1]
	}
	return n, next, nil
}

// startTag parses `<` tagName (whitespace attributes*)? `/`? `>`. The
// element kind is classified once the name is known, which may push a
// foreign root onto the stack.
func (t *treeParser) startTag(pos int) (name string, attrs []Attribute, slash bool, kind ElementKind, pushed bool, next int, err *ParseError) {
	in := t.input
	if pos >= len(in) || in[pos] != '<' {
		err = fail("Invalid start tag", pos)
		return
	}
	i := pos + 1
	name, i, err = t.tagName(i)
	if err != nil {
		return
	}

	var attrErr *ParseError
	if j := skipSpace(in, i); j > i {
		i = j
		for {
			a, k, aerr := lexAttribute(in, i)
			if aerr != nil {
				attrErr = aerr
				break
			}
			attrs = append(attrs, a)
			i = k
		}
	}

	if i < len(in) && in[i] == '/' {
		slash = true
		i++
	}
	if i >= len(in) || in[i] != '>' {
		err = deeper(fail("Invalid start tag", i), attrErr)
		return
	}
	kind, pushed = t.classify(name)
	next = i + 1
	return
}

// tagName lexes either an HTML tag name ([A-Za-z][A-Za-z0-9]*) or a
// custom-element name (ASCII letter followed by PCEN characters, containing
// a dash and not reserved). Outside foreign content the name is lowercased
// on emission; inside it is preserved verbatim.
func (t *treeParser) tagName(pos int) (string, int, *ParseError) {
	in := t.input
	if pos >= len(in) {
		return "", pos, fail("Invalid html tag name", pos)
	}
	first, size := utf8.DecodeRuneInString(in[pos:])
	if !isASCIILetter(first) {
		return "", pos, fail("Invalid html tag name", pos)
	}

	i := pos + size
	alnumOnly, pcenOnly, hasDash := true, true, false
	for i < len(in) {
		r, size := utf8.DecodeRuneInString(in[i:])
		if !isTagNameChar(r) {
			break
		}
		if r == '-' {
			hasDash = true
		}
		if !isASCIIAlnum(r) {
			alnumOnly = false
		}
		if !isPCENChar(r) {
			pcenOnly = false
		}
		i += size
	}
	run := in[pos:i]

	if alnumOnly {
		if !t.inForeign() {
			run = strings.ToLower(run)
		}
		return run, i, nil
	}
	if !pcenOnly {
		return "", pos, fail("Invalid custom element name", pos)
	}
	if !hasDash {
		return "", pos, fail("Invalid custom element name (should include a dash)", pos)
	}
	lower := strings.ToLower(run)
	if forbiddenCustomNames[lower] {
		return "", pos, fail("Forbidden custom element name", pos)
	}
	if !t.inForeign() {
		run = lower
	}
	return run, i, nil
}

// parseChildren parses the child list of an element named parentName:
// alternation of Text | Element | Comment | Cdata (the latter only in
// foreign content), guarded by the end-tag-omission lookahead. It returns
// the deepest failure that stopped the loop so the caller can surface it if
// the end tag does not match either.
func (t *treeParser) parseChildren(pos int, parentName string) ([]*Node, int, *ParseError) {
	rule, hasRule := endTagOmission[parentName]
	var nodes []*Node
	var deepest *ParseError
	i := pos
	for i < len(t.input) {
		if hasRule && t.openTagAhead(i, rule.open) {
			break
		}
		if t.input[i] != '<' {
			j := i + 1
			for j < len(t.input) && t.input[j] != '<' {
				j++
			}
			nodes = append(nodes, &Node{Type: TextNode, Data: t.input[i:j]})
			i = j
			continue
		}
		if n, j, err := t.parseElement(i); err == nil {
			nodes = append(nodes, n)
			i = j
			continue
		} else {
			deepest = deeper(deepest, err)
		}
		if text, j, err := lexComment(t.input, i); err == nil {
			nodes = append(nodes, &Node{Type: CommentNode, Data: text})
			i = j
			continue
		} else {
			deepest = deeper(deepest, err)
		}
		if t.inForeign() {
			if text, j, err := lexCdata(t.input, i); err == nil {
				nodes = append(nodes, &Node{Type: CdataNode, Data: text})
				i = j
				continue
			} else {
				deepest = deeper(deepest, err)
			}
		}
		break
	}
	return nodes, i, deepest
}

// endTag accepts the end of the element named name at pos. For elements with
// an omission rule the follow-set lookaheads are tried first and succeed
// without consuming input; the literal `</name>` (case-insensitive, optional
// whitespace before '>') is always accepted and consumed.
func (t *treeParser) endTag(pos int, name string) (next int, consumed bool, err *ParseError) {
	if rule, ok := endTagOmission[name]; ok {
		if t.openTagAhead(pos, rule.open) {
			return pos, false, nil
		}
		for _, c := range rule.closed {
			if endTagAt(t.input, pos, c) >= 0 {
				return pos, false, nil
			}
		}
		if rule.atEOF && pos == len(t.input) {
			return pos, false, nil
		}
	}
	if j := endTagAt(t.input, pos, name); j >= 0 {
		return j, true, nil
	}
	return pos, false, failf(pos, "Expected a '</%s>' end tag", name)
}

// openTagAhead reports whether a start tag named in names begins at pos. The
// candidate name must be followed by a character that cannot extend a tag
// name, so <lion> does not close <li>.
func (t *treeParser) openTagAhead(pos int, names []string) bool {
	if len(names) == 0 {
		return false
	}
	in := t.input
	if pos >= len(in) || in[pos] != '<' {
		return false
	}
	i := pos + 1
	j := i
	for j < len(in) {
		r, size := utf8.DecodeRuneInString(in[j:])
		if !isASCIIAlnum(r) {
			break
		}
		j += size
	}
	if j == i {
		return false
	}
	if j < len(in) {
		r, _ := utf8.DecodeRuneInString(in[j:])
		if isTagNameChar(r) {
			return false
		}
	}
	run := strings.ToLower(in[i:j])
	for _, nm := range names {
		if nm == run {
			return true
		}
	}
	return false
}

// endTagAt matches `</` name `\s*>` case-insensitively at pos and returns
// the position just past '>', or -1.
func endTagAt(in string, pos int, name string) int {
	if pos+2 > len(in) || in[pos] != '<' || in[pos+1] != '/' {
		return -1
	}
	i := pos + 2
	if i+len(name) > len(in) || !strings.EqualFold(in[i:i+len(name)], name) {
		return -1
	}
	i = skipSpace(in, i+len(name))
	if i < len(in) && in[i] == '>' {
		return i + 1
	}
	return -1
}

// rawTextEnd returns the position of the first `</name` (case-insensitive)
// followed by whitespace, '/' or '>', or the end of the input. Everything
// before it is the raw text body.
func rawTextEnd(in string, pos int, name string) int {
	for i := pos; i+2+len(name) <= len(in); i++ {
		if in[i] != '<' || in[i+1] != '/' {
			continue
		}
		if !strings.EqualFold(in[i+2:i+2+len(name)], name) {
			continue
		}
		rest := i + 2 + len(name)
		if rest < len(in) {
			switch in[rest] {
			case ' ', '\t', '\n', '\f', '\r', '/', '>':
				return i
			}
		}
	}
	return len(in)
}

// fragments parses many(Text | Element | Comment) starting at pos. It also
// reports the last element seen and its offset for the shadow-root check.
func (t *treeParser) fragments(pos int) (nodes []*Node, next int, lastElem *Node, lastElemOff int, deepest *ParseError) {
	lastElemOff = -1
	i := pos
	for i < len(t.input) {
		if t.input[i] != '<' {
			j := i + 1
			for j < len(t.input) && t.input[j] != '<' {
				j++
			}
			nodes = append(nodes, &Node{Type: TextNode, Data: t.input[i:j]})
			i = j
			continue
		}
		if n, j, err := t.parseElement(i); err == nil {
			nodes = append(nodes, n)
			lastElem, lastElemOff = n, i
			i = j
			continue
		} else {
			deepest = deeper(deepest, err)
		}
		if text, j, err := lexComment(t.input, i); err == nil {
			nodes = append(nodes, &Node{Type: CommentNode, Data: text})
			i = j
			continue
		} else {
			deepest = deeper(deepest, err)
		}
		break
	}
	return nodes, i, lastElem, lastElemOff, deepest
}

// spaceAndComments collects whitespace runs and comments into nodes. Used by
// the document parser around the doctype and the root element.
func (t *treeParser) spaceAndComments(nodes []*Node, pos int) ([]*Node, int, *ParseError) {
	i := pos
	for i < len(t.input) {
		if isSpace(t.input[i]) {
			j := skipSpace(t.input, i)
			nodes = append(nodes, &Node{Type: TextNode, Data: t.input[i:j]})
			i = j
			continue
		}
		if strings.HasPrefix(t.input[i:], "<!--") {
			text, j, err := lexComment(t.input, i)
			if err != nil {
				return nodes, i, err
			}
			nodes = append(nodes, &Node{Type: CommentNode, Data: text})
			i = j
			continue
		}
		break
	}
	return nodes, i, nil
}

const bom = "\uFEFF"

// document parses an HTML document: an optional BOM, leading whitespace and
// comments, a required doctype, exactly one root element, and trailing
// whitespace and comments. The result is a flat fragment; the doctype
// becomes a text node with the canonical spelling.
func (t *treeParser) document() ([]*Node, *ParseError) {
	nodes := []*Node{}
	pos := 0
	if strings.HasPrefix(t.input, bom) {
		nodes = append(nodes, &Node{Type: TextNode, Data: bom})
		pos = len(bom)
	}

	var err *ParseError
	nodes, pos, err = t.spaceAndComments(nodes, pos)
	if err != nil {
		return nil, err
	}

	doctype, pos2, err := lexDoctype(t.input, pos)
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, &Node{Type: TextNode, Data: doctype})
	pos = pos2

	nodes, pos, err = t.spaceAndComments(nodes, pos)
	if err != nil {
		return nil, err
	}

	root, pos, err := t.parseElement(pos)
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, root)

	nodes, pos, err = t.spaceAndComments(nodes, pos)
	if err != nil {
		return nil, err
	}
	if pos != len(t.input) {
		return nil, fail("Expected end of input", pos)
	}
	return nodes, nil
}
