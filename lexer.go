package htmltree

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	doctypeRE      = regexp.MustCompile(`^(?i)<!DOCTYPE[ \t\r\n\f]+html[ \t\r\n\f]*>`)
	singleQuotedRE = regexp.MustCompile(`^'[^']*'`)
	doubleQuotedRE = regexp.MustCompile(`^"[^"]*"`)
	// The unquoted form deliberately admits '/', so a trailing slash becomes
	// part of the value: <input type=text/> carries type="text/" and no
	// self-closing slash. This is the WHATWG rule for start tags and is kept
	// even in foreign content.
	unquotedRE = regexp.MustCompile("^[^ \t\n\f\r\v='\"<>`]+")
)

// lexDoctype matches a modern doctype case-insensitively and canonicalizes
// it to the exact text "<!DOCTYPE html>".
var lexDoctype = mapv(
	match(doctypeRE, "Expected a valid doctype"),
	func(string) string { return "<!DOCTYPE html>" },
)

func trimQuotes(s string) string {
	return s[1 : len(s)-1]
}

// lexAttrValue accepts the three attribute-value forms, first match wins:
// single-quoted, double-quoted, unquoted.
var lexAttrValue = alt(
	mapv(match(singleQuotedRE, "Expected a valid attribute value"), trimQuotes),
	mapv(match(doubleQuotedRE, "Expected a valid attribute value"), trimQuotes),
	match(unquotedRE, "Expected a valid attribute value"),
)

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isASCIIAlnum(r rune) bool {
	return isASCIILetter(r) || (r >= '0' && r <= '9')
}

// isPCENChar reports whether r is in the PotentialCustomElementName
// character class, first character aside.
// https://html.spec.whatwg.org/multipage/custom-elements.html#valid-custom-element-name
func isPCENChar(r rune) bool {
	return r == '-' || r == '.' || r == '_' || r == 0xB7 ||
		(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') ||
		(r >= 0x00C0 && r <= 0x00D6) || (r >= 0x00D8 && r <= 0x00F6) ||
		(r >= 0x00F8 && r <= 0x037D) || (r >= 0x037F && r <= 0x1FFF) ||
		(r >= 0x200C && r <= 0x200D) || (r >= 0x203F && r <= 0x2040) ||
		(r >= 0x2070 && r <= 0x218F) || (r >= 0x2C00 && r <= 0x2FEF) ||
		(r >= 0x3001 && r <= 0xD7FF) || (r >= 0xF900 && r <= 0xFDCF) ||
		(r >= 0xFDF0 && r <= 0xFFFD) || (r >= 0x10000 && r <= 0xEFFFF)
}

// isTagNameChar reports whether r could extend a tag name. Used by the
// end-tag-omission lookahead to avoid closing <li> on <lion> or <p> on
// <pre-view>.
func isTagNameChar(r rune) bool {
	return isASCIIUpper(r) || isPCENChar(r)
}

func isNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	return r&0xFFFE == 0xFFFE
}

// isAttrNameChar excludes ASCII whitespace, the C1 controls plus DEL, the
// separator characters of the tag grammar, and noncharacter code points.
// Everything else is preserved verbatim, including ':' prefixes like
// xml:lang, on:click and prop:ariaChecked.
func isAttrNameChar(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r', '"', '\'', '>', '/', '=':
		return false
	}
	if r == 0x7F || (r >= 0x80 && r <= 0x9F) {
		return false
	}
	return !isNoncharacter(r)
}

func lexAttrName(input string, pos int) (string, int, *ParseError) {
	i := pos
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		if !isAttrNameChar(r) {
			break
		}
		i += size
	}
	if i == pos {
		return "", pos, fail("Expected a valid attribute name", pos)
	}
	return input[pos:i], i, nil
}

// lexAttribute parses `name '=' whitespace* value` or a bare name (value "").
// Trailing whitespace is consumed, so attribute lists need no separator.
func lexAttribute(input string, pos int) (Attribute, int, *ParseError) {
	key, i, err := lexAttrName(input, pos)
	if err != nil {
		return Attribute{}, pos, err
	}
	i = skipSpace(input, i)
	if i < len(input) && input[i] == '=' {
		i = skipSpace(input, i+1)
		val, j, err := lexAttrValue(input, i)
		if err != nil {
			return Attribute{}, pos, err
		}
		return Attribute{Key: key, Val: val}, skipSpace(input, j), nil
	}
	return Attribute{Key: key, Val: ""}, i, nil
}

// lexComment parses `<!--` body `-->`. The body must neither start with '>'
// nor '->', must not contain `<!--`, `-->` or `--!>`, and must not end with
// `<!-`, though it may end with `<!`. The body is kept verbatim.
func lexComment(input string, pos int) (string, int, *ParseError) {
	if !strings.HasPrefix(input[pos:], "<!--") {
		return "", pos, fail("Invalid comment", pos)
	}
	start := pos + len("<!--")
	idx := strings.Index(input[start:], "-->")
	if idx < 0 {
		return "", pos, fail("Invalid comment", len(input))
	}
	body := input[start : start+idx]
	end := start + idx + len("-->")
	if strings.HasPrefix(body, ">") || strings.HasPrefix(body, "->") {
		return "", pos, fail("Invalid comment", start)
	}
	if j := strings.Index(body, "<!--"); j >= 0 {
		return "", pos, fail("Invalid comment", start+j)
	}
	if j := strings.Index(body, "--!>"); j >= 0 {
		return "", pos, fail("Invalid comment", start+j)
	}
	if strings.HasSuffix(body, "<!-") {
		return "", pos, fail("Invalid comment", start+idx-len("<!-"))
	}
	return body, end, nil
}

// lexCdata parses `<![CDATA[` body `]]>`. The body is everything up to the
// first `]]>`, kept verbatim.
func lexCdata(input string, pos int) (string, int, *ParseError) {
	if !strings.HasPrefix(input[pos:], "<![CDATA[") {
		return "", pos, fail("Invalid CDATA section", pos)
	}
	start := pos + len("<![CDATA[")
	idx := strings.Index(input[start:], "]]>")
	if idx < 0 {
		return "", pos, fail("Invalid CDATA section", pos)
	}
	return input[start : start+idx], start + idx + len("]]>"), nil
}
