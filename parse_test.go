package htmltree

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dumpIndent(w io.Writer, level int) {
	_, _ = io.WriteString(w, "| ")
	for i := 0; i < level; i++ {
		_, _ = io.WriteString(w, "  ")
	}
}

func dumpLevel(w io.Writer, n *Node, level int) {
	dumpIndent(w, level)
	switch n.Type {
	case ElementNode:
		_, _ = fmt.Fprintf(w, "<%s>", n.Data)
		if n.Kind != KindNormal {
			_, _ = fmt.Fprintf(w, " %s", n.Kind)
		}
		if n.SelfClosing && n.Kind != KindVoid {
			_, _ = io.WriteString(w, " self-closing")
		}
		for _, a := range n.Attr {
			_, _ = io.WriteString(w, "\n")
			dumpIndent(w, level+1)
			_, _ = fmt.Fprintf(w, `%s="%s"`, a.Key, a.Val)
		}
	case TextNode:
		_, _ = fmt.Fprintf(w, "%q", n.Data)
	case CommentNode:
		_, _ = fmt.Fprintf(w, "<!-- %s -->", n.Data)
	case CdataNode:
		_, _ = fmt.Fprintf(w, "<![CDATA[%s]]>", n.Data)
	}
	_, _ = io.WriteString(w, "\n")
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		dumpLevel(w, c, level+1)
	}
}

func dump(nodes ...*Node) string {
	var b strings.Builder
	for _, n := range nodes {
		dumpLevel(&b, n, 0)
	}
	return b.String()
}

func TestParseElement(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // expected dump
	}{
		{
			"list with omitted end tags",
			"<ul><li>A<li>B</ul>",
			`| <ul>
|   <li>
|     "A"
|   <li>
|     "B"
`,
		},
		{
			"foreign self-closing preserves casing",
			"<svg><animateTransform/></svg>",
			`| <svg> foreign
|   <animateTransform> foreign self-closing
`,
		},
		{
			"cdata in foreign content",
			"<math><ms><![CDATA[x<y]]></ms></math>",
			`| <math> foreign
|   <ms> foreign
|     <![CDATA[x<y]]>
`,
		},
		{
			"raw text swallows markup",
			"<script>a</s a</script>",
			`| <script> rawtext
|   "a</s a"
`,
		},
		{
			"escapable raw text",
			"<textarea><div></textarea>",
			`| <textarea> escapable-rawtext
|   "<div>"
`,
		},
		{
			"tag names lowercased outside foreign content",
			"<DIV CLASS=a>x</DIV>",
			`| <div>
|   CLASS="a"
|   "x"
`,
		},
		{
			"definition list",
			"<dl><dt>a<dd>b</dl>",
			`| <dl>
|   <dt>
|     "a"
|   <dd>
|     "b"
`,
		},
		{
			"select options",
			"<select><option>1<option>2</select>",
			`| <select>
|   <option>
|     "1"
|   <option>
|     "2"
`,
		},
		{
			"table sections",
			"<table><thead><tr><th>h</thead><tbody><tr><td>1<td>2</table>",
			`| <table>
|   <thead>
|     <tr>
|       <th>
|         "h"
|   <tbody>
|     <tr>
|       <td>
|         "1"
|       <td>
|         "2"
`,
		},
		{
			"lookahead needs a tag name boundary",
			"<ul><li>A<lion>B</lion></ul>",
			`| <ul>
|   <li>
|     "A"
|     <lion>
|       "B"
`,
		},
		{
			"head and body close implicitly",
			"<html><head><title>t</title><body>x",
			`| <html>
|   <head>
|     <title> escapable-rawtext
|       "t"
|   <body>
|     "x"
`,
		},
		{
			"custom element",
			"<my-widget data-x=1></my-widget>",
			`| <my-widget>
|   data-x="1"
`,
		},
		{
			"template with children",
			`<template shadowrootmode="open"><div>x</div></template>`,
			`| <template> template
|   shadowrootmode="open"
|   <div>
|     "x"
`,
		},
		{
			"comment child",
			"<div><!--note--></div>",
			`| <div>
|   <!-- note -->
`,
		},
		{
			"nested foreign roots",
			"<svg><math><mi>x</mi></math><rect/></svg>",
			`| <svg> foreign
|   <math> foreign
|     <mi> foreign
|       "x"
|   <rect> foreign self-closing
`,
		},
		{
			"paragraph closed by block start",
			"<div><p>a<p>b</div>",
			`| <div>
|   <p>
|     "a"
|   <p>
|     "b"
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseElement(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dump(n))
		})
	}
}

func TestParseElementErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"self-closing non-void", "<div />", "Unexpected self-closing tag on a non-void element"},
		{"end tag on void", "<input></input>", "Unexpected end tag on a void element"},
		{"missing end tag", "<div>x", "Expected a '</div>' end tag"},
		{"mismatched end tag", "<div></span>", "Expected a '</div>' end tag"},
		{"li requires closure", "<li>x", "Expected a '</li>' end tag"},
		{"raw text unterminated", "<script>a", "Expected a '</script>' end tag"},
		{"not a tag", "x", "Invalid start tag"},
		{"empty input", "", "Invalid start tag"},
		{"bad tag name", "<3>", "Invalid html tag name"},
		{"custom without dash", "<foo.bar></foo.bar>", "Invalid custom element name (should include a dash)"},
		{"custom with uppercase", "<foo-Bar></foo-Bar>", "Invalid custom element name"},
		{"forbidden custom name", "<annotation-xml></annotation-xml>", "Forbidden custom element name"},
		{"cdata outside foreign content", "<div><![CDATA[x]]></div>", "Expected a '</div>' end tag"},
		{"bad attribute", `<div "x">y</div>`, "Expected a valid attribute name"},
		{"nested failure surfaces", "<div><span></div>", "Expected a '</span>' end tag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseElement(tt.input)
			require.Error(t, err)
			perr, ok := err.(*ParseError)
			require.True(t, ok, "error must be a *ParseError, got %T", err)
			assert.Equal(t, tt.message, perr.Message)
		})
	}
}

func TestParseElementErrorOffsets(t *testing.T) {
	_, err := ParseElement("<div>x")
	require.Error(t, err)
	assert.Equal(t, 6, err.(*ParseError).Offset)

	_, err = ParseElement("<input></input>")
	require.Error(t, err)
	assert.Equal(t, 7, err.(*ParseError).Offset)
}

func TestDuplicateAttributesPreserved(t *testing.T) {
	n, err := ParseElement(`<input on:click="h" on:click="l">`)
	require.NoError(t, err)
	want := []Attribute{
		{Key: "on:click", Val: "h"},
		{Key: "on:click", Val: "l"},
	}
	if diff := cmp.Diff(want, n.Attr); diff != "" {
		t.Errorf("attribute mismatch (-want +got):\n%s", diff)
	}
}

func TestUnquotedValueSwallowsSlash(t *testing.T) {
	n, err := ParseElement("<input type=text/>")
	require.NoError(t, err)
	assert.Equal(t, KindVoid, n.Kind)
	if diff := cmp.Diff([]Attribute{{Key: "type", Val: "text/"}}, n.Attr); diff != "" {
		t.Errorf("attribute mismatch (-want +got):\n%s", diff)
	}
}

func TestVoidElementHasNoChildren(t *testing.T) {
	n, err := ParseElement("<input disabled>")
	require.NoError(t, err)
	assert.Equal(t, KindVoid, n.Kind)
	assert.True(t, n.SelfClosing)
	assert.Nil(t, n.FirstChild)
}

func TestBodyClosesAtEOF(t *testing.T) {
	n, err := ParseElement("<body>x")
	require.NoError(t, err)
	assert.Equal(t, "body", n.Data)
	require.NotNil(t, n.FirstChild)
	assert.Equal(t, "x", n.FirstChild.Data)
}

func TestForeignStackRestoredOnFailure(t *testing.T) {
	p := newTreeParser("<svg><circle/>")
	_, _, err := p.parseElement(0)
	require.NotNil(t, err)
	assert.Empty(t, p.foreign)
}

func TestParentLinks(t *testing.T) {
	n, err := ParseElement("<ul><li>A</li></ul>")
	require.NoError(t, err)
	li := n.FirstChild
	require.NotNil(t, li)
	assert.Same(t, n, li.Parent)
	require.NotNil(t, li.FirstChild)
	assert.Same(t, li, li.FirstChild.Parent)
}

func TestParseFragments(t *testing.T) {
	nodes, err := ParseFragments("")
	require.NoError(t, err)
	assert.Empty(t, nodes)
	assert.NotNil(t, nodes)

	nodes, err = ParseFragments("a<p>b<p>c</p><!--d-->")
	require.NoError(t, err)
	want := `| "a"
| <p>
|   "b"
| <p>
|   "c"
| <!-- d -->
`
	assert.Equal(t, want, dump(nodes...))
}

func TestParseFragmentsErrors(t *testing.T) {
	_, err := ParseFragments("</div>")
	require.Error(t, err)
	assert.Equal(t, "Invalid html tag name", err.(*ParseError).Message)

	_, err = ParseFragments("<div>")
	require.Error(t, err)
	assert.Equal(t, "Expected a '</div>' end tag", err.(*ParseError).Message)

	_, err = ParseFragments("<!--a--!>b-->")
	require.Error(t, err)
	assert.Equal(t, "Invalid comment", err.(*ParseError).Message)
}

func TestParseHtml(t *testing.T) {
	const input = "\uFEFF<!DOCTYPE html><html><body></body></html>"
	nodes, err := ParseHtml(input)
	require.NoError(t, err)
	want := "| \"\\ufeff\"\n" + `| "<!DOCTYPE html>"
| <html>
|   <body>
`
	assert.Equal(t, want, dump(nodes...))
	assert.Equal(t, input, SerializeFragments(nodes, nil))
}

func TestParseHtmlNormalizesDoctype(t *testing.T) {
	nodes, err := ParseHtml("<!doctype HTML>\n<!-- hi -->\n<html></html>\n")
	require.NoError(t, err)
	assert.Equal(t, "<!DOCTYPE html>\n<!-- hi -->\n<html></html>\n", SerializeFragments(nodes, nil))
}

func TestParseHtmlErrors(t *testing.T) {
	_, err := ParseHtml("<html></html>")
	require.Error(t, err)
	assert.Equal(t, "Expected a valid doctype", err.(*ParseError).Message)

	_, err = ParseHtml("<!DOCTYPE html><html></html><html></html>")
	require.Error(t, err)
	assert.Equal(t, "Expected end of input", err.(*ParseError).Message)
}

func TestParseShadowRoot(t *testing.T) {
	nodes, err := ParseShadowRoot(`<div>a</div><template shadowrootmode="open"><span>s</span></template>`)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, KindTemplate, nodes[1].Kind)
}

func TestParseShadowRootErrors(t *testing.T) {
	_, err := ParseShadowRoot("<div>a</div>")
	require.Error(t, err)
	assert.Equal(t, "Expected a template element", err.(*ParseError).Message)

	_, err = ParseShadowRoot("a b c")
	require.Error(t, err)
	assert.Equal(t, "Expected a template element", err.(*ParseError).Message)

	_, err = ParseShadowRoot("<template>x</template>")
	require.Error(t, err)
	assert.Equal(t, "Expected a declarative shadow root", err.(*ParseError).Message)

	_, err = ParseShadowRoot(`<template shadowrootmode="closed">x</template>`)
	require.Error(t, err)
	assert.Equal(t, "Expected a declarative shadow root", err.(*ParseError).Message)
}
