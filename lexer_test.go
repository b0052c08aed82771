package htmltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexComment(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "<!--x-->", "x", false},
		{"empty", "<!---->", "", false},
		{"keeps markup", "<!-- a <b> & c -->", " a <b> & c ", false},
		{"may end in bang", "<!-- <!-->", " <!", false},
		{"starts with gt", "<!-->x-->", "", true},
		{"starts with dash gt", "<!--->x-->", "", true},
		{"contains open", "<!--a<!--b-->", "", true},
		{"contains dash dash bang gt", "<!--a--!>b-->", "", true},
		{"trailing open dash", "<!--a<!--->", "", true},
		{"unterminated", "<!--a", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, next, err := lexComment(tt.input, 0)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, "Invalid comment", err.Message)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tt.want, text)
			assert.Equal(t, len(tt.input), next)
		})
	}
}

func TestLexDoctype(t *testing.T) {
	for _, ok := range []string{
		"<!DOCTYPE html>",
		"<!doctype html>",
		"<!DocType HTML>",
		"<!DOCTYPE\thtml  >",
	} {
		text, next, err := lexDoctype(ok, 0)
		require.Nil(t, err, ok)
		assert.Equal(t, "<!DOCTYPE html>", text, ok)
		assert.Equal(t, len(ok), next, ok)
	}

	for _, bad := range []string{
		"<!DOCTYPE>",
		"<!DOCTYPE foo>",
		"<!DOCTYPE html PUBLIC \"x\">",
		"<html>",
	} {
		_, _, err := lexDoctype(bad, 0)
		require.NotNil(t, err, bad)
		assert.Equal(t, "Expected a valid doctype", err.Message, bad)
	}
}

func TestLexAttrValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
		next  int
	}{
		{`"a b"x`, "a b", 5},
		{`'a"b'`, `a"b`, 5},
		{`''`, "", 2},
		{`plain>`, "plain", 5},
		// The unquoted form swallows a trailing slash.
		{`text/>`, "text/", 5},
	}
	for _, tt := range tests {
		val, next, err := lexAttrValue(tt.input, 0)
		require.Nil(t, err, tt.input)
		assert.Equal(t, tt.want, val, tt.input)
		assert.Equal(t, tt.next, next, tt.input)
	}

	_, _, err := lexAttrValue(">", 0)
	require.NotNil(t, err)
	assert.Equal(t, "Expected a valid attribute value", err.Message)
}

func TestLexAttribute(t *testing.T) {
	a, next, err := lexAttribute(`class="x" id=y`, 0)
	require.Nil(t, err)
	assert.Equal(t, Attribute{Key: "class", Val: "x"}, a)
	assert.Equal(t, 10, next) // trailing whitespace consumed

	a, _, err = lexAttribute(`disabled>`, 0)
	require.Nil(t, err)
	assert.Equal(t, Attribute{Key: "disabled", Val: ""}, a)

	a, _, err = lexAttribute(`on:click='h'`, 0)
	require.Nil(t, err)
	assert.Equal(t, Attribute{Key: "on:click", Val: "h"}, a)

	a, _, err = lexAttribute("a = b>", 0)
	require.Nil(t, err)
	assert.Equal(t, Attribute{Key: "a", Val: "b"}, a)

	_, _, err = lexAttribute(`"x"`, 0)
	require.NotNil(t, err)
	assert.Equal(t, "Expected a valid attribute name", err.Message)
}

func TestLexCdata(t *testing.T) {
	text, next, err := lexCdata("<![CDATA[x<y]]>", 0)
	require.Nil(t, err)
	assert.Equal(t, "x<y", text)
	assert.Equal(t, 15, next)

	text, _, err = lexCdata("<![CDATA[]]>", 0)
	require.Nil(t, err)
	assert.Equal(t, "", text)

	_, _, err = lexCdata("<![CDATA[x", 0)
	require.NotNil(t, err)
}

func TestAttrNameCharClass(t *testing.T) {
	assert.True(t, isAttrNameChar('a'))
	assert.True(t, isAttrNameChar(':'))
	assert.True(t, isAttrNameChar('-'))
	assert.True(t, isAttrNameChar('<')) // not excluded by the grammar

	assert.False(t, isAttrNameChar('='))
	assert.False(t, isAttrNameChar('/'))
	assert.False(t, isAttrNameChar('>'))
	assert.False(t, isAttrNameChar('"'))
	assert.False(t, isAttrNameChar('\''))
	assert.False(t, isAttrNameChar(' '))
	assert.False(t, isAttrNameChar(0x7F))
	assert.False(t, isAttrNameChar(0x85))
	assert.False(t, isAttrNameChar(0xFDD0))
	assert.False(t, isAttrNameChar(0xFFFE))
	assert.False(t, isAttrNameChar(0x1FFFF))
}
