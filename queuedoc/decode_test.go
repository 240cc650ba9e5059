package queuedoc_test

import (
	"strings"
	"testing"

	"github.com/bibstha/rubyfmt/linetoken"
	"github.com/bibstha/rubyfmt/queuedoc"
	"github.com/bibstha/rubyfmt/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Tokens(t *testing.T) {
	doc := `{
		"items": [
			{"kind": "token", "token": {"kind": "direct_part", "text": "x"}},
			{"kind": "token", "token": {"kind": "hard_newline"}}
		]
	}`

	queue, err := queuedoc.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, queue, 2)

	first, ok := queue[0].(render.Token)
	require.True(t, ok)
	assert.Equal(t, linetoken.DirectPart{Text: "x"}, first.Tok)
}

func TestDecode_Breakable(t *testing.T) {
	doc := `{
		"items": [
			{
				"kind": "breakable",
				"context": "StringInterpolation",
				"single_line": [
					{"kind": "token", "token": {"kind": "direct_part", "text": "héllo"}}
				],
				"multi_line": [
					{"kind": "token", "token": {"kind": "direct_part", "text": "héllo"}}
				]
			}
		]
	}`

	queue, err := queuedoc.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, queue, 1)

	be, ok := queue[0].(render.BreakableEntry)
	require.True(t, ok)
	assert.Equal(t, render.StringInterpolation, be.FormattingContext)
	// runewidth measures display columns, not bytes: "héllo" is 5 columns
	// even though é is two UTF-8 bytes.
	assert.Equal(t, 5, be.SingleLineStringLength)
}

func TestDecode_UnknownTokenKind(t *testing.T) {
	doc := `{"items": [{"kind": "token", "token": {"kind": "nonsense"}}]}`
	_, err := queuedoc.Decode(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestDecode_MismatchedBreakableAlternatives(t *testing.T) {
	doc := `{
		"items": [
			{
				"kind": "breakable",
				"single_line": [
					{"kind": "token", "token": {"kind": "direct_part", "text": "x"}}
				],
				"multi_line": []
			}
		]
	}`
	_, err := queuedoc.Decode(strings.NewReader(doc))
	assert.Error(t, err)
}
