package linkify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPlainText(t *testing.T) {
	segments := Render("just some advice about serums")

	require.Len(t, segments, 1)
	assert.Equal(t, "just some advice about serums", segments[0].Text)
	assert.False(t, segments[0].IsLink())
}

func TestRenderMarkdownLink(t *testing.T) {
	segments := Render("Try [Revitalift Filler](https://example.com/filler) tonight.")

	require.Len(t, segments, 3)
	assert.Equal(t, "Try ", segments[0].Text)
	assert.Equal(t, "Revitalift Filler", segments[1].Label)
	assert.Equal(t, "https://example.com/filler", segments[1].URL)
	assert.Equal(t, " tonight.", segments[2].Text)
}

func TestRenderBareURL(t *testing.T) {
	segments := Render("See https://example.com/page for details")

	require.Len(t, segments, 3)
	assert.Equal(t, "https://example.com/page", segments[1].Label)
	assert.Equal(t, "https://example.com/page", segments[1].URL)
}

func TestRenderBareURLStopsAtParen(t *testing.T) {
	segments := Render("(see https://example.com/page) later")

	require.Len(t, segments, 3)
	assert.Equal(t, "https://example.com/page", segments[1].URL)
	assert.Equal(t, ") later", segments[2].Text)
}

func TestRenderMixedSegmentsCoverInput(t *testing.T) {
	input := "A [x](https://a.example) B https://b.example C"
	segments := Render(input)

	// Round trip: plain text plus link labels reconstructs the input with
	// markdown syntax removed and bare URLs kept as-is.
	var b strings.Builder
	for _, s := range segments {
		if s.IsLink() {
			b.WriteString(s.Label)
		} else {
			b.WriteString(s.Text)
		}
	}
	assert.Equal(t, "A x B https://b.example C", b.String())
}

func TestRenderNoGapsNoOverlaps(t *testing.T) {
	input := "before [a](http://x.example/1) mid http://y.example/2 after"
	segments := Render(input)

	var rebuilt strings.Builder
	for _, s := range segments {
		if s.IsLink() {
			if s.Label == s.URL {
				rebuilt.WriteString(s.URL)
			} else {
				rebuilt.WriteString("[" + s.Label + "](" + s.URL + ")")
			}
		} else {
			rebuilt.WriteString(s.Text)
		}
	}
	assert.Equal(t, input, rebuilt.String())
}

func TestContainsLink(t *testing.T) {
	assert.True(t, ContainsLink("go to https://example.com now"))
	assert.True(t, ContainsLink("[here](https://example.com)"))
	assert.False(t, ContainsLink("no links at all"))
	assert.False(t, ContainsLink("ftp://not-a-match.example"))
}
