package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTML(t *testing.T) {
	t.Run("strips script tags", func(t *testing.T) {
		out := SanitizeHTML(`<p>hello</p><script>alert(1)</script>`)
		assert.Equal(t, "<p>hello</p>", out)
	})

	t.Run("strips event handlers", func(t *testing.T) {
		out := SanitizeHTML(`<a href="https://example.com" onclick="steal()">link</a>`)
		assert.NotContains(t, out, "onclick")
		assert.Contains(t, out, "link")
	})

	t.Run("keeps formatting markup", func(t *testing.T) {
		in := `<h2>Title</h2><ul><li>one</li></ul>`
		assert.Equal(t, in, SanitizeHTML(in))
	})
}

func TestSanitizeText(t *testing.T) {
	t.Run("strips all markup", func(t *testing.T) {
		assert.Equal(t, "bold title", SanitizeText("<b>bold</b> title"))
	})

	t.Run("plain text passes through", func(t *testing.T) {
		assert.Equal(t, "Studio Week 12", SanitizeText("Studio Week 12"))
	})
}
