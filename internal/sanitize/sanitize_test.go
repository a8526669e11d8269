package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainTextStripsMarkup(t *testing.T) {
	assert.Equal(t, "hello", PlainText("  <b>hello</b>  "))
	assert.Equal(t, "", PlainText("<script>alert(1)</script>"))
}

func TestRichTextKeepsAllowedTags(t *testing.T) {
	in := `<p>ok</p><script>alert(1)</script><em>fine</em>`
	out := RichText(in)
	assert.Contains(t, out, "<p>ok</p>")
	assert.Contains(t, out, "<em>fine</em>")
	assert.NotContains(t, out, "script")
}

func TestRichTextDropsEventHandlers(t *testing.T) {
	out := RichText(`<p onclick="evil()">text</p>`)
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "text")
}

func TestTagsDropsEmptyEntries(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, Tags([]string{" go ", "<script>x</script>", "web"}))
	assert.Equal(t, []string{}, Tags(nil))
}

func TestURLSchemes(t *testing.T) {
	ok, err := URL("https://example.com/page")
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/page", ok)

	_, err = URL("javascript://alert(1)")
	assert.ErrorIs(t, err, ErrBadScheme)

	empty, err := URL("")
	assert.NoError(t, err)
	assert.Equal(t, "", empty)
}

func TestMediaPath(t *testing.T) {
	ok, err := MediaPath("/uploads/blog/cover.png")
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/blog/cover.png", ok)

	_, err = MediaPath("//evil.example/x.png")
	assert.ErrorIs(t, err, ErrBadPath)

	_, err = MediaPath("/uploads/../etc/passwd")
	assert.ErrorIs(t, err, ErrBadPath)

	remote, err := MediaPath("https://cdn.example.com/x.png")
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/x.png", remote)
}
