package render

import (
	"bandarcms/internal/domain/post"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		"_template_article.html": `<title>{TITLE} - Site</title><div class="article-content">{CONTENT}</div>`,
		"_template_poster.html":  `<div class="poster-container"><img src="{IMAGE_URL}" alt="{DESCRIPTION}"></div>`,
		"_template_video.html":   `<iframe src="https://www.youtube.com/embed/{YOUTUBE_ID}"></iframe>`,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadTemplates(t *testing.T) {
	dir := writeTemplates(t)
	r := NewTemplateRenderer(dir)

	for _, pt := range post.Types() {
		tpl, err := r.Load(pt)
		require.NoError(t, err)
		assert.NotEmpty(t, tpl)
	}

	_, err := r.Load(post.Type("Podcast"))
	assert.Error(t, err)
}

func TestLoadMissingTemplate(t *testing.T) {
	r := NewTemplateRenderer(t.TempDir())
	_, err := r.Load(post.TypeArticle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "_template_article.html")
}

func TestCheckTemplates(t *testing.T) {
	assert.NoError(t, CheckTemplates(writeTemplates(t)))
	assert.Error(t, CheckTemplates(t.TempDir()))
}

func TestRenderPostSubstitutesAllTokens(t *testing.T) {
	tpl := "{TITLE}|{DESCRIPTION}|{KEYWORDS}|{SLUG}|{IMAGE_URL}|{AUTHOR}|{POST_DATE}|{CONTENT}|{YOUTUBE_ID}"
	rec := post.Record{
		Slug: "my-post", Title: "My Post", Author: "Aina",
		Description: "Desc", Keywords: "k1, k2",
		ImageURL: "https://example.com/i.jpg", YouTubeID: "dQw4w9WgXcQ",
		Created: "2024-02-01 09:00:00",
	}

	out := RenderPost(tpl, rec, "<p>hello</p>")
	assert.Equal(t, "My Post|Desc|k1, k2|my-post|https://example.com/i.jpg|Aina|Feb 01, 2024|<p>hello</p>|dQw4w9WgXcQ", out)
}

func TestRenderPostNoEscaping(t *testing.T) {
	// substitution is literal: markup in fields passes straight through
	out := RenderPost("{DESCRIPTION}", post.Record{Description: `<b>&amp;</b>`}, "")
	assert.Equal(t, `<b>&amp;</b>`, out)
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "Mar 05, 2024", DisplayDate("2024-03-05 10:30:00"))
	// unparseable stamps fall back to today rather than failing
	assert.NotEmpty(t, DisplayDate("garbage"))
}
