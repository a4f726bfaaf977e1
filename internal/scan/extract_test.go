package scan

import (
	"bandarcms/internal/domain/config"
	"bandarcms/internal/domain/post"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExtractor() *Extractor {
	e := NewExtractor(config.Default().Site, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.Now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	}
	return e
}

func TestExtractFullDocument(t *testing.T) {
	doc := `<html><head>
		<title>Midnight Pasar Malam Guide - The Bandar Breakdowns</title>
		<meta name="description" content="All the stalls worth queueing for.">
		<meta name="keywords" content="night, pasar malam, food">
		<meta property="og:image" content="https://example.com/stalls.jpg">
	</head><body>
		<span class="post-author">Hafiz</span>
		<span class="post-date">Mar 14, 2024</span>
		<div class="article-content"><p>Stalls open after sunset.</p></div>
	</body></html>`

	rec := testExtractor().Extract("/blog/pasar-malam-guide.html", []byte(doc))

	assert.Equal(t, "pasar-malam-guide", rec.Slug)
	assert.Equal(t, "Midnight Pasar Malam Guide", rec.Title)
	assert.Equal(t, "Hafiz", rec.Author)
	assert.Equal(t, post.TypeArticle, rec.PostType)
	assert.Equal(t, "All the stalls worth queueing for.", rec.Description)
	assert.Equal(t, "night, pasar malam, food", rec.Keywords)
	assert.Equal(t, "https://example.com/stalls.jpg", rec.ImageURL)
	assert.Equal(t, "2024-03-14 00:00:00", rec.Created)
	assert.Equal(t, rec.Created, rec.Modified)
	assert.Equal(t, "after_hours", rec.Series)
	assert.True(t, rec.Published)
	assert.True(t, rec.Scanned)
	assert.Equal(t, Digest([]byte(doc)), rec.FileHash)
}

func TestExtractFallbacks(t *testing.T) {
	// no title, no meta description, body of exactly 250 characters
	body := strings.Repeat("x", 250)
	doc := `<div class="article-content">` + body + `</div>`

	rec := testExtractor().Extract("bare-post.html", []byte(doc))

	assert.Equal(t, "Untitled (bare-post)", rec.Title)
	assert.Equal(t, strings.Repeat("x", 200)+"...", rec.Description)
	assert.Equal(t, "The Team", rec.Author)
	assert.Equal(t, "bandar sunway, blog", rec.Keywords)
	assert.Equal(t, config.Default().Site.PlaceholderImage, rec.ImageURL)
}

func TestExtractShortBodyNoEllipsis(t *testing.T) {
	doc := `<div class="article-content">short body</div>`
	rec := testExtractor().Extract("short.html", []byte(doc))
	assert.Equal(t, "short body", rec.Description)
}

func TestExtractDateFormats(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Mar 5, 2024", "2024-03-05 00:00:00"},
		{"March 5, 2024", "2024-03-05 00:00:00"},
		{"5 Mar 2024", "2024-03-05 00:00:00"},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			doc := `<span class="post-date">` + tc.text + `</span>`
			rec := testExtractor().Extract("dated.html", []byte(doc))
			assert.Equal(t, tc.want, rec.Created)
		})
	}
}

func TestExtractDateFallsBackToModTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old-post.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))

	mt := time.Date(2023, 11, 2, 8, 30, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(path, mt, mt))

	rec := testExtractor().Extract(path, []byte("<html></html>"))
	assert.Equal(t, "2023-11-02 08:30:00", rec.Created)
}

func TestExtractTypeCascade(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want post.Type
	}{
		{"poster wins over video", `<div class="poster-container"></div><div class="video-container"></div>`, post.TypePoster},
		{"video container", `<div class="video-container"></div>`, post.TypeVideo},
		{"embed alone implies video", `<iframe src="https://youtube.com/embed/dQw4w9WgXcQ"></iframe>`, post.TypeVideo},
		{"article container", `<div class="article-content"></div>`, post.TypeArticle},
		{"default article", `<p>nothing recognizable</p>`, post.TypeArticle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := testExtractor().Extract("t.html", []byte(tc.doc))
			assert.Equal(t, tc.want, rec.PostType)
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	doc := `<div class="video-container">
		<iframe src="https://www.youtube.com/embed/dQw4w9WgXcQ"></iframe>
	</div>`
	rec := testExtractor().Extract("v.html", []byte(doc))
	assert.Equal(t, post.TypeVideo, rec.PostType)
	assert.Equal(t, "dQw4w9WgXcQ", rec.YouTubeID)
}
