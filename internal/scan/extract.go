package scan

import (
	"bandarcms/internal/domain/config"
	"bandarcms/internal/domain/post"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// dateLayouts are tried in order against the scanned post-date text; the
// first one that parses wins.
var dateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// Extractor turns one document into a normalized Record. Extraction never
// fails: every field degrades to a default when its sources come up empty.
type Extractor struct {
	Site   config.SiteConfig
	Logger *slog.Logger
	Now    func() time.Time
}

func NewExtractor(site config.SiteConfig, logger *slog.Logger) *Extractor {
	return &Extractor{
		Site:   site,
		Logger: logger,
		Now:    time.Now,
	}
}

// Extract derives a record from the document at path with content raw.
// The slug is the filename without extension; raw is scanned for the rest.
func (e *Extractor) Extract(path string, raw []byte) post.Record {
	doc := string(raw)
	res := Scan(doc)

	slug := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	title := strings.TrimSpace(strings.ReplaceAll(res.Title, " - "+e.Site.Name, ""))
	if title == "" {
		title = "Untitled (" + slug + ")"
		e.Logger.Debug("no title found, synthesized one", "slug", slug)
	}

	rec := post.Record{
		Slug:        slug,
		Title:       title,
		Author:      fallback(res.Author, e.Site.DefaultAuthor),
		PostType:    inferType(doc, res.VideoID),
		Description: e.description(res),
		Keywords:    fallback(res.MetaTags["keywords"], e.Site.DefaultKeywords),
		ImageURL:    fallback(res.MetaTags["og:image"], fallback(res.MetaTags["twitter:image"], e.Site.PlaceholderImage)),
		YouTubeID:   res.VideoID,
		Published:   true,
		FileHash:    Digest(raw),
		Scanned:     true,
	}
	rec.Series = ClassifySeries(title, res.Body, rec.Keywords)
	rec.Created = e.createdAt(path, slug, res.Date)
	rec.Modified = rec.Created
	rec.Normalize()
	return rec
}

// inferType is a priority cascade over raw substring presence, independent
// of which container the scanner captured; the two can disagree on
// malformed input and the cascade is the one that counts.
func inferType(doc, videoID string) post.Type {
	switch {
	case strings.Contains(doc, "poster-container"):
		return post.TypePoster
	case strings.Contains(doc, "video-container") || videoID != "":
		return post.TypeVideo
	default:
		return post.TypeArticle
	}
}

func (e *Extractor) description(res Result) string {
	if d := res.MetaTags["description"]; d != "" {
		return d
	}
	if d := res.MetaTags["og:description"]; d != "" {
		return d
	}
	// truncate to the first 200 characters; the ellipsis is attached only
	// when the body actually exceeded that
	runes := []rune(res.Body)
	if len(runes) > 200 {
		return string(runes[:200]) + "..."
	}
	return res.Body
}

func (e *Extractor) createdAt(path, slug, dateText string) string {
	if dateText != "" {
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, dateText, time.Local); err == nil {
				return t.Format(post.TimeFormat)
			}
		}
		e.Logger.Debug("unparseable post date", "slug", slug, "date", dateText)
	}

	if st, err := os.Stat(path); err == nil {
		return st.ModTime().In(time.Local).Format(post.TimeFormat)
	}
	return e.Now().Format(post.TimeFormat)
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
