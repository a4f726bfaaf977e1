package render

import (
	"bandarcms/internal/domain/post"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DisplayFormat is how dates appear on rendered pages and cards.
const DisplayFormat = "Jan 02, 2006"

var templateFiles = map[post.Type]string{
	post.TypeArticle: "_template_article.html",
	post.TypePoster:  "_template_poster.html",
	post.TypeVideo:   "_template_video.html",
}

// TemplateRenderer loads per-type post templates and fills their
// placeholder tokens. Substitution is literal find-and-replace with no
// escaping: content that could itself contain a token string must be
// sanitized by the caller.
type TemplateRenderer struct {
	dir string
}

func NewTemplateRenderer(dir string) *TemplateRenderer {
	return &TemplateRenderer{dir: dir}
}

func (r *TemplateRenderer) Load(t post.Type) (string, error) {
	name, ok := templateFiles[t]
	if !ok {
		return "", fmt.Errorf("unknown post type: %s", t)
	}
	path := filepath.Join(r.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("template not found: %s: %w", path, err)
	}
	return string(data), nil
}

// RenderPost substitutes the record's fields into the template, in no
// particular order.
func RenderPost(tpl string, rec post.Record, contentHTML string) string {
	return strings.NewReplacer(
		"{TITLE}", rec.Title,
		"{DESCRIPTION}", rec.Description,
		"{KEYWORDS}", rec.Keywords,
		"{SLUG}", rec.Slug,
		"{IMAGE_URL}", rec.ImageURL,
		"{AUTHOR}", rec.Author,
		"{POST_DATE}", DisplayDate(rec.Created),
		"{CONTENT}", contentHTML,
		"{YOUTUBE_ID}", rec.YouTubeID,
	).Replace(tpl)
}

// CheckTemplates verifies all three post templates exist.
func CheckTemplates(dir string) error {
	for _, name := range templateFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("missing template: %s", filepath.Join(dir, name))
		}
	}
	return nil
}

// DisplayDate formats a stored timestamp for display, falling back to the
// current date when the stamp does not parse.
func DisplayDate(created string) string {
	t, err := time.ParseInLocation(post.TimeFormat, created, time.Local)
	if err != nil {
		return time.Now().Format(DisplayFormat)
	}
	return t.Format(DisplayFormat)
}
