package render

import (
	"bandarcms/internal/domain/post"
	"fmt"
	"strings"
)

// RenderCard produces one listing-page card fragment for a record.
func RenderCard(rec post.Record) string {
	dataSeries := ""
	if rec.Series != "" {
		dataSeries = fmt.Sprintf(`data-series="%s"`, rec.Series)
	}

	card := fmt.Sprintf(`<div class="blog-card" %s>
    <a href="%s.html">
        <div class="card-image-wrapper">
            <div class="card-category">%s</div>
            <img loading="lazy" src="%s" alt="%s">
        </div>
        <div class="card-content">
            <h3>%s</h3>
            <small class="card-meta">By %s | %s</small>
            <p>%s</p>
        </div>
    </a>
</div>`,
		dataSeries,
		rec.Slug,
		rec.PostType,
		rec.ImageURL,
		rec.Description,
		rec.Title,
		rec.Author,
		DisplayDate(rec.Created),
		rec.Description,
	)
	return strings.TrimSpace(card)
}
