// Package render generates post pages and listing-page fragments: post
// templates with literal token substitution, markdown for authored
// content, and the marker-delimited splice that rewrites the blog grid.
package render

import (
	domainerr "bandarcms/internal/domain/errors"
	"bandarcms/internal/domain/post"
	"sort"
	"strings"
)

const (
	// OpeningMarker delimits the spliced region of the listing page.
	OpeningMarker = `<div class="blog-grid">`
	closingTag    = `</div>`

	beginComment = "<!-- Auto-generated blog cards -->"
	endComment   = "<!-- End auto-generated cards -->"
)

// SpliceIndex replaces the marker-delimited card region of the listing
// page with cards for the published records, newest first. Everything
// before the opening marker and from the closing boundary onward is
// preserved byte for byte; on any error the result is empty and the
// caller must keep the page it already has.
//
// On a page that already carries generated cards, the closing boundary is
// the first </div> after the end comment, so re-running over identical
// records yields byte-identical output.
func SpliceIndex(page string, records map[string]post.Record) (string, error) {
	start := strings.Index(page, OpeningMarker)
	if start < 0 {
		return "", domainerr.ErrMarkerNotFound
	}
	innerStart := start + len(OpeningMarker)

	searchFrom := innerStart
	if i := strings.Index(page[innerStart:], endComment); i >= 0 {
		searchFrom = innerStart + i + len(endComment)
	}
	rel := strings.Index(page[searchFrom:], closingTag)
	if rel < 0 {
		return "", domainerr.ErrStructure
	}
	end := searchFrom + rel

	cards := renderCards(records)

	var b strings.Builder
	b.WriteString(page[:innerStart])
	b.WriteString("\n\n                ")
	b.WriteString(beginComment)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(cards, "\n\n                "))
	b.WriteString("\n\n                ")
	b.WriteString(endComment)
	b.WriteString("\n\n            ")
	b.WriteString(page[end:])
	return b.String(), nil
}

func renderCards(records map[string]post.Record) []string {
	published := make([]post.Record, 0, len(records))
	for _, rec := range records {
		if rec.Published {
			published = append(published, rec)
		}
	}

	// newest first; the timestamp format makes string order chronological
	sort.SliceStable(published, func(i, j int) bool {
		if published[i].Created != published[j].Created {
			return published[i].Created > published[j].Created
		}
		return published[i].Slug < published[j].Slug
	})

	cards := make([]string, 0, len(published))
	for _, rec := range published {
		cards = append(cards, RenderCard(rec))
	}
	return cards
}
