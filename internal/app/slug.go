package app

import (
	"bandarcms/internal/domain/post"
	"fmt"
	"regexp"
	"strings"
)

var (
	slugSpaces = regexp.MustCompile(`\s+`)
	slugStrip  = regexp.MustCompile(`[^\w\-]+`)
	slugDashes = regexp.MustCompile(`\-\-+`)
)

// AllocateSlug derives a URL-safe slug from a title, suffixing -1, -2, ...
// until it is unique among the existing records. An empty title yields an
// empty base and resolves straight to the numeric suffixes; callers that
// do not want that must reject empty titles first.
func AllocateSlug(title string, existing map[string]post.Record) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugDashes.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if slug != "" {
		if _, taken := existing[slug]; !taken {
			return slug
		}
	}

	base := slug
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s-%d", base, counter)
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}
