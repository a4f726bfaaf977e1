// Package ingest enumerates the blog corpus and runs indexing passes
// over it.
package ingest

import (
	"path/filepath"
	"sort"
)

// IndexPage is the listing page's filename; it lives in the corpus dir
// but is never a post.
const IndexPage = "index.html"

// DiscoverCorpus lists the corpus documents in blogDir, excluding the
// listing page, in a stable order.
func DiscoverCorpus(blogDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(blogDir, "*.html"))
	if err != nil {
		return nil, err
	}

	out := matches[:0]
	for _, path := range matches {
		if filepath.Base(path) == IndexPage {
			continue
		}
		out = append(out, path)
	}
	sort.Strings(out)
	return out, nil
}
