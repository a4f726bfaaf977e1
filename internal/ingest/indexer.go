package ingest

import (
	"bandarcms/internal/backup"
	"bandarcms/internal/domain/post"
	"bandarcms/internal/scan"
	"bandarcms/internal/store"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Indexer runs indexing passes over the corpus. Passes are sequential:
// nothing else may mutate the store while one runs.
type Indexer struct {
	BlogDir   string
	Extractor *scan.Extractor
	Store     store.Store
	Backups   *backup.Copier
	Logger    *slog.Logger
}

type IndexStats struct {
	Inserted int
	Skipped  int
	Failed   int
}

type ReindexStats struct {
	Updated int
	Failed  int
}

// IndexNew scans documents that have no record yet and inserts them.
// Documents whose slug already exists are skipped; a single unreadable
// document is counted and the pass continues. The store is saved only
// when something was inserted.
func (ix *Indexer) IndexNew() (IndexStats, error) {
	var stats IndexStats

	records, err := ix.Store.Load()
	if err != nil {
		return stats, fmt.Errorf("load store: %w", err)
	}
	files, err := DiscoverCorpus(ix.BlogDir)
	if err != nil {
		return stats, fmt.Errorf("discover corpus: %w", err)
	}

	for _, path := range files {
		slug := slugFromPath(path)
		if _, ok := records[slug]; ok {
			stats.Skipped++
			continue
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			ix.Logger.Error("unreadable document", "path", path, "err", err)
			stats.Failed++
			continue
		}

		rec := ix.Extractor.Extract(path, raw)
		records[rec.Slug] = rec
		stats.Inserted++
		ix.Logger.Info("indexed", "slug", rec.Slug, "title", rec.Title,
			"type", rec.PostType, "series", rec.Series)
	}

	if stats.Inserted > 0 {
		if err := ix.Store.Save(records); err != nil {
			return stats, fmt.Errorf("save store: %w", err)
		}
	}
	return stats, nil
}

// ReindexAll re-extracts every document and replaces its record, after
// backing up the store. A prior record's view count always survives; when
// the prior record was authored rather than scanned, its created date,
// author and series survive as well.
func (ix *Indexer) ReindexAll() (ReindexStats, error) {
	var stats ReindexStats

	if _, err := ix.Backups.File(ix.Store.Path()); err != nil {
		return stats, fmt.Errorf("backup store: %w", err)
	}

	records, err := ix.Store.Load()
	if err != nil {
		return stats, fmt.Errorf("load store: %w", err)
	}
	prior := make(map[string]post.Record, len(records))
	for slug, rec := range records {
		prior[slug] = rec
	}

	files, err := DiscoverCorpus(ix.BlogDir)
	if err != nil {
		return stats, fmt.Errorf("discover corpus: %w", err)
	}

	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			ix.Logger.Error("unreadable document", "path", path, "err", err)
			stats.Failed++
			continue
		}

		rec := ix.Extractor.Extract(path, raw)
		if old, ok := prior[rec.Slug]; ok {
			rec.ViewCount = old.ViewCount
			if !old.Scanned {
				// curated fields of an authored record survive the rescan
				rec.Created = old.Created
				rec.Author = old.Author
				rec.Series = old.Series
			}
		}
		records[rec.Slug] = rec
		stats.Updated++
		ix.Logger.Info("reindexed", "slug", rec.Slug, "title", rec.Title)
	}

	if stats.Updated > 0 {
		if err := ix.Store.Save(records); err != nil {
			return stats, fmt.Errorf("save store: %w", err)
		}
	}
	return stats, nil
}

func slugFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
