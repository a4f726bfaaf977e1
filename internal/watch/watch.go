// Package watch observes the corpus directory and re-runs the reindex
// pass plus listing regeneration when documents change.
package watch

import (
	"bandarcms/internal/app"
	"bandarcms/internal/ingest"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Run blocks until ctx is cancelled, reindexing after corpus changes.
// Events are debounced so one editor save does not trigger several passes.
func Run(ctx context.Context, cms *app.CMS, logger *slog.Logger) error {
	blogDir := cms.Config().Paths.BlogDir

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(blogDir); err != nil {
		return err
	}
	logger.Info("watching corpus for changes", "dir", blogDir)

	debounce := time.NewTimer(time.Hour)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			debounce.Reset(500 * time.Millisecond)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)

		case <-debounce.C:
			stats, err := cms.ReindexAll()
			if err != nil {
				logger.Error("reindex failed", "err", err)
				continue
			}
			logger.Info("reindex complete", "updated", stats.Updated, "failed", stats.Failed)
			if err := cms.UpdateListing(); err != nil {
				logger.Error("listing update failed", "err", err)
			}
		}
	}
}

// relevant filters out the listing page itself (which we rewrite), temp
// files and backups, so regeneration does not retrigger the watcher.
func relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(ev.Name)
	if base == ingest.IndexPage {
		return false
	}
	if strings.HasSuffix(base, ".tmp") || strings.HasSuffix(base, ".bak") {
		return false
	}
	return strings.HasSuffix(strings.ToLower(base), ".html")
}
