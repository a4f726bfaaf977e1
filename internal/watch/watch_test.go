package watch

import (
	"bandarcms/internal/app"
	"bandarcms/internal/domain/config"
	"bandarcms/internal/store"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"post written", fsnotify.Event{Name: "blog/a-post.html", Op: fsnotify.Write}, true},
		{"post created", fsnotify.Event{Name: "blog/a-post.html", Op: fsnotify.Create}, true},
		{"post removed", fsnotify.Event{Name: "blog/a-post.html", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "blog/a-post.html", Op: fsnotify.Chmod}, false},
		{"listing page", fsnotify.Event{Name: "blog/index.html", Op: fsnotify.Write}, false},
		{"temp file", fsnotify.Event{Name: "blog/a-post.html.tmp", Op: fsnotify.Create}, false},
		{"backup file", fsnotify.Event{Name: "blog/a-post_20240314_150926.bak", Op: fsnotify.Create}, false},
		{"non-html", fsnotify.Event{Name: "blog/notes.txt", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.ev))
		})
	}
}

func TestRunReindexesOnCorpusChange(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.BlogDir = filepath.Join(root, "blog")
	cfg.Paths.TemplatesDir = filepath.Join(root, "templates")
	cfg.Paths.BackupDir = filepath.Join(root, "backups")
	cfg.Store.Path = filepath.Join(root, "posts_metadata.json")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewFileStore(cfg.Store.Path, logger)
	cms, err := app.New(cfg, st, logger)
	require.NoError(t, err)

	page := `<html><body><div class="blog-grid">
            </div></body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Paths.BlogDir, "index.html"), []byte(page), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cms, logger) }()

	// let the watcher register before producing events
	time.Sleep(200 * time.Millisecond)

	doc := `<html><head><title>Watched Post</title></head><body>
		<div class="article-content">some text</div>
	</body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Paths.BlogDir, "watched-post.html"), []byte(doc), 0o644))

	// one debounced pass indexes the new document and splices the listing
	require.Eventually(t, func() bool {
		records, err := st.Load()
		if err != nil {
			return false
		}
		_, ok := records["watched-post"]
		return ok
	}, 5*time.Second, 50*time.Millisecond)

	assert.Eventually(t, func() bool {
		updated, err := os.ReadFile(filepath.Join(cfg.Paths.BlogDir, "index.html"))
		if err != nil {
			return false
		}
		return string(updated) != page
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
