// Package app wires the components into the CMS operations the front-end
// exposes: authoring, deletion, indexing passes, listing regeneration,
// search and statistics.
package app

import (
	"bandarcms/internal/backup"
	"bandarcms/internal/domain/config"
	domainerr "bandarcms/internal/domain/errors"
	"bandarcms/internal/domain/post"
	"bandarcms/internal/ingest"
	"bandarcms/internal/render"
	"bandarcms/internal/scan"
	"bandarcms/internal/store"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type CMS struct {
	cfg       config.Config
	store     store.Store
	backups   *backup.Copier
	extractor *scan.Extractor
	indexer   *ingest.Indexer
	markdown  *render.MarkdownRenderer
	templates *render.TemplateRenderer
	logger    *slog.Logger

	// Now is swappable so tests get stable timestamps.
	Now func() time.Time
}

func New(cfg config.Config, st store.Store, logger *slog.Logger) (*CMS, error) {
	for _, dir := range []string{cfg.Paths.BlogDir, cfg.Paths.TemplatesDir, cfg.Paths.BackupDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}

	if err := render.CheckTemplates(cfg.Paths.TemplatesDir); err != nil {
		logger.Warn("post templates incomplete, authoring will fail", "err", err)
	}

	copier := backup.NewCopier(cfg.Paths.BackupDir, logger)
	extractor := scan.NewExtractor(cfg.Site, logger)

	return &CMS{
		cfg:       cfg,
		store:     st,
		backups:   copier,
		extractor: extractor,
		indexer: &ingest.Indexer{
			BlogDir:   cfg.Paths.BlogDir,
			Extractor: extractor,
			Store:     st,
			Backups:   copier,
			Logger:    logger,
		},
		markdown:  render.NewMarkdownRenderer(),
		templates: render.NewTemplateRenderer(cfg.Paths.TemplatesDir),
		logger:    logger,
		Now:       time.Now,
	}, nil
}

func (c *CMS) Config() config.Config { return c.cfg }

// CreateInput is the authoring payload. Content is markdown; it becomes
// the HTML substituted at {CONTENT} in the post template.
type CreateInput struct {
	Title       string
	Author      string
	PostType    post.Type
	Series      string
	YouTubeID   string
	Description string
	Keywords    string
	ImageURL    string
	Content     []byte
}

// CreatePost validates the input, allocates a slug, writes the post file
// from its template, records the metadata and regenerates the listing.
func (c *CMS) CreatePost(in CreateInput) (post.Record, error) {
	records, err := c.store.Load()
	if err != nil {
		return post.Record{}, fmt.Errorf("load store: %w", err)
	}

	now := c.Now().Format(post.TimeFormat)
	rec := post.Record{
		Title:       strings.TrimSpace(in.Title),
		Author:      fallback(in.Author, c.cfg.Site.DefaultAuthor),
		PostType:    in.PostType,
		Description: strings.TrimSpace(in.Description),
		Keywords:    fallback(in.Keywords, c.cfg.Site.DefaultKeywords),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Series:      strings.TrimSpace(in.Series),
		YouTubeID:   strings.TrimSpace(in.YouTubeID),
		Created:     now,
		Modified:    now,
		Published:   true,
		Scanned:     false,
	}
	if err := c.validateAuthored(rec); err != nil {
		return post.Record{}, err
	}

	rec.Slug = AllocateSlug(rec.Title, records)
	rec.Normalize()

	if err := c.writePostFile(&rec, in.Content); err != nil {
		return post.Record{}, err
	}

	records[rec.Slug] = rec
	if err := c.store.Save(records); err != nil {
		return post.Record{}, fmt.Errorf("save store: %w", err)
	}
	if err := c.UpdateListing(); err != nil {
		return rec, err
	}

	c.logger.Info("post created", "slug", rec.Slug, "title", rec.Title,
		"url", c.cfg.Site.BaseURL+"/blog/"+rec.Slug+".html")
	return rec, nil
}

// EditPost updates an existing record. Empty input fields keep their
// previous value; the slug, creation date and view count never change.
// Content, when given, rewrites the post file.
func (c *CMS) EditPost(slug string, in CreateInput) (post.Record, error) {
	records, err := c.store.Load()
	if err != nil {
		return post.Record{}, fmt.Errorf("load store: %w", err)
	}
	rec, ok := records[slug]
	if !ok {
		return post.Record{}, fmt.Errorf("post %q: %w", slug, domainerr.ErrNotFound)
	}

	rec.Title = fallback(strings.TrimSpace(in.Title), rec.Title)
	rec.Author = fallback(strings.TrimSpace(in.Author), rec.Author)
	rec.Description = fallback(strings.TrimSpace(in.Description), rec.Description)
	rec.Keywords = fallback(strings.TrimSpace(in.Keywords), rec.Keywords)
	rec.ImageURL = fallback(strings.TrimSpace(in.ImageURL), rec.ImageURL)
	rec.YouTubeID = fallback(strings.TrimSpace(in.YouTubeID), rec.YouTubeID)
	if in.Series != "" {
		rec.Series = strings.TrimSpace(in.Series)
	}
	rec.Modified = c.Now().Format(post.TimeFormat)
	rec.Scanned = false

	if err := c.validateAuthored(rec); err != nil {
		return post.Record{}, err
	}

	if len(in.Content) > 0 {
		if err := c.writePostFile(&rec, in.Content); err != nil {
			return post.Record{}, err
		}
	}

	records[slug] = rec
	if err := c.store.Save(records); err != nil {
		return post.Record{}, fmt.Errorf("save store: %w", err)
	}
	if err := c.UpdateListing(); err != nil {
		return rec, err
	}
	return rec, nil
}

// DeletePost removes the record and its document (after a backup), then
// regenerates the listing.
func (c *CMS) DeletePost(slug string) error {
	records, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}
	if _, ok := records[slug]; !ok {
		return fmt.Errorf("post %q: %w", slug, domainerr.ErrNotFound)
	}

	path := filepath.Join(c.cfg.Paths.BlogDir, slug+".html")
	if _, err := os.Stat(path); err == nil {
		if _, err := c.backups.File(path); err != nil {
			return fmt.Errorf("backup post file: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove post file: %w", err)
		}
	}

	delete(records, slug)
	if err := c.store.Save(records); err != nil {
		return fmt.Errorf("save store: %w", err)
	}

	c.logger.Info("post deleted", "slug", slug)
	return c.UpdateListing()
}

// UpdateListing regenerates the card region of the listing page from the
// current store, backing the page up first. A splice failure leaves the
// page untouched.
func (c *CMS) UpdateListing() error {
	path := filepath.Join(c.cfg.Paths.BlogDir, ingest.IndexPage)
	page, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read listing page: %w", err)
	}

	records, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}

	updated, err := render.SpliceIndex(string(page), records)
	if err != nil {
		return fmt.Errorf("splice listing page: %w", err)
	}

	if _, err := c.backups.File(path); err != nil {
		return fmt.Errorf("backup listing page: %w", err)
	}
	if err := writeAtomic(path, []byte(updated)); err != nil {
		return fmt.Errorf("write listing page: %w", err)
	}

	c.logger.Info("listing page updated", "path", path)
	return nil
}

func (c *CMS) IndexNew() (ingest.IndexStats, error) {
	return c.indexer.IndexNew()
}

func (c *CMS) ReindexAll() (ingest.ReindexStats, error) {
	return c.indexer.ReindexAll()
}

func (c *CMS) validateAuthored(rec post.Record) error {
	var ve domainerr.ValidationError
	if err := rec.ValidateAuthored(); err != nil {
		var inner domainerr.ValidationError
		if !errors.As(err, &inner) {
			return err
		}
		ve.Items = append(ve.Items, inner.Items...)
	}
	if rec.Series != "" && !scan.KnownSeries(rec.Series) {
		ve.Add("series", fmt.Sprintf("unknown series key %q", rec.Series))
	}
	if ve.HasAny() {
		return ve
	}
	return nil
}

// writePostFile renders the post template, backs up any previous file and
// writes the document, setting the record's content digest.
func (c *CMS) writePostFile(rec *post.Record, content []byte) error {
	tpl, err := c.templates.Load(rec.PostType)
	if err != nil {
		return err
	}
	bodyHTML, err := c.markdown.Render(content)
	if err != nil {
		return fmt.Errorf("render content: %w", err)
	}

	doc := render.RenderPost(tpl, *rec, string(bodyHTML))
	path := filepath.Join(c.cfg.Paths.BlogDir, rec.Slug+".html")

	if _, err := c.backups.File(path); err != nil {
		return fmt.Errorf("backup post file: %w", err)
	}
	if err := writeAtomic(path, []byte(doc)); err != nil {
		return fmt.Errorf("write post file: %w", err)
	}

	rec.FileHash = scan.Digest([]byte(doc))
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
