package app

import (
	"bandarcms/internal/domain/post"
	"fmt"
	"sort"
	"strings"
)

// List returns every record, newest first.
func (c *CMS) List() ([]post.Record, error) {
	records, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}
	return sortedByCreated(records), nil
}

// Search matches the query case-insensitively against title, description,
// keywords and the series display name.
func (c *CMS) Search(query string) ([]post.Record, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	records, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}

	var out []post.Record
	for _, rec := range records {
		seriesName := ""
		if rec.Series != "" {
			seriesName = c.cfg.Site.SeriesName(rec.Series)
		}
		if strings.Contains(strings.ToLower(rec.Title), query) ||
			strings.Contains(strings.ToLower(rec.Description), query) ||
			strings.Contains(strings.ToLower(rec.Keywords), query) ||
			strings.Contains(strings.ToLower(seriesName), query) {
			out = append(out, rec)
		}
	}
	sortRecords(out)
	return out, nil
}

type Stats struct {
	Total     int
	Published int
	Drafts    int
	Scanned   int
	ByType    map[post.Type]int
	BySeries  map[string]int
	ByAuthor  map[string]int
	Recent    []post.Record
}

// Statistics aggregates store-wide counts. Series buckets use display
// names, with posts outside any series under "No Series".
func (c *CMS) Statistics() (Stats, error) {
	records, err := c.store.Load()
	if err != nil {
		return Stats{}, fmt.Errorf("load store: %w", err)
	}

	stats := Stats{
		ByType:   make(map[post.Type]int),
		BySeries: make(map[string]int),
		ByAuthor: make(map[string]int),
	}
	for _, rec := range records {
		stats.Total++
		if rec.Published {
			stats.Published++
		} else {
			stats.Drafts++
		}
		if rec.Scanned {
			stats.Scanned++
		}
		stats.ByType[rec.PostType]++
		stats.ByAuthor[rec.Author]++
		if rec.Series != "" {
			stats.BySeries[c.cfg.Site.SeriesName(rec.Series)]++
		} else {
			stats.BySeries["No Series"]++
		}
	}

	recent := sortedByCreated(records)
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.Recent = recent
	return stats, nil
}

func sortedByCreated(records map[string]post.Record) []post.Record {
	out := make([]post.Record, 0, len(records))
	for _, rec := range records {
		out = append(out, rec)
	}
	sortRecords(out)
	return out
}

func sortRecords(out []post.Record) {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Created != out[j].Created {
			return out[i].Created > out[j].Created
		}
		return out[i].Slug < out[j].Slug
	})
}
