// Package store persists the slug -> record mapping. The rest of the
// system treats it as an injected key-value store with whole-map load and
// save; both backends guarantee a save either fully lands or leaves the
// prior on-disk state intact.
package store

import (
	"bandarcms/internal/domain/config"
	"bandarcms/internal/domain/post"
	"fmt"
	"log/slog"
)

type Store interface {
	Load() (map[string]post.Record, error)
	Save(map[string]post.Record) error

	// Path is the backing file, so callers can back it up before a bulk
	// rewrite.
	Path() string
	Close() error
}

func Open(cfg config.StoreConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case "", config.StoreJSON:
		return NewFileStore(cfg.Path, logger), nil
	case config.StoreBolt:
		return OpenBolt(cfg.Path, logger)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}
