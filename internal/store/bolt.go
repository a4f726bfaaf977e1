package store

import (
	"bandarcms/internal/domain/post"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bPosts = []byte("posts") // slug -> record JSON

// BoltStore keeps the mapping in a bbolt database. Save replaces the
// posts bucket inside one write transaction, which bbolt makes atomic.
type BoltStore struct {
	db     *bolt.DB
	path   string
	logger *slog.Logger
}

func OpenBolt(path string, logger *slog.Logger) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return &BoltStore{db: db, path: path, logger: logger}, nil
}

func (s *BoltStore) Path() string { return s.path }

func (s *BoltStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStore) Load() (map[string]post.Record, error) {
	records := make(map[string]post.Record)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bPosts)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var rec post.Record
			if err := json.Unmarshal(v, &rec); err != nil {
				s.logger.Warn("malformed record in store, skipping",
					"slug", string(k), "err", err)
				return nil
			}
			records[string(k)] = rec
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *BoltStore) Save(records map[string]post.Record) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_ = tx.DeleteBucket(bPosts)
		b, err := tx.CreateBucket(bPosts)
		if err != nil {
			return err
		}
		for slug, rec := range records {
			data, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(slug), data); err != nil {
				return err
			}
		}
		return nil
	})
}
