package store

import (
	"bandarcms/internal/domain/post"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// FileStore keeps the whole mapping in one pretty-printed JSON file, the
// format the site has always used.
type FileStore struct {
	path   string
	logger *slog.Logger
}

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Close() error { return nil }

// Load reads the mapping. A missing file means an empty store; a malformed
// file is logged and also falls back to empty rather than blocking the run.
func (s *FileStore) Load() (map[string]post.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]post.Record{}, nil
		}
		return nil, err
	}

	records := make(map[string]post.Record)
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("malformed metadata file, starting from empty store",
			"path", s.path, "err", err)
		return map[string]post.Record{}, nil
	}
	return records, nil
}

// Save writes to a temp file in the same directory and renames it over the
// old one, so a failure mid-write never corrupts the previous content.
func (s *FileStore) Save(records map[string]post.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
