// Package backup writes timestamped copies of files into the backup
// directory before anything destructive happens to them.
package backup

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Copier struct {
	Dir    string
	Logger *slog.Logger
	Now    func() time.Time
}

func NewCopier(dir string, logger *slog.Logger) *Copier {
	return &Copier{Dir: dir, Logger: logger, Now: time.Now}
}

// File copies path into the backup dir as <stem>_<YYYYMMDD_HHMMSS>.bak and
// returns the backup path. A missing source is not an error: there is
// nothing to protect, so it returns "".
func (c *Copier) File(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", err
	}

	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := fmt.Sprintf("%s_%s.bak", stem, c.Now().Format("20060102_150405"))
	dst := filepath.Join(c.Dir, name)

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}
	if err := out.Sync(); err != nil {
		return "", err
	}

	c.Logger.Info("backup created", "src", path, "backup", dst)
	return dst, nil
}
