package backup

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCopier(t *testing.T) *Copier {
	c := NewCopier(filepath.Join(t.TempDir(), "backups"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.Now = func() time.Time {
		return time.Date(2024, 3, 14, 15, 9, 26, 0, time.Local)
	}
	return c
}

func TestFileBackup(t *testing.T) {
	c := testCopier(t)

	src := filepath.Join(t.TempDir(), "my-post.html")
	require.NoError(t, os.WriteFile(src, []byte("<html>original</html>"), 0o644))

	dst, err := c.File(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.Dir, "my-post_20240314_150926.bak"), dst)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "<html>original</html>", string(data))

	// source is untouched
	orig, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "<html>original</html>", string(orig))
}

func TestFileBackupMissingSource(t *testing.T) {
	c := testCopier(t)
	dst, err := c.File(filepath.Join(t.TempDir(), "does-not-exist.html"))
	require.NoError(t, err)
	assert.Empty(t, dst)
}
