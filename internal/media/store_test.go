package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mquezada/katutubo/internal/errors"
)

func createStore(t *testing.T, maxSizeMB int) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), "/media", maxSizeMB)
	require.NoError(t, err)
	return s
}

func TestSave(t *testing.T) {
	s := createStore(t, 1)

	url, err := s.Save(strings.NewReader("fake image bytes"), "portrait.JPG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	// The stored name is generated, not the original filename.
	assert.NotContains(t, url, "portrait")

	stored := filepath.Join(s.BaseDir(), filepath.Base(url))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	s := createStore(t, 1)

	for _, name := range []string{"report.pdf", "script.sh", "noext"} {
		_, err := s.Save(strings.NewReader("x"), name)
		require.Error(t, err, "filename %q", name)
		assert.Equal(t, errors.CategoryValidation, errors.CategoryOf(err))
	}
}

func TestSaveRejectsOversizedUpload(t *testing.T) {
	s := createStore(t, 1)

	big := strings.NewReader(strings.Repeat("a", 1<<20+1))
	_, err := s.Save(big, "big.png")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryValidation, errors.CategoryOf(err))

	// The partial file is cleaned up.
	entries, err := os.ReadDir(s.BaseDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemove(t *testing.T) {
	s := createStore(t, 1)

	url, err := s.Save(strings.NewReader("x"), "photo.png")
	require.NoError(t, err)

	s.Remove(url)
	entries, err := os.ReadDir(s.BaseDir())
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Unknown URLs are a no-op.
	s.Remove("/media/never-existed.png")
	s.Remove("")
}
