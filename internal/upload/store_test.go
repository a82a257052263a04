package upload

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewStore(dir, 1024)
	store.random = func() int { return 42 }
	return store, dir
}

func TestSaveRejectsPDFWithoutTouchingDisk(t *testing.T) {
	store, dir := newTestStore(t)

	_, err := store.Save(File{Code: "TCK-1", Title: "leak", Filename: "report.pdf", ContentType: "application/pdf", Size: 10}, strings.NewReader("%PDF"))
	rejected, ok := IsRejected(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnsupportedMediaType, rejected.Status)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSavePNG(t *testing.T) {
	store, dir := newTestStore(t)
	body := bytes.Repeat([]byte{0x89}, 100)

	saved, err := store.Save(File{Code: "TCK-7", Title: "leak", Filename: "Photo.PNG", ContentType: "image/png", Size: 100}, bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "TCK-7-leak-42.png", saved.Filename)
	assert.Equal(t, "/uploads/TCK-7-leak-42.png", saved.URL)
	assert.Equal(t, int64(100), saved.Size)

	content, err := os.ReadFile(filepath.Join(dir, saved.Filename))
	require.NoError(t, err)
	assert.Equal(t, body, content)
}

func TestSaveRejectsOversize(t *testing.T) {
	store, dir := newTestStore(t)

	_, err := store.Save(File{Code: "c", Title: "t", Filename: "a.jpg", ContentType: "image/jpeg", Size: 2048}, bytes.NewReader(make([]byte, 2048)))
	rejected, ok := IsRejected(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rejected.Status)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))

	// declared size lies: the stream is cut and the partial file removed
	_, err = store.Save(File{Code: "c", Title: "t", Filename: "a.gif", ContentType: "image/gif", Size: 1}, bytes.NewReader(make([]byte, 2048)))
	_, ok = IsRejected(err)
	require.True(t, ok)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFilenameCannotEscapeDir(t *testing.T) {
	store, _ := newTestStore(t)
	name := store.filename(File{Code: "../../etc", Title: "a/b", Filename: "x.png"})
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "..")
}

func TestAllowedContentTypeWithParams(t *testing.T) {
	assert.True(t, allowed("image/jpeg; charset=binary"))
	assert.False(t, allowed("image/webp"))
}
