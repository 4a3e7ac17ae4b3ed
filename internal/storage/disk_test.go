package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramseva/portal/internal/apperr"
)

func makeFileHeader(t *testing.T, filename, contentType string, size int) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func TestDiskStoreSaveAndRemove(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	file := makeFileHeader(t, "photo.png", "image/png", 128)
	path, err := store.Save(context.Background(), KindProfile, file)
	require.NoError(t, err)

	assert.Contains(t, path, string(KindProfile))
	assert.True(t, strings.HasSuffix(path, ".png"))

	info, err := os.Stat(filepath.FromSlash(path))
	require.NoError(t, err)
	assert.Equal(t, int64(128), info.Size())

	require.NoError(t, store.Remove(context.Background(), path))
	_, err = os.Stat(filepath.FromSlash(path))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStoreRemove_Missing(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	// A second compensating delete for the same path must not error.
	assert.NoError(t, store.Remove(context.Background(), filepath.Join(t.TempDir(), "gone.png")))
}

func TestDiskStoreSave_RejectsNonImage(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	file := makeFileHeader(t, "notes.txt", "text/plain", 16)
	_, err = store.Save(context.Background(), KindProfile, file)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestDiskStoreSave_RejectsSpoofedContentType(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	file := makeFileHeader(t, "photo.png", "application/octet-stream", 16)
	_, err = store.Save(context.Background(), KindProfile, file)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestDiskStoreSave_RejectsOversized(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	file := makeFileHeader(t, "big.jpg", "image/jpeg", MaxImageSize+1)
	_, err = store.Save(context.Background(), KindProfile, file)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestObjectNameUnique(t *testing.T) {
	t.Parallel()

	a := objectName(KindNotice, "pic.JPG")
	b := objectName(KindNotice, "pic.JPG")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "notices-"))
	assert.True(t, strings.HasSuffix(a, ".jpg"))
}
