package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFixture(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("receipt", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1 << 20))

	return req.MultipartForm.File["receipt"][0]
}

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalReceiptStore(dir, "/uploads/")
	require.NoError(t, err)

	url, originalName, err := store.Save(uploadFixture(t, "recibo luz.pdf", "contenido"))
	require.NoError(t, err)

	assert.Equal(t, "recibo luz.pdf", originalName)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))

	// The stored filename is sanitized; the original name is preserved apart
	name := strings.TrimPrefix(url, "/uploads/")
	assert.NotContains(t, name, " ")

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))

	require.NoError(t, store.Remove(url))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveDoesNotOverwriteRepeatedUploads(t *testing.T) {
	store, err := NewLocalReceiptStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	first, _, err := store.Save(uploadFixture(t, "recibo.pdf", "uno"))
	require.NoError(t, err)
	second, _, err := store.Save(uploadFixture(t, "recibo.pdf", "dos"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	store, err := NewLocalReceiptStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.NoError(t, store.Remove("/uploads/1234_gone.pdf"))
}

func TestRemoveRejectsPathTraversal(t *testing.T) {
	store, err := NewLocalReceiptStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.Error(t, store.Remove("/uploads/../etc/passwd"))
	assert.Error(t, store.Remove("/uploads/"))
}
