package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileServer(t *testing.T, handler http.HandlerFunc) func(string) (string, error) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return func(fileID string) (string, error) {
		return fmt.Sprintf("%s/photos/%s.jpg", ts.URL, fileID), nil
	}
}

func TestImageDownloader_DownloadFile(t *testing.T) {
	var gotPath string
	getURL := fileServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	})

	dir := t.TempDir()
	path, err := NewImageDownloader(dir).DownloadFile(context.Background(), getURL, "foo")
	require.NoError(t, err)

	assert.Equal(t, "/photos/foo.jpg", gotPath)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".jpg", filepath.Ext(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF, 0xE0}, data)
}

func TestImageDownloader_FileURLError(t *testing.T) {
	getURL := func(string) (string, error) { return "", errors.New("file not found") }

	_, err := NewImageDownloader(t.TempDir()).DownloadFile(context.Background(), getURL, "foo")
	assert.ErrorContains(t, err, "failed to get file URL")
}

func TestImageDownloader_NotFound(t *testing.T) {
	getURL := fileServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	dir := t.TempDir()
	_, err := NewImageDownloader(dir).DownloadFile(context.Background(), getURL, "foo")
	assert.ErrorContains(t, err, "status 404")

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestImageDownloader_SizeLimit(t *testing.T) {
	getURL := fileServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 100))
	})

	dir := t.TempDir()
	_, err := NewImageDownloader(dir).WithMaxSize(50).DownloadFile(context.Background(), getURL, "foo")
	assert.ErrorIs(t, err, errImageTooLarge)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "partial download should be removed")
}

func TestImageDownloader_ContentLengthExceedsLimit(t *testing.T) {
	getURL := fileServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "999999999")
		w.WriteHeader(http.StatusOK)
	})

	_, err := NewImageDownloader(t.TempDir()).WithMaxSize(1000).DownloadFile(context.Background(), getURL, "foo")
	assert.ErrorIs(t, err, errImageTooLarge)
}

func TestImageDownloader_ContextCanceled(t *testing.T) {
	getURL := fileServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should have been canceled")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewImageDownloader(t.TempDir()).DownloadFile(ctx, getURL, "foo")
	assert.ErrorIs(t, err, context.Canceled)
}
