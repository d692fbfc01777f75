package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUpload(t *testing.T, dir, name string, size int) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o644))
}

func TestThumbnailResolver_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/missing.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	resolver := NewThumbnailResolver(t.TempDir(), srv.Client())

	t.Run("reachable URL is stored verbatim", func(t *testing.T) {
		url := srv.URL + "/ok.png"
		got, err := resolver.Resolve(context.Background(), url)
		require.NoError(t, err)
		assert.Equal(t, url, got)
	})

	t.Run("non-2xx fails the row", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), srv.URL+"/missing.png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "returned HTTP 404")
	})

	t.Run("unreachable host fails the row", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "http://127.0.0.1:1/x.png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unreachable")
	})
}

func TestThumbnailResolver_Local(t *testing.T) {
	dir := t.TempDir()
	writeUpload(t, dir, "Space Runner.PNG", 128)
	writeUpload(t, dir, "other.jpg", 64)

	resolver := NewThumbnailResolver(dir, nil)

	t.Run("case-insensitive match returns on-disk casing", func(t *testing.T) {
		got, err := resolver.Resolve(context.Background(), "space runner.png")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/Space Runner.PNG", got)
	})

	t.Run("uploads/ prefix is stripped before matching", func(t *testing.T) {
		got, err := resolver.Resolve(context.Background(), "uploads/other.jpg")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/other.jpg", got)
	})

	t.Run("invalid filename is rejected before disk access", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "bad|name.png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is invalid")
	})

	t.Run("unsupported extension is rejected", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "thumb.bmp")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is invalid")
	})

	t.Run("miss lists the directory contents", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "nope.png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found in upload directory")
		assert.Contains(t, err.Error(), "Space Runner.PNG")
		assert.Contains(t, err.Error(), "other.jpg")
	})

	t.Run("cjk filename is allowed", func(t *testing.T) {
		writeUpload(t, dir, "超级玛丽.png", 32)
		got, err := resolver.Resolve(context.Background(), "超级玛丽.png")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/超级玛丽.png", got)
	})
}

func TestThumbnailResolver_LocalSizeLimit(t *testing.T) {
	dir := t.TempDir()
	writeUpload(t, dir, "huge.png", maxThumbnailSize+1)

	resolver := NewThumbnailResolver(dir, nil)

	_, err := resolver.Resolve(context.Background(), "huge.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeding the 5 MiB limit")
}
