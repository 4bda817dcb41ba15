package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamNotify/internal/domain"
)

func TestImageStore_FetchAndRemove(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jtv_user_pictures/somestreamer-profile_image-300x300.jpeg", r.URL.Path)
		_, _ = w.Write([]byte("jpegbytes"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "icons")
	store := NewImageStore(dir, nil)

	p, err := store.Fetch(context.Background(), domain.Broadcaster{
		Login:           "SomeStreamer",
		ProfileImageURL: srv.URL + "/jtv_user_pictures/somestreamer-profile_image-300x300.jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "somestreamer.jpeg"), p)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "jpegbytes", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary download file left behind")

	require.NoError(t, store.Remove(p))
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, store.Remove(p))
}

func TestImageStore_FetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	store := NewImageStore(t.TempDir(), nil)

	_, err := store.Fetch(context.Background(), domain.Broadcaster{Login: "x"})
	require.Error(t, err)

	_, err = store.Fetch(context.Background(), domain.Broadcaster{Login: "x", ProfileImageURL: srv.URL + "/a.png"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "abc.png", fileName(domain.Broadcaster{Login: "ABC", ProfileImageURL: "https://x/y.webp"}))
	assert.Equal(t, "abc.jpg", fileName(domain.Broadcaster{Login: "abc", ProfileImageURL: "https://x/y.JPG"}))
	assert.Equal(t, "42.png", fileName(domain.Broadcaster{ID: "42"}))
}
