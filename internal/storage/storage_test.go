package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStorage(root, "http://localhost:8080/")

	key := "object_images/42/test.png"
	url, err := store.Save(context.Background(), key, "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/object_images/42/test.png", url)

	data, err := os.ReadFile(filepath.Join(root, "object_images", "42", "test.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), key))
	_, err = os.Stat(filepath.Join(root, "object_images", "42", "test.png"))
	assert.True(t, os.IsNotExist(err))

	// Deleting again is not an error.
	require.NoError(t, store.Delete(context.Background(), key))
}

func TestMakeKeyIsUniqueAndKeepsExtension(t *testing.T) {
	k1 := MakeKey("company_logos/7", "logo.png")
	k2 := MakeKey("company_logos/7", "logo.png")

	assert.True(t, strings.HasPrefix(k1, "company_logos/7/"))
	assert.True(t, strings.HasSuffix(k1, ".png"))
	assert.NotEqual(t, k1, k2)
}

func TestKeyFromURL(t *testing.T) {
	key, ok := KeyFromURL("https://s3.cloud.example/crm-media/object_images/42/123_ab.png")
	require.True(t, ok)
	assert.Equal(t, "object_images/42/123_ab.png", key)

	key, ok = KeyFromURL("http://localhost:8080/uploads/company_logos/7/1_cd.jpg")
	require.True(t, ok)
	assert.Equal(t, "company_logos/7/1_cd.jpg", key)

	_, ok = KeyFromURL("https://example.com/something-else.png")
	assert.False(t, ok)
}

func TestS3PublicURL(t *testing.T) {
	s := &S3Storage{opts: S3Options{Bucket: "crm-media", Region: "ru-1", Endpoint: "https://s3.cloud.example/"}}
	assert.Equal(t, "https://s3.cloud.example/crm-media/a/b.png", s.PublicURL("a/b.png"))

	s = &S3Storage{opts: S3Options{Bucket: "crm-media", Region: "eu-central-1"}}
	assert.Equal(t, "https://crm-media.s3.eu-central-1.amazonaws.com/a/b.png", s.PublicURL("a/b.png"))
}
