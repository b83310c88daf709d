package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/severetsunamist/real-estate-crm/internal/config"
)

// FileStorage is the pluggable media backend: local disk in
// development, S3-compatible object storage in production.
type FileStorage interface {
	// Save writes the file under key and returns its public URL.
	Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error)
	// Delete removes the file under key. Missing files are not an error.
	Delete(ctx context.Context, key string) error
}

// FromConfig selects the backend: S3 when the object-storage
// credentials are configured, local disk otherwise.
func FromConfig(ctx context.Context, cfg *config.Config) (FileStorage, error) {
	if cfg.S3Enabled() {
		store, err := NewS3Storage(ctx, S3Options{
			Endpoint:        cfg.S3Endpoint,
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init S3 storage: %w", err)
		}
		log.Printf("[STORAGE] Using S3 backend (bucket=%s)", cfg.S3Bucket)
		return store, nil
	}
	log.Println("[STORAGE] Using local backend")
	return NewLocalStorage("./uploads", cfg.MediaBaseURL), nil
}

// MakeKey builds a unique object key under prefix, keeping the
// original extension. Uniqueness (timestamp + uuid) means an upload
// never overwrites an earlier file with the same name.
func MakeKey(prefix, filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("%s/%d_%s%s", prefix, time.Now().UnixNano(), uuid.NewString()[:8], ext)
}

// Media key prefixes, one per upload kind.
var keyPrefixes = []string{"company_logos/", "object_images/", "floorplans/"}

// KeyFromURL recovers the storage key from a public media URL so the
// backing file can be deleted with its row.
func KeyFromURL(url string) (string, bool) {
	for _, p := range keyPrefixes {
		if i := strings.Index(url, "/"+p); i >= 0 {
			return url[i+1:], true
		}
	}
	return "", false
}
