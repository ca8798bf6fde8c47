// Package storage keeps product images in a public object bucket.
package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"urbantide.com/store/internal/shared/slug"
)

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

// Storage is a public bucket. EnsureBucket is idempotent: a bucket that
// already exists is not an error. KeyFor maps a public URL back to its
// object key and reports false for URLs this bucket did not issue.
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
	EnsureBucket(ctx context.Context) error
	KeyFor(url string) (string, bool)
}

// keyUnder returns the part of url after base, when url is base plus a
// non-empty key.
func keyUnder(url, base string) (string, bool) {
	if base == "" || !strings.HasPrefix(url, base) {
		return "", false
	}
	key := strings.TrimPrefix(url, base)
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}

// objectKey names an upload after the file plus a random suffix, so two
// uploads of "polo.jpg" never collide.
func objectKey(filename string) string {
	ext := safeExt(filename)
	base := strings.TrimSuffix(path.Base(filepath.ToSlash(filename)), filepath.Ext(filename))
	return slug.FromName(base) + "-" + uuid.NewString() + ext
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif", ".avif":
		return ext
	default:
		return ""
	}
}
