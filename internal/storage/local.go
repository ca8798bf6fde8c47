package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores objects under BaseDir/Bucket and serves them from
// URLPrefix/Bucket.
type Local struct {
	BaseDir   string
	Bucket    string
	URLPrefix string
}

func NewLocal(baseDir, bucket, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, Bucket: bucket, URLPrefix: urlPrefix}
}

func (l *Local) dir() string { return filepath.Join(l.BaseDir, l.Bucket) }

func (l *Local) EnsureBucket(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.MkdirAll(l.dir(), 0o755)
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	if err := l.EnsureBucket(ctx); err != nil {
		return PutResult{}, err
	}

	key := objectKey(in.Filename)
	f, err := os.OpenFile(filepath.Join(l.dir(), key), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return PutResult{}, err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return PutResult{}, err
	}
	if err := f.Close(); err != nil {
		return PutResult{}, err
	}

	return PutResult{Key: key, URL: l.urlBase() + key}, nil
}

func (l *Local) urlBase() string {
	return strings.TrimRight(l.URLPrefix, "/") + "/" + l.Bucket + "/"
}

// KeyFor accepts only flat keys directly under the bucket URL.
func (l *Local) KeyFor(url string) (string, bool) {
	key, ok := keyUnder(url, l.urlBase())
	if !ok || strings.Contains(key, "/") {
		return "", false
	}
	return key, true
}

func (l *Local) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(l.dir(), filepath.Base(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.dir()) }
