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

func TestLocalPutAndDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	l := NewLocal(dir, "products", "/uploads/")

	require.NoError(t, l.EnsureBucket(ctx))
	require.NoError(t, l.EnsureBucket(ctx))

	res, err := l.Put(ctx, strings.NewReader("img"), PutInput{Filename: "Polo Navy.JPG"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Key, "polo-navy-"), res.Key)
	assert.True(t, strings.HasSuffix(res.Key, ".jpg"), res.Key)
	assert.Equal(t, "/uploads/products/"+res.Key, res.URL)

	b, err := os.ReadFile(filepath.Join(dir, "products", res.Key))
	require.NoError(t, err)
	assert.Equal(t, "img", string(b))

	key, ok := l.KeyFor(res.URL)
	require.True(t, ok)
	assert.Equal(t, res.Key, key)

	require.NoError(t, l.Delete(ctx, key))
	require.NoError(t, l.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(dir, "products", res.Key))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalKeyForRejectsForeignURLs(t *testing.T) {
	l := NewLocal(t.TempDir(), "products", "/uploads")
	for _, url := range []string{
		"/polo.jpg",
		"/uploads/products/",
		"/uploads/other/a.jpg",
		"/uploads/products/nested/a.jpg",
		"/uploads/products/../secret",
		"https://cdn.example.com/a.jpg",
	} {
		_, ok := l.KeyFor(url)
		assert.False(t, ok, url)
	}
}

func TestObjectKeyDropsUnsafeExtensions(t *testing.T) {
	k1 := objectKey("../../etc/passwd.sh")
	k2 := objectKey("../../etc/passwd.sh")
	assert.NotEqual(t, k1, k2)
	assert.True(t, strings.HasPrefix(k1, "passwd-"), k1)
	assert.NotContains(t, k1, "/")
	assert.False(t, strings.HasSuffix(k1, ".sh"))
}
