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

func TestLocalStorage_UploadExistsDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("hello"), "leave/abc.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "leave/abc.pdf", key)

	content, err := os.ReadFile(filepath.Join(dir, "leave", "abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/uploads/leave/abc.pdf", s.URL(key))

	require.NoError(t, s.Delete(ctx, key))
	ok, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), strings.NewReader("x"), "../escape.txt", "text/plain")
	assert.ErrorContains(t, err, "invalid file path")

	_, err = s.Exists(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}
