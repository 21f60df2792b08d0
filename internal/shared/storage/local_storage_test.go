package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/storage"
	"github.com/stretchr/testify/assert"
)

func TestLocalStorage_UploadDownloadDelete(t *testing.T) {
	ctx := context.Background()
	s, err := storage.NewLocalStorage(t.TempDir())
	assert.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("%PDF-1.3"), "salary_slips/2026/slip.pdf", "application/pdf")
	assert.NoError(t, err)
	assert.Equal(t, "salary_slips/2026/slip.pdf", key)

	rc, err := s.Download(ctx, key)
	assert.NoError(t, err)
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "%PDF-1.3", string(data))

	assert.NoError(t, s.Delete(ctx, key))
	assert.NoError(t, s.Delete(ctx, key))

	_, err = s.Download(ctx, key)
	assert.True(t, errors.Is(err, storage.ErrFileNotFound))
}

func TestLocalStorage_KeyStaysInsideBase(t *testing.T) {
	ctx := context.Background()
	s, err := storage.NewLocalStorage(t.TempDir())
	assert.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("x"), "../../etc/passwd", "text/plain")
	assert.NoError(t, err)
	assert.Equal(t, "etc/passwd", key)

	_, err = s.Upload(ctx, strings.NewReader("x"), "/", "text/plain")
	assert.Error(t, err)
}
