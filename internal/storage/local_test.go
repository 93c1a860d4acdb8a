package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/apperror"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	return l
}

func TestLocal_RoundTrip(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()
	payload := []byte("pdf bytes")

	locator, err := l.UploadBuffer(ctx, "templates", payload, "report.pdf", "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(locator, "/uploads/templates/"), "locator %q", locator)

	key := ObjectKeyFromLocator(locator)
	require.NotEmpty(t, key)
	assert.True(t, strings.HasSuffix(key, "-report.pdf"), "key %q keeps the original filename", key)

	data, err := l.Download(ctx, "templates", key)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	ok, err := l.Exists(ctx, "templates", key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocal_RoundTripURLSignificantFilenames(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()

	// Filenames whose bytes are significant to URL parsing must still
	// round-trip through the locator exactly.
	for _, fileName := range []string{
		"report#1.pdf",
		"q?x.pdf",
		"50% off.pdf",
		"a%20b.pdf",
		"relatório final.pdf",
	} {
		t.Run(fileName, func(t *testing.T) {
			payload := []byte("payload for " + fileName)

			locator, err := l.UploadBuffer(ctx, "templates", payload, fileName, "application/pdf")
			require.NoError(t, err)

			key := ObjectKeyFromLocator(locator)
			require.NotEmpty(t, key)
			assert.True(t, strings.HasSuffix(key, "-"+fileName), "key %q", key)

			data, err := l.Download(ctx, "templates", key)
			require.NoError(t, err)
			assert.Equal(t, payload, data)
		})
	}
}

func TestLocal_SameFilenameDistinctKeys(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()

	first, err := l.UploadBuffer(ctx, "templates", []byte("v1"), "report.pdf", "application/pdf")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond) // keys are timestamp-prefixed
	second, err := l.UploadBuffer(ctx, "templates", []byte("v2"), "report.pdf", "application/pdf")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	data, err := l.Download(ctx, "templates", ObjectKeyFromLocator(first))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), data)
}

func TestLocal_BucketIsolation(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()

	locator, err := l.UploadBuffer(ctx, "templates", []byte("x"), "report.pdf", "application/pdf")
	require.NoError(t, err)
	key := ObjectKeyFromLocator(locator)

	ok, err := l.Exists(ctx, "documents", key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocal_DownloadMissing(t *testing.T) {
	l := newTestLocal(t)

	_, err := l.Download(context.Background(), "templates", "no-such-key.pdf")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLocal_DeleteIdempotent(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()

	locator, err := l.UploadBuffer(ctx, "templates", []byte("x"), "report.pdf", "application/pdf")
	require.NoError(t, err)
	key := ObjectKeyFromLocator(locator)

	require.NoError(t, l.Delete(ctx, "templates", key))

	_, err = l.Download(ctx, "templates", key)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.NoError(t, l.Delete(ctx, "templates", key), "deleting a missing object is not an error")
}
