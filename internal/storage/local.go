package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/apperror"
)

// Local stores blobs under baseDir/<bucket>/ and hands out relative
// path-style locators ("/uploads/<bucket>/<escaped key>"), with the
// key percent-escaped the same way the remote backend escapes it. It
// is the offline fallback when no remote credentials are configured.
type Local struct {
	baseDir string
}

func NewLocal(baseDir string) (*Local, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Local{baseDir: baseDir}, nil
}

func (l *Local) openBucket(bucket string) (*blob.Bucket, error) {
	return fileblob.OpenBucket(filepath.Join(l.baseDir, bucket), &fileblob.Options{CreateDir: true})
}

func (l *Local) UploadBuffer(ctx context.Context, bucket string, data []byte, fileName, contentType string) (string, error) {
	b, err := l.openBucket(bucket)
	if err != nil {
		return "", apperror.Storage("upload", err)
	}
	defer b.Close()

	key := uniqueKey(fileName)
	if err := b.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return "", apperror.Storage("upload", err)
	}

	return fmt.Sprintf("/uploads/%s/%s", bucket, url.PathEscape(key)), nil
}

func (l *Local) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	b, err := l.openBucket(bucket)
	if err != nil {
		return nil, apperror.Storage("download", err)
	}
	defer b.Close()

	data, err := b.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("object %q: %w", key, apperror.ErrNotFound)
		}
		return nil, apperror.Storage("download", err)
	}
	return data, nil
}

func (l *Local) Delete(ctx context.Context, bucket, key string) error {
	b, err := l.openBucket(bucket)
	if err != nil {
		return apperror.Storage("delete", err)
	}
	defer b.Close()

	if err := b.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}
		return apperror.Storage("delete", err)
	}
	return nil
}

func (l *Local) Exists(ctx context.Context, bucket, key string) (bool, error) {
	b, err := l.openBucket(bucket)
	if err != nil {
		return false, apperror.Storage("exists", err)
	}
	defer b.Close()

	ok, err := b.Exists(ctx, key)
	if err != nil {
		return false, apperror.Storage("exists", err)
	}
	return ok, nil
}

var _ FileStorage = (*Local)(nil)
