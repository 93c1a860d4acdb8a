// Package storage is the file-attachment storage abstraction: one
// interface over a remote object store and a local filesystem
// fallback. The backend is chosen once, at construction, from the
// injected configuration — never re-read from the environment inside
// business logic.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// FileStorage stores, retrieves and deletes binary blobs under named
// buckets. UploadBuffer returns a durable locator string that can be
// parsed back into the object key (see ObjectKeyFromLocator).
type FileStorage interface {
	// UploadBuffer stores data under a disambiguated key derived from
	// fileName and returns the blob locator. Failures surface as
	// *apperror.StorageError; no metadata may be assumed written.
	UploadBuffer(ctx context.Context, bucket string, data []byte, fileName, contentType string) (string, error)

	// Download returns the exact bytes previously stored under key,
	// or apperror.ErrNotFound when the key does not exist.
	Download(ctx context.Context, bucket, key string) ([]byte, error)

	// Delete removes the object. Absence of the target is not an
	// error; deletion is best-effort cleanup and callers log failures
	// instead of aborting.
	Delete(ctx context.Context, bucket, key string) error

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// Config carries the remote credentials and the local fallback
// directory. Remote storage is used only when Endpoint, AccessKey and
// SecretKey are all set.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UploadDir string
}

func (c Config) remoteConfigured() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != ""
}

// New selects the backend once, at startup. Without remote credentials
// the service runs in degraded/offline mode against the local
// filesystem.
func New(cfg Config, logger *slog.Logger) (FileStorage, error) {
	if cfg.remoteConfigured() {
		logger.Info("using remote object storage", "endpoint", cfg.Endpoint)
		return NewRemote(cfg), nil
	}

	logger.Warn("object storage not configured, falling back to local filesystem", "dir", cfg.UploadDir)
	return NewLocal(cfg.UploadDir)
}

// uniqueKey prefixes the original filename with a millisecond
// timestamp so unrelated uploads sharing a filename cannot collide.
// The stored metadata keeps the original name for display; the
// locator encodes this disambiguated key.
func uniqueKey(fileName string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), fileName)
}
