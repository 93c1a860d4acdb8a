package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gocloud.dev/blob"
	"gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/apperror"
)

// Remote stores blobs in an S3-compatible object store and hands out
// public URLs as locators.
type Remote struct {
	client   *s3.Client
	endpoint string
}

func NewRemote(cfg Config) *Remote {
	awsCfg := aws.Config{
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		BaseEndpoint: aws.String(cfg.Endpoint),
		Region:       cfg.Region,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &Remote{
		client:   client,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
	}
}

func (r *Remote) openBucket(ctx context.Context, bucket string) (*blob.Bucket, error) {
	return s3blob.OpenBucketV2(ctx, r.client, bucket, nil)
}

func (r *Remote) UploadBuffer(ctx context.Context, bucket string, data []byte, fileName, contentType string) (string, error) {
	b, err := r.openBucket(ctx, bucket)
	if err != nil {
		return "", apperror.Storage("upload", err)
	}
	defer b.Close()

	key := uniqueKey(fileName)
	w, err := b.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", apperror.Storage("upload", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", apperror.Storage("upload", err)
	}
	if err := w.Close(); err != nil {
		return "", apperror.Storage("upload", err)
	}

	return fmt.Sprintf("%s/%s/%s", r.endpoint, bucket, url.PathEscape(key)), nil
}

func (r *Remote) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	b, err := r.openBucket(ctx, bucket)
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

func (r *Remote) Delete(ctx context.Context, bucket, key string) error {
	b, err := r.openBucket(ctx, bucket)
	if err != nil {
		return apperror.Storage("delete", err)
	}
	defer b.Close()

	if err := b.Delete(ctx, key); err != nil {
		// Absence is not a failure: the cleanup goal is already met.
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}
		return apperror.Storage("delete", err)
	}
	return nil
}

func (r *Remote) Exists(ctx context.Context, bucket, key string) (bool, error) {
	b, err := r.openBucket(ctx, bucket)
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

var _ FileStorage = (*Remote)(nil)
