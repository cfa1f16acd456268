// Package minio persists compiled run artifacts (SBML-Qual, BMA-JSON,
// SIF/CSV/bnet sidecars) to an S3-compatible object store so a caller
// driving the worker asynchronously can fetch results after the run
// finishes (SPEC_FULL.md E.2 domain stack).
package minio

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/sbgnqual/internal/config"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// ArtifactStore uploads and fetches a single bucket's worth of
// compile-run output files.
type ArtifactStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
	logger logging.Logger
}

// NewArtifactStore connects to cfg.Endpoint and ensures cfg.Bucket
// exists, creating it if necessary.
func NewArtifactStore(ctx context.Context, cfg config.MinIOConfig, logger logging.Logger) (*ArtifactStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, cerrors.Wrap(cerrors.CodeObjectStoreIO, "minio: creating client", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.CodeObjectStoreIO, "minio: checking bucket", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, cerrors.Wrap(cerrors.CodeObjectStoreIO, fmt.Sprintf("minio: creating bucket %s", cfg.Bucket), err)
		}
		logger.Info("created artifact bucket", logging.String("bucket", cfg.Bucket))
	}

	expiry := cfg.PresignExpiry
	if expiry == 0 {
		expiry = 24 * time.Hour
	}
	return &ArtifactStore{client: client, bucket: cfg.Bucket, expiry: expiry, logger: logger}, nil
}

// objectName lays artifacts out as "<runID>/<name>", e.g.
// "a1b2c3/model.sbml" or "a1b2c3/model.bma.json".
func objectName(runID, name string) string {
	return runID + "/" + name
}

// Put uploads one artifact under the run's prefix.
func (s *ArtifactStore) Put(ctx context.Context, runID, name string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName(runID, name), r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return cerrors.Wrap(cerrors.CodeObjectStoreIO, "minio: put object", err)
	}
	return nil
}

// Get downloads one artifact. The caller must close the returned
// reader.
func (s *ArtifactStore) Get(ctx context.Context, runID, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName(runID, name), minio.GetObjectOptions{})
	if err != nil {
		return nil, cerrors.Wrap(cerrors.CodeObjectStoreIO, "minio: get object", err)
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, cerrors.Wrap(cerrors.CodeObjectStoreIO, "minio: stat object", err)
	}
	return obj, nil
}

// PresignedURL returns a time-limited GET URL for a run's artifact,
// for a caller that wants to hand the result to a browser or a
// downstream service without proxying the bytes itself.
func (s *ArtifactStore) PresignedURL(ctx context.Context, runID, name string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName(runID, name), s.expiry, nil)
	if err != nil {
		return "", cerrors.Wrap(cerrors.CodeObjectStoreIO, "minio: presign object", err)
	}
	return u.String(), nil
}

// Remove deletes every artifact stored under runID's prefix.
func (s *ArtifactStore) Remove(ctx context.Context, runID string) error {
	objectsCh := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    runID + "/",
		Recursive: true,
	})
	for obj := range objectsCh {
		if obj.Err != nil {
			return cerrors.Wrap(cerrors.CodeObjectStoreIO, "minio: listing objects", obj.Err)
		}
		if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return cerrors.Wrap(cerrors.CodeObjectStoreIO, "minio: removing object", err)
		}
	}
	return nil
}
