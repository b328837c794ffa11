package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/config"
)

// ObjectStore serves uploads from an S3 compatible bucket. Object keys are
// the stored paths without the public prefix.
type ObjectStore struct {
	client *minio.Client
	cfg    config.StorageConfig
}

func NewObjectStore(cfg config.StorageConfig) (*ObjectStore, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &ObjectStore{
		client: client,
		cfg:    cfg,
	}, nil
}

// CheckBucket fails when the uploads bucket is absent. Buckets are never
// created here; uploads are written by the intake service.
func (s *ObjectStore) CheckBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.cfg.Bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.cfg.Bucket)
	}
	return nil
}

func (s *ObjectStore) key(relPath string) string {
	return strings.TrimPrefix(path.Clean("/"+relPath), "/")
}

func (s *ObjectStore) Location(relPath string) string {
	return fmt.Sprintf("s3://%s/%s", s.cfg.Bucket, s.key(relPath))
}

func (s *ObjectStore) Open(ctx context.Context, relPath string) (*Object, error) {
	key := s.key(relPath)

	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.translate(err, key)
	}

	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, s.translate(err, key)
	}

	return &Object{Body: obj, Size: info.Size, Location: s.Location(relPath)}, nil
}

func (s *ObjectStore) Exists(ctx context.Context, relPath string) (bool, error) {
	key := s.key(relPath)
	if _, err := s.client.StatObject(ctx, s.cfg.Bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat object %s: %w", key, err)
	}
	return true, nil
}

func (s *ObjectStore) translate(err error, key string) error {
	if isNoSuchKey(err) {
		return fmt.Errorf("%w: s3://%s/%s", ErrObjectMissing, s.cfg.Bucket, key)
	}
	return fmt.Errorf("get object %s: %w", key, err)
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
