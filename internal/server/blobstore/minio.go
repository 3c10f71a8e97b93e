package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/dmitrijs2005/forkvault/internal/common"
	"github.com/dmitrijs2005/forkvault/internal/filex"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioAPI is the part of the MinIO client the store uses. Fetch reads a
// whole object.
type minioAPI interface {
	PutObject(ctx context.Context, bucket, name string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	Fetch(ctx context.Context, bucket, name string) ([]byte, error)
	RemoveObject(ctx context.Context, bucket, name string, opts minio.RemoveObjectOptions) error
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
}

type minioClient struct {
	*minio.Client
}

func (c minioClient) Fetch(ctx context.Context, bucket, name string) ([]byte, error) {
	obj, err := c.GetObject(ctx, bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

var newMinIOClient = func(endpoint string, opts *minio.Options) (minioAPI, error) {
	c, err := minio.New(endpoint, opts)
	if err != nil {
		return nil, err
	}
	return minioClient{c}, nil
}

type MinIOStore struct {
	api    minioAPI
	bucket string
}

// NewMinIOStore connects with static V4 credentials. Endpoint may be a
// bare host:port or a URL; an https scheme turns TLS on.
func NewMinIOStore(c Config) (*MinIOStore, error) {
	host, secure, err := splitEndpoint(c.Endpoint)
	if err != nil {
		return nil, err
	}
	api, err := newMinIOClient(host, &minio.Options{
		Creds:  credentials.NewStaticV4(c.User, c.Password, ""),
		Secure: secure,
		Region: c.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &MinIOStore{api: api, bucket: c.Bucket}, nil
}

func splitEndpoint(endpoint string) (string, bool, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		if endpoint == "" {
			return "", false, fmt.Errorf("minio endpoint is empty")
		}
		return endpoint, false, nil
	}
	return u.Host, u.Scheme == "https", nil
}

func (m *MinIOStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := m.api.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: filex.DetectContentType(key, data),
	})
	if err != nil {
		return fmt.Errorf("minio put %s: %w", key, err)
	}
	return nil
}

func (m *MinIOStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := m.api.Fetch(ctx, m.bucket, key)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("minio get %s: %w", key, err)
	}
	return data, nil
}

func (m *MinIOStore) Delete(ctx context.Context, key string) error {
	if err := m.api.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio delete %s: %w", key, err)
	}
	return nil
}

func (m *MinIOStore) EnsureBucket(ctx context.Context) error {
	exists, err := m.api.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := m.api.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed creating bucket %s: %w", m.bucket, err)
	}
	return nil
}
