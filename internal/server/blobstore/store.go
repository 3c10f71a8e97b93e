// Package blobstore keeps fork contents in object storage. Keys are the
// storage paths recorded on file rows.
package blobstore

import (
	"context"
	"fmt"
)

// Store is a flat key/value blob store. Get of a missing key returns
// common.ErrorNotFound.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Backend names accepted by New.
const (
	BackendS3     = "s3"
	BackendMinIO  = "minio"
	BackendMemory = "memory"
)

// Config is what the S3-compatible backends need.
type Config struct {
	Backend  string
	User     string
	Password string
	Bucket   string
	Region   string
	Endpoint string
}

// New builds the configured backend and makes sure its bucket exists.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendS3, "":
		s, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case BackendMinIO:
		m, err := NewMinIOStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := m.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return m, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.Backend)
	}
}
