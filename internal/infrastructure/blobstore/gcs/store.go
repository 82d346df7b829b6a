// Package gcs provides a BlobStore implementation backed by Google Cloud
// Storage.
package gcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/ersonp/feedback-curator/internal/domain/ports"
)

const (
	readTimeout  = 30 * time.Second
	writeTimeout = 2 * time.Minute
	listTimeout  = 30 * time.Second
)

// Store implements the BlobStore interface using GCS.
type Store struct {
	client *storage.Client
}

// NewStore creates a new GCS-backed store. When STORAGE_EMULATOR_HOST is set
// the client talks to the emulator without authentication.
func NewStore(ctx context.Context) (*Store, error) {
	var opts []option.ClientOption
	if os.Getenv("STORAGE_EMULATOR_HOST") != "" {
		opts = append(opts, option.WithoutAuthentication())
	} else {
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &Store{client: client}, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Put writes the full object in one upload. Entry objects are JSON and are
// served uncached so reviewers always see the latest write.
func (s *Store) Put(ctx context.Context, bucket, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	w := s.client.Bucket(bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/json"
	w.CacheControl = "no-cache"
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("writing gs://%s/%s: %w", bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing writer for gs://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// Get reads the full object at key.
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	r, err := s.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("opening gs://%s/%s: %w", bucket, key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading gs://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// List returns all object names under the prefix.
func (s *Store) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	it := s.client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	var keys []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing gs://%s/%s: %w", bucket, prefix, err)
		}
		keys = append(keys, attrs.Name)
	}
	return keys, nil
}

// Delete removes the object at key.
func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	if err := s.client.Bucket(bucket).Object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return ports.ErrNotFound
		}
		return fmt.Errorf("deleting gs://%s/%s: %w", bucket, key, err)
	}
	return nil
}
