// Package storage is the binary object store: opaque byte payloads addressed
// by hierarchical path, decoupled from the structured document store. Faults
// surface to the caller; there is no retry policy here.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	miniodb "github.com/webdroid21/fin-beacon-pro-sub001/internal/database/minio"
)

const presignExpiry = 24 * time.Hour

type ObjectStore struct {
	mc          *miniodb.MinioClient
	bucket      string
	resourceURL string
}

func NewObjectStore(mc *miniodb.MinioClient) *ObjectStore {
	cfg := mc.GetConfig()
	return &ObjectStore{
		mc:          mc,
		bucket:      cfg.MinioBucket,
		resourceURL: strings.TrimRight(cfg.MinioResourceURL, "/"),
	}
}

// Upload stores the payload at path and returns a resolvable download URL.
func (s *ObjectStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	reader := bytes.NewReader(data)
	_, err := s.mc.GetClient().PutObject(ctx, s.bucket, path, reader, int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", &ObjectWriteError{Path: path, Err: err}
	}

	slog.Info("object uploaded", "bucket", s.bucket, "path", path, "size", len(data))
	return s.publicURL(path), nil
}

// UploadHandle tracks an in-flight upload. Cancel aborts the transfer; the
// destination path may then be partially written and should be re-uploaded or
// deleted by the caller.
type UploadHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	url    string
	err    error
}

// Wait blocks until the transfer completes or is cancelled and returns the
// download URL or the transfer fault.
func (h *UploadHandle) Wait() (string, error) {
	<-h.done
	return h.url, h.err
}

// Cancel withdraws the in-flight transfer. No partial-object cleanup is
// attempted.
func (h *UploadHandle) Cancel() {
	h.cancel()
	<-h.done
}

// UploadWithProgress is Upload with progress callbacks: onProgress receives
// monotonically non-decreasing percentages and 100 only on successful
// completion.
func (s *ObjectStore) UploadWithProgress(ctx context.Context, path string, data []byte, onProgress func(float64), contentType string) *UploadHandle {
	ctx, cancel := context.WithCancel(ctx)
	h := &UploadHandle{cancel: cancel, done: make(chan struct{})}
	pr := newProgressReader(bytes.NewReader(data), int64(len(data)), onProgress)

	go func() {
		defer close(h.done)
		defer cancel()

		_, err := s.mc.GetClient().PutObject(ctx, s.bucket, path, pr, int64(len(data)),
			minio.PutObjectOptions{ContentType: contentType})
		if err != nil {
			h.err = &ObjectWriteError{Path: path, Err: err}
			return
		}
		pr.finish()
		h.url = s.publicURL(path)
	}()

	return h
}

// ResolveURL returns a fetchable URL for an already-stored object.
func (s *ObjectStore) ResolveURL(ctx context.Context, path string) (string, error) {
	if err := s.stat(ctx, path); err != nil {
		return "", err
	}

	presigned, err := s.mc.GetClient().PresignedGetObject(ctx, s.bucket, path, presignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL for %s: %w", path, err)
	}
	return presigned.String(), nil
}

// Remove deletes the object at path. A missing object is a fault here,
// unlike document-store deletes: MinIO removes silently, so existence is
// checked first.
func (s *ObjectStore) Remove(ctx context.Context, path string) error {
	if err := s.stat(ctx, path); err != nil {
		return err
	}

	if err := s.mc.GetClient().RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return &ObjectWriteError{Path: path, Err: err}
	}

	slog.Info("object removed", "bucket", s.bucket, "path", path)
	return nil
}

func (s *ObjectStore) stat(ctx context.Context, path string) error {
	_, err := s.mc.GetClient().StatObject(ctx, s.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return &ObjectNotFoundError{Path: path}
		}
		return &ObjectWriteError{Path: path, Err: err}
	}
	return nil
}

func (s *ObjectStore) publicURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.resourceURL, s.bucket, path)
}
