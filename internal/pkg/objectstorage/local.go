package objectstorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/berkeley-decal/decal-portal/internal/pkg/logger"
)

// LocalStore persists objects on the local filesystem under
// basePath/bucket/objectPath. It mirrors the bucket/prefix layout of the
// hosted object store so the rest of the code is deployment-agnostic.
type LocalStore struct {
	basePath string // root directory for all buckets
	bucket   string // logical bucket name, part of the on-disk path
	baseURL  string // prepended to object paths to form public URLs
}

// NewLocalStore creates a LocalStore and ensures the bucket directory exists.
func NewLocalStore(basePath, bucket, baseURL string) (*LocalStore, error) {
	bucketDir := filepath.Join(basePath, bucket)
	if err := os.MkdirAll(bucketDir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", bucketDir).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", bucketDir, err)
	}
	logger.Info().Str("path", bucketDir).Msg("Local object storage directory ensured")

	return &LocalStore{
		basePath: basePath,
		bucket:   bucket,
		baseURL:  baseURL,
	}, nil
}

// diskPath resolves an object path to its on-disk location, refusing paths
// that would escape the bucket directory.
func (s *LocalStore) diskPath(objectPath string) (string, error) {
	cleaned := filepath.Clean("/" + objectPath)
	if cleaned == "/" || strings.Contains(objectPath, "..") {
		return "", fmt.Errorf("invalid object path: %s", objectPath)
	}
	return filepath.Join(s.basePath, s.bucket, cleaned), nil
}

// Upload writes the object content and returns its public URL.
func (s *LocalStore) Upload(ctx context.Context, objectPath, contentType string, content io.Reader) (string, error) {
	dstPath, err := s.diskPath(objectPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create object prefix directory")
		return "", fmt.Errorf("failed to create object prefix directory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create object file")
		return "", fmt.Errorf("failed to create object file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, content); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write object content")
		// Remove the partially written object
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to write object content: %w", err)
	}

	logger.Info().Str("object", objectPath).Str("contentType", contentType).Msg("Object stored")
	return s.PublicURL(objectPath), nil
}

// Download returns the object's content.
func (s *LocalStore) Download(ctx context.Context, objectPath string) ([]byte, error) {
	srcPath, err := s.diskPath(objectPath)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(srcPath)
	if err != nil {
		logger.Error().Err(err).Str("object", objectPath).Msg("Failed to read object")
		return nil, fmt.Errorf("failed to read object %s: %w", objectPath, err)
	}
	return content, nil
}

// Delete removes an object. Deleting a missing object succeeds (idempotent).
func (s *LocalStore) Delete(ctx context.Context, objectPath string) error {
	dstPath, err := s.diskPath(objectPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(dstPath); os.IsNotExist(err) {
		logger.Warn().Str("object", objectPath).Msg("Object to delete does not exist")
		return nil
	}

	if err := os.Remove(dstPath); err != nil {
		logger.Error().Err(err).Str("object", objectPath).Msg("Failed to delete object")
		return fmt.Errorf("failed to delete object: %w", err)
	}

	logger.Info().Str("object", objectPath).Msg("Object deleted")
	return nil
}

// PublicURL returns the URL the object is served under.
func (s *LocalStore) PublicURL(objectPath string) string {
	return strings.TrimRight(s.baseURL, "/") + "/" + s.bucket + "/" + strings.TrimLeft(objectPath, "/")
}
