package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
	"github.com/dmitrijs2005/gamekeeper/internal/server/objectstore"
)

const maxObjectNameLength = 1024

// ErrBucketNotFound is returned for any bucket other than the public images bucket.
var ErrBucketNotFound = fmt.Errorf("%w: Bucket not found", common.ErrorNotFound)

// StorageService validates uploads to the public images bucket and builds
// public URLs for stored objects.
type StorageService struct {
	store   objectstore.Store
	maxSize int64
	logger  logging.Logger
}

func NewStorageService(store objectstore.Store, maxSize int64, l logging.Logger) *StorageService {
	return &StorageService{store: store, maxSize: maxSize, logger: l.With("module", "storage_service")}
}

// Upload stores data as bucket/name and returns that key. Existing objects
// are never replaced. An empty contentType is detected from the bytes.
func (s *StorageService) Upload(ctx context.Context, userID, bucket, name, contentType string, data []byte) (string, error) {
	if err := validateLocation(bucket, name); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", invalid("Empty object")
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return "", invalid("The object exceeded the maximum allowed size")
	}
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}

	if err := s.store.Put(ctx, bucket, name, contentType, data); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return "", common.ErrAlreadyExists
		}
		return "", fmt.Errorf("error storing object: %w", err)
	}

	key := bucket + "/" + name
	s.logger.Info(ctx, "object stored", "key", key, "user_id", userID, "size", len(data), "content_type", contentType)
	return key, nil
}

// PublicURL returns the public address of bucket/name. It does not check
// that the object exists.
func (s *StorageService) PublicURL(bucket, name string) (string, error) {
	if err := validateLocation(bucket, name); err != nil {
		return "", err
	}
	return s.store.PublicURL(bucket, name), nil
}

func validateLocation(bucket, name string) error {
	if bucket != common.GameImagesBucket {
		return ErrBucketNotFound
	}
	if name == "" || len(name) > maxObjectNameLength ||
		strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return invalid("Invalid key: " + name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return invalid("Invalid key: " + name)
		}
	}
	return nil
}
