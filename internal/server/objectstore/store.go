// Package objectstore keeps uploaded objects either in an S3-compatible
// bucket or in a local directory served by the HTTP gateway.
package objectstore

import (
	"context"
	"net/url"
	"strings"
)

// Store is the minimal object API the storage service needs. Put never
// overwrites: an existing object yields common.ErrAlreadyExists.
type Store interface {
	Put(ctx context.Context, bucket, name, contentType string, data []byte) error
	Exists(ctx context.Context, bucket, name string) (bool, error)
	PublicURL(bucket, name string) string
}

// escapeName escapes each path segment of an object name for use in a URL.
func escapeName(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
