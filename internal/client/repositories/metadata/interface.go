// Package metadata is the key/value table of the on-device database. The
// token store keeps the sealed session blob here.
package metadata

import "context"

// Repository stores opaque blobs by key. Get returns (nil, nil) when the
// key was never set or has been deleted.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
