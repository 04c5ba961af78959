package objectstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/filex"
)

// PublicPathPrefix is where the HTTP gateway serves local objects.
const PublicPathPrefix = "/storage/v1/object/public"

const metaDir = "_meta"

// LocalStore keeps objects under root/<bucket>/<name>; the content type of
// each object is kept next to it under root/_meta.
type LocalStore struct {
	root       string
	publicBase string
}

func NewLocalStore(root, publicBaseURL string) (*LocalStore, error) {
	dir, err := filex.EnsureDir(root, "")
	if err != nil {
		return nil, err
	}
	return &LocalStore{root: dir, publicBase: strings.TrimRight(publicBaseURL, "/")}, nil
}

func (s *LocalStore) path(base, bucket, name string) (string, error) {
	p := filepath.Join(base, bucket, filepath.FromSlash(name))
	prefix := filepath.Join(base, bucket) + string(filepath.Separator)
	if !strings.HasPrefix(p, prefix) {
		return "", fmt.Errorf("%w: object name escapes bucket", common.ErrInvalidArgument)
	}
	return p, nil
}

func (s *LocalStore) Put(ctx context.Context, bucket, name, contentType string, data []byte) error {
	p, err := s.path(s.root, bucket, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o770); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	f, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o660)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("create object: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return fmt.Errorf("write object: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close object: %w", err)
	}

	meta, err := s.path(filepath.Join(s.root, metaDir), bucket, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(meta), 0o770); err != nil {
		return fmt.Errorf("mkdir meta: %w", err)
	}
	return os.WriteFile(meta, []byte(contentType), 0o660)
}

func (s *LocalStore) Exists(ctx context.Context, bucket, name string) (bool, error) {
	p, err := s.path(s.root, bucket, name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *LocalStore) PublicURL(bucket, name string) string {
	return s.publicBase + PublicPathPrefix + "/" + escapeName(bucket) + "/" + escapeName(name)
}

// Open returns the file path and stored content type of an object, or
// common.ErrorNotFound.
func (s *LocalStore) Open(bucket, name string) (string, string, error) {
	p, err := s.path(s.root, bucket, name)
	if err != nil {
		return "", "", common.ErrorNotFound
	}
	fi, err := os.Stat(p)
	if err != nil || fi.IsDir() {
		return "", "", common.ErrorNotFound
	}

	contentType := "application/octet-stream"
	if meta, err := s.path(filepath.Join(s.root, metaDir), bucket, name); err == nil {
		if b, err := os.ReadFile(meta); err == nil && len(b) > 0 {
			contentType = string(b)
		}
	}
	return p, contentType, nil
}
