package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
)

type putCall struct {
	bucket, name, contentType string
	size                      int
}

type fakeStore struct {
	calls  []putCall
	putErr error
}

func (f *fakeStore) Put(ctx context.Context, bucket, name, contentType string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.calls = append(f.calls, putCall{bucket, name, contentType, len(data)})
	return nil
}

func (f *fakeStore) Exists(ctx context.Context, bucket, name string) (bool, error) {
	return false, nil
}

func (f *fakeStore) PublicURL(bucket, name string) string {
	return "http://cdn/" + bucket + "/" + name
}

// 1x1 PNG header is enough for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestStorageService_Upload(t *testing.T) {
	st := &fakeStore{}
	s := NewStorageService(st, 1024, logging.Nop{})

	key, err := s.Upload(context.Background(), "alice", common.GameImagesBucket, "u1/cover.jpg", "image/jpeg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "game-images/u1/cover.jpg", key)
	require.Len(t, st.calls, 1)
	assert.Equal(t, "image/jpeg", st.calls[0].contentType)
}

func TestStorageService_UploadDetectsContentType(t *testing.T) {
	st := &fakeStore{}
	s := NewStorageService(st, 0, logging.Nop{})

	_, err := s.Upload(context.Background(), "alice", common.GameImagesBucket, "a.png", "", pngHeader)
	require.NoError(t, err)
	require.Len(t, st.calls, 1)
	assert.Equal(t, "image/png", st.calls[0].contentType)
}

func TestStorageService_UploadErrors(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		object  string
		data    []byte
		putErr  error
		wantErr error
		wantMsg string
	}{
		{name: "unknown bucket", bucket: "avatars", object: "a.png", data: pngHeader, wantErr: ErrBucketNotFound},
		{name: "empty name", bucket: common.GameImagesBucket, object: "", data: pngHeader, wantErr: common.ErrInvalidArgument},
		{name: "traversal", bucket: common.GameImagesBucket, object: "../etc/passwd", data: pngHeader, wantErr: common.ErrInvalidArgument},
		{name: "leading slash", bucket: common.GameImagesBucket, object: "/abs.png", data: pngHeader, wantErr: common.ErrInvalidArgument},
		{name: "empty data", bucket: common.GameImagesBucket, object: "a.png", wantErr: common.ErrInvalidArgument, wantMsg: "Empty object"},
		{name: "too large", bucket: common.GameImagesBucket, object: "a.png", data: []byte(strings.Repeat("x", 17)), wantErr: common.ErrInvalidArgument, wantMsg: "The object exceeded the maximum allowed size"},
		{name: "exists", bucket: common.GameImagesBucket, object: "a.png", data: pngHeader, putErr: common.ErrAlreadyExists, wantErr: common.ErrAlreadyExists},
		{name: "store failure", bucket: common.GameImagesBucket, object: "a.png", data: pngHeader, putErr: errors.New("disk full"), wantMsg: "error storing object: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStorageService(&fakeStore{putErr: tt.putErr}, 16, logging.Nop{})
			_, err := s.Upload(context.Background(), "alice", tt.bucket, tt.object, "image/png", tt.data)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestStorageService_PublicURL(t *testing.T) {
	s := NewStorageService(&fakeStore{}, 0, logging.Nop{})

	u, err := s.PublicURL(common.GameImagesBucket, "x/y.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/game-images/x/y.jpg", u)

	_, err = s.PublicURL("other", "x.jpg")
	assert.ErrorIs(t, err, ErrBucketNotFound)
}
