package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/defo-server/internal/model"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      bool

	putErr         error
	putSize        int64
	putContentType string

	getRC  io.ReadCloser
	getErr error

	removeErr error

	statErr error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = true
	return f.makeBucketErr
}

func (f *fakeMinio) PutObject(_ context.Context, _, _ string, _ io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putSize = size
	f.putContentType = opts.ContentType
	return minioLib.UploadInfo{}, f.putErr
}

func (f *fakeMinio) GetObject(_ context.Context, _, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}

func (f *fakeMinio) RemoveObject(_ context.Context, _, _ string, _ minioLib.RemoveObjectOptions) error {
	return f.removeErr
}

func (f *fakeMinio) StatObject(_ context.Context, _, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

var errNoSuchKey = minioLib.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}

func TestNewClientWithAPI(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		api      *fakeMinio
		wantErr  bool
		wantMade bool
	}{
		{name: "bucket exists", api: &fakeMinio{bucketExists: true}},
		{name: "bucket created", api: &fakeMinio{}, wantMade: true},
		{name: "exists check fails", api: &fakeMinio{bucketExistsErr: errors.New("boom")}, wantErr: true},
		{name: "create fails", api: &fakeMinio{makeBucketErr: errors.New("fail")}, wantErr: true, wantMade: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClientWithAPI(ctx, tt.api, "datasets")
			assert.Equal(t, tt.wantMade, tt.api.madeBucket)
			if tt.wantErr {
				assert.Nil(t, c)
				assert.ErrorContains(t, err, "failed to ensure bucket exists")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "datasets", c.bucket)
		})
	}
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("sized reader", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b"}
		err := c.Upload(ctx, "p/f.csv", bytes.NewReader([]byte("a,b\n1,2\n")))
		require.NoError(t, err)
		assert.Equal(t, int64(8), api.putSize)
	})

	t.Run("unsized reader", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b"}
		err := c.Upload(ctx, "p/f.bin", io.LimitReader(bytes.NewReader([]byte("data")), 4))
		require.NoError(t, err)
		assert.Equal(t, int64(-1), api.putSize)
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{putErr: errors.New("put-fail")}, bucket: "b"}
		err := c.Upload(ctx, "k", bytes.NewReader([]byte("data")))
		assert.ErrorContains(t, err, "failed to upload object")
	})
}

func TestClient_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{getRC: io.NopCloser(bytes.NewReader([]byte("abc")))}
		c := &Client{api: api, bucket: "b"}
		rc, err := c.Download(ctx, "k")
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), data)
	})

	t.Run("missing object", func(t *testing.T) {
		c := &Client{api: &fakeMinio{statErr: errNoSuchKey}, bucket: "b"}
		rc, err := c.Download(ctx, "k")
		assert.Nil(t, rc)
		assert.ErrorIs(t, err, model.ErrBlobNotFound)
	})

	t.Run("get error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{getErr: errors.New("get-fail")}, bucket: "b"}
		rc, err := c.Download(ctx, "k")
		assert.Nil(t, rc)
		assert.ErrorContains(t, err, "failed to get object")
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, (&Client{api: &fakeMinio{}, bucket: "b"}).Delete(ctx, "k"))

	err := (&Client{api: &fakeMinio{removeErr: errors.New("remove-fail")}, bucket: "b"}).Delete(ctx, "k")
	assert.ErrorContains(t, err, "failed to delete object")
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		statErr error
		want    bool
		wantErr bool
	}{
		{name: "present", want: true},
		{name: "absent", statErr: errNoSuchKey, want: false},
		{name: "failure", statErr: errors.New("stat-fail"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{api: &fakeMinio{statErr: tt.statErr}, bucket: "b"}
			got, err := c.Exists(ctx, "k")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
