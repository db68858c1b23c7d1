package provider

import (
	"context"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"

	"github.com/tnqbao/gau-storage-gateway/gateway"
	"github.com/tnqbao/gau-storage-gateway/infra"
)

// MinioBlobStore keeps every object inside one backing bucket; the derived key
// carries the tenant, logical bucket and object path.
type MinioBlobStore struct {
	client *minio.Client
	bucket string
}

func NewMinioBlobStore(client *infra.MinioClient, bucket string) *MinioBlobStore {
	return &MinioBlobStore{client: client.Client, bucket: bucket}
}

func (s *MinioBlobStore) Get(ctx context.Context, key string) (*gateway.Blob, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, minioErr("get", err)
	}

	// GetObject is lazy; Stat forces the request so a missing key surfaces
	// here instead of on the first Read of the body.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, minioErr("get", err)
	}

	return &gateway.Blob{
		Body:        obj,
		ContentType: info.ContentType,
		Size:        info.Size,
		Status:      http.StatusOK,
	}, nil
}

func (s *MinioBlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (int, error) {
	// A size of -1 streams the body through multipart upload without ever
	// buffering it whole.
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return 0, minioErr("put", err)
	}
	return http.StatusOK, nil
}

func (s *MinioBlobStore) Delete(ctx context.Context, key string) (int, error) {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return 0, minioErr("delete", err)
	}
	return http.StatusOK, nil
}

func minioErr(op string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" {
		return gateway.ErrNotFound
	}
	return &gateway.BlobStoreError{Op: op, Status: resp.StatusCode, Err: err}
}
