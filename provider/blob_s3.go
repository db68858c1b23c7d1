package provider

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/tnqbao/gau-storage-gateway/gateway"
	"github.com/tnqbao/gau-storage-gateway/infra"
)

// S3BlobStore is the AWS-backed twin of MinioBlobStore. Uploads go through the
// transfer manager so large bodies are split into concurrent parts.
type S3BlobStore struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
}

func NewS3BlobStore(client *infra.S3Client, bucket string) *S3BlobStore {
	return &S3BlobStore{
		client:   client.Client,
		uploader: client.Uploader,
		bucket:   bucket,
	}
}

func (s *S3BlobStore) Get(ctx context.Context, key string) (*gateway.Blob, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s3Err("get", err)
	}

	return &gateway.Blob{
		Body:        out.Body,
		ContentType: aws.ToString(out.ContentType),
		Size:        aws.ToInt64(out.ContentLength),
		Status:      http.StatusOK,
	}, nil
}

func (s *S3BlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (int, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return 0, s3Err("put", err)
	}
	return http.StatusOK, nil
}

func (s *S3BlobStore) Delete(ctx context.Context, key string) (int, error) {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, s3Err("delete", err)
	}
	return http.StatusOK, nil
}

func s3Err(op string, err error) error {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return gateway.ErrNotFound
	}
	return &gateway.BlobStoreError{Op: op, Err: err}
}
