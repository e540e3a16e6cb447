package transport

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Fetcher is the binary transport for `s3://bucket/key` sources: an
// HTTPFetcher routes every s3:// source to it by scheme, without trying HTTP
// first. It is backed by the MinIO client, which speaks the S3 API against
// AWS S3 itself as well as any S3-compatible service.
type S3Fetcher struct {
	client *minio.Client
}

// NewS3Fetcher builds an S3Fetcher against an S3-compatible endpoint.
func NewS3Fetcher(endpoint, accessKey, secretKey string, useSSL bool) (*S3Fetcher, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: creating S3 client: %w", err)
	}
	return &S3Fetcher{client: client}, nil
}

// FetchBlob downloads the object named by an s3://bucket/key source.
func (f *S3Fetcher) FetchBlob(ctx context.Context, source string) ([]byte, error) {
	bucket, key, err := parseS3URL(source)
	if err != nil {
		return nil, err
	}

	obj, err := f.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("transport: s3 GetObject %s: %w", source, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("transport: reading s3 object %s: %w", source, err)
	}
	return data, nil
}

func (f *S3Fetcher) FetchText(ctx context.Context, source string) (string, error) {
	data, err := f.FetchBlob(ctx, source)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
