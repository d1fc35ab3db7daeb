package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Downloader resolves a stored book file into a time-limited download URL.
type Downloader interface {
	PresignDownload(ctx context.Context, fileURL string, expiry time.Duration) (string, error)
}

// S3Storage presigns GET URLs for objects in the configured bucket. Stored
// file URLs are either bare object keys or s3://bucket/key references.
type S3Storage struct {
	presigner *s3.PresignClient
	bucket    string
}

// NewS3Storage creates an S3Storage from AWS config.
func NewS3Storage(cfg sdkaws.Config, bucket string) *S3Storage {
	client := s3.NewFromConfig(cfg)
	return &S3Storage{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
	}
}

func (s *S3Storage) PresignDownload(ctx context.Context, fileURL string, expiry time.Duration) (string, error) {
	bucket, key := s.bucket, fileURL
	if rest, ok := strings.CutPrefix(fileURL, "s3://"); ok {
		b, k, found := strings.Cut(rest, "/")
		if !found {
			return "", fmt.Errorf("malformed s3 reference %q", fileURL)
		}
		bucket, key = b, k
	}

	input := &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}
	presigned, err := s.presigner.PresignGetObject(ctx, input, func(o *s3.PresignOptions) {
		o.Expires = expiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign get object: %w", err)
	}
	return presigned.URL, nil
}

// PassthroughStorage serves stored file URLs as-is. Used when no object
// storage is configured, typically local development against seeded HTTP URLs.
type PassthroughStorage struct{}

func (PassthroughStorage) PresignDownload(_ context.Context, fileURL string, _ time.Duration) (string, error) {
	return fileURL, nil
}
