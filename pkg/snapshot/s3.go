package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store stores snapshots as S3 objects. TTLs are recorded as an
// expires-at metadata value and enforced at load time; pair with a bucket
// lifecycle rule for actual cleanup.
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	store := snapshot.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "navstack/")
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

const expiresAtMetadataKey = "navstack-expires-at"

// NewS3Store creates an S3 snapshot store.
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (s *S3Store) objectKey(key string) string {
	return s.prefix + key
}

// Save uploads a snapshot object.
func (s *S3Store) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	metadata := map[string]string{}
	if ttl > 0 {
		metadata[expiresAtMetadataKey] = time.Now().Add(ttl).UTC().Format(time.RFC3339)
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		Metadata:    metadata,
	})
	if err != nil {
		return fmt.Errorf("snapshot: s3 put %q: %w", key, err)
	}
	return nil
}

// Load downloads a snapshot object, returning (nil, nil) for missing or
// expired objects.
func (s *S3Store) Load(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot: s3 get %q: %w", key, err)
	}
	defer out.Body.Close()

	if raw, ok := out.Metadata[expiresAtMetadataKey]; ok {
		expiresAt, err := time.Parse(time.RFC3339, raw)
		if err == nil && time.Now().After(expiresAt) {
			return nil, nil
		}
	}

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("snapshot: s3 read %q: %w", key, err)
	}
	return data, nil
}

// Delete removes a snapshot object.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("snapshot: s3 delete %q: %w", key, err)
	}
	return nil
}

// Close is a no-op; the S3 client is owned by the caller.
func (s *S3Store) Close() error {
	return nil
}
