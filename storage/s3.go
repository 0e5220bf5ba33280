package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client abstracts the S3 API operations used by S3Store. The
// s3.Client type satisfies this interface.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Store fetches recordings from an S3 bucket (or any S3-compatible
// store). The caller configures the client with credentials and region.
type S3Store struct {
	client S3Client
	bucket string
}

func NewS3(client S3Client, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

// Fetch downloads one object into dir, preserving its base name, and
// returns the local path.
func (s *S3Store) Fetch(ctx context.Context, key, dir string) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("s3 get %s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	path := filepath.Join(dir, filepath.Base(key))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, out.Body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("s3 read %s/%s: %w", s.bucket, key, err)
	}
	return path, nil
}

// List walks all pages under prefix and returns the audio objects,
// skipping folder placeholder keys.
func (s *S3Store) List(ctx context.Context, prefix string) ([]Object, error) {
	var objs []Object
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 list %s/%s: %w", s.bucket, prefix, err)
		}
		for _, o := range out.Contents {
			key := aws.ToString(o.Key)
			if key == "" || key[len(key)-1] == '/' || !IsAudioKey(key) {
				continue
			}
			objs = append(objs, Object{Key: key, Size: aws.ToInt64(o.Size)})
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		token = out.NextContinuationToken
	}
	return objs, nil
}
