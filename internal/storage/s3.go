package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Options holds configuration for S3-compatible object storage.
type S3Options struct {
	Endpoint        string // optional, for non-AWS providers
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Storage stores media in an S3-compatible bucket with public-read
// objects, so image URLs need no query-string auth.
type S3Storage struct {
	client *s3.Client
	opts   S3Options
}

// NewS3Storage creates the client; a custom endpoint switches to
// path-style addressing for S3-compatible providers.
func NewS3Storage(ctx context.Context, opts S3Options) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var client *s3.Client
	if opts.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	return &S3Storage{client: client, opts: opts}, nil
}

// Save uploads the file with a public-read ACL and returns its URL.
func (s *S3Storage) Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.opts.Bucket),
		Key:          aws.String(key),
		Body:         r,
		ContentType:  aws.String(contentType),
		ACL:          s3types.ObjectCannedACLPublicRead,
		CacheControl: aws.String("max-age=86400"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.PublicURL(key), nil
}

// Delete removes the object under key.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// PublicURL returns the plain public URL for an object key.
func (s *S3Storage) PublicURL(key string) string {
	if s.opts.Endpoint != "" {
		// Path-style: https://{endpoint}/{bucket}/{key}
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.opts.Endpoint, "/"), s.opts.Bucket, key)
	}
	// AWS virtual-hosted style.
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, s.opts.Region, key)
}
