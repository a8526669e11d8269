package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage writes uploads to an S3-compatible bucket (AWS S3 or
// Cloudflare R2 through a custom endpoint).
type S3Storage struct {
	client       *s3.Client
	bucket       string
	endpoint     string
	customDomain string
}

type S3Options struct {
	Bucket       string
	Region       string
	AccessKeyID  string
	SecretKey    string
	EndpointURL  string // non-empty for R2 / compatible stores
	CustomDomain string // public domain serving bucket objects
}

func NewS3(ctx context.Context, opts S3Options) (*S3Storage, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 storage: bucket is required")
	}
	region := opts.Region
	if region == "" {
		region = "auto"
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.EndpointURL != "" {
			o.BaseEndpoint = &opts.EndpointURL
		}
	})
	return &S3Storage{
		client:       client,
		bucket:       opts.Bucket,
		endpoint:     strings.TrimSuffix(opts.EndpointURL, "/"),
		customDomain: strings.TrimSuffix(opts.CustomDomain, "/"),
	}, nil
}

func (s *S3Storage) Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        r,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	return s.PublicURL(key), nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("s3 delete object: %w", err)
	}
	return nil
}

// PublicURL builds the URL clients use to fetch an object. A custom domain
// takes precedence; R2 storage endpoints are not publicly readable.
func (s *S3Storage) PublicURL(key string) string {
	if s.customDomain != "" {
		return s.customDomain + "/" + key
	}
	if s.endpoint != "" {
		return s.endpoint + "/" + s.bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

// ResolveURL rewrites stored URLs that point at a raw R2 storage endpoint to
// the public custom domain. URLs already on the custom domain, relative
// paths, and foreign hosts pass through unchanged.
func ResolveURL(raw, customDomain string) string {
	if raw == "" || customDomain == "" {
		return raw
	}
	idx := strings.Index(raw, ".r2.cloudflarestorage.com/")
	if idx < 0 {
		return raw
	}
	rest := raw[idx+len(".r2.cloudflarestorage.com/"):]
	// Drop the leading bucket segment; the custom domain maps to the bucket
	// root.
	if slash := strings.IndexByte(rest, '/'); slash >= 0 {
		rest = rest[slash+1:]
	}
	return strings.TrimSuffix(customDomain, "/") + "/" + rest
}
