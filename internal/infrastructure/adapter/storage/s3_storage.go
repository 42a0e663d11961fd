package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
)

// Config holds the object store connection settings
type Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

// S3Storage stores uploads in an S3 compatible bucket
type S3Storage struct {
	client  s3iface.S3API
	bucket  string
	baseURL string
	logger  coreport.Logger
}

var _ coreport.FileStorage = (*S3Storage)(nil)

// NewS3Storage connects to S3 or, when an endpoint is set, to a MinIO server
// using path-style addressing. The bucket is created when missing.
func NewS3Storage(ctx context.Context, cfg Config, logger coreport.Logger) (*S3Storage, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsConfig := &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		awsConfig.DisableSSL = aws.Bool(!cfg.UseSSL)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	storage := NewS3StorageWithClient(s3.New(sess), cfg, logger)
	if err := storage.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return storage, nil
}

// NewS3StorageWithClient wraps an existing client
func NewS3StorageWithClient(client s3iface.S3API, cfg Config, logger coreport.Logger) *S3Storage {
	return &S3Storage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
		logger:  logger,
	}
}

// publicBaseURL is the prefix every object URL starts with
func publicBaseURL(cfg Config) string {
	if cfg.Endpoint == "" {
		region := cfg.Region
		if region == "" {
			region = "us-east-1"
		}
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", cfg.Bucket, region)
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	host := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
	return fmt.Sprintf("%s://%s/%s/", scheme, strings.TrimSuffix(host, "/"), cfg.Bucket)
}

func (s *S3Storage) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	_, err = s.client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil && !strings.Contains(err.Error(), s3.ErrCodeBucketAlreadyOwnedByYou) {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("Storage bucket created", map[string]any{"bucket": s.bucket})
	return nil
}

// ObjectKey builds the key <category>/<uuid><ext> for an upload
func ObjectKey(category, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s%s", strings.Trim(category, "/"), uuid.NewString(), ext)
}

// Upload stores content and returns its public URL
func (s *S3Storage) Upload(ctx context.Context, category, filename, contentType string, content io.Reader) (string, error) {
	key := ObjectKey(category, filename)

	body, ok := content.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(content)
		if err != nil {
			return "", fmt.Errorf("failed to read upload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.logger.Debug("Object uploaded", map[string]any{
		"bucket": s.bucket,
		"key":    key,
	})
	return s.baseURL + key, nil
}

// Delete removes an object previously returned by Upload
func (s *S3Storage) Delete(ctx context.Context, objectURL string) error {
	key, err := s.keyFromURL(objectURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) keyFromURL(objectURL string) (string, error) {
	if key, ok := strings.CutPrefix(objectURL, s.baseURL); ok && key != "" {
		return key, nil
	}
	u, err := url.Parse(objectURL)
	if err != nil || u.Path == "" {
		return "", fmt.Errorf("not an object URL: %q", objectURL)
	}
	return strings.TrimPrefix(strings.TrimPrefix(u.Path, "/"+s.bucket), "/"), nil
}
