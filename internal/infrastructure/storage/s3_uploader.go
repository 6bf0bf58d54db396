// Package storage stores product images in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	catalogapp "github.com/tinymillion/backend/internal/application/catalog"
	"github.com/tinymillion/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// s3API is the subset of *s3.Client used by the uploader
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3ImageUploader implements ImageUploader on AWS S3 or any S3-compatible
// service (MinIO, R2, RustFS).
type S3ImageUploader struct {
	client    s3API
	bucket    string
	keyPrefix string
	publicURL string
	now       func() time.Time
	logger    *zap.Logger
}

// S3Option configures an S3ImageUploader
type S3Option func(*S3ImageUploader)

// WithLogger sets the uploader's logger
func WithLogger(logger *zap.Logger) S3Option {
	return func(u *S3ImageUploader) {
		u.logger = logger
	}
}

// NewS3ImageUploader creates an uploader from configuration. Static
// credentials are used when both keys are set; otherwise the default AWS
// credential chain applies.
func NewS3ImageUploader(ctx context.Context, cfg config.StorageConfig, opts ...S3Option) (*S3ImageUploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	endpoint := normalizeEndpoint(cfg.Endpoint)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return newS3ImageUploader(client, cfg, opts...), nil
}

func newS3ImageUploader(client s3API, cfg config.StorageConfig, opts ...S3Option) *S3ImageUploader {
	u := &S3ImageUploader{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: strings.Trim(cfg.KeyPrefix, "/"),
		publicURL: publicBaseURL(cfg),
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// EnsureBucket creates the bucket when it does not exist yet
func (u *S3ImageUploader) EnsureBucket(ctx context.Context) error {
	_, err := u.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(u.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	u.logger.Info("Creating storage bucket", zap.String("bucket", u.bucket))
	_, err = u.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(u.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload stores the image under <prefix>/<yyyy>/<mm>/<uuid><ext> and returns its public URL
func (u *S3ImageUploader) Upload(ctx context.Context, img catalogapp.ImageUpload) (string, error) {
	data, err := io.ReadAll(img.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload %s: %w", img.Filename, err)
	}

	key := u.objectKey(img.Filename)
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	u.logger.Debug("Product image uploaded",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)
	return u.publicURL + "/" + key, nil
}

func (u *S3ImageUploader) objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 8 {
		ext = ""
	}
	now := u.now().UTC()
	name := fmt.Sprintf("%04d/%02d/%s%s", now.Year(), int(now.Month()), uuid.NewString(), ext)
	if u.keyPrefix == "" {
		return name
	}
	return u.keyPrefix + "/" + name
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return ""
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	return endpoint
}

// publicBaseURL is where uploaded keys are served from
func publicBaseURL(cfg config.StorageConfig) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	if endpoint := normalizeEndpoint(cfg.Endpoint); endpoint != "" {
		if cfg.UsePathStyle {
			return endpoint + "/" + cfg.Bucket
		}
		scheme, host, _ := strings.Cut(endpoint, "://")
		return scheme + "://" + cfg.Bucket + "." + host
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

var _ catalogapp.ImageUploader = (*S3ImageUploader)(nil)
