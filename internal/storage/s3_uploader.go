package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"storefront/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// putObjectAPI is the subset of *s3.Client used by S3Uploader.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader writes product images to an S3 bucket.
type S3Uploader struct {
	client  putObjectAPI
	bucket  string
	prefix  string
	baseURL string
	logger  zerolog.Logger
}

// NewS3Uploader creates an uploader using the default AWS credential chain.
func NewS3Uploader(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) (*S3Uploader, error) {
	logger = logger.With().Str("component", "s3-image-uploader").Logger()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Msg("S3 uploader initialised")

	return newS3Uploader(s3.NewFromConfig(awsCfg), cfg, logger), nil
}

func newS3Uploader(client putObjectAPI, cfg config.S3Config, logger zerolog.Logger) *S3Uploader {
	return &S3Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		baseURL: cfg.BaseURL(),
		logger:  logger,
	}
}

// Upload stores img under <prefix><sellerID>/<random id><ext>.
func (u *S3Uploader) Upload(ctx context.Context, sellerID string, img Image) (string, error) {
	key := u.objectKey(sellerID, img.Filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   img.Body,
	}
	if img.ContentType != "" {
		input.ContentType = aws.String(img.ContentType)
	}
	if img.Size > 0 {
		input.ContentLength = aws.Int64(img.Size)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		u.logger.Error().
			Err(err).
			Str("bucket", u.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to upload image (bucket=%s, key=%s): %w", u.bucket, key, err)
	}

	u.logger.Debug().Str("key", key).Int64("size", img.Size).Msg("image uploaded")

	return u.baseURL + "/" + key, nil
}

func (u *S3Uploader) objectKey(sellerID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return u.prefix + sellerID + "/" + uuid.NewString() + ext
}
