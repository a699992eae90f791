package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	internalConfig "github.com/sefazor/meetapp-backend/internal/config"
	"go.uber.org/zap"
)

// CloudflareStorage stores objects in an R2 bucket through its S3-compatible API.
type CloudflareStorage struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

var _ StorageService = (*CloudflareStorage)(nil)

func NewCloudflareStorage(ctx context.Context, cfg internalConfig.R2Config, logger *zap.Logger) (*CloudflareStorage, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})

	return &CloudflareStorage{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.Named("storage"),
	}, nil
}

// Upload writes src under key. R2 needs a content length, so readers that cannot
// seek are buffered in memory first.
func (s *CloudflareStorage) Upload(ctx context.Context, key string, src io.Reader, contentType string) error {
	body, size, err := sized(src)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error("upload failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to upload to R2: %w", err)
	}

	s.logger.Debug("object uploaded", zap.String("key", key), zap.Int64("size", size))
	return nil
}

func (s *CloudflareStorage) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}

	if _, err := s.client.DeleteObject(ctx, input); err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

// sized returns a reader positioned where src was, together with the remaining byte count.
func sized(src io.Reader) (io.Reader, int64, error) {
	if seeker, ok := src.(io.ReadSeeker); ok {
		current, err := seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get current position: %w", err)
		}
		end, err := seeker.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to seek to end: %w", err)
		}
		if _, err := seeker.Seek(current, io.SeekStart); err != nil {
			return nil, 0, fmt.Errorf("failed to seek back to start: %w", err)
		}
		return seeker, end - current, nil
	}

	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read file content: %w", err)
	}
	return bytes.NewReader(buf), int64(len(buf)), nil
}
