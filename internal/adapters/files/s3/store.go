// Package s3 implementa files.Store contra un object storage
// S3-compatible (AWS S3, MinIO, etc).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"asthmacare/internal/ports/files"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

func (c Config) IsConfigured() bool {
	return strings.TrimSpace(c.Endpoint) != "" && strings.TrimSpace(c.Bucket) != ""
}

type Store struct {
	client  *awss3.Client
	presign *awss3.PresignClient
	bucket  string
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if !cfg.IsConfigured() {
		return nil, errors.New("s3: endpoint and bucket are required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	client := awss3.New(awss3.Options{
		Region:       awsCfg.Region,
		Credentials:  awsCfg.Credentials,
		HTTPClient:   awsCfg.HTTPClient,
		BaseEndpoint: aws.String(cfg.Endpoint),
		// path-style para MinIO y compatibles
		UsePathStyle: true,
	})

	return &Store{
		client:  client,
		presign: awss3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

func (s *Store) Upload(ctx context.Context, obj files.Object) error {
	if strings.TrimSpace(obj.Path) == "" {
		return errors.New("s3: empty path")
	}

	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(obj.Path),
		Body:        bytes.NewReader(obj.Data),
		ContentType: aws.String(obj.ContentType),
	})
	if err != nil {
		return fmt.Errorf("s3: put %s: %w", obj.Path, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("s3: empty path")
	}

	// DeleteObject es idempotente en S3: borrar algo inexistente no falla.
	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("s3: delete %s: %w", path, err)
	}
	return nil
}

func (s *Store) SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("s3: empty path")
	}
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	out, err := s.presign.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, awss3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("s3: presign %s: %w", path, err)
	}
	return out.URL, nil
}
