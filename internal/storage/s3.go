package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client the steps use.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ S3API = (*s3.Client)(nil)

// S3Config holds S3 connection settings. Credentials come from the default chain.
type S3Config struct {
	Region         string
	Endpoint       string // optional, e.g. a LocalStack URL
	ForcePathStyle bool
}

// S3Client implements ObjectStorage using Amazon S3.
type S3Client struct {
	api S3API
}

// NewS3Client creates an S3 client from the default AWS configuration.
func NewS3Client(ctx context.Context, cfg S3Config) (*S3Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	}

	var opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.ForcePathStyle {
		opts = append(opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return NewS3ClientWithAPI(s3.NewFromConfig(awsCfg, opts...)), nil
}

// NewS3ClientWithAPI wraps an existing S3API, mainly for tests.
func NewS3ClientWithAPI(api S3API) *S3Client {
	return &S3Client{api: api}
}

// Get opens an object for reading.
func (c *S3Client) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, notFound("get", bucket, key, err)
		}
		return nil, newError("get", bucket, key, err)
	}

	return out.Body, nil
}

// Put stores an object in S3.
func (c *S3Client) Put(ctx context.Context, bucket, key string, body io.Reader, size int64) error {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(ContentType),
	})
	if err != nil {
		return newError("put", bucket, key, err)
	}

	return nil
}
