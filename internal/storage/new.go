package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type implS3 struct {
	bucket  string
	client  *s3.Client
	presign *s3.PresignClient
}

// Options configures the S3 client. Region and Endpoint are optional;
// Endpoint targets an S3-compatible service and switches to path-style
// addressing.
type Options struct {
	Bucket   string
	Region   string
	Endpoint string
}

// New creates an S3-backed Store using the default AWS credential chain.
func New(ctx context.Context, opts Options) (Store, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewFromClient(client, opts.Bucket), nil
}

// NewFromClient wraps an existing S3 client.
func NewFromClient(client *s3.Client, bucket string) Store {
	return &implS3{
		bucket:  bucket,
		client:  client,
		presign: s3.NewPresignClient(client),
	}
}
