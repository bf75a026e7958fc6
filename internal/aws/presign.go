// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/stctl/internal/log"
)

// ErrNoObjectKey is returned when asked to presign a whole bucket.
var ErrNoObjectKey = errors.New("S3 sources must name a single object")

// Presigner produces time-limited GET URLs for S3 objects. Signing is local;
// no request is sent to S3.
type Presigner struct {
	client *s3v2.PresignClient
}

// NewS3 constructs a v2 S3 client from the provided config. Additional service
// options can be supplied via optFns.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	client := s3v2.NewFromConfig(cfg, optFns...)
	log.Debugf("s3 client created")
	return client
}

// NewPresigner wraps an S3 client built from cfg.
func NewPresigner(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *Presigner {
	return &Presigner{client: s3v2.NewPresignClient(NewS3(cfg, optFns...))}
}

// PresignGet returns a GET URL for bucket/key valid for ttl.
func (p *Presigner) PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, ErrNoObjectKey
	}

	req, err := p.client.PresignGetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	}, s3v2.WithPresignExpires(ttl))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to presign s3://%s/%s: %w", bucket, key, err)
	}

	log.Debugf("aws: presigned s3://%s/%s for %s", bucket, key, ttl)
	return req.URL, time.Now().Add(ttl), nil
}

// WithPathStyle forces path-style addressing (bucket in the path). Useful for
// S3-compatible endpoints.
func WithPathStyle() func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		o.UsePathStyle = true
	}
}

// WithBaseEndpoint points the client at an S3-compatible endpoint. An empty
// endpoint keeps the AWS default.
func WithBaseEndpoint(endpoint string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		if endpoint != "" {
			o.BaseEndpoint = awsv2.String(endpoint)
		}
	}
}
