// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"net/url"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOptions verifies that option functions populate the options struct and
// that later options override earlier ones.
func TestOptions(t *testing.T) {
	var opts options
	WithProfile("p1")(&opts)
	WithRegion("us-east-1")(&opts)
	WithRegion("eu-west-1")(&opts)
	WithStaticCredentials("AKID", "", "")(&opts)
	assert.Nil(t, opts.static)
	WithStaticCredentials("AKID", "SECRET", "")(&opts)

	assert.Equal(t, "p1", opts.profile)
	assert.Equal(t, "eu-west-1", opts.region)
	assert.NotNil(t, opts.static)
}

// TestLoadAWSConfig_Static verifies that static credentials win over the
// default chain.
func TestLoadAWSConfig_Static(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")

	cfg, err := LoadAWSConfig(context.Background(),
		WithRegion("us-west-2"),
		WithStaticCredentials("AKIDEXAMPLE", "SECRET", ""),
	)
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
}

func testConfig(t *testing.T) awsv2.Config {
	t.Helper()
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")
	cfg, err := LoadAWSConfig(context.Background(),
		WithRegion("us-east-1"),
		WithStaticCredentials("AKIDEXAMPLE", "SECRET", ""),
	)
	require.NoError(t, err)
	return cfg
}

func TestNewS3(t *testing.T) {
	client := NewS3(testConfig(t))
	assert.IsType(t, &s3v2.Client{}, client)
}

func TestPresignGet(t *testing.T) {
	p := NewPresigner(testConfig(t))

	raw, expires, err := p.PresignGet(context.Background(), "bucket", "dir/object.bin", 15*time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expires, time.Minute)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "bucket.s3.us-east-1.amazonaws.com", u.Host)
	assert.Equal(t, "/dir/object.bin", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Contains(t, u.Query().Get("X-Amz-Credential"), "AKIDEXAMPLE")
}

func TestPresignGet_PathStyle(t *testing.T) {
	p := NewPresigner(testConfig(t), WithPathStyle(), WithBaseEndpoint("http://localhost:9000"))

	raw, _, err := p.PresignGet(context.Background(), "bucket", "key", time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/bucket/key", u.Path)
}

func TestPresignGet_EmptyEndpoint(t *testing.T) {
	p := NewPresigner(testConfig(t), WithBaseEndpoint(""))

	raw, _, err := p.PresignGet(context.Background(), "bucket", "key", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, raw, "bucket.s3.us-east-1.amazonaws.com/key")
}

func TestPresignGet_NoKey(t *testing.T) {
	p := NewPresigner(testConfig(t))
	_, _, err := p.PresignGet(context.Background(), "bucket", "", time.Minute)
	assert.ErrorIs(t, err, ErrNoObjectKey)
}
