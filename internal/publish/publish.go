// Package publish pushes exported bundles to an S3-compatible bucket.
package publish

import (
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds the connection settings for a bundle bucket.
type Config struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint" env:"ACC_S3_ENDPOINT"`
	AccessKey string `json:"access_key" yaml:"access_key" env:"ACC_S3_ACCESS_KEY"`
	SecretKey string `json:"secret_key" yaml:"secret_key" env:"ACC_S3_SECRET_KEY"`
	Bucket    string `json:"bucket" yaml:"bucket" env:"ACC_S3_BUCKET"`
	Region    string `json:"region" yaml:"region" env:"ACC_S3_REGION"`
	Prefix    string `json:"prefix" yaml:"prefix" env:"ACC_S3_PREFIX"`
	UseSSL    bool   `json:"use_ssl" yaml:"use_ssl" env:"ACC_S3_USE_SSL"`
}

// Enabled reports whether a bucket is configured at all.
func (c Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// Client wraps a bucket for bundle uploads.
type Client struct {
	api    *minio.Client
	bucket string
	prefix string
}

// New connects to the configured S3 endpoint.
func New(cfg Config) (*Client, error) {
	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("publish: connect %s: %w", cfg.Endpoint, err)
	}
	return &Client{api: api, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Upload stores one exported bundle under its output name.
func (c *Client) Upload(ctx context.Context, localPath, name string) error {
	key := path.Join(c.prefix, name+".glb")
	_, err := c.api.FPutObject(ctx, c.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "model/gltf-binary",
	})
	if err != nil {
		return fmt.Errorf("publish: upload %s: %w", key, err)
	}
	return nil
}
