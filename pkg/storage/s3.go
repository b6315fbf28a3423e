package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const keyPrefix = "dreams"

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicBaseURL is the externally reachable root for stored objects,
	// e.g. a CDN or the bucket endpoint itself.
	PublicBaseURL string
}

// Client uploads generated image bytes to an S3-compatible bucket.
type Client struct {
	s3            *s3.Client
	bucket        string
	publicBaseURL string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket cannot be empty")
	}
	if cfg.PublicBaseURL == "" {
		return nil, errors.New("public base url cannot be empty")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		s3:            s3Client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload stores data under an owner-scoped key and returns the durable
// public URL together with the object key for later cleanup.
func (c *Client) Upload(ctx context.Context, ownerID string, data []byte) (url, key string, err error) {
	key = ObjectKey(ownerID, time.Now())

	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", "", fmt.Errorf("uploading object %s: %w", key, err)
	}

	return c.publicBaseURL + "/" + key, key, nil
}

// Delete removes an uploaded object. Used to avoid orphaned blobs when
// the metadata record write fails after a successful upload.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting object %s: %w", key, err)
	}
	return nil
}

// ObjectKey builds the owner-scoped storage path: a timestamp plus a
// random suffix keeps concurrent saves from colliding.
func ObjectKey(ownerID string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%d-%s.png", keyPrefix, ownerID, now.UnixNano(), uuid.NewString()[:8])
}
