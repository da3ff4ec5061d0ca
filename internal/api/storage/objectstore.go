// Package storage is the blob side of the asset store: an S3-compatible
// object store (MinIO in dev) plus the key scheme that makes the leading
// path segment the authorization key.
package storage

import (
	"bytes"
	"context"
	"io"

	"api"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

type ObjectStore struct {
	client *s3.Client
	bucket string
	logger zerolog.Logger
}

func NewObjectStore() (*ObjectStore, error) {
	cfg := api.GetConfig().ObjectStore

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &ObjectStore{
		client: client,
		bucket: cfg.Bucket,
		logger: api.Logger,
	}, nil
}

func (slf *ObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := slf.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(slf.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		slf.logger.Error().Err(err).Str("key", key).Msg("Error putting object")
	}
	return err
}

func (slf *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := slf.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(slf.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		slf.logger.Error().Err(err).Str("key", key).Msg("Error getting object")
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// Remove deletes a batch of keys. Missing keys are not an error.
func (slf *ObjectStore) Remove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, len(keys))
	for i, key := range keys {
		objects[i] = types.ObjectIdentifier{Key: aws.String(key)}
	}

	_, err := slf.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(slf.bucket),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		slf.logger.Error().Err(err).Int("count", len(keys)).Msg("Error removing objects")
	}
	return err
}
