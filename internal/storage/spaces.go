// Package storage holds player photos in S3-compatible object storage and
// hands back stable public URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

const photoRoot = "players"

type SpacesService struct {
	client *s3.Client
	bucket string
	region string
}

func NewSpacesService(key, secret, region, bucket string) (*SpacesService, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load object storage config: %w", err)
	}

	return &SpacesService{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// UploadPhoto stores photo bytes under a freshly generated path and returns
// the public URL. The path never collides, so an updated photo does not
// invalidate the URL cached on older rows.
func (s *SpacesService) UploadPhoto(ctx context.Context, data []byte, ext, contentType string) (string, error) {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "jpg"
	}
	key := fmt.Sprintf("%s/%s.%s", photoRoot, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return s.PublicURL(key), nil
}

// DeletePhoto removes a previously uploaded photo by its public URL. Unknown
// URLs are ignored so player deletion never fails on a missing object.
func (s *SpacesService) DeletePhoto(ctx context.Context, photoURL string) error {
	prefix := fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/", s.bucket, s.region)
	if !strings.HasPrefix(photoURL, prefix) {
		return nil
	}
	key := strings.TrimPrefix(photoURL, prefix)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo %s: %w", key, err)
	}
	return nil
}

func (s *SpacesService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}
