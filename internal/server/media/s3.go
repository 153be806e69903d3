package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/avlasov/chatauth/internal/server/config"
)

// S3Uploader stores profile pictures in an S3-compatible bucket (MinIO in
// development, AWS S3 in production).
type S3Uploader struct {
	client       *s3.Client
	bucket       string
	region       string
	baseEndpoint string
}

func NewS3Uploader(ctx context.Context, c *sc.Config) (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3RootUser,
			c.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		client:       client,
		bucket:       c.S3Bucket,
		region:       c.S3Region,
		baseEndpoint: c.S3BaseEndpoint,
	}, nil
}

// getStorageKey builds a date-partitioned object key so that a user's
// avatar history never collides.
func getStorageKey(userID string) string {
	d := time.Now()
	return fmt.Sprintf("avatars/%d/%d/%d/%s-%v", d.Year(), d.Month(), d.Day(), userID, uuid.New())
}

// parseDataURL splits a base64 data URL into its content type and raw bytes.
// A bare base64 payload without the "data:" prefix is accepted as JPEG.
func parseDataURL(dataURL string) (string, []byte, error) {
	contentType := "image/jpeg"
	payload := dataURL

	if strings.HasPrefix(dataURL, "data:") {
		meta, rest, ok := strings.Cut(strings.TrimPrefix(dataURL, "data:"), ",")
		if !ok {
			return "", nil, fmt.Errorf("malformed data url")
		}
		payload = rest

		mediaType := strings.TrimSuffix(meta, ";base64")
		if mediaType != "" {
			parsed, _, err := mime.ParseMediaType(mediaType)
			if err != nil {
				return "", nil, fmt.Errorf("malformed data url media type: %w", err)
			}
			contentType = parsed
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding image payload: %w", err)
	}

	return contentType, data, nil
}

func (u *S3Uploader) Upload(ctx context.Context, userID string, dataURL string) (string, error) {
	contentType, data, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	key := getStorageKey(userID)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading profile picture: %w", err)
	}

	return u.objectURL(key), nil
}

// objectURL returns the public URL for key: path-style against a custom
// endpoint (MinIO), virtual-hosted style on AWS otherwise.
func (u *S3Uploader) objectURL(key string) string {
	if u.baseEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.baseEndpoint, "/"), u.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}
