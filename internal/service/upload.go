package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	a "hirehub/job-portal-api/aws"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"
)

// Uploader stores user-provided media (profile photos, resumes) and
// returns a public URL for it. It's an external collaborator, handlers
// only ever see the returned URL
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, key string) (string, error)
}

// S3Uploader stores media in the configured S3 bucket
type S3Uploader struct {
	uploader  *manager.Uploader
	bucket    *string
	publicURL string
}

func NewS3Uploader(c *a.S3Client) *S3Uploader {
	publicURL := viper.GetString("aws.public_url")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com",
			viper.GetString("aws.bucket"), viper.GetString("aws.region"))
	}

	return &S3Uploader{
		uploader:  manager.NewUploader(c.C),
		bucket:    c.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (u *S3Uploader) Upload(ctx context.Context, r io.Reader, key string) (string, error) {
	_, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: u.bucket,
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s, %w", key, err)
	}

	return u.publicURL + path.Join("/", key), nil
}
