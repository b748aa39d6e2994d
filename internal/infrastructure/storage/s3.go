// Package storage wraps an S3-compatible bucket behind presigned URLs so file
// bytes never pass through the API process.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"editmarket/internal/config"
)

// ErrObjectNotFound is returned by Stat when the key has no object behind it.
var ErrObjectNotFound = errors.New("object not found")

// Presigner defines the subset of the S3 presign client the storage uses.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type HeadClient interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// PresignedURL is a time-limited URL plus its validity window.
type PresignedURL struct {
	URL       string
	ExpiresIn time.Duration
}

type ObjectInfo struct {
	Size        int64
	ContentType string
}

type S3Storage struct {
	presigner   Presigner
	head        HeadClient
	bucket      string
	uploadTTL   time.Duration
	downloadTTL time.Duration
}

// NewS3Storage builds a client for the configured bucket. A custom endpoint
// (Cloudflare R2, MinIO, LocalStack) switches to path-style addressing.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3StorageWithClients(s3.NewPresignClient(client), client, cfg), nil
}

func NewS3StorageWithClients(presigner Presigner, head HeadClient, cfg config.StorageConfig) *S3Storage {
	return &S3Storage{
		presigner:   presigner,
		head:        head,
		bucket:      cfg.Bucket,
		uploadTTL:   cfg.UploadURLTTL,
		downloadTTL: cfg.DownloadURLTTL,
	}
}

// PresignUpload returns a PUT URL the client uploads the object body to. The
// client must send the same Content-Type it declared here.
func (s *S3Storage) PresignUpload(ctx context.Context, key, contentType string) (*PresignedURL, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	req, err := s.presigner.PresignPutObject(ctx, input, func(o *s3.PresignOptions) { o.Expires = s.uploadTTL })
	if err != nil {
		return nil, fmt.Errorf("presigning upload for %s: %w", key, err)
	}

	return &PresignedURL{URL: req.URL, ExpiresIn: s.uploadTTL}, nil
}

// PresignDownload returns a GET URL that serves the object as an attachment
// named filename.
func (s *S3Storage) PresignDownload(ctx context.Context, key, filename string) (*PresignedURL, error) {
	input := &s3.GetObjectInput{
		Bucket:                     aws.String(s.bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", filename)),
	}

	req, err := s.presigner.PresignGetObject(ctx, input, func(o *s3.PresignOptions) { o.Expires = s.downloadTTL })
	if err != nil {
		return nil, fmt.Errorf("presigning download for %s: %w", key, err)
	}

	return &PresignedURL{URL: req.URL, ExpiresIn: s.downloadTTL}, nil
}

// Stat reads object metadata without fetching the body.
func (s *S3Storage) Stat(ctx context.Context, key string) (*ObjectInfo, error) {
	out, err := s.head.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("heading object %s: %w", key, err)
	}

	return &ObjectInfo{
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}, nil
}

// HEAD responses carry no body, so some providers surface a bare 404 instead of
// the modeled NotFound error.
func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var re *awshttp.ResponseError
	if errors.As(err, &re) {
		return re.HTTPStatusCode() == http.StatusNotFound
	}
	return false
}
