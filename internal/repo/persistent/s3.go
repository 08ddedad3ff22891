package persistent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Jacky088/Edgeone-Imgbed/internal/entity"
	"github.com/Jacky088/Edgeone-Imgbed/internal/repo"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/s3client"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/types/errs"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Repo stores blobs in an S3 bucket under the same fixed namespace the
// generic artifact backend uses, so keys stay interchangeable between drivers.
type S3Repo struct {
	*s3client.S3Client
	bucket   string
	prefix   string
	readBase string
}

var _ repo.BlobRepo = (*S3Repo)(nil)

func NewS3Repo(s3c *s3client.S3Client, bucket string) *S3Repo {
	prefix := packageName + "/" + packageVersion + "/"

	return &S3Repo{
		S3Client: s3c,
		bucket:   bucket,
		prefix:   prefix,
		readBase: strings.TrimSuffix(s3c.Endpoint(), "/") + "/" + bucket + "/" + prefix,
	}
}

func (r *S3Repo) ReadBase() string {
	return r.readBase
}

func (r *S3Repo) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(r.prefix + key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("S3Repo - Upload - r.Client.PutObject: %w", err)
	}

	return nil
}

func (r *S3Repo) Download(ctx context.Context, key string) ([]byte, error) {
	result, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.prefix + key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, errs.ErrBlobNotFound
		}
		return nil, fmt.Errorf("S3Repo - Download - r.Client.GetObject: %w", err)
	}
	defer result.Body.Close()

	b, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("S3Repo - Download - io.ReadAll: %w", err)
	}

	return b, nil
}

func (r *S3Repo) Fetch(ctx context.Context, path, rangeHeader string) (*entity.BlobObject, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.prefix + path),
	}
	if rangeHeader != "" {
		input.Range = aws.String(rangeHeader)
	}

	result, err := r.Client.GetObject(ctx, input)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, errs.ErrBlobNotFound
		}
		return nil, fmt.Errorf("S3Repo - Fetch - r.Client.GetObject: %w", err)
	}

	obj := &entity.BlobObject{
		Body:          result.Body,
		ContentType:   aws.ToString(result.ContentType),
		ContentLength: aws.ToInt64(result.ContentLength),
		ContentRange:  aws.ToString(result.ContentRange),
	}

	return obj, nil
}

// Delete is naturally idempotent on S3: DeleteObject succeeds for missing keys.
func (r *S3Repo) Delete(ctx context.Context, key string) error {
	_, err := r.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.prefix + key),
	})
	if err != nil {
		return fmt.Errorf("S3Repo - Delete - r.Client.DeleteObject: %w", err)
	}

	return nil
}

func isNoSuchKey(err error) bool {
	var noSuchKey *types.NoSuchKey

	return errors.As(err, &noSuchKey)
}
