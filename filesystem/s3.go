/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filesystem

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/suparena/datakit/errors"
)

// S3API is the subset of the S3 client used by the backend.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3 is the FileSystem over an S3-compatible object store. Paths take the
// form "s3://bucket/key" or "bucket/key".
type S3 struct {
	client S3API
}

// NewS3Client initializes an S3 client from the given options, assuming each
// configured IAM role in turn with the credentials of the previous one.
func NewS3Client(ctx context.Context, opts Options) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	for _, role := range opts.AssumedRoles {
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), role)
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.EndpointURL != "" {
			o.BaseEndpoint = aws.String(opts.EndpointURL)
			o.UsePathStyle = true
		}
	})
	return client, nil
}

// NewS3 constructs an S3 FileSystem from the given options.
func NewS3(ctx context.Context, opts Options) (*S3, error) {
	client, err := NewS3Client(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &S3{client: client}, nil
}

// NewS3WithClient constructs an S3 FileSystem over an existing client.
func NewS3WithClient(client S3API) *S3 {
	return &S3{client: client}
}

func (s *S3) Name() string { return "s3" }

func (s *S3) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, key, err := splitS3Path(path)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if stderrors.As(err, &noKey) {
			return nil, errors.NewNotFoundError("object", path)
		}
		return nil, fmt.Errorf("getting s3://%s/%s: %w", bucket, key, err)
	}
	return out.Body, nil
}

func (s *S3) Create(ctx context.Context, path string) (io.WriteCloser, error) {
	bucket, key, err := splitS3Path(path)
	if err != nil {
		return nil, err
	}
	return &s3Writer{
		ctx:    ctx,
		client: s.client,
		bucket: bucket,
		key:    key,
	}, nil
}

func (s *S3) Find(ctx context.Context, prefix string) ([]string, error) {
	bucket, keyPrefix, err := splitS3Path(prefix)
	if err != nil {
		return nil, err
	}

	// Raw prefix listing would also match sibling keys that merely share
	// the prefix string ("data" matching "database/..."). Keep the exact
	// key and the keys under the "/" boundary, like the other backends.
	subtree := strings.TrimSuffix(keyPrefix, "/") + "/"

	var keys []string
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(keyPrefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("listing s3://%s/%s: %w", bucket, keyPrefix, err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if key != keyPrefix && !strings.HasPrefix(key, subtree) {
				continue
			}
			keys = append(keys, "s3://"+bucket+"/"+key)
		}
		if out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}
	return keys, nil
}

func (s *S3) Exists(ctx context.Context, path string) (bool, error) {
	bucket, key, err := splitS3Path(path)
	if err != nil {
		return false, err
	}
	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if stderrors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("heading s3://%s/%s: %w", bucket, key, err)
	}
	return true, nil
}

func (s *S3) Remove(ctx context.Context, path string) error {
	bucket, key, err := splitS3Path(path)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// s3Writer buffers the object body and uploads it in one PutObject when
// closed. S3 objects are immutable, so the upload cannot be streamed until
// the content is complete.
type s3Writer struct {
	ctx    context.Context
	client S3API
	bucket string
	key    string
	buf    bytes.Buffer

	once     sync.Once
	closeErr error
}

func (w *s3Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *s3Writer) Close() error {
	w.once.Do(func() {
		_, err := w.client.PutObject(w.ctx, &s3.PutObjectInput{
			Bucket: aws.String(w.bucket),
			Key:    aws.String(w.key),
			Body:   bytes.NewReader(w.buf.Bytes()),
		})
		if err != nil {
			w.closeErr = fmt.Errorf("putting s3://%s/%s: %w", w.bucket, w.key, err)
		}
	})
	return w.closeErr
}

// splitS3Path parses "s3://bucket/key" or "bucket/key" into bucket and key.
func splitS3Path(path string) (bucket, key string, err error) {
	p := strings.TrimPrefix(path, "s3://")
	bucket, key, found := strings.Cut(p, "/")
	if bucket == "" || !found {
		return "", "", errors.NewInvalidOptionsError("",
			fmt.Sprintf("s3 path %q must be of the form bucket/key", path))
	}
	return bucket, key, nil
}
