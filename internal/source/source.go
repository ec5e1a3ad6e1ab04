package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/gyeh/namecleaner/internal/config"
	"github.com/gyeh/namecleaner/internal/table"
)

// objectAPI is the subset of the S3 client used for reading and writing files.
type objectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store opens and creates files on the local filesystem or in S3.
// The S3 client is built on first use so local-only runs never load AWS config.
type Store struct {
	opts config.S3Config

	once    sync.Once
	client  objectAPI
	initErr error
}

// New returns a Store using opts for any s3:// path.
func New(opts config.S3Config) *Store {
	return &Store{opts: opts}
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %q", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri %q must name a bucket and key", uri)
	}
	return bucket, key, nil
}

// Open returns a reader for a local path or s3:// URI.
func (s *Store) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	if !config.IsS3(p) {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", p, err)
		}
		return f, nil
	}

	bucket, key, err := ParseS3URI(p)
	if err != nil {
		return nil, err
	}
	client, err := s.s3Client(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", p, err)
	}
	return resp.Body, nil
}

// Create returns a writer for a local path or s3:// URI. S3 objects are
// buffered in memory and uploaded when the writer is closed.
func (s *Store) Create(ctx context.Context, p string) (io.WriteCloser, error) {
	if !config.IsS3(p) {
		f, err := os.Create(p)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p, err)
		}
		return f, nil
	}

	bucket, key, err := ParseS3URI(p)
	if err != nil {
		return nil, err
	}
	client, err := s.s3Client(ctx)
	if err != nil {
		return nil, err
	}
	return &objectWriter{ctx: ctx, client: client, bucket: bucket, key: key}, nil
}

func (s *Store) s3Client(ctx context.Context) (objectAPI, error) {
	s.once.Do(func() {
		if s.client != nil {
			return
		}
		s.client, s.initErr = newS3Client(ctx, s.opts)
	})
	return s.client, s.initErr
}

func newS3Client(ctx context.Context, opts config.S3Config) (*s3.Client, error) {
	var cfgOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		cfgOpts = append(cfgOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		cfgOpts = append(cfgOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if opts.Endpoint != "" {
		endpoint := opts.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = &endpoint
		})
	}
	if opts.PathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	return s3.NewFromConfig(cfg, s3Opts...), nil
}

type objectWriter struct {
	ctx    context.Context
	client objectAPI
	bucket string
	key    string
	buf    bytes.Buffer
	closed bool
}

func (w *objectWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("write to closed s3 object %s/%s", w.bucket, w.key)
	}
	return w.buf.Write(p)
}

func (w *objectWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	_, err := w.client.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(w.key),
		Body:        bytes.NewReader(w.buf.Bytes()),
		ContentType: aws.String(table.FormatFromPath(w.key).ContentType()),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", w.bucket, w.key, err)
	}
	return nil
}
