package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/trusteehq/trustee/interfaces"
)

// defaultRegion is used when the connection parameters carry no region.
const defaultRegion = "us-east-1"

// S3Store retrieves named objects from Amazon S3 or a compatible service.
type S3Store struct {
	client *s3.S3
	bucket string
	log    *slog.Logger
}

// NewS3Store creates an authenticated S3 object store from connection
// parameters. Custom endpoints use path-style addressing, which is what
// S3-compatible services generally expect.
func NewS3Store(params interfaces.RemoteConnectionParams, log *slog.Logger) (*S3Store, error) {
	region := params.Region
	if region == "" {
		region = defaultRegion
	}

	cfg := aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(params.AccessKey, params.SecretKey, ""),
	}

	if endpoint := params.NormalizedEndpoint(); endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Store{
		client: s3.New(sess),
		bucket: params.Bucket,
		log:    log,
	}, nil
}

// FetchObject retrieves an object from S3 by name.
// Returns ErrObjectNotFound if the object doesn't exist.
func (s *S3Store) FetchObject(ctx context.Context, name string) ([]byte, error) {
	start := time.Now()

	result, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NoSuchKey") || strings.Contains(err.Error(), "404") {
			s.log.Debug("Object not found in S3",
				slog.String("bucket", s.bucket),
				slog.String("key", name),
				slog.Duration("duration", time.Since(start)))
			return nil, interfaces.ErrObjectNotFound
		}

		s.log.Debug("Failed to get object from S3",
			slog.String("bucket", s.bucket),
			slog.String("key", name),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	s.log.Debug("Fetched object from S3",
		slog.String("bucket", s.bucket),
		slog.String("key", name),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// Name returns a unique identifier for this store.
func (s *S3Store) Name() string {
	return fmt.Sprintf("s3-%s", s.bucket)
}
