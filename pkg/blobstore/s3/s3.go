// Package s3 implements a datasource.DataSource that offloads a
// Variable's ByteString/array payload to S3 or an S3-compatible store
// (spec.md's DOMAIN STACK blob-offload expansion), for values too large
// to keep inline in the node store.
//
// Grounded on the teacher's pkg/store/content/s3.S3ContentStore: an
// aws-sdk-go-v2 client, a bucket plus optional key prefix, and a
// path-like ContentID-to-key mapping, generalized here from file content
// bytes to a single Variant's ByteString payload per node Handle.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/northlake-labs/opcua-server/pkg/ua/datasource"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
	"github.com/northlake-labs/opcua-server/pkg/ua/types"
	"github.com/northlake-labs/opcua-server/pkg/ua/variant"
)

// Config configures the blob-offload DataSource.
type Config struct {
	Bucket          string
	KeyPrefix       string
	Region          string
	Endpoint        string // non-empty for S3-compatible stores (MinIO, etc.)
	AccessKeyID     string
	SecretAccessKey string
}

// Store is a datasource.DataSource backed by S3. The Handle passed to
// Read/Write must be a string: the object key relative to KeyPrefix.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// Open builds an S3 client from cfg and returns a ready Store.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("blobstore/s3: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{client: client, bucket: cfg.Bucket, prefix: cfg.KeyPrefix}, nil
}

func (s *Store) objectKey(handle any) (string, error) {
	key, ok := handle.(string)
	if !ok {
		return "", fmt.Errorf("blobstore/s3: handle must be a string object key, got %T", handle)
	}
	if s.prefix != "" {
		return s.prefix + "/" + key, nil
	}
	return key, nil
}

// Read implements datasource.DataSource. The full object is fetched as a
// scalar ByteString and rng is not applied: no ranged GetObject is
// issued, and the attribute-read path returns a DataSource's result
// without applying rng either, so the whole object is returned for any
// range.
func (s *Store) Read(handle any, id nodeid.NodeId, wantSourceTimestamp bool, rng variant.NumericRange, out *datasource.DataValue) status.Code {
	key, err := s.objectKey(handle)
	if err != nil {
		return status.BadInternalError
	}

	ctx := context.Background()
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return status.BadNoData
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return status.BadInternalError
	}

	out.HasValue = true
	out.Value = variant.NewScalarCopy(data, types.ByteString)
	if wantSourceTimestamp && resp.LastModified != nil {
		out.HasSourceTimestamp = true
		out.SourceTimestamp = *resp.LastModified
	}
	return status.Good
}

// Write implements datasource.DataSource, storing val's ByteString data
// as the whole object. A non-nil rng is rejected;
// partial-object writes are not supported.
func (s *Store) Write(handle any, id nodeid.NodeId, val *variant.Variant, rng variant.NumericRange) status.Code {
	if rng != nil {
		return status.BadWriteNotSupported
	}

	key, err := s.objectKey(handle)
	if err != nil {
		return status.BadInternalError
	}

	data, ok := val.Data.([]byte)
	if !ok {
		return status.BadTypeMismatch
	}

	ctx := context.Background()
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return status.BadInternalError
	}
	return status.Good
}
