// Package publish uploads generated datasets to an S3 compatible store.
package publish

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/miku/cryokit/config"
	"github.com/miku/cryokit/dump"
	log "github.com/sirupsen/logrus"
)

// Publisher makes the files of a generated dataset available elsewhere.
type Publisher interface {
	// Publish uploads the named files found in dir.
	Publish(ctx context.Context, datasetID int64, dir string, names []string) error
}

// putObjectAPI is the subset of the S3 client we use.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher writes files to {prefix}/{dataset id}/{name} in a bucket.
type S3Publisher struct {
	client putObjectAPI
	Bucket string
	Prefix string
}

// New creates a publisher from configuration. Credentials come from the
// default AWS chain, e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.
func New(ctx context.Context, cfg config.S3) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.UsePathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewWithClient creates a publisher using an existing client.
func NewWithClient(client putObjectAPI, bucket, prefix string) *S3Publisher {
	return &S3Publisher{client: client, Bucket: bucket, Prefix: strings.Trim(prefix, "/")}
}

// Key returns the object key of a file of a dataset.
func (p *S3Publisher) Key(datasetID int64, name string) string {
	return path.Join(p.Prefix, strconv.FormatInt(datasetID, 10), name)
}

// Publish uploads files, stopping at the first error. Each object carries the
// SHA-256 of its content as metadata.
func (p *S3Publisher) Publish(ctx context.Context, datasetID int64, dir string, names []string) error {
	for _, name := range names {
		if err := p.put(ctx, datasetID, filepath.Join(dir, name), name); err != nil {
			return fmt.Errorf("publish %s: %w", name, err)
		}
	}
	log.WithFields(log.Fields{
		"dataset": datasetID,
		"bucket":  p.Bucket,
		"files":   len(names),
	}).Info("publish: done")
	return nil
}

func (p *S3Publisher) put(ctx context.Context, datasetID int64, filename, name string) error {
	sum, err := dump.Checksum(filename)
	if err != nil {
		return err
	}
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return err
	}
	key := p.Key(datasetID, name)
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.Bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(fi.Size()),
		ContentType:   aws.String(contentType(name)),
		Metadata:      map[string]string{"sha256": sum},
	})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"key": key, "size": fi.Size()}).Debug("publish: put")
	return nil
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
