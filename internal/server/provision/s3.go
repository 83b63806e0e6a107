package provision

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/ajcloudsolutions/vmailapi/internal/server/config"
	"github.com/ajcloudsolutions/vmailapi/internal/server/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MarkerName is the object written under each provisioned mailbox prefix.
const MarkerName = ".keep"

// ObjectPutter is the part of *s3.Client used here.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 writes an empty marker object at <storagenode>/<maildir>/<mailboxfolder>/.keep.
type S3 struct {
	client ObjectPutter
	bucket string
}

func NewS3(client ObjectPutter, bucket string) *S3 {
	return &S3{client: client, bucket: bucket}
}

// loadDefaultAWSConfig is a seam for tests.
var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// NewS3FromConfig builds an S3 client for an S3-compatible endpoint
// (MinIO and similar) using static credentials from cfg.
func NewS3FromConfig(ctx context.Context, cfg *config.Config) (*S3, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return NewS3(client, cfg.S3Bucket), nil
}

// Key returns the marker object key for mailbox.
func (p *S3) Key(mailbox *models.Mailbox) string {
	return path.Join(relativeHome(mailbox), MarkerName)
}

func (p *S3) Provision(ctx context.Context, mailbox *models.Mailbox) error {
	key := p.Key(mailbox)
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(nil),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
