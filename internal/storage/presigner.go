package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/config"
)

// UploadSlot is a time-limited direct-upload destination. The client PUTs
// the file bytes straight to the URL; this service never touches them.
type UploadSlot struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Presigner issues presigned upload destinations for document files
type Presigner interface {
	PresignUpload(ctx context.Context, companyID uint, fileName, mimeType string) (*UploadSlot, error)
}

type s3Presigner struct {
	presigner *s3.PresignClient
	bucket    string
	expiry    time.Duration
}

// NewS3Presigner creates a presigner backed by S3. A non-empty endpoint in
// the storage config points the client at a LocalStack/minio style local
// stack with static credentials.
func NewS3Presigner(ctx context.Context, storageConfig *config.StorageConfig) (Presigner, error) {
	var cfg aws.Config
	var err error

	if storageConfig.Endpoint != "" {
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(storageConfig.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
		)
	} else {
		cfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(storageConfig.Region))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if storageConfig.Endpoint != "" {
			o.BaseEndpoint = aws.String(storageConfig.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Presigner{
		presigner: s3.NewPresignClient(client),
		bucket:    storageConfig.Bucket,
		expiry:    storageConfig.PresignExpiry,
	}, nil
}

// PresignUpload generates a presigned PUT URL under a per-company prefix.
// The key embeds a UUID so re-uploads of the same file name never collide.
func (p *s3Presigner) PresignUpload(ctx context.Context, companyID uint, fileName, mimeType string) (*UploadSlot, error) {
	key := fmt.Sprintf("companies/%d/documents/%s-%s", companyID, uuid.New().String(), fileName)

	input := &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}
	if mimeType != "" {
		input.ContentType = aws.String(mimeType)
	}

	req, err := p.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &UploadSlot{
		UploadURL: req.URL,
		Key:       key,
		ExpiresAt: time.Now().Add(p.expiry),
	}, nil
}
