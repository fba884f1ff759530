// Package archive keeps raw AI output that could not be parsed so it can be
// inspected after the fact.
package archive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/muhammadolammi/careerinsights/internal/slug"
)

type Archiver interface {
	Archive(ctx context.Context, industry, raw string) (string, error)
}

// Nop discards everything. Used when R2 is not configured.
type Nop struct{}

func (Nop) Archive(context.Context, string, string) (string, error) { return "", nil }

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// R2Archiver uploads raw responses to a Cloudflare R2 bucket.
type R2Archiver struct {
	client objectPutter
	bucket string
	now    func() time.Time
}

// NewR2Archiver builds an S3 client pointed at the account's R2 endpoint.
func NewR2Archiver(ctx context.Context, accountID, bucket, accessKey, secretKey string) (*R2Archiver, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID))
	})
	return &R2Archiver{client: client, bucket: bucket, now: time.Now}, nil
}

// Archive stores raw under ai-responses/<industry-slug>/<unix-nanos>.txt and
// returns the object key.
func (a *R2Archiver) Archive(ctx context.Context, industry, raw string) (string, error) {
	key := fmt.Sprintf("ai-responses/%s/%d.txt", slug.Make(industry), a.now().UnixNano())
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(raw),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}
	return key, nil
}
