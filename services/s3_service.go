package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client this service uses
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ArchiveService keeps verbatim copies of inbound callback payloads in S3
// for forensic replay
type ArchiveService struct {
	Client S3API
	Bucket string
}

// InitializeS3Client initializes the S3 client
func InitializeS3Client() *s3.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return s3.NewFromConfig(cfg)
}

// StoreRawEvent writes the payload under interactions/<messageId>/<interactionId>.json
// and returns the object key
func (as *ArchiveService) StoreRawEvent(ctx context.Context, messageID, interactionID string, payload []byte) (string, error) {
	key := "interactions/" + messageID + "/" + interactionID + ".json"

	_, err := as.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(as.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive raw event: %w", err)
	}
	return key, nil
}
