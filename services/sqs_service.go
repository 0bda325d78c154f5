package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// TaskAttributeName is the message attribute carrying the task name
const TaskAttributeName = "task"

// SQSAPI is the subset of the SQS client this service uses, so tests can
// substitute a fake.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// QueueService is the work-queue transport between the callback handler and
// the interaction consumer. At-least-once, competing consumers; a message
// only disappears when Delete is called after successful processing.
type QueueService struct {
	Client   SQSAPI
	QueueURL string
}

// InitializeSQSClient initializes the SQS client
func InitializeSQSClient() *sqs.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return sqs.NewFromConfig(cfg)
}

// Enqueue submits a named task with a JSON payload to the queue
func (qs *QueueService) Enqueue(ctx context.Context, task string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal job payload: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(qs.QueueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			TaskAttributeName: {
				DataType:    aws.String("String"),
				StringValue: aws.String(task),
			},
		},
	}
	// FIFO queues require a message group id
	if strings.HasSuffix(qs.QueueURL, ".fifo") {
		input.MessageGroupId = aws.String(task)
	}

	if _, err := qs.Client.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("%w: %v", ErrQueueUnavailable, err)
	}
	return nil
}

// Receive long-polls the queue for up to 20 seconds
func (qs *QueueService) Receive(ctx context.Context) ([]types.Message, error) {
	output, err := qs.Client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:              aws.String(qs.QueueURL),
		MaxNumberOfMessages:   5,
		WaitTimeSeconds:       20,
		MessageAttributeNames: []string{TaskAttributeName},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueueUnavailable, err)
	}
	return output.Messages, nil
}

// Delete removes a processed message from the queue
func (qs *QueueService) Delete(ctx context.Context, receiptHandle string) error {
	_, err := qs.Client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(qs.QueueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		return fmt.Errorf("failed to delete message from queue: %w", err)
	}
	return nil
}
