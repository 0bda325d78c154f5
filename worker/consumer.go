package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"feishu_card_server/models"
	"feishu_card_server/services"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// Consumer pulls interaction jobs from the work queue and hands them to the
// interaction service. Multiple consumers may compete on the same queue; a
// message is deleted only after its job succeeds, so failed jobs are
// redelivered under the queue's redrive policy.
type Consumer struct {
	Queue        *services.QueueService
	Interactions *services.InteractionService
}

// Run processes jobs until the context is cancelled
func (c *Consumer) Run(ctx context.Context) {
	log.Println("👷 Interaction consumer started")
	for {
		select {
		case <-ctx.Done():
			log.Println("👷 Interaction consumer stopped")
			return
		default:
		}

		messages, err := c.Queue.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			log.Println("❌ Failed to receive messages:", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, message := range messages {
			c.handleMessage(ctx, message)
		}
	}
}

// handleMessage processes a single queue message. Failures are terminal for
// the message only, never for the consumer loop.
func (c *Consumer) handleMessage(ctx context.Context, message types.Message) {
	task := taskName(message)
	if task != models.TaskSaveInteraction {
		// Left undeleted: the queue's redrive policy owns poison messages.
		log.Printf("⚠️ Skipping message with unknown task %q", task)
		return
	}

	if message.Body == nil {
		log.Println("⚠️ Skipping message with empty body")
		return
	}

	var job models.InteractionJob
	if err := json.Unmarshal([]byte(*message.Body), &job); err != nil {
		log.Println("❌ Failed to parse job payload:", err)
		return
	}

	if err := c.Interactions.ProcessJob(ctx, job); err != nil {
		log.Println("❌ Job failed:", err)
		return
	}

	if message.ReceiptHandle != nil {
		if err := c.Queue.Delete(ctx, *message.ReceiptHandle); err != nil {
			log.Println("⚠️ Failed to delete processed message:", err)
		}
	}
}

func taskName(message types.Message) string {
	attr, ok := message.MessageAttributes[services.TaskAttributeName]
	if !ok || attr.StringValue == nil {
		return ""
	}
	return *attr.StringValue
}
