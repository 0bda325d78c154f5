package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"feishu_card_server/models"

	"github.com/google/uuid"
)

// InteractionFeed receives each stored record for live delivery to connected
// operator clients
type InteractionFeed interface {
	PublishInteraction(record models.InteractionRecord)
}

// InteractionService normalizes queued interaction events and writes them to
// persistent storage
type InteractionService struct {
	Dynamo   *DynamoService
	Contexts *ContextService
	Archive  *ArchiveService // optional, nil disables raw-event archival
	Feed     InteractionFeed // optional, nil disables the live feed
}

// ProcessJob handles one queued interaction. An error return marks the job
// failed; the queue's redrive policy decides what happens to it next.
func (is *InteractionService) ProcessJob(ctx context.Context, job models.InteractionJob) error {
	var envelope models.CallbackEnvelope
	if err := json.Unmarshal(job.RawInteraction, &envelope); err != nil {
		return fmt.Errorf("failed to parse raw interaction: %w", err)
	}

	messageID := envelope.MessageID()
	if messageID == "" {
		return errors.New("interaction payload has no message_id")
	}

	// Re-resolve the title from the store; the hint in the job payload was
	// resolved at ingress time and may be stale, but it beats the sentinel
	// when the context expired between enqueue and processing.
	cardTitle := job.CardTitle
	title, found, err := is.Contexts.GetTitle(ctx, messageID)
	if err != nil {
		log.Printf("⚠️ Context lookup failed for %s, using job hint: %v", messageID, err)
	} else if found {
		cardTitle = title
	}
	if cardTitle == "" {
		cardTitle = models.UnknownCardTitle
	}

	record := models.InteractionRecord{
		MessageID:       messageID,
		InteractionID:   uuid.New().String(),
		CardTitle:       cardTitle,
		UserID:          envelope.OperatorOpenID(),
		InteractionTime: envelope.ActionTime(),
		InteractionTag:  envelope.ActionTag(),
		Value:           string(envelope.ActionValue()),
		RawEvent:        string(job.RawInteraction),
		CreatedAt:       time.Now().Format(time.RFC3339),
	}

	if err := is.Dynamo.PutItem(ctx, models.CardInteractionsTable, record); err != nil {
		return fmt.Errorf("failed to store interaction: %w", err)
	}
	log.Printf("✅ Stored interaction %s for message_id: %s", record.InteractionID, messageID)

	// Archival is best effort; the record is already durable.
	if is.Archive != nil {
		if key, err := is.Archive.StoreRawEvent(ctx, messageID, record.InteractionID, job.RawInteraction); err != nil {
			log.Printf("⚠️ Raw event archival failed for %s: %v", messageID, err)
		} else {
			log.Printf("🗄️ Archived raw event at %s", key)
		}
	}

	if is.Feed != nil {
		is.Feed.PublishInteraction(record)
	}
	return nil
}
