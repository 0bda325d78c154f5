package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"feishu_card_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ContextService persists the message-id → card-title mapping that lets a
// later callback be interpreted
type ContextService struct {
	Dynamo *DynamoService
}

// PutContext stores the card context with a bounded TTL
func (cs *ContextService) PutContext(ctx context.Context, messageID, cardTitle string, ttl time.Duration) error {
	now := time.Now()
	item := models.CardContext{
		ContextKey: models.ContextKey(messageID),
		MessageID:  messageID,
		CardTitle:  cardTitle,
		CreatedAt:  now.Format(time.RFC3339),
		ExpiresAt:  now.Add(ttl).Unix(),
	}

	if err := cs.Dynamo.PutItem(ctx, models.CardContextsTable, item); err != nil {
		return err
	}
	log.Printf("✅ Stored card context for message_id: %s", messageID)
	return nil
}

// GetTitle resolves the card title for a message id. A missing or expired
// entry is a normal miss (found=false, nil error), never a fault.
func (cs *ContextService) GetTitle(ctx context.Context, messageID string) (string, bool, error) {
	key := map[string]types.AttributeValue{
		"contextKey": &types.AttributeValueMemberS{Value: models.ContextKey(messageID)},
	}

	item, err := cs.Dynamo.GetItem(ctx, models.CardContextsTable, key)
	if err != nil {
		return "", false, err
	}
	if item == nil {
		return "", false, nil
	}

	var cardContext models.CardContext
	if err := attributevalue.UnmarshalMap(item, &cardContext); err != nil {
		return "", false, fmt.Errorf("failed to parse card context: %w", err)
	}

	// DynamoDB TTL deletion is lazy; an expired item can still be returned.
	if cardContext.ExpiresAt > 0 && cardContext.ExpiresAt <= time.Now().Unix() {
		if err := cs.Dynamo.DeleteItem(ctx, models.CardContextsTable, key); err != nil {
			log.Printf("⚠️ Failed to purge expired context for %s: %v", messageID, err)
		}
		return "", false, nil
	}

	return cardContext.CardTitle, true, nil
}
