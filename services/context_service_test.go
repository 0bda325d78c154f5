package services

import (
	"context"
	"testing"
	"time"

	"feishu_card_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamoClient keeps items in memory, keyed by the contextKey attribute
type fakeDynamoClient struct {
	items   map[string]map[string]types.AttributeValue
	deleted []string
}

func newFakeDynamoClient() *fakeDynamoClient {
	return &fakeDynamoClient{items: map[string]map[string]types.AttributeValue{}}
}

func itemKey(attrs map[string]types.AttributeValue) string {
	if attr, ok := attrs["contextKey"].(*types.AttributeValueMemberS); ok {
		return attr.Value
	}
	return ""
}

func (f *fakeDynamoClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.items[itemKey(params.Item)] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	item, ok := f.items[itemKey(params.Key)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamoClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	key := itemKey(params.Key)
	delete(f.items, key)
	f.deleted = append(f.deleted, key)
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestPutContextThenGetTitle(t *testing.T) {
	client := newFakeDynamoClient()
	contexts := &ContextService{Dynamo: &DynamoService{Client: client}}

	if err := contexts.PutContext(context.Background(), "om_123", "Survey Card", models.CardContextTTL); err != nil {
		t.Fatalf("PutContext failed: %v", err)
	}

	stored, ok := client.items[models.ContextKey("om_123")]
	if !ok {
		t.Fatalf("context not stored under %q", models.ContextKey("om_123"))
	}
	var cardContext models.CardContext
	if err := attributevalue.UnmarshalMap(stored, &cardContext); err != nil {
		t.Fatalf("failed to unmarshal stored context: %v", err)
	}
	wantExpiry := time.Now().Add(models.CardContextTTL).Unix()
	if cardContext.ExpiresAt < wantExpiry-5 || cardContext.ExpiresAt > wantExpiry+5 {
		t.Errorf("expiresAt = %d, want about %d", cardContext.ExpiresAt, wantExpiry)
	}

	title, found, err := contexts.GetTitle(context.Background(), "om_123")
	if err != nil {
		t.Fatalf("GetTitle failed: %v", err)
	}
	if !found || title != "Survey Card" {
		t.Errorf("GetTitle = (%q, %v), want (\"Survey Card\", true)", title, found)
	}
}

func TestGetTitleMissIsNotAnError(t *testing.T) {
	contexts := &ContextService{Dynamo: &DynamoService{Client: newFakeDynamoClient()}}

	title, found, err := contexts.GetTitle(context.Background(), "om_absent")
	if err != nil {
		t.Fatalf("GetTitle on miss returned error: %v", err)
	}
	if found || title != "" {
		t.Errorf("GetTitle = (%q, %v), want miss", title, found)
	}
}

func TestGetTitleTreatsLazyExpiredItemAsMiss(t *testing.T) {
	client := newFakeDynamoClient()
	contexts := &ContextService{Dynamo: &DynamoService{Client: client}}

	expired, err := attributevalue.MarshalMap(models.CardContext{
		ContextKey: models.ContextKey("om_old"),
		MessageID:  "om_old",
		CardTitle:  "Old Card",
		CreatedAt:  time.Now().Add(-8 * 24 * time.Hour).Format(time.RFC3339),
		ExpiresAt:  time.Now().Add(-24 * time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	client.items[models.ContextKey("om_old")] = expired

	_, found, err := contexts.GetTitle(context.Background(), "om_old")
	if err != nil {
		t.Fatalf("GetTitle failed: %v", err)
	}
	if found {
		t.Error("expired context reported as found")
	}
	if len(client.deleted) != 1 || client.deleted[0] != models.ContextKey("om_old") {
		t.Errorf("expired context not purged, deletions: %v", client.deleted)
	}
}
