package models

// CardContext maps a sent message to the metadata needed to interpret a
// later callback referencing it. Written once per successful send, read by
// the callback handler and the interaction consumer, and expired via the
// table's TTL attribute.
type CardContext struct {
	ContextKey string `dynamodbav:"contextKey" json:"contextKey"` // "card_context:<messageId>" (partition key)
	MessageID  string `dynamodbav:"messageId" json:"messageId"`
	CardTitle  string `dynamodbav:"cardTitle" json:"cardTitle"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
	ExpiresAt  int64  `dynamodbav:"expiresAt" json:"expiresAt"` // epoch seconds, DynamoDB TTL attribute
}
