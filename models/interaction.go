package models

// InteractionRecord is one user interaction with a previously sent card,
// normalized from the platform callback. Immutable once written; one card
// context fans out to many records (one per click). Redelivered queue
// messages produce duplicate records with distinct interactionIds; a natural
// dedup key would be messageId + interactionTime.
type InteractionRecord struct {
	MessageID       string `dynamodbav:"messageId" json:"messageId"`             // partition key
	InteractionID   string `dynamodbav:"interactionId" json:"interactionId"`     // sort key (uuid)
	CardTitle       string `dynamodbav:"cardTitle" json:"cardTitle"`             // resolved title or UnknownCardTitle
	UserID          string `dynamodbav:"userId" json:"userId"`                   // acting user's open_id, empty when absent
	InteractionTime string `dynamodbav:"interactionTime" json:"interactionTime"` // platform action_time, empty when absent
	InteractionTag  string `dynamodbav:"interactionTag" json:"interactionTag"`   // e.g. "button", empty when absent
	Value           string `dynamodbav:"value" json:"value"`                     // raw JSON text of the action value
	RawEvent        string `dynamodbav:"rawEvent" json:"rawEvent"`               // full original payload, verbatim, for forensic replay
	CreatedAt       string `dynamodbav:"createdAt" json:"createdAt"`
}
