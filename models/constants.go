package models

import "time"

// ✅ DynamoDB table names
const (
	CardContextsTable     = "CardContexts"
	CardInteractionsTable = "CardInteractions"
)

// ✅ Task names understood by the interaction consumer
const TaskSaveInteraction = "interactions.save_interaction"

// UnknownCardTitle is the sentinel title recorded when no card context can be
// resolved for a callback. A record never carries an empty title.
const UnknownCardTitle = "Unknown"

// CardContextTTL bounds how long a card context stays resolvable (604800s)
const CardContextTTL = 7 * 24 * time.Hour

const contextKeyPrefix = "card_context:"

// ContextKey builds the storage key for a card context
func ContextKey(messageID string) string {
	return contextKeyPrefix + messageID
}
