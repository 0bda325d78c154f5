package models

import "encoding/json"

// InteractionJob is the queue payload handed from the callback handler to the
// interaction consumer. CardTitle is the title resolved at ingress time (a
// hint; the consumer re-resolves), RawInteraction is the original callback
// body verbatim.
type InteractionJob struct {
	CardTitle      string          `json:"card_title"`
	RawInteraction json.RawMessage `json:"raw_interaction"`
}
