package services

import "errors"

// Failure taxonomy for calls that leave the process. Wrapped with %w at the
// call site; controllers classify with errors.Is and map to HTTP statuses.
var (
	// ErrUpstreamUnavailable: transport failure or non-2xx talking to Feishu
	ErrUpstreamUnavailable = errors.New("feishu api unreachable")
	// ErrUpstreamRejected: Feishu answered with a non-zero business code
	ErrUpstreamRejected = errors.New("feishu api rejected request")
	// ErrMalformedUpstreamResponse: success status but an expected field is missing
	ErrMalformedUpstreamResponse = errors.New("feishu response missing expected field")
	// ErrQueueUnavailable: enqueue/receive failed; the platform's redelivery is the retry path
	ErrQueueUnavailable = errors.New("work queue unavailable")
)
