package models

import "encoding/json"

// Wire formats of the Feishu open API. Not owned by this system: every
// nested level of the callback envelope is optional and must be accessed
// nil-safely.

// TenantTokenResponse is the token endpoint's response envelope
type TenantTokenResponse struct {
	Code              int    `json:"code"`
	Msg               string `json:"msg"`
	TenantAccessToken string `json:"tenant_access_token"`
}

// SendMessageResponse is the message-send endpoint's response envelope
type SendMessageResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		MessageID string `json:"message_id"`
	} `json:"data"`
}

// CallbackEnvelope is the inbound event envelope posted to the webhook
type CallbackEnvelope struct {
	Type      string         `json:"type,omitempty"`
	Challenge string         `json:"challenge,omitempty"`
	Event     *CallbackEvent `json:"event,omitempty"`
}

// CallbackEvent carries the interaction details
type CallbackEvent struct {
	Message  *CallbackMessage  `json:"message,omitempty"`
	Operator *CallbackOperator `json:"operator,omitempty"`
	Action   *CallbackAction   `json:"action,omitempty"`
}

type CallbackMessage struct {
	MessageID string `json:"message_id,omitempty"`
}

type CallbackOperator struct {
	OpenID string `json:"open_id,omitempty"`
}

type CallbackAction struct {
	ActionTime string          `json:"action_time,omitempty"`
	Tag        string          `json:"tag,omitempty"`
	Value      json.RawMessage `json:"value,omitempty"` // may be any JSON value
}

// MessageID returns event.message.message_id, or "" when any level is absent
func (e *CallbackEnvelope) MessageID() string {
	if e == nil || e.Event == nil || e.Event.Message == nil {
		return ""
	}
	return e.Event.Message.MessageID
}

// OperatorOpenID returns event.operator.open_id, or "" when absent
func (e *CallbackEnvelope) OperatorOpenID() string {
	if e == nil || e.Event == nil || e.Event.Operator == nil {
		return ""
	}
	return e.Event.Operator.OpenID
}

// ActionTime returns event.action.action_time, or "" when absent
func (e *CallbackEnvelope) ActionTime() string {
	if e == nil || e.Event == nil || e.Event.Action == nil {
		return ""
	}
	return e.Event.Action.ActionTime
}

// ActionTag returns event.action.tag, or "" when absent
func (e *CallbackEnvelope) ActionTag() string {
	if e == nil || e.Event == nil || e.Event.Action == nil {
		return ""
	}
	return e.Event.Action.Tag
}

// ActionValue returns event.action.value as raw JSON, or nil when absent
func (e *CallbackEnvelope) ActionValue() json.RawMessage {
	if e == nil || e.Event == nil || e.Event.Action == nil {
		return nil
	}
	return e.Event.Action.Value
}
