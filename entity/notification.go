package entity

import "encoding/json"

// NotificationMessage is the outbound frame pushed to WebSocket clients.
// Field casing matches the wire contract the guest and agent frontends
// already consume.
type NotificationMessage struct {
	Type           string          `json:"type"`
	ConversationID string          `json:"conversationId"`
	Timestamp      int64           `json:"timestamp"`
	Data           json.RawMessage `json:"data,omitempty"`
}
