package entity

import "encoding/json"

// EventKind is the canonical type of a Chatwoot webhook event.
type EventKind string

const (
	EventMessageCreated       EventKind = "message_created"
	EventConversationCreated  EventKind = "conversation_created"
	EventConversationUpdated  EventKind = "conversation_updated"
	EventConversationResolved EventKind = "conversation_resolved"
	EventUnknown              EventKind = "unknown"
)

// Direction is the message direction of a message_created event.
type Direction string

const (
	DirectionIncoming Direction = "incoming" // guest -> agent
	DirectionOutgoing Direction = "outgoing" // agent -> guest
)

// ChatwootEvent is the normalized form of a webhook payload, decoupled from
// the external payload shape. RecipientIdentity/RecipientRole are set only
// for message_created; RawBody carries a verbatim snapshot of the originating
// message or conversation payload.
type ChatwootEvent struct {
	Kind              EventKind       `json:"kind"`
	ConversationID    string          `json:"conversation_id"`
	Direction         Direction       `json:"direction,omitempty"`
	RecipientIdentity string          `json:"recipient_identity,omitempty"`
	RecipientRole     Role            `json:"recipient_role,omitempty"`
	RawBody           json.RawMessage `json:"raw_body,omitempty"`
}
