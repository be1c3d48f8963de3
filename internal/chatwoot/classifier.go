package chatwoot

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"HotelCS/entity"
	"HotelCS/internal/lib/sl"
)

// Classifier maps raw Chatwoot webhook payloads to canonical events. Input
// is the already JSON-decoded body as a generic document; the classifier
// never fails hard on missing optional fields, it only discards payloads
// that miss the few required ones.
type Classifier struct {
	log *slog.Logger
}

func NewClassifier(log *slog.Logger) *Classifier {
	return &Classifier{
		log: log.With(sl.Module("chatwoot.classifier")),
	}
}

// Classify returns the canonical event for payload, or nil when the payload
// should be discarded (unknown event tag, unusable direction, or a
// conversation_* event without a conversation object).
func (c *Classifier) Classify(payload map[string]interface{}) *entity.ChatwootEvent {
	tag := asString(payload["event"])
	if tag == "" {
		tag = string(entity.EventUnknown)
	}

	switch entity.EventKind(tag) {
	case entity.EventMessageCreated:
		return c.classifyMessageCreated(payload)
	case entity.EventConversationCreated,
		entity.EventConversationUpdated,
		entity.EventConversationResolved:
		return c.classifyConversation(payload, entity.EventKind(tag))
	default:
		c.log.Warn("unknown event type, discarding", slog.String("event", tag))
		return nil
	}
}

func (c *Classifier) classifyMessageCreated(payload map[string]interface{}) *entity.ChatwootEvent {
	conversation := asMap(payload["conversation"])

	event := &entity.ChatwootEvent{
		Kind:           entity.EventMessageCreated,
		ConversationID: asString(mapValue(conversation, "id")),
		RawBody:        firstMessageSnapshot(conversation),
	}

	direction := entity.Direction(asString(payload["message_type"]))
	switch direction {
	case entity.DirectionIncoming:
		// guest -> agent: deliver to the conversation's assignee
		event.Direction = direction
		event.RecipientRole = entity.RoleAgent
		event.RecipientIdentity = recipientFromMeta(conversation, "assignee")
	case entity.DirectionOutgoing:
		// agent -> guest: deliver to the conversation's sender
		event.Direction = direction
		event.RecipientRole = entity.RoleGuest
		event.RecipientIdentity = recipientFromMeta(conversation, "sender")
	default:
		c.log.Warn("unusable message direction, discarding",
			slog.String("message_type", string(direction)),
			slog.String("conversation_id", event.ConversationID),
		)
		return nil
	}

	return event
}

func (c *Classifier) classifyConversation(payload map[string]interface{}, kind entity.EventKind) *entity.ChatwootEvent {
	conversation := asMap(payload["conversation"])
	if conversation == nil {
		c.log.Warn("conversation event without conversation object, discarding",
			slog.String("event", string(kind)),
		)
		return nil
	}

	return &entity.ChatwootEvent{
		Kind:           kind,
		ConversationID: asString(conversation["id"]),
		RawBody:        conversationSnapshot(conversation, kind),
	}
}

// firstMessageSnapshot serializes conversation.messages[0] verbatim when the
// conversation carries a non-empty message list.
func firstMessageSnapshot(conversation map[string]interface{}) json.RawMessage {
	if conversation == nil {
		return nil
	}
	messages, ok := conversation["messages"].([]interface{})
	if !ok || len(messages) == 0 {
		return nil
	}
	first, ok := messages[0].(map[string]interface{})
	if !ok {
		return nil
	}
	raw, err := json.Marshal(first)
	if err != nil {
		return nil
	}
	return raw
}

// conversationSnapshot serializes the conversation object for events that
// forward it to clients. conversation_resolved carries no body.
func conversationSnapshot(conversation map[string]interface{}, kind entity.EventKind) json.RawMessage {
	if kind == entity.EventConversationResolved {
		return nil
	}
	raw, err := json.Marshal(conversation)
	if err != nil {
		return nil
	}
	return raw
}

// recipientFromMeta reads conversation.meta.<field>. A structured value
// resolves to its id field, a scalar is used as-is.
func recipientFromMeta(conversation map[string]interface{}, field string) string {
	meta := asMap(mapValue(conversation, "meta"))
	if meta == nil {
		return ""
	}
	value, ok := meta[field]
	if !ok || value == nil {
		return ""
	}
	if structured, ok := value.(map[string]interface{}); ok {
		return asString(structured["id"])
	}
	return asString(value)
}

func mapValue(m map[string]interface{}, key string) interface{} {
	if m == nil {
		return nil
	}
	return m[key]
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

// asString stringifies the scalar shapes encoding/json produces. Numeric ids
// must not pick up an exponent, hence FormatFloat with -1 precision.
func asString(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case json.Number:
		return value.String()
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}
