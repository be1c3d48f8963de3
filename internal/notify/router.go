package notify

import (
	"encoding/json"
	"log/slog"
	"time"

	"HotelCS/entity"
	"HotelCS/internal/lib/sl"
	"HotelCS/internal/registry"
)

// Sessions is the slice of the session registry the router needs.
type Sessions interface {
	Send(identity string, role entity.Role, payload []byte) registry.DeliveryOutcome
	BroadcastToRole(role entity.Role, payload []byte, excludeIdentity string)
}

// Router turns a canonical event into at most one dispatch against the
// session registry.
//
// conversation_updated and conversation_resolved go to every connected guest
// and agent: no per-conversation participant roster is tracked, so the
// broadcast cannot be narrowed to actual participants. Known limitation.
type Router struct {
	sessions Sessions
	log      *slog.Logger
}

func NewRouter(sessions Sessions, log *slog.Logger) *Router {
	return &Router{
		sessions: sessions,
		log:      log.With(sl.Module("notify.router")),
	}
}

// Dispatch builds the outbound notification for event and delivers it
// according to the event kind. Events that cannot be routed are logged and
// dropped; there is no retry and no queue.
func (r *Router) Dispatch(event *entity.ChatwootEvent) {
	if event == nil {
		return
	}

	payload, err := r.buildPayload(event)
	if err != nil {
		r.log.Error("failed to serialize notification", sl.Err(err))
		return
	}

	switch event.Kind {
	case entity.EventMessageCreated:
		r.dispatchMessage(event, payload)
	case entity.EventConversationCreated:
		r.sessions.BroadcastToRole(entity.RoleAgent, payload, "")
	case entity.EventConversationUpdated, entity.EventConversationResolved:
		r.sessions.BroadcastToRole(entity.RoleGuest, payload, "")
		r.sessions.BroadcastToRole(entity.RoleAgent, payload, "")
	case entity.EventUnknown:
		// classifier already discarded these; nothing to do
	}
}

func (r *Router) dispatchMessage(event *entity.ChatwootEvent, payload []byte) {
	if event.RecipientIdentity == "" || event.RecipientRole == "" {
		r.log.Warn("message event without recipient, dropping",
			slog.String("conversation_id", event.ConversationID),
			slog.String("direction", string(event.Direction)),
		)
		return
	}

	outcome := r.sessions.Send(event.RecipientIdentity, event.RecipientRole, payload)
	r.log.Debug("message notification dispatched",
		slog.String("identity", event.RecipientIdentity),
		slog.String("role", string(event.RecipientRole)),
		slog.String("conversation_id", event.ConversationID),
		slog.Int("delivered", outcome.Delivered),
		slog.Int("evicted", outcome.Evicted),
	)
}

func (r *Router) buildPayload(event *entity.ChatwootEvent) ([]byte, error) {
	notification := entity.NotificationMessage{
		Type:           string(event.Kind),
		ConversationID: event.ConversationID,
		Timestamp:      time.Now().UnixMilli(),
	}
	if event.Kind != entity.EventConversationResolved {
		notification.Data = event.RawBody
	}
	return json.Marshal(notification)
}
