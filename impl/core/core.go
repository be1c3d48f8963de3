package core

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"HotelCS/entity"
	"HotelCS/internal/chatwoot"
	"HotelCS/internal/config"
	"HotelCS/internal/lib/sl"
	"HotelCS/internal/lib/wstoken"
	"HotelCS/internal/notify"
	"HotelCS/internal/registry"
)

// Core wires the classifier, router and session registry together and
// implements every handler-facing interface. One instance is constructed at
// process start and passed to the HTTP layer; nothing here is global.
type Core struct {
	conf       *config.Config
	log        *slog.Logger
	sessions   *registry.Registry
	classifier *chatwoot.Classifier
	router     *notify.Router
}

func New(conf *config.Config, log *slog.Logger, sessions *registry.Registry) *Core {
	return &Core{
		conf:       conf,
		log:        log.With(sl.Module("core")),
		sessions:   sessions,
		classifier: chatwoot.NewClassifier(log),
		router:     notify.NewRouter(sessions, log),
	}
}

// ProcessWebhook runs one webhook payload through classification and
// routing. Discarded payloads are already logged by the classifier.
func (c *Core) ProcessWebhook(payload map[string]interface{}) {
	event := c.classifier.Classify(payload)
	if event == nil {
		return
	}
	c.router.Dispatch(event)
}

// IssueConnection builds the socket URL and token for one identity+role.
func (c *Core) IssueConnection(identity string, role entity.Role) entity.ConnectionResponse {
	token := wstoken.Issue(identity, role, time.Now())

	query := url.Values{}
	query.Set("user_id", identity)
	query.Set("role", string(role))
	query.Set("token", token)
	wsURL := fmt.Sprintf("%s/ws/notify?%s", c.conf.WebSocket.ServerURL, query.Encode())

	return entity.ConnectionResponse{
		WsURL:    wsURL,
		WsToken:  token,
		UserID:   identity,
		UserType: role,
	}
}

// IsOnline reports whether identity has at least one open session under role.
func (c *Core) IsOnline(identity string, role entity.Role) bool {
	return c.sessions.IsOnline(identity, role)
}

// CountOnline counts open sessions under role.
func (c *Core) CountOnline(role entity.Role) int {
	return c.sessions.CountOnline(role)
}

// CountTotal returns the total number of registered sessions.
func (c *Core) CountTotal() int {
	return c.sessions.CountTotal()
}
