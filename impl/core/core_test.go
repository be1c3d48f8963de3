package core

import (
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"
	"time"

	"HotelCS/entity"
	"HotelCS/internal/config"
	"HotelCS/internal/lib/wstoken"
	"HotelCS/internal/registry"
)

func newTestCore() *Core {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	conf := &config.Config{}
	conf.WebSocket.ServerURL = "ws://hotel.example:7766"
	conf.Token.Validity = 24 * time.Hour
	return New(conf, log, registry.New(log))
}

func TestIssueConnection(t *testing.T) {
	c := newTestCore()

	resp := c.IssueConnection("A1", entity.RoleAgent)

	if resp.UserID != "A1" || resp.UserType != entity.RoleAgent {
		t.Fatalf("unexpected response: %+v", resp)
	}

	claims, err := wstoken.Validate(resp.WsToken, 24*time.Hour, time.Now())
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Identity != "A1" || claims.Role != entity.RoleAgent {
		t.Fatalf("token binds %s/%s", claims.Identity, claims.Role)
	}

	if !strings.HasPrefix(resp.WsURL, "ws://hotel.example:7766/ws/notify?") {
		t.Fatalf("wsUrl = %q", resp.WsURL)
	}
	parsed, err := url.Parse(resp.WsURL)
	if err != nil {
		t.Fatalf("wsUrl unparseable: %v", err)
	}
	query := parsed.Query()
	if query.Get("user_id") != "A1" || query.Get("role") != "agent" || query.Get("token") != resp.WsToken {
		t.Fatalf("wsUrl query = %v", query)
	}
}
