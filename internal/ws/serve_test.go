package ws_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"HotelCS/entity"
	"HotelCS/internal/lib/wstoken"
	"HotelCS/internal/registry"
	"HotelCS/internal/ws"
)

func newWsServer(t *testing.T) (*httptest.Server, *registry.Registry) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := registry.New(log)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(sessions, 24*time.Hour, log, w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, sessions
}

func wsURL(srv *httptest.Server, identity string, role entity.Role, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/?user_id=" + identity + "&role=" + string(role) + "&token=" + token
}

func waitOnline(t *testing.T, sessions *registry.Registry, identity string, role entity.Role) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if sessions.IsOnline(identity, role) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("%s/%s never came online", identity, role)
}

func TestServeWs_RegistersAndAnswersPing(t *testing.T) {
	srv, sessions := newWsServer(t)

	token := wstoken.Issue("G1", entity.RoleGuest, time.Now())
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "G1", entity.RoleGuest, token), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitOnline(t, sessions, "G1", entity.RoleGuest)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read pong: %v", err)
	}
	if string(data) != "pong" {
		t.Fatalf("expected pong, got %q", data)
	}
}

func TestServeWs_DeliversRegistryFrames(t *testing.T) {
	srv, sessions := newWsServer(t)

	token := wstoken.Issue("A1", entity.RoleAgent, time.Now())
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "A1", entity.RoleAgent, token), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitOnline(t, sessions, "A1", entity.RoleAgent)

	outcome := sessions.Send("A1", entity.RoleAgent, []byte(`{"type":"message_created"}`))
	if outcome.Delivered != 1 {
		t.Fatalf("expected delivery, got %+v", outcome)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"type":"message_created"}` {
		t.Fatalf("unexpected frame: %s", data)
	}
}

func TestServeWs_RejectsInvalidToken(t *testing.T) {
	srv, _ := newWsServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "G1", entity.RoleGuest, "garbage"), nil)
	if err == nil {
		t.Fatal("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", resp)
	}
}

func TestServeWs_RejectsMismatchedIdentity(t *testing.T) {
	srv, _ := newWsServer(t)

	// token issued for someone else
	token := wstoken.Issue("G2", entity.RoleGuest, time.Now())
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "G1", entity.RoleGuest, token), nil)
	if err == nil {
		t.Fatal("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", resp)
	}
}

func TestServeWs_DisconnectRemovesSession(t *testing.T) {
	srv, sessions := newWsServer(t)

	token := wstoken.Issue("G1", entity.RoleGuest, time.Now())
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "G1", entity.RoleGuest, token), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitOnline(t, sessions, "G1", entity.RoleGuest)

	_ = conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if sessions.CountTotal() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("session not removed after disconnect, total=%d", sessions.CountTotal())
}
