package ws

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"HotelCS/entity"
	"HotelCS/internal/lib/sl"
	"HotelCS/internal/lib/wstoken"
	"HotelCS/internal/registry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWs authorizes a connection attempt and hands the socket to the
// session registry. The client presents identity, role and a previously
// issued token as query parameters; the token must decode cleanly and must
// bind the same identity and role the client claims.
func ServeWs(reg *registry.Registry, tokenWindow time.Duration, log *slog.Logger, w http.ResponseWriter, r *http.Request) {
	logger := log.With(sl.Module("ws"))

	query := r.URL.Query()
	identity := query.Get("user_id")
	roleRaw := query.Get("role")
	token := query.Get("token")
	if identity == "" || roleRaw == "" || token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	role, err := entity.ParseRole(roleRaw)
	if err != nil {
		logger.Warn("connection attempt with unknown role", slog.String("role", roleRaw))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	claims, err := wstoken.Validate(token, tokenWindow, time.Now())
	if err != nil {
		logger.Warn("connection token rejected",
			slog.String("identity", identity),
			sl.Secret("token", token),
			sl.Err(err),
		)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if claims.Identity != identity || claims.Role != role {
		logger.Warn("connection token does not match presented identity",
			slog.String("identity", identity),
			slog.String("role", string(role)),
		)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", sl.Err(err))
		return
	}

	client := &Client{
		registry: reg,
		conn:     conn,
		send:     make(chan []byte, 256),
		done:     make(chan struct{}),
		connID:   uuid.NewString(),
		identity: identity,
		log:      logger,
	}

	reg.Register(identity, role, client.connID, client)

	go client.writePump()
	go client.readPump()
}
