package api

import (
	"HotelCS/internal/config"
	"HotelCS/internal/http-server/handlers/connect"
	"HotelCS/internal/http-server/handlers/errors"
	"HotelCS/internal/http-server/handlers/status"
	"HotelCS/internal/http-server/handlers/webhook"
	"HotelCS/internal/http-server/middleware/reqlog"
	"HotelCS/internal/http-server/middleware/timeout"
	"HotelCS/internal/lib/sl"
	"HotelCS/internal/registry"
	"HotelCS/internal/ws"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net"
	"net/http"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	webhook.Core
	connect.Core
	status.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, sessions *registry.Registry) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(reqlog.New(log))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(timeout.Timeout(5))
		v1.Use(render.SetContentType(render.ContentTypeJSON))
		v1.Route("/connect", func(r chi.Router) {
			r.Post("/agent", connect.Agent(log, handler))
			r.Post("/guest", connect.Guest(log, handler))
		})
		v1.Get("/status/{userId}", status.UserStatus(log, handler))
		v1.Get("/stats", status.OnlineStats(log, handler))
	})

	router.Route("/webhook", func(r chi.Router) {
		r.Use(timeout.Timeout(5))
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Post("/chatwoot", webhook.Chatwoot(log, handler))
	})

	// no timeout middleware here: upgraded connections are long-lived
	router.Get("/ws/notify", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(sessions, conf.Token.Validity, log, w, r)
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
