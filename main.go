package main

import (
	"HotelCS/impl/core"
	"HotelCS/internal/config"
	"HotelCS/internal/http-server/api"
	"HotelCS/internal/lib/logger"
	"HotelCS/internal/lib/sl"
	"HotelCS/internal/registry"
	"context"
	"flag"
	"log/slog"

	"github.com/joho/godotenv"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	_ = godotenv.Load()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting hotelcs", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	sessions := registry.New(lg)
	handler := core.New(conf, lg, sessions)

	sweeper := registry.NewSweeper(sessions, conf.WebSocket.SweepInterval, conf.WebSocket.HeartbeatTTL, lg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Run(ctx)

	lg.With(
		slog.String("server_url", conf.WebSocket.ServerURL),
		slog.Duration("heartbeat_ttl", conf.WebSocket.HeartbeatTTL),
		slog.Duration("token_validity", conf.Token.Validity),
	).Info("notification core initialized")

	// *** blocking start with http server ***
	err := api.New(conf, lg, handler, sessions)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
