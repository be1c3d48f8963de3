package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// SetupLogger builds the process logger for the given environment.
// local logs human-readable debug to stdout; dev and prod log JSON,
// duplicated into a file under logPath when the file can be opened.
func SetupLogger(env, logPath string) *slog.Logger {
	var out io.Writer = os.Stdout
	if env != envLocal {
		if f := openLogFile(logPath); f != nil {
			out = io.MultiWriter(os.Stdout, f)
		}
	}

	var handler slog.Handler
	switch env {
	case envLocal:
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	case envDev:
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	case envProd:
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	return slog.New(handler)
}

func openLogFile(logPath string) *os.File {
	if logPath == "" {
		return nil
	}
	name := filepath.Join(logPath, "hotelcs.log")
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}
	return f
}
