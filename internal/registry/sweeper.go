package registry

import (
	"context"
	"log/slog"
	"time"

	"HotelCS/entity"
	"HotelCS/internal/lib/sl"
)

// Sweeper periodically evicts sessions whose heartbeat has expired and logs
// aggregate connection stats. It runs independently of request traffic.
type Sweeper struct {
	registry *Registry
	interval time.Duration
	ttl      time.Duration
	log      *slog.Logger
}

func NewSweeper(registry *Registry, interval, ttl time.Duration, log *slog.Logger) *Sweeper {
	return &Sweeper{
		registry: registry,
		interval: interval,
		ttl:      ttl,
		log:      log.With(sl.Module("sweeper")),
	}
}

// Run blocks until ctx is cancelled, sweeping once per interval. A panic in
// one sweep is recovered so it cannot suppress the next tick.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("sweeper started",
		slog.Duration("interval", s.interval),
		slog.Duration("ttl", s.ttl),
	)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("sweep panicked", slog.Any("panic", r))
		}
	}()

	before := s.registry.CountTotal()
	evicted := s.registry.SweepExpired(time.Now(), s.ttl)
	if evicted > 0 {
		s.log.Info("expired sessions evicted",
			slog.Int("evicted", evicted),
			slog.Int("before", before),
			slog.Int("after", s.registry.CountTotal()),
		)
	}

	guests := s.registry.CountOnline(entity.RoleGuest)
	agents := s.registry.CountOnline(entity.RoleAgent)
	total := s.registry.CountTotal()
	if total > 0 {
		s.log.Info("connection stats",
			slog.Int("online_guests", guests),
			slog.Int("online_agents", agents),
			slog.Int("total_connections", total),
		)
	}
}
