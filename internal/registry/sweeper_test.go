package registry

import (
	"context"
	"testing"
	"time"

	"HotelCS/entity"
)

func TestSweeper_EvictsExpiredSessions(t *testing.T) {
	r := New(testLogger())
	r.Register("G1", entity.RoleGuest, "c1", newFakeTransport())

	r.mu.Lock()
	r.byConn["c1"].LastHeartbeat = time.Now().Add(-time.Hour)
	r.mu.Unlock()

	s := NewSweeper(r, time.Hour, 5*time.Minute, testLogger())
	s.sweep()

	if r.CountTotal() != 0 {
		t.Fatalf("expired session survived, total=%d", r.CountTotal())
	}
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	r := New(testLogger())
	s := NewSweeper(r, time.Millisecond, 5*time.Minute, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}
