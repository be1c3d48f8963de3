package registry

import (
	"log/slog"
	"sync"
	"time"

	"HotelCS/entity"
	"HotelCS/internal/lib/sl"
)

// Transport is the registry's view of one live client connection. It is
// exclusively owned by the session entry holding it.
type Transport interface {
	Send(payload []byte) error
	IsOpen() bool
	Close() error
}

// UserSession is one live connection of one user. The same identity+role may
// hold several sessions at once (multi-device); a connection id maps to
// exactly one session.
type UserSession struct {
	Identity      string
	Role          entity.Role
	ConnectionID  string
	ConnectedAt   time.Time
	LastHeartbeat time.Time
	Transport     Transport
}

// DeliveryOutcome reports what Send did per recipient device.
type DeliveryOutcome struct {
	Delivered  int
	Evicted    int
	NoSessions bool
}

type userKey struct {
	identity string
	role     entity.Role
}

// Registry is the in-memory directory of live connections. It keeps two
// indices: identity+role -> sessions for delivery, and connection id ->
// session for the transport-driven lifecycle calls. Both are guarded by one
// coarse lock; at hundreds of connections this is not a contention concern.
type Registry struct {
	mu     sync.RWMutex
	byUser map[userKey]map[string]*UserSession
	byConn map[string]*UserSession
	log    *slog.Logger
}

func New(log *slog.Logger) *Registry {
	return &Registry{
		byUser: make(map[userKey]map[string]*UserSession),
		byConn: make(map[string]*UserSession),
		log:    log.With(sl.Module("registry")),
	}
}

// Register inserts a session into both indices. Re-registering an already
// known connection id overwrites the previous entry for that id.
func (r *Registry) Register(identity string, role entity.Role, connectionID string, transport Transport) {
	now := time.Now()
	session := &UserSession{
		Identity:      identity,
		Role:          role,
		ConnectionID:  connectionID,
		ConnectedAt:   now,
		LastHeartbeat: now,
		Transport:     transport,
	}

	r.mu.Lock()
	if prev, ok := r.byConn[connectionID]; ok {
		r.removeLocked(prev)
	}
	key := userKey{identity: identity, role: role}
	if r.byUser[key] == nil {
		r.byUser[key] = make(map[string]*UserSession)
	}
	r.byUser[key][connectionID] = session
	r.byConn[connectionID] = session
	r.mu.Unlock()

	r.log.Info("session registered",
		slog.String("identity", identity),
		slog.String("role", string(role)),
		slog.String("connection_id", connectionID),
	)
}

// Remove drops a session from both indices. Unknown ids are a no-op: a
// transport close racing the sweeper is expected and harmless.
func (r *Registry) Remove(connectionID string) {
	r.mu.Lock()
	session, ok := r.byConn[connectionID]
	if ok {
		r.removeLocked(session)
	}
	r.mu.Unlock()

	if ok {
		r.log.Info("session removed",
			slog.String("identity", session.Identity),
			slog.String("role", string(session.Role)),
			slog.String("connection_id", connectionID),
		)
	}
}

// removeLocked deletes a session from both indices. Caller holds r.mu.
func (r *Registry) removeLocked(session *UserSession) {
	delete(r.byConn, session.ConnectionID)
	key := userKey{identity: session.Identity, role: session.Role}
	if sessions := r.byUser[key]; sessions != nil {
		delete(sessions, session.ConnectionID)
		if len(sessions) == 0 {
			delete(r.byUser, key)
		}
	}
}

// Heartbeat refreshes a session's liveness timestamp. Unknown ids are a
// no-op so a heartbeat can never resurrect a removed session.
func (r *Registry) Heartbeat(connectionID string) {
	r.mu.Lock()
	if session, ok := r.byConn[connectionID]; ok {
		session.LastHeartbeat = time.Now()
	}
	r.mu.Unlock()
}

// Send delivers payload to every live session of identity+role. Delivery is
// best-effort per device: a closed transport or failed write evicts that
// session immediately and delivery continues with the rest.
func (r *Registry) Send(identity string, role entity.Role, payload []byte) DeliveryOutcome {
	r.mu.RLock()
	key := userKey{identity: identity, role: role}
	sessions := make([]*UserSession, 0, len(r.byUser[key]))
	for _, s := range r.byUser[key] {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	if len(sessions) == 0 {
		r.log.Warn("no live sessions for recipient",
			slog.String("identity", identity),
			slog.String("role", string(role)),
		)
		return DeliveryOutcome{NoSessions: true}
	}

	var outcome DeliveryOutcome
	for _, s := range sessions {
		if !s.Transport.IsOpen() {
			r.evict(s)
			outcome.Evicted++
			continue
		}
		if err := s.Transport.Send(payload); err != nil {
			r.log.Warn("send failed, evicting session",
				slog.String("identity", s.Identity),
				slog.String("connection_id", s.ConnectionID),
				sl.Err(err),
			)
			r.evict(s)
			outcome.Evicted++
			continue
		}
		outcome.Delivered++
	}
	return outcome
}

// evict closes and removes one session. The indices are checked by pointer
// so evicting a stale snapshot cannot drop a session that was re-registered
// under the same connection id in the meantime.
func (r *Registry) evict(session *UserSession) {
	_ = session.Transport.Close()

	r.mu.Lock()
	if current, ok := r.byConn[session.ConnectionID]; ok && current == session {
		r.removeLocked(session)
	}
	r.mu.Unlock()
}

// BroadcastToRole sends payload to every identity currently holding sessions
// under role, skipping excludeIdentity when non-empty.
func (r *Registry) BroadcastToRole(role entity.Role, payload []byte, excludeIdentity string) {
	r.mu.RLock()
	identities := make([]string, 0, len(r.byUser))
	for key := range r.byUser {
		if key.role != role {
			continue
		}
		if excludeIdentity != "" && key.identity == excludeIdentity {
			continue
		}
		identities = append(identities, key.identity)
	}
	r.mu.RUnlock()

	for _, identity := range identities {
		r.Send(identity, role, payload)
	}
}

// IsOnline reports whether identity+role has at least one open session.
func (r *Registry) IsOnline(identity string, role entity.Role) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.byUser[userKey{identity: identity, role: role}] {
		if s.Transport.IsOpen() {
			return true
		}
	}
	return false
}

// CountOnline counts open sessions under role. Computed by live filtering;
// O(sessions) is fine at the expected scale.
func (r *Registry) CountOnline(role entity.Role) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for key, sessions := range r.byUser {
		if key.role != role {
			continue
		}
		for _, s := range sessions {
			if s.Transport.IsOpen() {
				count++
			}
		}
	}
	return count
}

// CountTotal returns the number of registered sessions, open or not.
func (r *Registry) CountTotal() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byConn)
}

// SweepExpired removes every session whose last heartbeat is older than ttl
// and returns how many were evicted. Uses the same removal path as Remove so
// the indices stay consistent.
func (r *Registry) SweepExpired(now time.Time, ttl time.Duration) int {
	r.mu.RLock()
	expired := make([]*UserSession, 0)
	for _, s := range r.byConn {
		if now.Sub(s.LastHeartbeat) > ttl {
			expired = append(expired, s)
		}
	}
	r.mu.RUnlock()

	for _, s := range expired {
		r.log.Info("evicting expired session",
			slog.String("identity", s.Identity),
			slog.String("role", string(s.Role)),
			slog.String("connection_id", s.ConnectionID),
		)
		r.evict(s)
	}
	return len(expired)
}
