package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNoSession is returned for unknown or expired session IDs.
var ErrNoSession = errors.New("wizard: no such session")

// Sessions is an in-memory store of wizard machines keyed by session ID,
// so a stateless client can drive one machine across requests. Sessions
// expire after ttl of inactivity.
type Sessions struct {
	ttl time.Duration
	now func() time.Time

	mu sync.Mutex
	m  map[string]*session
}

type session struct {
	machine  *Machine
	lastSeen time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl: ttl,
		now: time.Now,
		m:   make(map[string]*session),
	}
}

// Create starts a new machine and returns its session ID.
func (s *Sessions) Create(machine *Machine) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.m[id] = &session{machine: machine, lastSeen: s.now()}
	return id
}

// Get returns the machine for id, refreshing its expiry.
func (s *Sessions) Get(id string) (*Machine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	sess, ok := s.m[id]
	if !ok {
		return nil, ErrNoSession
	}
	sess.lastSeen = s.now()
	return sess.machine, nil
}

// Delete drops a session, if present.
func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
}

func (s *Sessions) purgeLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.m {
		if sess.lastSeen.Before(cutoff) {
			delete(s.m, id)
		}
	}
}
