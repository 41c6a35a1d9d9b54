package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// session owns one controller. Handlers hold mu for the whole request so
// the controller never sees concurrent calls.
type session struct {
	mu       sync.Mutex
	id       string
	ctrl     *wizard.Controller
	lastSeen time.Time
	csrf     string
	flash    string
	navigate string
}

func (s *session) takeFlash() string {
	flash := s.flash
	s.flash = ""
	return flash
}

func (s *session) takeNavigation() string {
	path := s.navigate
	s.navigate = ""
	return path
}

// Store keeps sessions in memory and forgets the ones idle longer than ttl.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
	factory  func(*session) *wizard.Controller
}

func newStore(ttl time.Duration, now func() time.Time, newID func() string, factory func(*session) *wizard.Controller) *Store {
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      now,
		newID:    newID,
		factory:  factory,
	}
}

func (st *Store) create() *session {
	s := &session{id: st.newID(), csrf: uuid.NewString()}
	s.ctrl = st.factory(s)

	st.mu.Lock()
	defer st.mu.Unlock()
	s.lastSeen = st.now()
	st.sessions[s.id] = s
	return s
}

func (st *Store) get(id string) (*session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := st.now()
	if now.Sub(s.lastSeen) > st.ttl {
		delete(st.sessions, id)
		return nil, ErrSessionNotFound
	}
	s.lastSeen = now
	return s, nil
}

func (st *Store) delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

// Len reports the number of live sessions, expired ones included until the
// next sweep.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops expired sessions and reports how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for id, s := range st.sessions {
		if now.Sub(s.lastSeen) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

func (st *Store) sweepEvery(ctx context.Context, interval time.Duration, onSweep func(int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
