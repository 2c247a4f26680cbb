package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vancomm/match3-server/internal/match3"
)

var ErrNotFound = errors.New("session not found")

/*
GameSession owns one game. The game is only touched through Do, which
serialises access, since a GameState is not safe for concurrent use.
*/
type GameSession struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu       sync.Mutex
	game     *match3.GameState
	endedAt  *time.Time
	lastSeen time.Time
}

// Do runs fn with exclusive access to the game and records the end time
// once the game is over.
func (s *GameSession) Do(now time.Time, fn func(g *match3.GameState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = now
	err := fn(s.game)
	s.game.Expired(now)
	if s.game.Over() && s.endedAt == nil {
		ended := now.UTC()
		s.endedAt = &ended
	}
	return err
}

func (s *GameSession) EndedAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt
}

func (s *GameSession) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*GameSession
}

func New() *Store {
	return &Store{sessions: make(map[uuid.UUID]*GameSession)}
}

func (st *Store) Create(game *match3.GameState, now time.Time) *GameSession {
	session := &GameSession{
		ID:        uuid.New(),
		StartedAt: now.UTC(),
		game:      game,
		lastSeen:  now,
	}
	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()
	return session
}

func (st *Store) Get(id uuid.UUID) (*GameSession, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// Parse resolves a session from its textual id.
func (st *Store) Parse(id string) (*GameSession, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return st.Get(parsed)
}

func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions untouched for longer than idle and returns how many
// were removed.
func (st *Store) Sweep(now time.Time, idle time.Duration) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, session := range st.sessions {
		if session.idleSince(now) > idle {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
