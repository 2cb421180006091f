package cache

import (
	"context"
	"sync"
	"time"

	"github.com/epeers/scenarios/internal/scenario"
	"github.com/google/uuid"
)

// SessionCache keeps sessions and their saved scenarios in memory.
// A session idle for longer than ttl is treated as ended.
type SessionCache struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

type sessionEntry struct {
	session   scenario.Session
	scenarios []scenario.Record
}

// NewSessionCache creates a new in-memory session store
func NewSessionCache(ttl time.Duration) *SessionCache {
	return &SessionCache{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock replaces the time source (for testing)
func (c *SessionCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *SessionCache) expired(e *sessionEntry, at time.Time) bool {
	return c.ttl > 0 && at.Sub(e.session.LastSeen) > c.ttl
}

// live returns the entry for id, dropping it if it has idled out. Caller holds the write lock.
func (c *SessionCache) live(id string) (*sessionEntry, error) {
	e, ok := c.sessions[id]
	if !ok {
		return nil, scenario.ErrSessionNotFound
	}
	now := c.now()
	if c.expired(e, now) {
		delete(c.sessions, id)
		return nil, scenario.ErrSessionNotFound
	}
	e.session.LastSeen = now
	return e, nil
}

// CreateSession starts a new empty session
func (c *SessionCache) CreateSession(_ context.Context) (scenario.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	s := scenario.Session{ID: uuid.NewString(), CreatedAt: now, LastSeen: now}
	c.sessions[s.ID] = &sessionEntry{session: s}
	return s, nil
}

// TouchSession marks the session active
func (c *SessionCache) TouchSession(_ context.Context, id string) (scenario.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.live(id)
	if err != nil {
		return scenario.Session{}, err
	}
	return e.session, nil
}

// EndSession discards the session and all of its scenarios
func (c *SessionCache) EndSession(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sessions[id]; !ok {
		return scenario.ErrSessionNotFound
	}
	delete(c.sessions, id)
	return nil
}

// SaveScenario appends rec to the session
func (c *SessionCache) SaveScenario(_ context.Context, sessionID string, rec scenario.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.live(sessionID)
	if err != nil {
		return err
	}
	e.scenarios = append(e.scenarios, rec)
	return nil
}

// SaveScenarios appends all of recs to the session at once
func (c *SessionCache) SaveScenarios(_ context.Context, sessionID string, recs []scenario.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.live(sessionID)
	if err != nil {
		return err
	}
	e.scenarios = append(e.scenarios, recs...)
	return nil
}

// ListScenarios returns the session's scenarios in save order
func (c *SessionCache) ListScenarios(_ context.Context, sessionID string) ([]scenario.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.live(sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]scenario.Record, len(e.scenarios))
	copy(out, e.scenarios)
	return out, nil
}

// GetScenario looks up one scenario in the session
func (c *SessionCache) GetScenario(_ context.Context, sessionID, id string) (scenario.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.live(sessionID)
	if err != nil {
		return scenario.Record{}, err
	}
	for _, r := range e.scenarios {
		if r.ID == id {
			return r, nil
		}
	}
	return scenario.Record{}, scenario.ErrNotFound
}

// DeleteScenario removes one scenario from the session
func (c *SessionCache) DeleteScenario(_ context.Context, sessionID, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.live(sessionID)
	if err != nil {
		return err
	}
	for i, r := range e.scenarios {
		if r.ID == id {
			e.scenarios = append(e.scenarios[:i], e.scenarios[i+1:]...)
			return nil
		}
	}
	return scenario.ErrNotFound
}

// Sweep drops idle sessions and reports how many were removed
func (c *SessionCache) Sweep(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for id, e := range c.sessions {
		if c.expired(e, now) {
			delete(c.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of tracked sessions, expired or not
func (c *SessionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}
