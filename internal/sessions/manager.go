package sessions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/docrouter/server/internal/logger"
	"github.com/google/uuid"
)

const cleanupInterval = 5 * time.Minute

// returns a new session manager and starts its cleanup loop
func NewManager(asker Asker, ttl time.Duration) *Manager {
	m := &Manager{
		asker:    asker,
		sessions: make(map[string]*entry),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}

	go m.cleanupExpiredSessions(cleanupInterval)

	return m
}

// returns the roles a session can use
func Roles() []Role {
	return []Role{{Value: DefaultRole, Label: defaultRoleLabel}}
}

// stops the cleanup loop
func (m *Manager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// creates a new session
func (m *Manager) CreateSession() Session {
	now := time.Now()
	e := &entry{
		session: Session{
			ID:         uuid.NewString(),
			Role:       DefaultRole,
			Retrievers: []string{},
			CreatedAt:  now,
		},
		busy: make(chan struct{}, 1),
	}
	m.touch(e, now)

	m.mu.Lock()
	m.sessions[e.session.ID] = e
	m.mu.Unlock()

	return e.session
}

// retrieves a session by ID
func (m *Manager) GetSession(sessionID string) (Session, error) {
	e, err := m.lookup(sessionID)
	if err != nil {
		return Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return snapshot(e.session), nil
}

// asks the assistant a question and records the exchange in the transcript
func (m *Manager) Send(ctx context.Context, sessionID, question string) (Session, error) {
	e, err := m.lookup(sessionID)
	if err != nil {
		return Session{}, err
	}

	if strings.TrimSpace(question) == "" {
		return Session{}, ErrMissingQuestion
	}

	// one question per session at a time
	select {
	case e.busy <- struct{}{}:
	case <-ctx.Done():
		return Session{}, ctx.Err()
	}
	defer func() { <-e.busy }()

	e.mu.Lock()
	e.session.Question = question
	m.touch(e, time.Now())
	e.mu.Unlock()

	resp, err := m.asker.Ask(ctx, sessionID, question)

	// a reset or delete during the call already forgot the conversation once
	if !m.registered(sessionID, e) {
		if ferr := m.asker.Forget(context.WithoutCancel(ctx), sessionID); ferr != nil {
			logger.Warn("failed to forget removed conversation", "session_id", sessionID, "error", ferr)
		}

		return Session{}, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	s := &e.session

	if err != nil {
		s.Answer = ""
		s.DebugInfo = "Error during execution: " + err.Error()
		s.Retrievers = []string{}

		return snapshot(*s), fmt.Errorf("failed to answer question: %w", err)
	}

	s.Answer = resp.Answer
	s.DebugInfo = resp.DebugInfo
	s.Retrievers = make([]string, 0, len(resp.Selected))

	for _, sel := range resp.Selected {
		s.Retrievers = append(s.Retrievers, sel.Retriever)
	}

	s.Conversation += formatExchange(question, resp.Answer)

	return snapshot(*s), nil
}

// flips the debug pane of a session
func (m *Manager) ToggleDebug(sessionID string) (Session, error) {
	e, err := m.lookup(sessionID)
	if err != nil {
		return Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.Debug = !e.session.Debug
	m.touch(e, time.Now())

	return snapshot(e.session), nil
}

// ends a session and starts a fresh one with empty memory
func (m *Manager) Reset(ctx context.Context, sessionID string) (Session, error) {
	if _, err := m.lookup(sessionID); err != nil {
		return Session{}, err
	}

	if err := m.DeleteSession(ctx, sessionID); err != nil {
		return Session{}, err
	}

	return m.CreateSession(), nil
}

// removes a session and forgets its conversation
func (m *Manager) DeleteSession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	_, exists := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if !exists {
		return ErrSessionNotFound
	}

	if err := m.asker.Forget(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to forget conversation: %w", err)
	}

	return nil
}

// returns the number of active sessions
func (m *Manager) GetSessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

func (m *Manager) lookup(sessionID string) (*entry, error) {
	m.mu.RLock()
	e, exists := m.sessions[sessionID]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	if e.expired(time.Now()) {
		m.expire([]string{sessionID})
		return nil, ErrSessionExpired
	}

	return e, nil
}

// reports whether sessionID still maps to e
func (m *Manager) registered(sessionID string, e *entry) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sessions[sessionID] == e
}

// extends the session lifetime, caller holds the entry lock or owns the entry
func (m *Manager) touch(e *entry, now time.Time) {
	e.session.LastActivity = now
	e.session.ExpiresAt = now.Add(m.ttl)
	e.expiresAt.Store(e.session.ExpiresAt.UnixNano())
}

func (e *entry) expired(now time.Time) bool {
	return now.UnixNano() > e.expiresAt.Load()
}

// runs periodically to remove expired sessions
func (m *Manager) cleanupExpiredSessions(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.expire(m.expiredIDs(time.Now()))
		}
	}
}

func (m *Manager) expiredIDs(now time.Time) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string

	for id, e := range m.sessions {
		if e.expired(now) {
			ids = append(ids, id)
		}
	}

	return ids
}

// drops sessions and their chat memory
func (m *Manager) expire(ids []string) {
	if len(ids) == 0 {
		return
	}

	m.mu.Lock()
	for _, id := range ids {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, id := range ids {
		if err := m.asker.Forget(ctx, id); err != nil {
			logger.Warn("failed to forget expired conversation", "session_id", id, "error", err)
		}
	}

	logger.Debug("expired sessions", "count", len(ids))
}
