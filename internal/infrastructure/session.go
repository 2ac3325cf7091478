package infrastructure

import (
	"sync"

	"templatebot/internal/entities"
)

// SessionTable owns all live conversation sessions: a volatile map from chat
// id to at most one Session. The event loop handles one update at a time per
// conversation; the mutex covers the admin stats reader and keeps the table
// safe if dispatch ever goes parallel.
type SessionTable struct {
	mu       sync.RWMutex
	sessions map[int64]*entities.Session
}

func NewSessionTable() *SessionTable {
	return &SessionTable{
		sessions: make(map[int64]*entities.Session),
	}
}

// Get returns the live session for a chat, or nil.
func (t *SessionTable) Get(chatID int64) *entities.Session {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sessions[chatID]
}

// Put installs a session, replacing any existing one for the chat.
func (t *SessionTable) Put(s *entities.Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[s.ChatID] = s
}

// Delete removes the session for a chat, if any.
func (t *SessionTable) Delete(chatID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, chatID)
}

// Len returns the number of live sessions.
func (t *SessionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sessions)
}
