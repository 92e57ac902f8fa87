package session

import (
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	cartservice "github.com/freshmart/storefront/internal/cart/service"
	"github.com/freshmart/storefront/internal/platform/logger"
	"github.com/freshmart/storefront/internal/view"
)

// Session is one visitor's volatile state: a cart ledger and a view
// coordinator. Nothing survives a process restart.
type Session struct {
	ID        string
	Cart      *cartservice.Ledger
	View      *view.Coordinator
	CreatedAt time.Time
}

// Manager creates and resolves sessions by id.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	publisher message.Publisher
}

func NewManager(publisher message.Publisher) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		publisher: publisher,
	}
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// GetOrCreate resolves the session for the given id, minting a fresh one
// when the id is empty or unknown.
func (m *Manager) GetOrCreate(id string) *Session {
	if id != "" {
		if s, ok := m.Get(id); ok {
			return s
		}
	}
	return m.create()
}

func (m *Manager) create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	s.Cart = cartservice.NewLedger(s.ID, m.publisher)
	s.View = view.NewCoordinator()

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	logger.Debug("Session created", "session_id", s.ID)
	return s
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
