package session

import (
	"sync"
	"time"
)

// TokenTTL is how long a persisted session token is kept
const TokenTTL = 7 * 24 * time.Hour

// TokenStore persists the bearer token between requests. The web front-end keeps it in the
// authToken cookie, the terminal client in SQLite.
type TokenStore interface {
	Token() (string, bool)
	SetToken(token string) error
	ClearToken() error
}

// MemoryTokenStore keeps the token in process memory until it expires
type MemoryTokenStore struct {
	mu      sync.Mutex
	token   string
	expires time.Time
	now     func() time.Time
}

// NewMemoryTokenStore creates an empty in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{now: time.Now}
}

func (m *MemoryTokenStore) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" {
		return "", false
	}
	if !m.now().Before(m.expires) {
		m.token = ""
		return "", false
	}
	return m.token, true
}

func (m *MemoryTokenStore) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
	m.expires = m.now().Add(TokenTTL)
	return nil
}

func (m *MemoryTokenStore) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.expires = time.Time{}
	return nil
}
