package application

import (
	"sync"
	"sync/atomic"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
)

// AccountMarker tracks which account is active. Every switch, including
// sign-out, advances the generation so in-flight work can tell it outlived
// its account.
type AccountMarker struct {
	generation atomic.Uint64

	mu           sync.RWMutex
	session      domain.Session
	listeners    map[int]func(domain.Session)
	nextListener int
}

var _ ports.AuthGate = (*AccountMarker)(nil)

func NewAccountMarker() *AccountMarker {
	return &AccountMarker{listeners: make(map[int]func(domain.Session))}
}

// Switch replaces the active session and returns the new generation.
// The secret is not retained here.
func (m *AccountMarker) Switch(session domain.Session) uint64 {
	session.Secret = domain.Secret{}
	if session.Address.IsZero() {
		session = domain.Session{}
	}

	m.mu.Lock()
	m.session = session
	generation := m.generation.Add(1)
	listeners := make([]func(domain.Session), 0, len(m.listeners))
	for _, listener := range m.listeners {
		listeners = append(listeners, listener)
	}
	m.mu.Unlock()

	for _, listener := range listeners {
		listener(session)
	}

	return generation
}

func (m *AccountMarker) Session() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.session
}

func (m *AccountMarker) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.session.Authenticated
}

func (m *AccountMarker) Generation() uint64 {
	return m.generation.Load()
}

func (m *AccountMarker) IsCurrentAccount(address domain.Address) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.session.Authenticated && !address.IsZero() && m.session.Address == address
}

func (m *AccountMarker) Subscribe(listener func(domain.Session)) func() {
	m.mu.Lock()
	id := m.nextListener
	m.nextListener++
	m.listeners[id] = listener
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}
