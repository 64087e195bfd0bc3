package service

import (
	"sync"

	"local-account-ledger/internal/core/domain"
)

// Session holds at most one authenticated account for the lifetime of
// the process. It is an explicit value injected into the services rather
// than ambient global state, so independent sessions can coexist in
// tests. Sessions are binary: anonymous or authenticated.
type Session struct {
	mu      sync.RWMutex
	account *domain.Account
}

// NewSession creates an anonymous session.
func NewSession() *Session {
	return &Session{}
}

// Set stores a copy of the account as the authenticated user.
func (s *Session) Set(account *domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc := *account
	s.account = &acc
}

// Get returns a copy of the authenticated account, or nil when anonymous.
func (s *Session) Get() *domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.account == nil {
		return nil
	}
	acc := *s.account
	return &acc
}

// Clear returns the session to anonymous.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.account = nil
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.account != nil
}
