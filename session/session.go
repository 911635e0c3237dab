// Package session holds the bearer tokens a running suite has acquired, one
// store per execution context. The original harness kept tokens in process
// environment variables, which corrupts parallel runs; scoping the store to
// the suite makes token isolation structural.
package session

import "sync"

// Role names an authenticated identity category used by the suites.
type Role string

const (
	SuperAdmin   Role = "super_admin"
	CurrentAdmin Role = "current_admin"
	Seller       Role = "seller"
	SellerStore  Role = "seller_store"
)

// Session maps roles to their current bearer token. Safe for concurrent use;
// serial suites that swap tokens around must still be the only user of their
// own Session, which the runner guarantees by building one per suite.
type Session struct {
	mu     sync.RWMutex
	tokens map[Role]string
}

// New returns an empty session.
func New() *Session {
	return &Session{tokens: make(map[Role]string)}
}

// Set stores the token for a role, replacing any previous one. Last login
// wins.
func (s *Session) Set(role Role, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[role] = token
}

// Get returns the current token for a role, or "" when the role never logged
// in or was cleared. An empty token makes the client send the request
// unauthenticated.
func (s *Session) Get(role Role) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[role]
}

// Clear removes the token for a role, simulating a logged-out actor.
func (s *Session) Clear(role Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, role)
}

// Swap replaces the token for a role and returns a restore function that
// puts the previous value back, including the never-set state. Tests that
// deliberately corrupt a token run the restore via defer so a mid-test
// failure cannot poison later cases.
func (s *Session) Swap(role Role, token string) (restore func()) {
	s.mu.Lock()
	prev, existed := s.tokens[role]
	s.tokens[role] = token
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if existed {
			s.tokens[role] = prev
		} else {
			delete(s.tokens, role)
		}
	}
}

// Drop removes the token for a role and returns a restore function, the
// Swap counterpart for simulating a missing Authorization header.
func (s *Session) Drop(role Role) (restore func()) {
	s.mu.Lock()
	prev, existed := s.tokens[role]
	delete(s.tokens, role)
	s.mu.Unlock()

	return func() {
		if !existed {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.tokens[role] = prev
	}
}
