package token

import (
	"sync"
	"time"
)

// RevocationList records credentials that were logged out before they expired
type RevocationList interface {
	Revoke(claims *Claims) error
	IsRevoked(claims *Claims) bool
}

// InMemoryRevocationList keeps revoked credential ids until their expiry
type InMemoryRevocationList struct {
	revoked map[string]time.Time
	mu      sync.RWMutex
}

var _ RevocationList = (*InMemoryRevocationList)(nil)

func NewInMemoryRevocationList() *InMemoryRevocationList {
	return &InMemoryRevocationList{
		revoked: make(map[string]time.Time),
	}
}

// Revoke adds the credential's id. Credentials without an id cannot be revoked.
func (l *InMemoryRevocationList) Revoke(claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cleanup(NowTimeFunc())
	l.revoked[claims.ID] = claims.ExpiresAt
	return nil
}

func (l *InMemoryRevocationList) IsRevoked(claims *Claims) bool {
	if claims == nil || claims.ID == "" {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, exists := l.revoked[claims.ID]
	return exists
}

// Len is the number of ids currently held
func (l *InMemoryRevocationList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.revoked)
}

// cleanup drops entries whose credential has expired anyway. Caller holds mu.
func (l *InMemoryRevocationList) cleanup(now time.Time) {
	for id, exp := range l.revoked {
		if !exp.IsZero() && now.After(exp) {
			delete(l.revoked, id)
		}
	}
}
