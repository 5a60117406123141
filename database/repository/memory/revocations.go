package memory

import (
	"context"
	"sync"
	"time"

	"taskhive/utils"
)

// RevocationList is an in-process token revocation list used when Redis is
// not configured. Entries expire with the token they revoke.
type RevocationList struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewRevocationList() *RevocationList {
	return &RevocationList{entries: map[string]time.Time{}, now: time.Now}
}

func (l *RevocationList) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, exp := range l.entries {
		if !exp.After(now) {
			delete(l.entries, key)
		}
	}
	l.entries[utils.HashToken(token)] = now.Add(ttl)
	return nil
}

func (l *RevocationList) IsRevoked(_ context.Context, token string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	exp, ok := l.entries[utils.HashToken(token)]
	return ok && exp.After(l.now()), nil
}
