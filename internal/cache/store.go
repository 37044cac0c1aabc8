// Package cache is the client's persistent local store: small JSON blobs that
// must survive a restart (chat transcripts, dismissed alert ids, saved tips).
// Every entry lives under an explicit scope so one user's state can never leak
// into another's.
package cache

import (
	"context"
	"fmt"
)

// Scope names the owner of a cache entry. Chat history is per-user; dismissed
// alerts and saved tips are deliberately shared across users of the same
// installation, matching the portal's observed behavior.
type Scope struct {
	user string
}

func ForUser(userID string) Scope {
	return Scope{user: userID}
}

func Shared() Scope {
	return Scope{}
}

func (s Scope) namespace() string {
	if s.user == "" {
		return "shared"
	}
	return "user:" + s.user
}

func (s Scope) keyFor(key string) string {
	return fmt.Sprintf("medai:%s:%s", s.namespace(), key)
}

// Store is the injected KV contract. Load reports false both for an absent key
// and for a stored value that no longer parses: corruption is treated as a
// cache miss, never an error the caller has to handle.
type Store interface {
	Load(ctx context.Context, scope Scope, key string, out interface{}) (bool, error)
	Save(ctx context.Context, scope Scope, key string, value interface{}) error
	Clear(ctx context.Context, scope Scope, key string) error
	Close() error
}
