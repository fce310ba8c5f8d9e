package session

import (
	"errors"
	"time"

	"github.com/bluele/gcache"
	"github.com/segmentio/ksuid"
)

// ErrSessionNotFound reports an unknown or expired session token.
var ErrSessionNotFound = errors.New("session not found")

const (
	defaultSessionLimit = 1024
	defaultSessionTTL   = 30 * time.Minute
)

// Registry hands out page sessions keyed by opaque tokens. Capacity is
// bounded: beyond the limit the least recently used session is evicted,
// and idle sessions expire after the TTL.
type Registry struct {
	sessions gcache.Cache
	factory  func() *Controller
}

// NewRegistry creates a Registry holding at most limit sessions, each
// expiring ttl after its last use. factory builds a fresh Controller
// per session.
func NewRegistry(limit int, ttl time.Duration, factory func() *Controller) *Registry {
	if limit <= 0 {
		limit = defaultSessionLimit
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Registry{
		sessions: gcache.New(limit).LRU().Expiration(ttl).Build(),
		factory:  factory,
	}
}

// Create mints a new session and returns its token.
func (r *Registry) Create() (string, *Controller) {
	token := ksuid.New().String()
	c := r.factory()
	// Set on a size-bounded LRU cannot fail.
	_ = r.sessions.Set(token, c)
	return token, c
}

// Get resolves a token to its live session. Touching a session renews
// its expiration.
func (r *Registry) Get(token string) (*Controller, error) {
	v, err := r.sessions.Get(token)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	c, ok := v.(*Controller)
	if !ok {
		return nil, ErrSessionNotFound
	}
	// Renew the TTL on use.
	_ = r.sessions.Set(token, c)
	return c, nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	return r.sessions.Len(true)
}
