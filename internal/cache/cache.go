package cache

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bluele/gcache"

	"github.com/charlespura/MySocialLink/internal/domain"
)

const (
	// linkKeyPrefix matches the browser-era storage convention:
	// the mirror of a page's links lives under "links_<username>".
	linkKeyPrefix = "links_"

	// darkModeKey stores the UI theme preference. It is independent of
	// any username and survives across sessions.
	darkModeKey = "darkMode"
)

// Cache is the local fallback copy of link collections, plus the
// persisted UI preference. It is synchronous and best-effort: the
// password is never mirrored here, and a miss is a normal outcome.
type Cache struct {
	c gcache.Cache
}

// New creates a cache holding up to size entries (LRU eviction).
func New(size int) *Cache {
	return &Cache{
		c: gcache.New(size).LRU().Build(),
	}
}

// LinkKey returns the cache key for a username's link mirror.
func LinkKey(username string) string {
	return linkKeyPrefix + username
}

// PutLinks mirrors a link collection for a username. The value is the
// JSON-serialized collection only; transient flags must already be
// stripped by the caller.
func (c *Cache) PutLinks(username string, links []domain.Link) error {
	data, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("failed to marshal links: %w", err)
	}
	if err := c.c.Set(LinkKey(username), data); err != nil {
		return fmt.Errorf("failed to cache links: %w", err)
	}
	return nil
}

// GetLinks retrieves the mirrored link collection for a username.
// The second return value is false on a miss.
func (c *Cache) GetLinks(username string) ([]domain.Link, bool) {
	v, err := c.c.Get(LinkKey(username))
	if err != nil {
		if errors.Is(err, gcache.KeyNotFoundError) {
			return nil, false
		}
		return nil, false
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, false
	}
	var links []domain.Link
	if err := json.Unmarshal(data, &links); err != nil {
		return nil, false
	}
	return links, true
}

// SetDarkMode persists the dark/light theme preference.
func (c *Cache) SetDarkMode(dark bool) error {
	if err := c.c.Set(darkModeKey, dark); err != nil {
		return fmt.Errorf("failed to persist theme preference: %w", err)
	}
	return nil
}

// DarkMode returns the persisted theme preference.
// The second return value is false when none was ever stored.
func (c *Cache) DarkMode() (bool, bool) {
	v, err := c.c.Get(darkModeKey)
	if err != nil {
		return false, false
	}
	dark, ok := v.(bool)
	return dark, ok
}
