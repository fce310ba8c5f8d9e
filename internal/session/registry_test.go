package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlespura/MySocialLink/internal/catalog"
)

func newRegistryFactory() func() *Controller {
	return func() *Controller {
		return newTestController(newFakeStore(), newFakeCache())
	}
}

func TestRegistryCreateAndGet(t *testing.T) {
	reg := NewRegistry(8, time.Minute, newRegistryFactory())

	token, c := reg.Create()
	require.NotEmpty(t, token)
	require.NotNil(t, c)

	got, err := reg.Get(token)
	require.NoError(t, err)
	assert.Same(t, c, got)

	_, err = reg.Get("no-such-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistryTokensAreUnique(t *testing.T) {
	reg := NewRegistry(16, time.Minute, newRegistryFactory())

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		token, _ := reg.Create()
		require.False(t, seen[token])
		seen[token] = true
	}
}

func TestRegistryExpiry(t *testing.T) {
	reg := NewRegistry(8, 10*time.Millisecond, newRegistryFactory())

	token, _ := reg.Create()
	time.Sleep(30 * time.Millisecond)

	_, err := reg.Get(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistryEvictsBeyondLimit(t *testing.T) {
	factory := func() *Controller {
		return New(Config{
			Store:   newFakeStore(),
			Cache:   newFakeCache(),
			Catalog: catalog.NewIndex(),
		})
	}
	reg := NewRegistry(2, time.Minute, factory)

	first, _ := reg.Create()
	reg.Create()
	reg.Create()

	_, err := reg.Get(first)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 2, reg.Len())
}
