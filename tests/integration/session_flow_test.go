package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlespura/MySocialLink/internal/cache"
	"github.com/charlespura/MySocialLink/internal/catalog"
	"github.com/charlespura/MySocialLink/internal/domain"
	"github.com/charlespura/MySocialLink/internal/httpserver/deps"
	"github.com/charlespura/MySocialLink/internal/httpserver/routes"
	"github.com/charlespura/MySocialLink/internal/logger"
	"github.com/charlespura/MySocialLink/internal/session"
	"github.com/charlespura/MySocialLink/internal/version"
)

type memStore struct {
	mu     sync.Mutex
	pages  map[string]*domain.PageRecord
	getErr error
}

func newMemStore() *memStore {
	return &memStore{pages: map[string]*domain.PageRecord{}}
}

func (s *memStore) GetPage(_ context.Context, username string) (*domain.PageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	rec, ok := s.pages[username]
	if !ok {
		return nil, fmt.Errorf("page %q: %w", username, domain.ErrPageNotFound)
	}
	cp := *rec
	cp.Links = domain.CloneLinks(rec.Links)
	return &cp, nil
}

func (s *memStore) SavePage(_ context.Context, rec *domain.PageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := *rec
	doc.Links = domain.StripTransient(rec.Links)
	doc.UpdatedAt = time.Now().UTC()
	if existing, ok := s.pages[doc.Username]; ok {
		doc.CreatedAt = existing.CreatedAt
		if doc.Password == "" {
			doc.Password = existing.Password
		}
	} else {
		doc.CreatedAt = doc.UpdatedAt
	}
	s.pages[doc.Username] = &doc
	return nil
}

func (s *memStore) AllUsernames(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.pages))
	for name := range s.pages {
		names = append(names, name)
	}
	return names, nil
}

func newTestRouter() (chi.Router, *memStore) {
	store := newMemStore()
	log := logger.Nop()
	catalogIndex := catalog.NewIndex()
	linkCache := cache.New(64)

	sessions := session.NewRegistry(64, time.Minute, func() *session.Controller {
		return session.New(session.Config{
			Store:   store,
			Cache:   linkCache,
			Catalog: catalogIndex,
			Logger:  log,
			BaseURL: "https://msl.test",
		})
	})

	d := deps.Deps{
		Logger:        log,
		StartTime:     time.Now(),
		Version:       version.Version,
		TimeNow:       time.Now,
		Store:         store,
		Cache:         linkCache,
		Catalog:       catalogIndex,
		Sessions:      sessions,
		BaseURL:       "https://msl.test",
		ReloadTrigger: make(chan struct{}, 1),
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)
	return r, store
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

func sessionState(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	st, ok := body["state"].(map[string]any)
	require.True(t, ok, "response carries a session state")
	return st
}

func TestPublishAndUnlockOverHTTP(t *testing.T) {
	r, store := newTestRouter()

	// Open a fresh session.
	code, body := doJSON(t, r, http.MethodPost, "/api/session", map[string]any{})
	require.Equal(t, http.StatusCreated, code)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "creating", sessionState(t, body)["mode"])

	base := "/api/session/" + token

	// Draft a link.
	code, body = doJSON(t, r, http.MethodPost, base+"/links", map[string]any{"platform": "Facebook"})
	require.Equal(t, http.StatusCreated, code)
	links := body["links"].([]any)
	require.Len(t, links, 1)
	linkID := links[0].(map[string]any)["id"].(string)

	code, body = doJSON(t, r, http.MethodPatch, base+"/links/"+linkID, map[string]any{"url": "fb.com/x"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "fb.com/x", body["links"].([]any)[0].(map[string]any)["url"])

	// Saving without a password is rejected before anything is written.
	code, _ = doJSON(t, r, http.MethodPost, base+"/save", map[string]any{"username": "Bob "})
	require.Equal(t, http.StatusBadRequest, code)
	require.Empty(t, store.pages)

	// Publish.
	code, body = doJSON(t, r, http.MethodPost, base+"/save",
		map[string]any{"username": "Bob ", "password": "secret"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "unlocked", body["mode"])
	assert.Equal(t, "bob", body["username"])
	assert.Equal(t, "#bob", body["shareAddress"])
	assert.Equal(t, "https://msl.test/#bob", body["shareUrl"])

	// Public read-only view never exposes the password.
	code, body = doJSON(t, r, http.MethodGet, "/api/pages/bob", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["protected"])
	assert.NotContains(t, body, "password")
	assert.Len(t, body["links"].([]any), 1)

	// A second visitor opens the published address and has to unlock.
	code, body = doJSON(t, r, http.MethodPost, "/api/session", map[string]any{"address": "#bob"})
	require.Equal(t, http.StatusCreated, code)
	token2 := body["token"].(string)
	assert.Equal(t, "locked", sessionState(t, body)["mode"])

	base2 := "/api/session/" + token2
	code, body = doJSON(t, r, http.MethodPost, base2+"/edit", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "password-prompt", body["mode"])

	code, body = doJSON(t, r, http.MethodPost, base2+"/unlock", map[string]any{"password": "wrong"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["unlocked"])
	assert.Equal(t, "password-prompt", sessionState(t, body)["mode"])

	code, body = doJSON(t, r, http.MethodPost, base2+"/unlock", map[string]any{"password": "secret"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["unlocked"])
	assert.Equal(t, "editing", sessionState(t, body)["mode"])
}

func TestSessionNotFound(t *testing.T) {
	r, _ := newTestRouter()

	code, body := doJSON(t, r, http.MethodGet, "/api/session/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, code)
	assert.NotEmpty(t, body["error"])
}

func TestPlatformsAndHealthEndpoints(t *testing.T) {
	r, _ := newTestRouter()

	code, body := doJSON(t, r, http.MethodGet, "/api/platforms", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["platforms"].([]any), len(catalog.Defaults()))

	code, body = doJSON(t, r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	// No Redis client wired in this harness: readiness is vacuously ok.
	code, _ = doJSON(t, r, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, code)
}

func TestPublicPageDegradedFromMirror(t *testing.T) {
	r, store := newTestRouter()

	// Publish a page so the mirror gets populated.
	code, body := doJSON(t, r, http.MethodPost, "/api/session", map[string]any{})
	require.Equal(t, http.StatusCreated, code)
	base := "/api/session/" + body["token"].(string)

	code, body = doJSON(t, r, http.MethodPost, base+"/links", map[string]any{"platform": "GitHub"})
	require.Equal(t, http.StatusCreated, code)
	linkID := body["links"].([]any)[0].(map[string]any)["id"].(string)
	code, _ = doJSON(t, r, http.MethodPatch, base+"/links/"+linkID, map[string]any{"url": "github.com/bob"})
	require.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, r, http.MethodPost, base+"/save",
		map[string]any{"username": "bob", "password": "secret"})
	require.Equal(t, http.StatusOK, code)

	// Take the store down; the public view survives on mirrored links.
	store.mu.Lock()
	store.getErr = fmt.Errorf("store down: %w", domain.ErrRemoteUnavailable)
	store.mu.Unlock()

	code, body = doJSON(t, r, http.MethodGet, "/api/pages/bob", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["degraded"])
	assert.Equal(t, true, body["protected"])
	require.Len(t, body["links"].([]any), 1)
	assert.Equal(t, "github.com/bob", body["links"].([]any)[0].(map[string]any)["url"])

	// An unmirrored page has nothing to fall back to.
	code, _ = doJSON(t, r, http.MethodGet, "/api/pages/ghost", nil)
	require.Equal(t, http.StatusBadGateway, code)
}

func TestPageNotFound(t *testing.T) {
	r, _ := newTestRouter()

	code, body := doJSON(t, r, http.MethodGet, "/api/pages/ghost", nil)
	require.Equal(t, http.StatusNotFound, code)
	assert.NotEmpty(t, body["error"])
}
