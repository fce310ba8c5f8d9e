package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/charlespura/MySocialLink/internal/domain"
)

// Store handles Redis operations for page records. It implements the
// remote document boundary with plain get/put by username; no
// backend-specific query capability is assumed beyond that.
type Store struct {
	client *redis.Client
	now    func() time.Time
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		now:    time.Now,
	}
}

// SavePage writes a full replacement record for rec.Username.
//
// Last-write-wins: there is no version check, so a concurrent save from
// another session is silently overwritten. The link collection replaces
// the stored one wholesale. Two fields are carried over from an
// existing record: CreatedAt (first-save time) and, when rec.Password
// is empty, the already-stored password, so that re-saving a protected
// page without retyping the secret does not strip its protection.
func (s *Store) SavePage(ctx context.Context, rec *domain.PageRecord) error {
	existing, err := s.GetPage(ctx, rec.Username)
	if err != nil && !errors.Is(err, domain.ErrPageNotFound) {
		return err
	}

	now := s.now().UTC()
	doc := *rec
	doc.Links = domain.StripTransient(rec.Links)
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if existing != nil {
		doc.CreatedAt = existing.CreatedAt
		if doc.Password == "" {
			doc.Password = existing.Password
		}
	}

	data, err := json.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}

	key := PageKey(doc.Username)

	// Page records never expire.
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save page: %w: %w", domain.ErrRemoteUnavailable, err)
	}

	// Add to set of all pages
	if err := s.client.SAdd(ctx, AllPagesKey(), doc.Username).Err(); err != nil {
		return fmt.Errorf("failed to add page to set: %w: %w", domain.ErrRemoteUnavailable, err)
	}

	return nil
}

// GetPage retrieves a page record from Redis by username.
// A missing record yields domain.ErrPageNotFound; any other failure is
// tagged domain.ErrRemoteUnavailable.
func (s *Store) GetPage(ctx context.Context, username string) (*domain.PageRecord, error) {
	key := PageKey(username)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("page %q: %w", username, domain.ErrPageNotFound)
		}
		return nil, fmt.Errorf("failed to get page %q: %w: %w", username, domain.ErrRemoteUnavailable, err)
	}

	var rec domain.PageRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page %q: %w: %w", username, domain.ErrRemoteUnavailable, err)
	}

	return &rec, nil
}

// AllUsernames retrieves the usernames of all published pages.
func (s *Store) AllUsernames(ctx context.Context) ([]string, error) {
	usernames, err := s.client.SMembers(ctx, AllPagesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get page usernames: %w: %w", domain.ErrRemoteUnavailable, err)
	}
	return usernames, nil
}
