package session

import (
	"context"

	"github.com/charlespura/MySocialLink/internal/domain"
)

// RemoteStore is the page persistence boundary. Any key-value or
// document backend satisfies it; the controller never assumes query
// capabilities beyond get/put by username.
type RemoteStore interface {
	GetPage(ctx context.Context, username string) (*domain.PageRecord, error)
	SavePage(ctx context.Context, rec *domain.PageRecord) error
}

// LinkCache is the local mirror of link collections plus the persisted
// UI preference. The session only ever writes the mirror; it is read by
// the public page surface, never as an unlock path, because it holds no
// passwords.
type LinkCache interface {
	PutLinks(username string, links []domain.Link) error
	SetDarkMode(dark bool) error
	DarkMode() (bool, bool)
}

// Clipboard is a write-only side channel for the shareable address.
type Clipboard interface {
	Write(text string) error
}

// Address receives the shareable fragment after a successful save, so
// whoever owns navigation can reflect the published address.
type Address interface {
	Update(fragment string)
}
