package domain

import "time"

// PageRecord is the persisted unit, one per username.
//
// A record is created on the first successful save for a username and is
// fully overwritten on every subsequent save: the draft link collection
// replaces the remote one wholesale (last-write-wins, no version check).
// Records are never deleted by this system.
type PageRecord struct {
	// Username is the normalized (lower-cased, whitespace-stripped)
	// unique key of the page.
	Username string `json:"username"`

	// Links is the ordered link collection. Only the persisted subset
	// of each link is stored; the IsEditing flag never leaves memory.
	Links []Link `json:"links"`

	// Password is an optional plaintext shared secret. Its presence
	// means the page is protected.
	//
	// The comparison contract is exact string equality with no hashing,
	// salting or trimming. This is deliberately weak and kept only for
	// compatibility with already-stored secrets; a deployment that
	// needs real security must swap in salted-hash verification at the
	// store boundary.
	Password string `json:"password,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Protected reports whether the page requires a password before editing.
func (p *PageRecord) Protected() bool {
	return p.Password != ""
}

// VerifyPassword compares an attempted secret against the stored one.
// Exact equality, case-sensitive, no trimming. A record without a
// password never matches.
func (p *PageRecord) VerifyPassword(attempt string) bool {
	return p.Password != "" && p.Password == attempt
}
