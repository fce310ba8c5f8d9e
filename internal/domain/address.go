package domain

import "strings"

// AddressMarker is the leading character of a page address fragment.
const AddressMarker = "#"

// NormalizeUsername lower-cases a username and removes all whitespace.
// Normalization is idempotent: "Bob Smith", "BOBSMITH" and "bobsmith"
// all collapse to the same key.
func NormalizeUsername(s string) string {
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), "")
}

// ResolveAddress maps a page address fragment to a username.
// It strips a single leading marker character; an empty fragment (or a
// bare marker) resolves to the empty string, meaning no page address.
func ResolveAddress(fragment string) string {
	fragment = strings.TrimPrefix(fragment, AddressMarker)
	return fragment
}

// FormatAddress builds the shareable fragment for a username.
// Example: FormatAddress("Bob ") == "#bob"
func FormatAddress(username string) string {
	return AddressMarker + NormalizeUsername(username)
}
