package redis

const (
	// KeyPrefixPage is the prefix for page record keys
	KeyPrefixPage = "msl:page:"
	// KeyAllPages is the key for the set of all page usernames
	KeyAllPages = "msl:pages:all"
)

// PageKey returns the Redis key for a page record by username
func PageKey(username string) string {
	return KeyPrefixPage + username
}

// AllPagesKey returns the key for the set of all page usernames
func AllPagesKey() string {
	return KeyAllPages
}
