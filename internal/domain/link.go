package domain

// Link is one outbound reference on a page.
//
// The collection order is the display order: links render in the order
// they were added, never sorted.
type Link struct {
	// ID is an opaque unique identifier assigned when the link is
	// created. It is stable across edits and unique within a page.
	ID string `json:"id"`

	// Platform is the display label of the target platform.
	// Example: GitHub
	Platform string `json:"platform"`

	// URL is the destination address. It may be empty while the link
	// is still being drafted.
	URL string `json:"url"`

	// IconKey references a static icon/color descriptor in the
	// platform catalog. Example: FaGithub
	IconKey string `json:"iconKey"`

	// IsEditing marks a link whose URL is currently being edited.
	// It is session-only state and is never persisted remotely.
	IsEditing bool `json:"-"`
}

// CloneLinks returns a deep copy of a link collection, preserving order.
func CloneLinks(links []Link) []Link {
	if links == nil {
		return nil
	}
	out := make([]Link, len(links))
	copy(out, links)
	return out
}

// StripTransient returns a copy of the collection with the transient
// editing flag cleared. This is the shape that gets persisted.
func StripTransient(links []Link) []Link {
	out := CloneLinks(links)
	for i := range out {
		out[i].IsEditing = false
	}
	return out
}
