package session

// LinkState is the presentation view of a draft link. Unlike the
// persisted record it carries the transient editing flag.
type LinkState struct {
	ID        string `json:"id"`
	Platform  string `json:"platform"`
	URL       string `json:"url"`
	IconKey   string `json:"iconKey"`
	IsEditing bool   `json:"isEditing"`
}

// State is a point-in-time snapshot of a page session, safe to hand to
// a renderer or serialize as JSON. Expired notices are suppressed.
type State struct {
	Mode         Mode        `json:"mode"`
	Username     string      `json:"username"`
	Links        []LinkState `json:"links"`
	HasPassword  bool        `json:"hasPassword"`
	ShareAddress string      `json:"shareAddress,omitempty"`
	ShareURL     string      `json:"shareUrl,omitempty"`
	Notice       string      `json:"notice,omitempty"`
	DarkMode     bool        `json:"darkMode"`
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	links := make([]LinkState, len(c.links))
	for i, l := range c.links {
		links[i] = LinkState{
			ID:        l.ID,
			Platform:  l.Platform,
			URL:       l.URL,
			IconKey:   l.IconKey,
			IsEditing: l.IsEditing,
		}
	}
	return State{
		Mode:         c.mode,
		Username:     c.username,
		Links:        links,
		HasPassword:  c.hasPassword,
		ShareAddress: c.shareAddress,
		ShareURL:     c.shareURLLocked(),
		Notice:       c.noticeLocked(),
		DarkMode:     c.darkMode,
	}
}
