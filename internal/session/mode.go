package session

// Mode is the presentation state of a page session.
type Mode int

const (
	// ModeCreating: no page address resolved (or the page does not
	// exist yet); the user is authoring a brand new draft.
	ModeCreating Mode = iota
	// ModeLoading: a remote fetch is in flight.
	ModeLoading
	// ModeLockedView: the record has a password that has not been
	// verified this session; the page is view-only.
	ModeLockedView
	// ModeUnlockedView: the record has no password, or it was verified.
	ModeUnlockedView
	// ModeEditing: the user is mutating the draft link collection.
	ModeEditing
	// ModePasswordPrompt: overlay of the locked view collecting an
	// attempted secret.
	ModePasswordPrompt
)

var modeNames = map[Mode]string{
	ModeCreating:       "creating",
	ModeLoading:        "loading",
	ModeLockedView:     "locked",
	ModeUnlockedView:   "unlocked",
	ModeEditing:        "editing",
	ModePasswordPrompt: "password-prompt",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// MarshalText makes Mode render as its name in JSON payloads.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
