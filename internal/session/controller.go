package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/charlespura/MySocialLink/internal/catalog"
	"github.com/charlespura/MySocialLink/internal/domain"
	"github.com/charlespura/MySocialLink/internal/logger"
)

// DefaultNoticeTTL is how long a transient notice stays visible.
const DefaultNoticeTTL = 3 * time.Second

var (
	// ErrBusy reports that the same operation is already in flight for
	// this session. Duplicate triggers are suppressed, not queued, to
	// avoid racing writes for the same username.
	ErrBusy = errors.New("operation already in flight")

	// ErrLocked reports a draft mutation attempted while the page is
	// locked or still loading.
	ErrLocked = errors.New("page is locked")
)

// User-facing notices, auto-dismissed after the notice TTL.
const (
	noticeLoaded        = "Loaded from cloud! ☁️"
	noticeLoadFailed    = "Error loading links."
	noticeNeedUsername  = "Please enter a username"
	noticeNeedPassword  = "Please set a password to protect your page"
	noticeSaved         = "✅ Saved to cloud! Page is password protected."
	noticeSaveFailed    = "⚠️ Save failed."
	noticeEnterPassword = "Please enter a password"
	noticeUnlocked      = "✅ Access granted!"
	noticeWrongPassword = "❌ Wrong password!"
	noticeVerifyFailed  = "Error verifying password"
	noticeCopied        = "Copied to clipboard! 📋"
)

// Config carries the collaborators of a Controller. Store, Cache and
// Catalog are required; everything else has a working default.
type Config struct {
	Store     RemoteStore
	Cache     LinkCache
	Catalog   *catalog.Index
	Clipboard Clipboard
	Address   Address
	Logger    logger.Logger

	// BaseURL prefixes the shareable address, e.g. "https://msl.page".
	BaseURL string

	NoticeTTL time.Duration
	Now       func() time.Time
	NewID     func() string
}

// Controller owns one page session: the resolved username, the draft
// link collection, the lock state and the transient notice. It
// reconciles the page address, the remote store and the local cache
// under a last-write-wins policy.
//
// All state mutation is serialized by a mutex. The remote calls (load,
// save, unlock) are the only suspension points: they run without the
// lock, carry the generation current at dispatch time, and their
// results are discarded when the session has navigated away meanwhile.
type Controller struct {
	store   RemoteStore
	cache   LinkCache
	clip    Clipboard
	addr    Address
	catalog *catalog.Index
	log     logger.Logger

	baseURL   string
	noticeTTL time.Duration
	now       func() time.Time
	newID     func() string

	mu           sync.Mutex
	mode         Mode
	username     string
	links        []domain.Link
	hasPassword  bool
	shareAddress string
	darkMode     bool
	notice       string
	noticeAt     time.Time

	// gen is bumped on every navigation; in-flight responses from an
	// older generation are stale and dropped.
	gen uint64

	loading   bool
	saving    bool
	verifying bool
}

type noopClipboard struct{}

func (noopClipboard) Write(string) error { return nil }

type noopAddress struct{}

func (noopAddress) Update(string) {}

// New creates a Controller in the creating state.
func New(cfg Config) *Controller {
	if cfg.Store == nil || cfg.Cache == nil || cfg.Catalog == nil {
		panic("session: Store, Cache and Catalog are required")
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = noopClipboard{}
	}
	if cfg.Address == nil {
		cfg.Address = noopAddress{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.NoticeTTL <= 0 {
		cfg.NoticeTTL = DefaultNoticeTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = func() string { return ksuid.New().String() }
	}

	c := &Controller{
		store:     cfg.Store,
		cache:     cfg.Cache,
		clip:      cfg.Clipboard,
		addr:      cfg.Address,
		catalog:   cfg.Catalog,
		log:       cfg.Logger,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		noticeTTL: cfg.NoticeTTL,
		now:       cfg.Now,
		newID:     cfg.NewID,
		mode:      ModeCreating,
	}
	if dark, ok := c.cache.DarkMode(); ok {
		c.darkMode = dark
	}
	return c
}

// SetAddress points the session at a page address fragment. A resolvable
// username triggers a remote load; an empty fragment resets the session
// to an empty draft. Any response still in flight for the previous
// address becomes stale and is discarded.
func (c *Controller) SetAddress(ctx context.Context, fragment string) State {
	username := domain.ResolveAddress(fragment)

	c.mu.Lock()
	if c.loading && c.username == username && username != "" {
		// Same address already loading; suppress the duplicate fetch.
		st := c.stateLocked()
		c.mu.Unlock()
		return st
	}
	c.gen++
	gen := c.gen
	c.resetLocked()
	if username == "" {
		c.mode = ModeCreating
		st := c.stateLocked()
		c.mu.Unlock()
		return st
	}
	c.username = username
	c.mode = ModeLoading
	c.loading = true
	c.mu.Unlock()

	c.load(ctx, username, gen)

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) resetLocked() {
	c.username = ""
	c.links = nil
	c.hasPassword = false
	c.shareAddress = ""
	c.notice = ""
	c.loading = false
	c.saving = false
	c.verifying = false
	c.mode = ModeCreating
}

func (c *Controller) load(ctx context.Context, username string, gen uint64) {
	rec, err := c.store.GetPage(ctx, username)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.log.Debug("discarding stale page load",
			logger.String("username", username))
		return
	}
	c.loading = false

	switch {
	case err == nil:
		c.links = domain.CloneLinks(rec.Links)
		c.hasPassword = rec.Protected()
		c.shareAddress = domain.FormatAddress(username)
		if c.hasPassword {
			c.mode = ModeLockedView
		} else {
			c.mode = ModeUnlockedView
		}
		c.setNoticeLocked(noticeLoaded)
	case errors.Is(err, domain.ErrPageNotFound):
		// New username: straight into the creation flow.
		c.mode = ModeCreating
	default:
		// Remote unavailable. The local cache is deliberately not
		// consulted as a fallback: it mirrors links but never the
		// password, so serving it would present a protected page as
		// unlocked. The user gets the creation flow instead.
		c.log.Warn("failed to load page",
			logger.String("username", username),
			logger.Error(err))
		c.setNoticeLocked(noticeLoadFailed)
		c.mode = ModeCreating
	}
}

// RequestEdit moves the session toward authoring: a protected page
// raises the password prompt, anything else enters editing directly.
func (c *Controller) RequestEdit() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.mode {
	case ModeLockedView, ModePasswordPrompt:
		c.mode = ModePasswordPrompt
	case ModeUnlockedView, ModeCreating, ModeEditing:
		c.mode = ModeEditing
	case ModeLoading:
		// Ignored while a fetch is in flight.
	}
	return c.mode
}

// CancelUnlock dismisses the password prompt back to the locked view.
func (c *Controller) CancelUnlock() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModePasswordPrompt {
		c.mode = ModeLockedView
	}
}

// Unlock verifies an attempted secret against the stored one. A match
// enters editing; a mismatch stays in the prompt with a notice and no
// attempt limit. The attempted secret is not retained either way.
func (c *Controller) Unlock(ctx context.Context, attempt string) bool {
	c.mu.Lock()
	if c.mode != ModePasswordPrompt && c.mode != ModeLockedView {
		c.mu.Unlock()
		return false
	}
	if strings.TrimSpace(attempt) == "" {
		c.setNoticeLocked(noticeEnterPassword)
		c.mu.Unlock()
		return false
	}
	if c.verifying {
		c.mu.Unlock()
		return false
	}
	c.mode = ModePasswordPrompt
	c.verifying = true
	gen := c.gen
	username := c.username
	c.mu.Unlock()

	ok, err := VerifySecret(ctx, c.store, username, attempt)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.verifying = false
	if err != nil {
		c.log.Warn("failed to verify password",
			logger.String("username", username),
			logger.Error(err))
		c.setNoticeLocked(noticeVerifyFailed)
		return false
	}
	if !ok {
		c.setNoticeLocked(noticeWrongPassword)
		return false
	}
	c.hasPassword = true
	c.mode = ModeEditing
	c.setNoticeLocked(noticeUnlocked)
	return true
}

// VerifySecret reports whether a record exists for username and its
// stored password equals attempt exactly (case-sensitive, no trimming).
// A missing record or an unprotected page yields false, not an error;
// only a store failure is returned as one.
func VerifySecret(ctx context.Context, store RemoteStore, username, attempt string) (bool, error) {
	rec, err := store.GetPage(ctx, domain.NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			return false, nil
		}
		return false, err
	}
	return rec.VerifyPassword(attempt), nil
}

// Save validates the draft and writes it through: remote store first,
// local mirror only after the remote write succeeded, then the
// shareable address. A failed save leaves the session exactly where it
// was (mode, address and lock state untouched) so the user can retry.
func (c *Controller) Save(ctx context.Context, username, password string) error {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return ErrBusy
	}
	if !c.editableLocked() {
		c.mu.Unlock()
		return ErrLocked
	}
	if strings.TrimSpace(username) == "" {
		c.setNoticeLocked(noticeNeedUsername)
		c.mu.Unlock()
		return &domain.ValidationError{Field: "username", Reason: "username is required"}
	}
	if strings.TrimSpace(password) == "" && !c.hasPassword {
		c.setNoticeLocked(noticeNeedPassword)
		c.mu.Unlock()
		return &domain.ValidationError{Field: "password", Reason: "a password is required on first save"}
	}
	normalized := domain.NormalizeUsername(username)
	links := domain.StripTransient(c.links)
	c.saving = true
	gen := c.gen
	c.mu.Unlock()

	err := c.store.SavePage(ctx, &domain.PageRecord{
		Username: normalized,
		Links:    links,
		Password: password,
	})

	c.mu.Lock()
	stale := gen != c.gen
	if !stale {
		c.saving = false
	}
	if err != nil {
		if !stale {
			c.setNoticeLocked(noticeSaveFailed)
		}
		c.mu.Unlock()
		c.log.Warn("failed to save page",
			logger.String("username", normalized),
			logger.Error(err))
		return fmt.Errorf("failed to save page: %w", err)
	}
	c.mu.Unlock()

	// Mirror links only (never the password), and only after the
	// remote write succeeded. Best effort.
	if cerr := c.cache.PutLinks(normalized, links); cerr != nil {
		c.log.Warn("failed to mirror links locally",
			logger.String("username", normalized),
			logger.Error(cerr))
	}

	c.mu.Lock()
	if gen != c.gen {
		// Saved fine, but the session navigated away; leave the new
		// address's state alone.
		c.mu.Unlock()
		return nil
	}
	c.username = normalized
	c.hasPassword = true
	c.mode = ModeUnlockedView
	c.shareAddress = domain.FormatAddress(normalized)
	share := c.shareAddress
	c.setNoticeLocked(noticeSaved)
	c.mu.Unlock()

	// Outside the lock: the address port may be owned by a navigation
	// layer that calls back into the controller.
	c.addr.Update(share)
	return nil
}

func (c *Controller) editableLocked() bool {
	return c.mode == ModeCreating || c.mode == ModeEditing
}

// AddLink appends a new draft link for a cataloged platform. The link
// starts with an empty URL and its editing flag raised.
func (c *Controller) AddLink(platformName string) (domain.Link, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.editableLocked() {
		return domain.Link{}, ErrLocked
	}
	p, ok := c.catalog.Get(platformName)
	if !ok {
		return domain.Link{}, &domain.ValidationError{
			Field:  "platform",
			Reason: fmt.Sprintf("unknown platform %q", platformName),
		}
	}
	link := domain.Link{
		ID:        c.newID(),
		Platform:  p.Name,
		IconKey:   p.IconKey,
		IsEditing: true,
	}
	c.links = append(c.links, link)
	return link, nil
}

// UpdateLink sets the URL of a draft link. Absent IDs are a no-op.
func (c *Controller) UpdateLink(id, url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.editableLocked() {
		return false
	}
	for i := range c.links {
		if c.links[i].ID == id {
			c.links[i].URL = url
			return true
		}
	}
	return false
}

// SetLinkPlatform re-targets a draft link at another cataloged platform.
func (c *Controller) SetLinkPlatform(id, platformName string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.editableLocked() {
		return false
	}
	p, ok := c.catalog.Get(platformName)
	if !ok {
		return false
	}
	for i := range c.links {
		if c.links[i].ID == id {
			c.links[i].Platform = p.Name
			c.links[i].IconKey = p.IconKey
			return true
		}
	}
	return false
}

// DeleteLink removes a draft link by ID. Deleting an absent ID is a
// no-op: the collection is unchanged and no error is raised.
func (c *Controller) DeleteLink(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.editableLocked() {
		return false
	}
	for i := range c.links {
		if c.links[i].ID == id {
			c.links = append(c.links[:i], c.links[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleEdit flips the transient editing flag of a draft link.
func (c *Controller) ToggleEdit(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.editableLocked() {
		return false
	}
	for i := range c.links {
		if c.links[i].ID == id {
			c.links[i].IsEditing = !c.links[i].IsEditing
			return true
		}
	}
	return false
}

// CopyAddress writes the shareable URL to the clipboard and returns it.
// Clipboard failures are logged but never surfaced; copying always acks.
func (c *Controller) CopyAddress() string {
	c.mu.Lock()
	url := c.shareURLLocked()
	if url != "" {
		c.setNoticeLocked(noticeCopied)
	}
	c.mu.Unlock()

	if url == "" {
		return ""
	}
	if err := c.clip.Write(url); err != nil {
		c.log.Debug("clipboard write failed", logger.Error(err))
	}
	return url
}

// SetDarkMode flips and persists the theme preference. It is
// independent of any username and survives session resets.
func (c *Controller) SetDarkMode(dark bool) {
	c.mu.Lock()
	c.darkMode = dark
	c.mu.Unlock()

	if err := c.cache.SetDarkMode(dark); err != nil {
		c.log.Warn("failed to persist theme preference", logger.Error(err))
	}
}

func (c *Controller) shareURLLocked() string {
	share := c.shareAddress
	if share == "" && c.username != "" {
		share = domain.FormatAddress(c.username)
	}
	if share == "" {
		return ""
	}
	if c.baseURL == "" {
		return share
	}
	return c.baseURL + "/" + share
}

func (c *Controller) setNoticeLocked(msg string) {
	c.notice = msg
	c.noticeAt = c.now()
}

func (c *Controller) noticeLocked() string {
	if c.notice == "" {
		return ""
	}
	if c.now().Sub(c.noticeAt) >= c.noticeTTL {
		c.notice = ""
		return ""
	}
	return c.notice
}
