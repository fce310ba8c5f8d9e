package cache

import (
	"testing"

	"github.com/charlespura/MySocialLink/internal/domain"
)

func TestLinksRoundTrip(t *testing.T) {
	c := New(16)

	links := []domain.Link{
		{ID: "a", Platform: "GitHub", URL: "github.com/bob", IconKey: "FaGithub"},
		{ID: "b", Platform: "Facebook", URL: "fb.com/bob", IconKey: "FaFacebook"},
	}
	if err := c.PutLinks("bob", links); err != nil {
		t.Fatalf("PutLinks() error = %v", err)
	}

	got, ok := c.GetLinks("bob")
	if !ok {
		t.Fatal("GetLinks() miss after put")
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("GetLinks() = %+v, want original order and IDs", got)
	}
}

func TestLinksMiss(t *testing.T) {
	c := New(16)

	if _, ok := c.GetLinks("nobody"); ok {
		t.Error("GetLinks() should miss for an unknown username")
	}
}

func TestLinkKeyConvention(t *testing.T) {
	if got := LinkKey("bob"); got != "links_bob" {
		t.Errorf("LinkKey(%q) = %q, want %q", "bob", got, "links_bob")
	}
}

func TestDarkModePreference(t *testing.T) {
	c := New(16)

	if _, ok := c.DarkMode(); ok {
		t.Error("DarkMode() should miss before any preference is stored")
	}

	if err := c.SetDarkMode(true); err != nil {
		t.Fatalf("SetDarkMode() error = %v", err)
	}
	dark, ok := c.DarkMode()
	if !ok || !dark {
		t.Errorf("DarkMode() = (%v, %v), want (true, true)", dark, ok)
	}

	if err := c.SetDarkMode(false); err != nil {
		t.Fatalf("SetDarkMode() error = %v", err)
	}
	dark, ok = c.DarkMode()
	if !ok || dark {
		t.Errorf("DarkMode() = (%v, %v), want (false, true)", dark, ok)
	}
}
