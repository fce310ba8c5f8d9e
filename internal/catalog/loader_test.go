package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderWithoutFile(t *testing.T) {
	loader := NewLoader("")

	platforms, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(platforms) != len(Defaults()) {
		t.Errorf("got %d platforms, want %d defaults", len(platforms), len(Defaults()))
	}
}

func TestLoaderMergesOverDefaults(t *testing.T) {
	yaml := `platforms:
  - name: GitHub
    icon: FaGithub
    color: bg-green-600
    darkColor: bg-green-700
    placeholder: https://github.com/you
  - name: Mastodon
    icon: FaMastodon
    color: bg-indigo-500
    darkColor: bg-indigo-600
    placeholder: https://mastodon.social/@you
`
	path := filepath.Join(t.TempDir(), "platforms.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	platforms, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// One override replaced in place, one new entry appended.
	if len(platforms) != len(Defaults())+1 {
		t.Fatalf("got %d platforms, want %d", len(platforms), len(Defaults())+1)
	}

	idx := NewIndex()
	idx.Update(platforms)

	github, ok := idx.Get("GitHub")
	if !ok {
		t.Fatal("GitHub missing after merge")
	}
	if github.Color != "bg-green-600" {
		t.Errorf("GitHub.Color = %q, want override %q", github.Color, "bg-green-600")
	}

	if _, ok := idx.Get("Mastodon"); !ok {
		t.Error("Mastodon not appended by merge")
	}
	// Default entries not named in the file survive untouched.
	if _, ok := idx.Get("Discord"); !ok {
		t.Error("Discord default lost by merge")
	}
}

func TestLoaderRejectsNamelessEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platforms.yaml")
	if err := os.WriteFile(path, []byte("platforms:\n  - icon: FaX\n"), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() should reject a platform without a name")
	}
}

func TestIndexOrderPreserved(t *testing.T) {
	idx := NewIndex()

	all := idx.All()
	if len(all) == 0 {
		t.Fatal("default index is empty")
	}
	defaults := Defaults()
	for i, p := range all {
		if p.Name != defaults[i].Name {
			t.Errorf("catalog order broken at %d: got %q, want %q", i, p.Name, defaults[i].Name)
		}
	}
}
