package report

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"plots/b.png",
		"plots/a.png",
		"plots/a_thumb.png",
		"plots/notes.txt",
		"plots/night1/c.png",
	)

	images, err := Discover(root, []string{"plots/*.png", "plots/**/*.png"}, []string{"*_thumb.png"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	var got []string
	for _, img := range images {
		rel, _ := filepath.Rel(root, img.Path)
		got = append(got, filepath.ToSlash(rel))
	}
	want := []string{"plots/a.png", "plots/b.png", "plots/night1/c.png"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("images[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiscoverNoMatches(t *testing.T) {
	images, err := Discover(t.TempDir(), []string{"plots/*.png"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(images) != 0 {
		t.Errorf("got %d images, want 0", len(images))
	}
}

func TestDiscoverBadPattern(t *testing.T) {
	if _, err := Discover(t.TempDir(), []string{"plots/[.png"}, nil); err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"plots/a_thumb.png", []string{"*_thumb.png"}, true},
		{"plots/deep/x.png", []string{"plots/**"}, true},
		{"plots/a.png", []string{"other/*"}, false},
		{"plots/a.png", nil, false},
	}
	for _, tt := range tests {
		if got := matchesAny(tt.path, tt.patterns); got != tt.want {
			t.Errorf("matchesAny(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
		}
	}
}
