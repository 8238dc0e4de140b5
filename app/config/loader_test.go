package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidFile(t *testing.T) {
	path := writeFile(t, `
feeds:
  - url: "https://example.com/feed.xml"
    category: "tech"
  - url: " https://example.com/atom.xml "
`)

	subs, err := NewLoader(path).Load()
	if err != nil {
		t.Fatal(err)
	}

	if len(subs) != 2 {
		t.Fatalf("Expected 2 subscriptions, got %d", len(subs))
	}
	if subs[0].URL != "https://example.com/feed.xml" || subs[0].Category != "tech" {
		t.Errorf("Unexpected first subscription: %+v", subs[0])
	}
	if subs[1].URL != "https://example.com/atom.xml" {
		t.Errorf("Expected trimmed URL, got '%s'", subs[1].URL)
	}
	if subs[1].Category != DefaultCategory {
		t.Errorf("Expected default category '%s', got '%s'", DefaultCategory, subs[1].Category)
	}
}

func TestLoadSkipsDuplicates(t *testing.T) {
	path := writeFile(t, `
feeds:
  - url: "https://example.com/feed.xml"
  - url: "https://example.com/feed.xml"
    category: "other"
`)

	subs, err := NewLoader(path).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 {
		t.Errorf("Expected 1 subscription, got %d", len(subs))
	}
}

func TestLoadInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing url", "feeds:\n  - category: tech\n"},
		{"bad scheme", "feeds:\n  - url: ftp://example.com/feed\n"},
		{"bad yaml", "feeds: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLoader(writeFile(t, tt.content)).Load(); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	subs, err := NewLoader(filepath.Join(t.TempDir(), "missing.yml")).Load()
	if err != nil {
		t.Fatalf("Expected no error for missing file, got: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("Expected no subscriptions, got %d", len(subs))
	}

	subs, err = NewLoader("").Load()
	if err != nil || subs != nil {
		t.Errorf("Expected nil result for empty path, got: %v, %v", subs, err)
	}
}

func TestNormalize(t *testing.T) {
	subs, err := Normalize([]Subscription{
		{URL: " https://a.example/rss ", Category: " Tech "},
		{URL: "https://b.example/rss"},
		{URL: "https://a.example/rss", Category: "News"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(subs) != 2 {
		t.Fatalf("Expected 2 subscriptions, got %d", len(subs))
	}
	if subs[0].URL != "https://a.example/rss" || subs[0].Category != "Tech" {
		t.Errorf("Expected trimmed first subscription, got: %+v", subs[0])
	}
	if subs[1].Category != DefaultCategory {
		t.Errorf("Expected default category '%s', got '%s'", DefaultCategory, subs[1].Category)
	}

	if _, err := Normalize([]Subscription{{URL: "not a url"}}); err == nil {
		t.Error("Expected error for URL without scheme")
	}
}
