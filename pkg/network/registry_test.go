package network

import "testing"

func TestRegistry_ResolveURL(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name   string
		rawURL string
		want   string
		wantOK bool
	}{
		{"plain domain", "https://cnn.com/politics", "CNN", true},
		{"www prefix", "https://www.cnn.com/politics", "CNN", true},
		{"subdomain walks to parent", "https://edition.cnn.com/2024/story", "CNN", true},
		{"deep subdomain", "https://live.news.bbc.co.uk/stream", "BBC", true},
		{"unregistered", "https://example.com/post", "", false},
		{"no host", "/relative/path", "", false},
		{"garbage", "://not a url", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := r.ResolveURL(tt.rawURL)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("ResolveURL(%q) = %q, %v; want %q, %v", tt.rawURL, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRegistry_RegisterNormalizesDomains(t *testing.T) {
	r := NewRegistry()
	r.Register("WWW.Example-News.COM", "Example News")

	name, domain, ok := r.ResolveURL("https://example-news.com/story")
	if !ok || name != "Example News" || domain != "example-news.com" {
		t.Fatalf("unexpected resolution: %q %q %v", name, domain, ok)
	}
}

func TestRegistry_ResolveName(t *testing.T) {
	r := DefaultRegistry()
	if name, ok := r.ResolveName("Reuters"); !ok || name != "Reuters" {
		t.Fatalf("expected Reuters to resolve, got %q %v", name, ok)
	}
	if _, ok := r.ResolveName("Some Blog"); ok {
		t.Fatal("unknown names must not resolve")
	}
}

func TestRegistry_NamesSortedAndDeduped(t *testing.T) {
	r := DefaultRegistry()
	names := r.Names()
	if len(names) == 0 {
		t.Fatal("stock registry must not be empty")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not strictly sorted: %q then %q", names[i-1], names[i])
		}
	}
	// BBC is registered under two domains but appears once.
	seen := 0
	for _, name := range names {
		if name == "BBC" {
			seen++
		}
	}
	if seen != 1 {
		t.Fatalf("expected BBC exactly once, got %d", seen)
	}
}
