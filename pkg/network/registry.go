package network

import (
	"net/url"
	"sort"
	"strings"
)

// Registry is the set of recognized news sources the extractor can resolve
// citation targets against, keyed both by origin domain and display name.
type Registry struct {
	domainToName map[string]string
	nameToDomain map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		domainToName: make(map[string]string),
		nameToDomain: make(map[string]string),
	}
}

// Register adds one recognized source. Later registrations for the same
// domain overwrite earlier ones.
func (r *Registry) Register(domain, name string) {
	domain = strings.TrimPrefix(strings.ToLower(domain), "www.")
	if domain == "" || name == "" {
		return
	}
	r.domainToName[domain] = name
	if _, ok := r.nameToDomain[name]; !ok {
		r.nameToDomain[name] = domain
	}
}

// ResolveURL maps a link target to a registered source display name. The
// host is matched against registered domains, including parent domains, so
// "edition.cnn.com" resolves through "cnn.com".
func (r *Registry) ResolveURL(rawURL string) (name, domain string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", false
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return "", "", false
	}

	for candidate := host; candidate != ""; {
		if n, found := r.domainToName[candidate]; found {
			return n, candidate, true
		}
		idx := strings.Index(candidate, ".")
		if idx < 0 {
			break
		}
		candidate = candidate[idx+1:]
	}
	return "", "", false
}

// ResolveName reports whether a display name belongs to a registered source
// and returns its canonical form.
func (r *Registry) ResolveName(name string) (string, bool) {
	if _, ok := r.nameToDomain[name]; ok {
		return name, true
	}
	return "", false
}

// Domain returns the registered domain for a display name, or empty.
func (r *Registry) Domain(name string) string {
	return r.nameToDomain[name]
}

// Names returns every registered display name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.nameToDomain))
	for name := range r.nameToDomain {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns the stock registry of widely known outlets used
// when no deployment-specific registry is configured.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for domain, name := range defaultSources {
		r.Register(domain, name)
	}
	return r
}

var defaultSources = map[string]string{
	"cnn.com":            "CNN",
	"foxnews.com":        "Fox News",
	"nytimes.com":        "New York Times",
	"washingtonpost.com": "Washington Post",
	"wsj.com":            "Wall Street Journal",
	"bbc.com":            "BBC",
	"bbc.co.uk":          "BBC",
	"reuters.com":        "Reuters",
	"apnews.com":         "AP News",
	"npr.org":            "NPR",
	"msnbc.com":          "MSNBC",
	"nbcnews.com":        "NBC News",
	"cbsnews.com":        "CBS News",
	"abcnews.go.com":     "ABC News",
	"politico.com":       "Politico",
	"thehill.com":        "The Hill",
	"breitbart.com":      "Breitbart",
	"huffpost.com":       "HuffPost",
	"vox.com":            "Vox",
	"dailywire.com":      "Daily Wire",
	"theguardian.com":    "The Guardian",
	"usatoday.com":       "USA Today",
	"latimes.com":        "LA Times",
	"nypost.com":         "New York Post",
	"newsweek.com":       "Newsweek",
	"time.com":           "Time",
	"theatlantic.com":    "The Atlantic",
	"slate.com":          "Slate",
	"salon.com":          "Salon",
	"nationalreview.com": "National Review",
	"thedailybeast.com":  "The Daily Beast",
	"axios.com":          "Axios",
	"buzzfeednews.com":   "BuzzFeed News",
	"vice.com":           "Vice",
	"jacobin.com":        "Jacobin",
	"reason.com":         "Reason",
}
