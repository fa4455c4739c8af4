package network

import (
	"regexp"
	"strings"

	"github.com/openmediawatch/backend/internal/util"
	"github.com/openmediawatch/backend/pkg/common"

	"golang.org/x/net/html"
)

// maxContextLen bounds the stored excerpt around a detected citation.
const maxContextLen = 200

// Link is one hyperlink found in markup: the raw target and the anchor's
// visible text.
type Link struct {
	URL  string
	Text string
}

// LinkScanner locates hyperlinks in markup. Two strategies exist: a DOM
// walk over parsed markup and a regex scan used when parsing is not an
// option. Both are first-class so the fallback path is testable on its own.
type LinkScanner interface {
	ScanLinks(markup string) ([]Link, error)
}

// DOMLinkScanner parses markup and walks the node tree for anchors.
type DOMLinkScanner struct{}

// ScanLinks parses the markup and collects every anchor with an href.
func (DOMLinkScanner) ScanLinks(markup string) ([]Link, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && attr.Val != "" {
					links = append(links, Link{
						URL:  attr.Val,
						Text: strings.TrimSpace(nodeText(n)),
					})
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// RegexLinkScanner is the degraded strategy: a pattern scan for anchor tags
// that survives markup too broken to parse.
type RegexLinkScanner struct{}

var (
	anchorPattern = regexp.MustCompile(`(?is)<a[^>]+href=["']?([^"'\s>]+)["']?[^>]*>(.*?)</a>`)
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
)

// ScanLinks extracts anchors by pattern matching. It never fails; markup it
// cannot make sense of simply yields no links.
func (RegexLinkScanner) ScanLinks(markup string) ([]Link, error) {
	matches := anchorPattern.FindAllStringSubmatch(markup, -1)
	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		text := strings.TrimSpace(tagPattern.ReplaceAllString(m[2], ""))
		links = append(links, Link{URL: m[1], Text: text})
	}
	return links, nil
}

// Attribution phrases that signal one outlet citing another in plain text.
var mentionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:according to|reported by|as reported by|citing)\s+(?:the\s+)?([A-Z][A-Za-z\s]+?)(?:\s*,|\s+said|\s+reported|\s+found)`),
	regexp.MustCompile(`(?:a|an)\s+(?:report|article|story|piece|investigation)\s+(?:by|from|in)\s+(?:the\s+)?([A-Z][A-Za-z\s]+?)(?:\s*,|\s+said|\s+found|\s+showed)`),
	regexp.MustCompile(`([A-Z][A-Za-z\s]+?)\s+first\s+reported`),
}

// Extractor finds references to known sources in article content. It is
// stateless: every call works only from its arguments and the registry.
type Extractor struct {
	registry *Registry
	scanner  LinkScanner
}

// ExtractorParams configures an Extractor. A nil Registry selects the stock
// registry; a nil Scanner selects the DOM strategy.
type ExtractorParams struct {
	Registry *Registry
	Scanner  LinkScanner
}

// NewExtractor creates a citation extractor.
func NewExtractor(params ExtractorParams) *Extractor {
	r := params.Registry
	if r == nil {
		r = DefaultRegistry()
	}
	s := params.Scanner
	if s == nil {
		s = DOMLinkScanner{}
	}
	return &Extractor{registry: r, scanner: s}
}

// Extract scans one article's content for citations to known sources other
// than the originating one. Markup content is scanned for hyperlinks first;
// the textual detectors run in both modes since markup still carries
// attribution phrases. At most one citation is emitted per (target, article)
// pair, preferring the stronger detection method.
func (e *Extractor) Extract(fromSource string, articleID int64, content string, isMarkup bool) []common.Citation {
	var citations []common.Citation
	seen := make(map[string]bool)

	emit := func(target string, c common.Citation) {
		if target == fromSource || seen[target] {
			return
		}
		seen[target] = true
		citations = append(citations, c)
	}

	if isMarkup {
		links, err := e.scanner.ScanLinks(content)
		if err != nil {
			// Unparseable markup degrades to the pattern scan.
			links, _ = RegexLinkScanner{}.ScanLinks(content)
		}
		for _, link := range links {
			name, _, ok := e.registry.ResolveURL(link.URL)
			if !ok {
				continue
			}
			emit(name, common.Citation{
				FromSource: fromSource,
				ToSource:   name,
				ArticleID:  articleID,
				ToURL:      link.URL,
				Context:    util.Truncate(link.Text, maxContextLen),
				Kind:       common.CitationHyperlink,
			})
		}
	}

	for _, pattern := range mentionPatterns {
		for _, m := range pattern.FindAllStringSubmatch(content, -1) {
			name, ok := e.registry.ResolveName(strings.TrimSpace(m[1]))
			if !ok {
				continue
			}
			emit(name, common.Citation{
				FromSource: fromSource,
				ToSource:   name,
				ArticleID:  articleID,
				Context:    util.Truncate(m[0], maxContextLen),
				Kind:       common.CitationMention,
			})
		}
	}

	// Substring scan over every known name catches attributions the phrase
	// patterns miss without double-counting pattern hits.
	lower := strings.ToLower(content)
	for _, name := range e.registry.Names() {
		if seen[name] || name == fromSource {
			continue
		}
		if strings.Contains(lower, strings.ToLower(name)) {
			emit(name, common.Citation{
				FromSource: fromSource,
				ToSource:   name,
				ArticleID:  articleID,
				Kind:       common.CitationReference,
			})
		}
	}

	return citations
}
