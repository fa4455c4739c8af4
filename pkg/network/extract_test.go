package network

import (
	"errors"
	"strings"
	"testing"

	"github.com/openmediawatch/backend/pkg/common"
)

func findCitation(citations []common.Citation, target string) (common.Citation, bool) {
	for _, c := range citations {
		if c.ToSource == target {
			return c, true
		}
	}
	return common.Citation{}, false
}

func TestExtract_HyperlinksFromMarkup(t *testing.T) {
	e := NewExtractor(ExtractorParams{})
	content := `<html><body>
		<p>As <a href="https://www.cnn.com/2024/story">CNN coverage</a> shows, things happened.</p>
		<p>See also <a href="https://example.com/unrelated">this blog</a>.</p>
	</body></html>`

	citations := e.Extract("Fox News", 7, content, true)

	c, ok := findCitation(citations, "CNN")
	if !ok {
		t.Fatalf("expected a CNN citation, got %v", citations)
	}
	if c.Kind != common.CitationHyperlink {
		t.Fatalf("expected hyperlink kind, got %q", c.Kind)
	}
	if c.ToURL != "https://www.cnn.com/2024/story" {
		t.Fatalf("unexpected target url %q", c.ToURL)
	}
	if c.Context != "CNN coverage" {
		t.Fatalf("expected anchor text as context, got %q", c.Context)
	}
	if c.ArticleID != 7 || c.FromSource != "Fox News" {
		t.Fatalf("unexpected provenance: %+v", c)
	}
	if _, ok := findCitation(citations, "example.com"); ok {
		t.Fatal("unregistered domains must not produce citations")
	}
}

func TestExtract_ContextTruncated(t *testing.T) {
	e := NewExtractor(ExtractorParams{})
	longText := strings.Repeat("x", 500)
	content := `<a href="https://cnn.com/a">` + longText + `</a>`

	citations := e.Extract("NPR", 1, content, true)
	c, ok := findCitation(citations, "CNN")
	if !ok {
		t.Fatalf("expected a CNN citation, got %v", citations)
	}
	if len(c.Context) > maxContextLen {
		t.Fatalf("context not truncated: %d bytes", len(c.Context))
	}
}

func TestExtract_RegexScannerFindsAnchors(t *testing.T) {
	links, err := RegexLinkScanner{}.ScanLinks(`<p>broken <a href="https://reuters.com/x">Reuters <b>wire</b></a> markup`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %v", links)
	}
	if links[0].URL != "https://reuters.com/x" {
		t.Fatalf("unexpected url %q", links[0].URL)
	}
	if links[0].Text != "Reuters wire" {
		t.Fatalf("expected tag-stripped anchor text, got %q", links[0].Text)
	}
}

type brokenScanner struct{}

func (brokenScanner) ScanLinks(string) ([]Link, error) {
	return nil, errors.New("scanner broken")
}

func TestExtract_FallsBackToRegexScan(t *testing.T) {
	e := NewExtractor(ExtractorParams{Scanner: brokenScanner{}})
	content := `<a href="https://cnn.com/story">CNN</a>`

	citations := e.Extract("Fox News", 1, content, true)
	if _, ok := findCitation(citations, "CNN"); !ok {
		t.Fatalf("expected regex fallback to find the CNN link, got %v", citations)
	}
}

func TestExtract_MentionPatterns(t *testing.T) {
	e := NewExtractor(ExtractorParams{})

	tests := []struct {
		name    string
		content string
		target  string
	}{
		{"according to", "The figures, according to Reuters, were revised.", "Reuters"},
		{"report by", "The allegations stem from a report by the New York Times, published in May.", "New York Times"},
		{"first reported", "Politico first reported the resignation.", "Politico"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			citations := e.Extract("CNN", 1, tt.content, false)
			c, ok := findCitation(citations, tt.target)
			if !ok {
				t.Fatalf("expected a %s mention, got %v", tt.target, citations)
			}
			if c.Kind != common.CitationMention {
				t.Fatalf("expected mention kind, got %q", c.Kind)
			}
			if c.Context == "" {
				t.Fatal("mention citations must carry the matched phrase as context")
			}
		})
	}
}

func TestExtract_InferredReference(t *testing.T) {
	e := NewExtractor(ExtractorParams{})
	citations := e.Extract("CNN", 1, "Meanwhile Breitbart ran a different angle entirely.", false)

	c, ok := findCitation(citations, "Breitbart")
	if !ok {
		t.Fatalf("expected an inferred Breitbart reference, got %v", citations)
	}
	if c.Kind != common.CitationReference {
		t.Fatalf("expected reference kind, got %q", c.Kind)
	}
}

func TestExtract_NeverCitesSelf(t *testing.T) {
	e := NewExtractor(ExtractorParams{})
	content := `CNN reporters wrote this. <a href="https://cnn.com/about">CNN</a> according to CNN, said CNN.`

	citations := e.Extract("CNN", 1, content, true)
	if _, ok := findCitation(citations, "CNN"); ok {
		t.Fatalf("self-citations must be suppressed, got %v", citations)
	}
}

func TestExtract_OneCitationPerTarget(t *testing.T) {
	e := NewExtractor(ExtractorParams{})
	content := `<a href="https://reuters.com/a">Reuters</a> and <a href="https://reuters.com/b">Reuters again</a>,
		according to Reuters, the claims held.`

	citations := e.Extract("CNN", 1, content, true)

	count := 0
	for _, c := range citations {
		if c.ToSource == "Reuters" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one Reuters citation, got %d", count)
	}
	// The hyperlink pass runs first, so it wins over the textual detectors.
	c, _ := findCitation(citations, "Reuters")
	if c.Kind != common.CitationHyperlink {
		t.Fatalf("expected the hyperlink detection to win, got %q", c.Kind)
	}
}
