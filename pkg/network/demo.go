package network

import "github.com/openmediawatch/backend/pkg/common"

// PopulateDemo fills n with sample outlets and citations, useful for demos
// and as a fixture for exercising the analytics end to end. Existing data is
// cleared first.
func PopulateDemo(n *Network) []common.Citation {
	n.Reset()

	demoSources := []struct {
		name, domain, bias string
	}{
		{"CNN", "cnn.com", "left"},
		{"Fox News", "foxnews.com", "right"},
		{"New York Times", "nytimes.com", "left_leaning"},
		{"Wall Street Journal", "wsj.com", "right_leaning"},
		{"Reuters", "reuters.com", "center"},
		{"MSNBC", "msnbc.com", "left"},
		{"Breitbart", "breitbart.com", "right"},
		{"NPR", "npr.org", "center"},
	}
	for _, s := range demoSources {
		n.AddSource(s.name, s.domain, s.bias)
	}

	demoCitations := []struct {
		from, to string
		kind     common.CitationKind
	}{
		{"CNN", "MSNBC", common.CitationHyperlink},
		{"CNN", "New York Times", common.CitationMention},
		{"MSNBC", "CNN", common.CitationHyperlink},
		{"New York Times", "CNN", common.CitationMention},
		{"New York Times", "NPR", common.CitationReference},
		{"Fox News", "Breitbart", common.CitationHyperlink},
		{"Fox News", "Wall Street Journal", common.CitationMention},
		{"Breitbart", "Fox News", common.CitationHyperlink},
		{"Wall Street Journal", "Fox News", common.CitationReference},
		{"Reuters", "CNN", common.CitationMention},
		{"Reuters", "Fox News", common.CitationReference},
		{"NPR", "New York Times", common.CitationMention},
		{"NPR", "Wall Street Journal", common.CitationReference},
	}
	added := make([]common.Citation, 0, len(demoCitations))
	for _, c := range demoCitations {
		// Endpoints are pre-registered, so this cannot fail.
		rec, _ := n.AddCitation(common.Citation{
			FromSource: c.from,
			ToSource:   c.to,
			Kind:       c.kind,
		})
		added = append(added, rec)
	}

	return added
}

// DemoNetwork builds a fresh network populated with the demo fixture.
func DemoNetwork() *Network {
	n := New()
	PopulateDemo(n)
	return n
}
