package common

// CitationKind classifies how a citation was detected.
type CitationKind string

const (
	// CitationHyperlink is a citation found as an embedded link in markup.
	CitationHyperlink CitationKind = "hyperlink"
	// CitationMention is a citation found through an attribution phrase
	// ("according to X", "X reported").
	CitationMention CitationKind = "mention"
	// CitationReference is a citation inferred from a bare occurrence of a
	// known source name in plain text.
	CitationReference CitationKind = "reference"
)

// Source represents one news outlet node in the citation network, together
// with its aggregate counters. The name is the identity key and unique
// within a network.
//
// AuthorityScore and EchoChamberScore are derived values: they are zero
// until the corresponding computation has run and are refreshed on demand.
type Source struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Bias   string `json:"political_bias"`

	CitationsMade     int     `json:"citations_made"`
	CitationsReceived int     `json:"citations_received"`
	AuthorityScore    float64 `json:"authority_score"`
	EchoChamberScore  float64 `json:"echo_chamber_score"`

	SameBiasCitations      int `json:"same_bias_citations"`
	DifferentBiasCitations int `json:"different_bias_citations"`
}

// Citation is one directed edge instance between two sources. Citations are
// immutable once recorded. FromBias and ToBias capture the endpoint bias
// labels at the time the citation was recorded, so historical analyses stay
// stable when a source is later reclassified.
type Citation struct {
	ID         string       `json:"id,omitempty"`
	FromSource string       `json:"from_source"`
	ToSource   string       `json:"to_source"`
	ArticleID  int64        `json:"from_article_id,omitempty"`
	ToURL      string       `json:"to_url,omitempty"`
	Context    string       `json:"context,omitempty"`
	Kind       CitationKind `json:"citation_type"`
	FromBias   string       `json:"from_bias,omitempty"`
	ToBias     string       `json:"to_bias,omitempty"`
}

// EchoChamber is a detected cluster of sources whose citation traffic is
// disproportionately internal. Chambers are recomputed fresh on every
// detection run and never persisted.
type EchoChamber struct {
	ChamberID         int      `json:"chamber_id"`
	Sources           []string `json:"sources"`
	DominantBias      string   `json:"dominant_bias"`
	InternalCitations int      `json:"internal_citations"`
	ExternalCitations int      `json:"external_citations"`
	InsularityScore   float64  `json:"insularity_score"`
	AvgAuthority      float64  `json:"avg_authority"`
}

// NodeExport is a flat node record for external rendering.
type NodeExport struct {
	ID                string  `json:"id"`
	Domain            string  `json:"domain"`
	Bias              string  `json:"bias"`
	Authority         float64 `json:"authority"`
	CitationsReceived int     `json:"citations_received"`
	CitationsMade     int     `json:"citations_made"`
}

// EdgeExport is a flat aggregate-edge record for external rendering. Weight
// is the number of citations recorded for the (Source, Target) pair.
type EdgeExport struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}
