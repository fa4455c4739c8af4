package network

import (
	"sort"

	"github.com/openmediawatch/backend/pkg/common"
)

// RankedSource pairs a source name with the counter it was ranked by.
type RankedSource struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CrossBiasReport is the citation count matrix between bias labels, with
// aggregate same-vs-cross totals. Labels is the fixed enumeration the matrix
// is keyed by, in sorted order. Classification uses the bias labels
// snapshotted on each citation, not the live source labels.
type CrossBiasReport struct {
	Labels             []string                  `json:"labels"`
	Matrix             map[string]map[string]int `json:"cross_bias_matrix"`
	TotalSameBias      int                       `json:"total_same_bias_citations"`
	TotalDifferentBias int                       `json:"total_cross_bias_citations"`
}

// Summary is the top-level view of the network's shape.
type Summary struct {
	TotalSources          int            `json:"total_sources"`
	TotalCitations        int            `json:"total_citations"`
	AvgCitationsPerSource float64        `json:"avg_citations_per_source"`
	MostCited             []RankedSource `json:"most_cited"`
	MostCiting            []RankedSource `json:"most_citing"`
	AvgEchoChamberScore   float64        `json:"avg_echo_chamber_score"`
	NetworkDensity        float64        `json:"network_density"`
}

// Export is the flat node/edge dump for external rendering.
type Export struct {
	Nodes []common.NodeExport `json:"nodes"`
	Edges []common.EdgeExport `json:"edges"`
}

// Sort keys accepted by SourcesList. Name sorts ascending, the numeric keys
// descending with ties broken by name.
const (
	SortByAuthority         = "authority"
	SortByCitationsReceived = "citations_received"
	SortByCitationsMade     = "citations_made"
	SortByEchoChamberScore  = "echo_chamber_score"
	SortByName              = "name"
)

// SourcesList returns every source with fresh derived scores, sorted by the
// given key. Unrecognized keys fall back to authority.
func (n *Network) SourcesList(sortBy string) []common.Source {
	n.refreshScores()
	snap := n.Snapshot()

	list := make([]common.Source, 0, len(snap.Sources))
	for _, s := range snap.Sources {
		list = append(list, s)
	}

	less := func(a, b common.Source, key func(common.Source) float64) bool {
		ka, kb := key(a), key(b)
		if ka != kb {
			return ka > kb
		}
		return a.Name < b.Name
	}

	switch sortBy {
	case SortByName:
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	case SortByCitationsReceived:
		sort.Slice(list, func(i, j int) bool {
			return less(list[i], list[j], func(s common.Source) float64 { return float64(s.CitationsReceived) })
		})
	case SortByCitationsMade:
		sort.Slice(list, func(i, j int) bool {
			return less(list[i], list[j], func(s common.Source) float64 { return float64(s.CitationsMade) })
		})
	case SortByEchoChamberScore:
		sort.Slice(list, func(i, j int) bool {
			return less(list[i], list[j], func(s common.Source) float64 { return s.EchoChamberScore })
		})
	default:
		sort.Slice(list, func(i, j int) bool {
			return less(list[i], list[j], func(s common.Source) float64 { return s.AuthorityScore })
		})
	}

	return list
}

// MostCited returns the top n sources by citations received, ties broken by
// name ascending.
func (n *Network) MostCited(limit int) []RankedSource {
	n.refreshScores()
	snap := n.Snapshot()
	return rank(snap, limit, func(s common.Source) int { return s.CitationsReceived })
}

// MostCiting returns the top n sources by citations made, ties broken by
// name ascending.
func (n *Network) MostCiting(limit int) []RankedSource {
	n.refreshScores()
	snap := n.Snapshot()
	return rank(snap, limit, func(s common.Source) int { return s.CitationsMade })
}

func rank(snap *Snapshot, limit int, count func(common.Source) int) []RankedSource {
	ranked := make([]RankedSource, 0, len(snap.Sources))
	for _, s := range snap.Sources {
		ranked = append(ranked, RankedSource{Name: s.Name, Count: count(s)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// CrossBias builds the citation count matrix between bias labels. The label
// enumeration is fixed up front from everything the network has seen (source
// labels plus citation snapshots), so every cell exists even when zero.
func (n *Network) CrossBias() CrossBiasReport {
	snap := n.Snapshot()

	labelSet := make(map[string]bool)
	for _, s := range snap.Sources {
		labelSet[s.Bias] = true
	}
	for _, c := range snap.Citations {
		labelSet[c.FromBias] = true
		labelSet[c.ToBias] = true
	}
	delete(labelSet, "")

	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}
	cells := make([][]int, len(labels))
	for i := range cells {
		cells[i] = make([]int, len(labels))
	}

	report := CrossBiasReport{Labels: labels}
	for _, c := range snap.Citations {
		from, okFrom := index[c.FromBias]
		to, okTo := index[c.ToBias]
		if !okFrom || !okTo {
			continue
		}
		cells[from][to]++
		if c.FromBias == c.ToBias {
			report.TotalSameBias++
		} else {
			report.TotalDifferentBias++
		}
	}

	report.Matrix = make(map[string]map[string]int, len(labels))
	for i, from := range labels {
		row := make(map[string]int, len(labels))
		for j, to := range labels {
			row[to] = cells[i][j]
		}
		report.Matrix[from] = row
	}
	return report
}

// Summarize computes the network-level statistics.
func (n *Network) Summarize() Summary {
	n.refreshScores()
	snap := n.Snapshot()

	s := Summary{
		TotalSources:   len(snap.Sources),
		TotalCitations: len(snap.Citations),
		MostCited:      rank(snap, 5, func(src common.Source) int { return src.CitationsReceived }),
		MostCiting:     rank(snap, 5, func(src common.Source) int { return src.CitationsMade }),
	}

	if len(snap.Sources) > 0 {
		s.AvgCitationsPerSource = float64(len(snap.Citations)) / float64(len(snap.Sources))

		echoTotal := 0.0
		for _, src := range snap.Sources {
			echoTotal += src.EchoChamberScore
		}
		s.AvgEchoChamberScore = echoTotal / float64(len(snap.Sources))
	}

	// Directed density over a simple graph without self-loops.
	if nodes := len(snap.Sources); nodes > 1 {
		edges := 0
		for _, targets := range snap.Edges {
			edges += len(targets)
		}
		s.NetworkDensity = float64(edges) / float64(nodes*(nodes-1))
	}

	return s
}

// ExportForVisualization dumps the network as flat node and edge records,
// both in deterministic order.
func (n *Network) ExportForVisualization() Export {
	n.refreshScores()
	snap := n.Snapshot()

	nodes := make([]common.NodeExport, 0, len(snap.Sources))
	for _, s := range snap.Sources {
		nodes = append(nodes, common.NodeExport{
			ID:                s.Name,
			Domain:            s.Domain,
			Bias:              s.Bias,
			Authority:         s.AuthorityScore,
			CitationsReceived: s.CitationsReceived,
			CitationsMade:     s.CitationsMade,
		})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	edges := make([]common.EdgeExport, 0)
	for from, targets := range snap.Edges {
		for to, w := range targets {
			edges = append(edges, common.EdgeExport{Source: from, Target: to, Weight: w})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	return Export{Nodes: nodes, Edges: edges}
}
