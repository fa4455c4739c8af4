package network

import "math"

// AuthorityConfig bounds the iterative authority computation. The iteration
// cap is the only bounded-time guarantee in the engine; when it is reached
// without convergence the scorer falls back to a uniform distribution
// instead of failing.
type AuthorityConfig struct {
	Damping       float64
	Tolerance     float64
	MaxIterations int
}

// DefaultAuthorityConfig mirrors the usual random-surfer parameters.
func DefaultAuthorityConfig() AuthorityConfig {
	return AuthorityConfig{
		Damping:       0.85,
		Tolerance:     1e-6,
		MaxIterations: 100,
	}
}

// ComputeAuthority calculates a normalized importance score per source via
// weighted PageRank over the snapshot's aggregate edges. Scores are
// non-negative and sum to 1 across the graph. Sources with no outgoing edges
// are handled as dangling nodes: their mass is redistributed uniformly on
// each iteration so no probability leaks.
//
// A nil or empty snapshot yields an empty result.
func ComputeAuthority(snap *Snapshot, cfg AuthorityConfig) map[string]float64 {
	if snap == nil || len(snap.Sources) == 0 {
		return map[string]float64{}
	}

	nodes := make([]string, 0, len(snap.Sources))
	for name := range snap.Sources {
		nodes = append(nodes, name)
	}
	n := float64(len(nodes))

	// Total outgoing weight per node, for proportional distribution.
	outWeight := make(map[string]float64, len(nodes))
	for from, targets := range snap.Edges {
		for _, w := range targets {
			outWeight[from] += float64(w)
		}
	}

	scores := make(map[string]float64, len(nodes))
	for _, name := range nodes {
		scores[name] = 1 / n
	}

	converged := false
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		next := make(map[string]float64, len(nodes))

		danglingMass := 0.0
		for _, name := range nodes {
			if outWeight[name] == 0 {
				danglingMass += scores[name]
			}
		}

		base := (1-cfg.Damping)/n + cfg.Damping*danglingMass/n
		for _, name := range nodes {
			next[name] = base
		}
		for from, targets := range snap.Edges {
			if outWeight[from] == 0 {
				continue
			}
			share := cfg.Damping * scores[from] / outWeight[from]
			for to, w := range targets {
				next[to] += share * float64(w)
			}
		}

		delta := 0.0
		for _, name := range nodes {
			delta += math.Abs(next[name] - scores[name])
		}
		scores = next

		if delta < cfg.Tolerance {
			converged = true
			break
		}
	}

	if !converged {
		for _, name := range nodes {
			scores[name] = 1 / n
		}
	}

	return scores
}
