package network

import (
	"errors"
	"fmt"
	"sync"

	"github.com/openmediawatch/backend/pkg/common"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrEmptyEndpoint is returned when a citation names an empty source or
// target. The network is left untouched in that case.
var ErrEmptyEndpoint = errors.New("citation endpoints must not be empty")

// BiasUnknown is the bias label assigned to sources registered without one.
const BiasUnknown = "unknown"

// Network is the mutable citation graph for one analysis session: a set of
// source nodes, the ordered list of recorded citations, and the aggregate
// edge weights folded from them.
//
// All mutating operations are serialized under a single mutex; derived
// computations (authority, chambers, analytics) run over a Snapshot so they
// never observe a half-applied update.
type Network struct {
	mu sync.RWMutex

	sources   map[string]*common.Source
	citations []common.Citation
	edges     map[string]map[string]int

	scoresStale bool
}

// Snapshot is an immutable copy of the network state. Authority scoring and
// community partitioning are pure functions over a snapshot and may run on
// worker goroutines without holding the network lock.
type Snapshot struct {
	Sources   map[string]common.Source
	Citations []common.Citation
	Edges     map[string]map[string]int
}

// New creates an empty citation network.
func New() *Network {
	return &Network{
		sources: make(map[string]*common.Source),
		edges:   make(map[string]map[string]int),
	}
}

// AddSource registers a source if it is not already present. Registration is
// idempotent: the first registration wins and a second call never overwrites
// the stored domain or bias label.
func (n *Network) AddSource(name, domain, bias string) {
	if name == "" {
		return
	}
	if bias == "" {
		bias = BiasUnknown
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.addSourceLocked(name, domain, bias)
}

func (n *Network) addSourceLocked(name, domain, bias string) *common.Source {
	if s, ok := n.sources[name]; ok {
		return s
	}
	s := &common.Source{
		Name:   name,
		Domain: domain,
		Bias:   bias,
	}
	n.sources[name] = s
	n.scoresStale = true
	return s
}

// AddCitation records one citation and folds it into the aggregate edge
// weights and per-source counters. Both endpoints are auto-registered with
// default attributes if missing, and the endpoint bias labels are snapshotted
// onto the citation unless it already carries them (seeding from persisted
// records keeps the historical labels).
//
// The returned citation is the stored record, with its ID assigned if it had
// none. A citation with an empty endpoint is rejected without mutating any
// state.
func (n *Network) AddCitation(c common.Citation) (common.Citation, error) {
	if c.FromSource == "" || c.ToSource == "" {
		return common.Citation{}, ErrEmptyEndpoint
	}
	if c.Kind == "" {
		c.Kind = common.CitationHyperlink
	}
	if c.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return common.Citation{}, fmt.Errorf("failed to generate citation ID: %w", err)
		}
		c.ID = id
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	from := n.addSourceLocked(c.FromSource, "", BiasUnknown)
	to := n.addSourceLocked(c.ToSource, "", BiasUnknown)

	if c.FromBias == "" {
		c.FromBias = from.Bias
	}
	if c.ToBias == "" {
		c.ToBias = to.Bias
	}

	n.citations = append(n.citations, c)

	if n.edges[c.FromSource] == nil {
		n.edges[c.FromSource] = make(map[string]int)
	}
	n.edges[c.FromSource][c.ToSource]++

	from.CitationsMade++
	to.CitationsReceived++

	// Same vs cross-bias bookkeeping compares the live labels at insertion
	// time; the snapshotted labels on the citation itself serve historical
	// analyses.
	if from.Bias == to.Bias {
		from.SameBiasCitations++
	} else {
		from.DifferentBiasCitations++
	}

	n.scoresStale = true
	return c, nil
}

// Reset clears all sources, citations, and edges atomically.
func (n *Network) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sources = make(map[string]*common.Source)
	n.citations = nil
	n.edges = make(map[string]map[string]int)
	n.scoresStale = false
}

// TotalSources returns the number of registered sources.
func (n *Network) TotalSources() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.sources)
}

// TotalCitations returns the number of recorded citations.
func (n *Network) TotalCitations() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.citations)
}

// Source returns a copy of the named source's current stats.
func (n *Network) Source(name string) (common.Source, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	s, ok := n.sources[name]
	if !ok {
		return common.Source{}, false
	}
	return *s, true
}

// EdgeWeight returns the aggregate weight of the (from, to) edge, or zero if
// no such edge exists.
func (n *Network) EdgeWeight(from, to string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.edges[from][to]
}

// Citations returns a copy of the citation list in insertion order.
func (n *Network) Citations() []common.Citation {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]common.Citation, len(n.citations))
	copy(out, n.citations)
	return out
}

// Snapshot copies the current state for lock-free derived computations.
func (n *Network) Snapshot() *Snapshot {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.snapshotLocked()
}

func (n *Network) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		Sources:   make(map[string]common.Source, len(n.sources)),
		Citations: make([]common.Citation, len(n.citations)),
		Edges:     make(map[string]map[string]int, len(n.edges)),
	}
	for name, s := range n.sources {
		snap.Sources[name] = *s
	}
	copy(snap.Citations, n.citations)
	for from, targets := range n.edges {
		row := make(map[string]int, len(targets))
		for to, w := range targets {
			row[to] = w
		}
		snap.Edges[from] = row
	}
	return snap
}

// refreshScores recomputes authority and echo-chamber scores if any mutation
// happened since the last computation.
func (n *Network) refreshScores() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.scoresStale {
		return
	}

	scores := ComputeAuthority(n.snapshotLocked(), DefaultAuthorityConfig())
	for name, s := range n.sources {
		s.AuthorityScore = scores[name]

		total := s.SameBiasCitations + s.DifferentBiasCitations
		if total > 0 {
			s.EchoChamberScore = float64(s.SameBiasCitations) / float64(total)
		} else {
			s.EchoChamberScore = 0
		}
	}
	n.scoresStale = false
}
