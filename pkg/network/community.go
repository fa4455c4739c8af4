package network

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/openmediawatch/backend/pkg/common"
	"github.com/openmediawatch/backend/pkg/logger"
)

// Partitioner groups the snapshot's sources into clusters, returning a
// cluster id per source name. Implementations must be deterministic for a
// fixed configuration so detection results are reproducible.
type Partitioner interface {
	Partition(snap *Snapshot) (map[string]int, error)
}

// LouvainPartitioner clusters by modularity maximization over the graph
// treated as undirected, with edge weight the sum of the two directional
// weights. The random seed fixes the node visiting order, making results
// reproducible across runs.
type LouvainPartitioner struct {
	Seed          int64
	MaxIterations int
}

// NewLouvainPartitioner returns a modularity partitioner with the default
// seed and iteration cap.
func NewLouvainPartitioner() *LouvainPartitioner {
	return &LouvainPartitioner{Seed: 42, MaxIterations: 10}
}

// Partition runs the local-moving phase of modularity optimization: every
// node starts in its own community and is greedily moved to the neighboring
// community with the highest modularity gain until a pass yields no
// improvement.
func (p *LouvainPartitioner) Partition(snap *Snapshot) (map[string]int, error) {
	if snap == nil || len(snap.Sources) == 0 {
		return nil, errors.New("empty snapshot")
	}

	nodes := make([]string, 0, len(snap.Sources))
	for name := range snap.Sources {
		nodes = append(nodes, name)
	}
	sort.Strings(nodes)

	// Undirected adjacency: weight(u,v) = w(u->v) + w(v->u).
	adj := make(map[string]map[string]float64, len(nodes))
	for _, name := range nodes {
		adj[name] = make(map[string]float64)
	}
	for from, targets := range snap.Edges {
		for to, w := range targets {
			if from == to {
				continue
			}
			adj[from][to] += float64(w)
			adj[to][from] += float64(w)
		}
	}

	strength := make(map[string]float64, len(nodes))
	totalWeight := 0.0
	for _, name := range nodes {
		for _, w := range adj[name] {
			strength[name] += w
		}
		totalWeight += strength[name]
	}
	totalWeight /= 2

	nodeComm := make(map[string]int, len(nodes))
	commStrength := make(map[int]float64, len(nodes))
	for i, name := range nodes {
		nodeComm[name] = i
		commStrength[i] = strength[name]
	}

	if totalWeight == 0 {
		return nodeComm, nil
	}

	maxIter := p.MaxIterations
	if maxIter <= 0 {
		maxIter = 10
	}
	rng := rand.New(rand.NewSource(p.Seed))

	for iter := 0; iter < maxIter; iter++ {
		improved := false

		order := make([]string, len(nodes))
		copy(order, nodes)
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for _, name := range order {
			current := nodeComm[name]
			ki := strength[name]

			// Weight from this node into each neighboring community.
			commLinks := make(map[int]float64)
			for neighbor, w := range adj[name] {
				commLinks[nodeComm[neighbor]] += w
			}

			commStrength[current] -= ki

			candidates := make([]int, 0, len(commLinks)+1)
			seen := map[int]bool{current: true}
			candidates = append(candidates, current)
			for comm := range commLinks {
				if !seen[comm] {
					seen[comm] = true
					candidates = append(candidates, comm)
				}
			}
			sort.Ints(candidates)

			bestComm := current
			bestGain := gainFor(commLinks[current], ki, commStrength[current], totalWeight)
			for _, comm := range candidates {
				gain := gainFor(commLinks[comm], ki, commStrength[comm], totalWeight)
				if gain > bestGain {
					bestGain = gain
					bestComm = comm
				}
			}

			commStrength[bestComm] += ki
			if bestComm != current {
				nodeComm[name] = bestComm
				improved = true
			}
		}

		if !improved {
			break
		}
	}

	return nodeComm, nil
}

// gainFor is the modularity gain of joining a community: the fraction of
// edge mass linking the node in, minus the expected fraction under the
// configuration null model.
func gainFor(linksIn, ki, commTotal, m float64) float64 {
	return linksIn/m - ki*commTotal/(2*m*m)
}

// BiasPartitioner is the deterministic fallback: one cluster per distinct
// bias label, in the order labels are first encountered over the sources
// sorted by name.
type BiasPartitioner struct{}

// Partition groups sources purely by their current bias label.
func (BiasPartitioner) Partition(snap *Snapshot) (map[string]int, error) {
	if snap == nil {
		return nil, errors.New("empty snapshot")
	}

	names := make([]string, 0, len(snap.Sources))
	for name := range snap.Sources {
		names = append(names, name)
	}
	sort.Strings(names)

	biasComm := make(map[string]int)
	partition := make(map[string]int, len(names))
	next := 0
	for _, name := range names {
		bias := snap.Sources[name].Bias
		comm, ok := biasComm[bias]
		if !ok {
			comm = next
			biasComm[bias] = comm
			next++
		}
		partition[name] = comm
	}
	return partition, nil
}

// Detector finds echo chambers by partitioning the citation graph and
// scoring each surviving cluster. The partition strategy is chosen at
// construction; when it fails the detector degrades to bias-label grouping
// instead of surfacing an error.
type Detector struct {
	net         *Network
	partitioner Partitioner
	minSize     int
}

// DetectorParams configures a Detector. A nil Partitioner selects the
// modularity method; MinSize below 1 uses the default of 3.
type DetectorParams struct {
	Partitioner Partitioner
	MinSize     int
}

// NewDetector creates an echo-chamber detector over the given network.
func NewDetector(net *Network, params DetectorParams) *Detector {
	p := params.Partitioner
	if p == nil {
		p = NewLouvainPartitioner()
	}
	minSize := params.MinSize
	if minSize < 1 {
		minSize = 3
	}
	return &Detector{net: net, partitioner: p, minSize: minSize}
}

// Detect partitions the current graph and returns every cluster of at least
// the configured minimum size, scored and ordered by descending insularity.
// Graphs with fewer than two sources yield no chambers.
func (d *Detector) Detect() []common.EchoChamber {
	d.net.refreshScores()
	snap := d.net.Snapshot()

	if len(snap.Sources) < 2 {
		return nil
	}

	partition, err := d.partitioner.Partition(snap)
	if err != nil {
		logger.Warn("[Network] Partitioner failed, falling back to bias grouping", "err", err)
		partition, _ = BiasPartitioner{}.Partition(snap)
	}

	members := make(map[int][]string)
	for name, comm := range partition {
		members[comm] = append(members[comm], name)
	}

	commIDs := make([]int, 0, len(members))
	for comm := range members {
		commIDs = append(commIDs, comm)
	}
	sort.Ints(commIDs)

	chambers := make([]common.EchoChamber, 0, len(commIDs))
	for _, comm := range commIDs {
		group := members[comm]
		if len(group) < d.minSize {
			continue
		}
		sort.Strings(group)
		chambers = append(chambers, scoreChamber(snap, comm, group))
	}

	sort.SliceStable(chambers, func(i, j int) bool {
		return chambers[i].InsularityScore > chambers[j].InsularityScore
	})
	return chambers
}

func scoreChamber(snap *Snapshot, id int, group []string) common.EchoChamber {
	inGroup := make(map[string]bool, len(group))
	for _, name := range group {
		inGroup[name] = true
	}

	biasCounts := make(map[string]int)
	dominant := BiasUnknown
	best := 0
	for _, name := range group {
		bias := snap.Sources[name].Bias
		biasCounts[bias]++
		if biasCounts[bias] > best {
			best = biasCounts[bias]
			dominant = bias
		}
	}

	internal, external := 0, 0
	for _, c := range snap.Citations {
		if !inGroup[c.FromSource] {
			continue
		}
		if inGroup[c.ToSource] {
			internal++
		} else {
			external++
		}
	}

	insularity := 0.0
	if internal+external > 0 {
		insularity = float64(internal) / float64(internal+external)
	}

	authority := 0.0
	for _, name := range group {
		authority += snap.Sources[name].AuthorityScore
	}
	authority /= float64(len(group))

	return common.EchoChamber{
		ChamberID:         id,
		Sources:           group,
		DominantBias:      dominant,
		InternalCitations: internal,
		ExternalCitations: external,
		InsularityScore:   insularity,
		AvgAuthority:      authority,
	}
}
