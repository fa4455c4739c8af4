package network

import (
	"math"
	"testing"

	"github.com/openmediawatch/backend/pkg/common"
)

func buildSnapshot(t *testing.T, edges [][2]string) *Snapshot {
	t.Helper()
	n := New()
	for _, e := range edges {
		if _, err := n.AddCitation(common.Citation{FromSource: e[0], ToSource: e[1]}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return n.Snapshot()
}

func scoreSum(scores map[string]float64) float64 {
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total
}

func TestComputeAuthority_EmptySnapshot(t *testing.T) {
	if got := ComputeAuthority(nil, DefaultAuthorityConfig()); len(got) != 0 {
		t.Fatalf("expected empty result for nil snapshot, got %v", got)
	}
	if got := ComputeAuthority(New().Snapshot(), DefaultAuthorityConfig()); len(got) != 0 {
		t.Fatalf("expected empty result for empty snapshot, got %v", got)
	}
}

func TestComputeAuthority_SymmetricCycle(t *testing.T) {
	snap := buildSnapshot(t, [][2]string{
		{"A", "B"},
		{"B", "C"},
		{"C", "A"},
	})

	scores := ComputeAuthority(snap, DefaultAuthorityConfig())
	for name, score := range scores {
		if math.Abs(score-1.0/3.0) > 1e-4 {
			t.Fatalf("cycle node %s should score ~1/3, got %f", name, score)
		}
	}
	if math.Abs(scoreSum(scores)-1.0) > 1e-6 {
		t.Fatalf("scores must sum to 1, got %f", scoreSum(scores))
	}
}

func TestComputeAuthority_MassConservesWithDanglingNodes(t *testing.T) {
	// B and C never cite anyone, so all their mass is redistributed.
	snap := buildSnapshot(t, [][2]string{
		{"A", "B"},
		{"A", "C"},
	})

	scores := ComputeAuthority(snap, DefaultAuthorityConfig())
	if math.Abs(scoreSum(scores)-1.0) > 1e-6 {
		t.Fatalf("scores must sum to 1, got %f", scoreSum(scores))
	}
	for name, score := range scores {
		if score < 0 {
			t.Fatalf("negative score for %s: %f", name, score)
		}
	}
	if scores["B"] <= scores["A"] {
		t.Fatalf("cited node should outrank its citer: A=%f B=%f", scores["A"], scores["B"])
	}
}

func TestComputeAuthority_WeightedEdgesShiftRank(t *testing.T) {
	snap := buildSnapshot(t, [][2]string{
		{"A", "B"},
		{"A", "B"},
		{"A", "B"},
		{"A", "C"},
	})

	scores := ComputeAuthority(snap, DefaultAuthorityConfig())
	if scores["B"] <= scores["C"] {
		t.Fatalf("heavier edge target should outrank: B=%f C=%f", scores["B"], scores["C"])
	}
}

func TestComputeAuthority_UniformFallbackWhenNotConverged(t *testing.T) {
	snap := buildSnapshot(t, [][2]string{
		{"A", "B"},
		{"B", "C"},
		{"C", "A"},
		{"A", "C"},
	})

	cfg := AuthorityConfig{Damping: 0.85, Tolerance: 0, MaxIterations: 1}
	scores := ComputeAuthority(snap, cfg)

	want := 1.0 / 3.0
	for name, score := range scores {
		if score != want {
			t.Fatalf("expected exact uniform fallback for %s, got %f", name, score)
		}
	}
}
