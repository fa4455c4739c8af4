package network

import (
	"math"
	"reflect"
	"testing"

	"github.com/openmediawatch/backend/pkg/common"
)

func TestSourcesList_SortKeys(t *testing.T) {
	n := New()
	n.AddSource("Alpha", "alpha.com", "left")
	n.AddSource("Beta", "beta.com", "right")
	n.AddSource("Gamma", "gamma.com", "center")
	for i := 0; i < 3; i++ {
		if _, err := n.AddCitation(common.Citation{FromSource: "Alpha", ToSource: "Beta"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := n.AddCitation(common.Citation{FromSource: "Gamma", ToSource: "Alpha"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := func(list []common.Source) []string {
		out := make([]string, len(list))
		for i, s := range list {
			out[i] = s.Name
		}
		return out
	}

	tests := []struct {
		sortBy string
		want   []string
	}{
		{SortByName, []string{"Alpha", "Beta", "Gamma"}},
		{SortByCitationsReceived, []string{"Beta", "Alpha", "Gamma"}},
		{SortByCitationsMade, []string{"Alpha", "Gamma", "Beta"}},
		{SortByAuthority, []string{"Beta", "Alpha", "Gamma"}},
		{"bogus", []string{"Beta", "Alpha", "Gamma"}},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			got := names(n.SourcesList(tt.sortBy))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("sort_by=%s: got %v, want %v", tt.sortBy, got, tt.want)
			}
		})
	}
}

func TestSourcesList_ScoresAreFresh(t *testing.T) {
	n := New()
	if _, err := n.AddCitation(common.Citation{FromSource: "A", ToSource: "B"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range n.SourcesList(SortByAuthority) {
		if s.AuthorityScore <= 0 {
			t.Fatalf("expected refreshed authority for %s, got %f", s.Name, s.AuthorityScore)
		}
	}
}

func TestMostCitedAndMostCiting_TieBreakByName(t *testing.T) {
	n := New()
	if _, err := n.AddCitation(common.Citation{FromSource: "Citer", ToSource: "Bravo"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := n.AddCitation(common.Citation{FromSource: "Citer", ToSource: "Alpha"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cited := n.MostCited(2)
	want := []RankedSource{{Name: "Alpha", Count: 1}, {Name: "Bravo", Count: 1}}
	if !reflect.DeepEqual(cited, want) {
		t.Fatalf("unexpected most cited: got %v, want %v", cited, want)
	}

	citing := n.MostCiting(1)
	if len(citing) != 1 || citing[0].Name != "Citer" || citing[0].Count != 2 {
		t.Fatalf("unexpected most citing: %v", citing)
	}
}

func TestCrossBias_MatrixAndTotals(t *testing.T) {
	n := New()
	n.AddSource("CNN", "cnn.com", "left")
	n.AddSource("MSNBC", "msnbc.com", "left")
	n.AddSource("Fox News", "foxnews.com", "right")

	if _, err := n.AddCitation(common.Citation{FromSource: "CNN", ToSource: "MSNBC"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := n.AddCitation(common.Citation{FromSource: "CNN", ToSource: "Fox News"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := n.CrossBias()

	if !reflect.DeepEqual(report.Labels, []string{"left", "right"}) {
		t.Fatalf("unexpected label enumeration: %v", report.Labels)
	}
	if report.Matrix["left"]["left"] != 1 || report.Matrix["left"]["right"] != 1 {
		t.Fatalf("unexpected matrix: %v", report.Matrix)
	}
	// Every cell of the enumeration exists, including the zero ones.
	if _, ok := report.Matrix["right"]["left"]; !ok {
		t.Fatal("zero cells must still be present")
	}
	if report.TotalSameBias != 1 || report.TotalDifferentBias != 1 {
		t.Fatalf("unexpected totals: same=%d cross=%d", report.TotalSameBias, report.TotalDifferentBias)
	}
}

func TestCrossBias_UsesSnapshottedLabels(t *testing.T) {
	n := New()
	n.AddSource("CNN", "cnn.com", "left")
	n.AddSource("MSNBC", "msnbc.com", "left")

	// Replay of a record persisted before MSNBC was reclassified.
	if _, err := n.AddCitation(common.Citation{
		FromSource: "CNN",
		ToSource:   "MSNBC",
		FromBias:   "left",
		ToBias:     "center",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := n.CrossBias()
	if report.Matrix["left"]["center"] != 1 {
		t.Fatalf("historical labels must drive the matrix: %v", report.Matrix)
	}
	if report.TotalDifferentBias != 1 || report.TotalSameBias != 0 {
		t.Fatalf("unexpected totals: same=%d cross=%d", report.TotalSameBias, report.TotalDifferentBias)
	}
}

func TestSummarize_DemoNetwork(t *testing.T) {
	n := DemoNetwork()
	s := n.Summarize()

	if s.TotalSources != 8 || s.TotalCitations != 13 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if math.Abs(s.AvgCitationsPerSource-13.0/8.0) > 1e-9 {
		t.Fatalf("unexpected average citations per source: %f", s.AvgCitationsPerSource)
	}
	if len(s.MostCited) != 5 || len(s.MostCiting) != 5 {
		t.Fatalf("expected top-5 lists, got %d and %d", len(s.MostCited), len(s.MostCiting))
	}
	// 13 distinct directed pairs over 8 nodes.
	if math.Abs(s.NetworkDensity-13.0/56.0) > 1e-9 {
		t.Fatalf("unexpected density: %f", s.NetworkDensity)
	}
	if s.AvgEchoChamberScore <= 0 || s.AvgEchoChamberScore > 1 {
		t.Fatalf("echo chamber score out of range: %f", s.AvgEchoChamberScore)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := New().Summarize()
	if s.TotalSources != 0 || s.TotalCitations != 0 || s.NetworkDensity != 0 || s.AvgCitationsPerSource != 0 {
		t.Fatalf("empty network summary not zeroed: %+v", s)
	}
}

func TestExportForVisualization_Deterministic(t *testing.T) {
	n := DemoNetwork()
	export := n.ExportForVisualization()

	if len(export.Nodes) != 8 || len(export.Edges) != 13 {
		t.Fatalf("unexpected export shape: %d nodes, %d edges", len(export.Nodes), len(export.Edges))
	}
	for i := 1; i < len(export.Nodes); i++ {
		if export.Nodes[i-1].ID >= export.Nodes[i].ID {
			t.Fatal("nodes not sorted by id")
		}
	}
	for i := 1; i < len(export.Edges); i++ {
		prev, cur := export.Edges[i-1], export.Edges[i]
		if prev.Source > cur.Source || (prev.Source == cur.Source && prev.Target >= cur.Target) {
			t.Fatal("edges not sorted by source then target")
		}
	}
	if !reflect.DeepEqual(export, n.ExportForVisualization()) {
		t.Fatal("export not deterministic")
	}
}
