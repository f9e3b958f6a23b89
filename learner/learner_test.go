package learner

import (
	"context"
	"testing"

	"github.com/coregx/ktestable/oracle"
)

func TestLearnEmpty(t *testing.T) {
	got, err := Learn(context.Background(), nil, 3, oracle.Consistent)
	if err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Learn(nil) = %v, want empty", got)
	}
}

func TestLearnSingleExample(t *testing.T) {
	got, err := Learn(context.Background(), []string{"x"}, 3, oracle.Consistent)
	if err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Learn([\"x\"]) returned %d clusters, want 1", len(got))
	}
	if leaves := got[0].Provenance.Leaves(); len(leaves) != 1 || leaves[0] != 0 {
		t.Errorf("provenance leaves = %v, want [0]", leaves)
	}
}

// TestLearnPaperDataset reproduces spec §8 scenario 5: eight examples
// cluster into exactly the three groups the reference implementation
// reports: {1,4,6}, {0,7}, {2,3,5}.
func TestLearnPaperDataset(t *testing.T) {
	examples := []string{
		"baba", "abba", "abcabc", "cbacba",
		"abbbba", "cbacbacba", "abbba", "babababc",
	}

	got, err := Learn(context.Background(), examples, 3, oracle.Consistent)
	if err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if len(got) != 3 {
		leavesByCluster := make([][]int, len(got))
		for i, r := range got {
			leavesByCluster[i] = r.Provenance.Leaves()
		}
		t.Fatalf("Learn(paper dataset) produced %d clusters, want 3: %v", len(got), leavesByCluster)
	}

	want := [][]int{{1, 4, 6}, {0, 7}, {2, 3, 5}}
	gotLeaves := make([][]int, len(got))
	for i, r := range got {
		gotLeaves[i] = r.Provenance.Leaves()
	}
	if !sameClusterSet(want, gotLeaves) {
		t.Fatalf("Learn(paper dataset) clusters = %v, want %v", gotLeaves, want)
	}
}

// sameClusterSet reports whether two partitions contain the same set
// of member-index groups, irrespective of cluster order.
func sameClusterSet(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ga := range a {
		found := false
		for j, gb := range b {
			if used[j] || !sameIntSlice(ga, gb) {
				continue
			}
			used[j] = true
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}

func sameIntSlice(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLearnDeterministic(t *testing.T) {
	examples := []string{
		"baba", "abba", "abcabc", "cbacba",
		"abbbba", "cbacbacba", "abbba", "babababc",
	}

	first, err := Learn(context.Background(), examples, 3, oracle.Consistent)
	if err != nil {
		t.Fatalf("Learn: %v", err)
	}
	second, err := Learn(context.Background(), examples, 3, oracle.Consistent)
	if err != nil {
		t.Fatalf("Learn: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("cluster counts differ across runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Descriptor.Equal(second[i].Descriptor) {
			t.Errorf("cluster %d descriptor differs across runs", i)
		}
		a, b := first[i].Provenance.Leaves(), second[i].Provenance.Leaves()
		if len(a) != len(b) {
			t.Errorf("cluster %d provenance leaf count differs: %v vs %v", i, a, b)
			continue
		}
		for j := range a {
			if a[j] != b[j] {
				t.Errorf("cluster %d provenance leaves differ: %v vs %v", i, a, b)
				break
			}
		}
	}
}

func TestLearnOracleGraphMatchesDeFacto(t *testing.T) {
	examples := []string{"baba", "abba", "abcabc", "cbacba"}

	withDeFacto, err := Learn(context.Background(), examples, 3, oracle.Consistent)
	if err != nil {
		t.Fatalf("Learn(de_facto): %v", err)
	}
	withGraph, err := Learn(context.Background(), examples, 3, oracle.ConsistentGraph)
	if err != nil {
		t.Fatalf("Learn(graph): %v", err)
	}
	if len(withDeFacto) != len(withGraph) {
		t.Errorf("cluster counts differ between oracle variants: %d vs %d", len(withDeFacto), len(withGraph))
	}
}

func TestLearnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Learn(ctx, []string{"baba", "abba"}, 3, oracle.Consistent)
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}
