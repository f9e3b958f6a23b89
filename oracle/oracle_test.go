package oracle

import (
	"math/rand"
	"testing"

	"github.com/coregx/ktestable/ktest"
)

func mustDescriptor(t *testing.T, p, s, i []string, k int) *ktest.Descriptor {
	t.Helper()
	d, err := ktest.New(p, s, i, nil, k)
	if err != nil {
		t.Fatalf("ktest.New: %v", err)
	}
	return d
}

// TestSeededScenario1: z5 = z7, identical descriptors, must be
// self-consistent (spec §8 scenario 1, also P5).
func TestSeededScenario1(t *testing.T) {
	z5 := mustDescriptor(t, []string{"ab"}, []string{"ba"}, []string{"abb", "bbb", "bba"}, 3)
	z7 := mustDescriptor(t, []string{"ab"}, []string{"ba"}, []string{"abb", "bbb", "bba"}, 3)

	got, err := Consistent(z5, z7)
	if err != nil {
		t.Fatalf("Consistent: %v", err)
	}
	if !got {
		t.Error("expected consistent(z5, z7) = true for identical descriptors")
	}
}

// TestSeededScenario2: z3 vs z4, disjoint infix sets (spec §8 scenario
// 2). white = I_A ∩ I_B = ∅, so every closure is empty and neither the
// early-reject nor the closure-reachability check can fire: consistent.
func TestSeededScenario2(t *testing.T) {
	z3 := mustDescriptor(t, []string{"ab"}, []string{"bc"}, []string{"abc", "bca", "cab"}, 3)
	z4 := mustDescriptor(t, []string{"cb"}, []string{"ba"}, []string{"cba", "bac", "acb"}, 3)

	got, err := Consistent(z3, z4)
	if err != nil {
		t.Fatalf("Consistent: %v", err)
	}
	if !got {
		t.Error("expected consistent(z3, z4) = true")
	}
}

// TestSeededScenario3: z3 vs z7 (spec §8 scenario 3).
func TestSeededScenario3(t *testing.T) {
	z3 := mustDescriptor(t, []string{"ab"}, []string{"bc"}, []string{"abc", "bca", "cab"}, 3)
	z7 := mustDescriptor(t, []string{"ab"}, []string{"ba"}, []string{"abb", "bbb", "bba"}, 3)

	got, err := Consistent(z3, z7)
	if err != nil {
		t.Fatalf("Consistent: %v", err)
	}
	if got {
		t.Error("expected consistent(z3, z7) = false")
	}
}

// TestSeededScenario4: extract("baba",3) vs extract("babababc",3)
// (spec §8 scenario 4). I("baba") = {bab,aba} is a subset of
// I("babababc") = {bab,aba,abc}, so the RED seed set is empty and the
// lone BLUE seed ("bc", from "abc"[1:]) reaches no white infix:
// consistent.
func TestSeededScenario4(t *testing.T) {
	a, err := ktest.Extract("baba", 3)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	b, err := ktest.Extract("babababc", 3)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	got, err := Consistent(a, b)
	if err != nil {
		t.Fatalf("Consistent: %v", err)
	}
	if !got {
		t.Error("expected consistent(extract(baba,3), extract(babababc,3)) = true")
	}
}

func TestConsistentSelf(t *testing.T) {
	a, _ := ktest.Extract("abcabc", 3)
	got, err := Consistent(a, a)
	if err != nil {
		t.Fatalf("Consistent: %v", err)
	}
	if !got {
		t.Error("expected consistent(A, A) = true (P5 self-consistency)")
	}
}

func TestIncompatibleK(t *testing.T) {
	a, _ := ktest.Extract("abba", 3)
	b, _ := ktest.Extract("abba", 4)
	if _, err := Consistent(a, b); err == nil {
		t.Fatal("expected IncompatibleKError from Consistent")
	}
	if _, err := ConsistentGraph(a, b); err == nil {
		t.Fatal("expected IncompatibleKError from ConsistentGraph")
	}
}

// TestOracleEquivalence checks property P4: the graph variant and the
// de-facto variant return identical booleans on every pair, across a
// population of randomly generated small descriptors.
func TestOracleEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []byte("ab")
	const k = 3

	randomString := func(n int) string {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(buf)
	}

	var descriptors []*ktest.Descriptor
	for i := 0; i < 12; i++ {
		w := randomString(rng.Intn(8))
		d, err := ktest.Extract(w, k)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		descriptors = append(descriptors, d)
	}

	for i, a := range descriptors {
		for j, b := range descriptors {
			if i == j {
				continue
			}
			wantDeFacto, err := Consistent(a, b)
			if err != nil {
				t.Fatalf("Consistent(%d,%d): %v", i, j, err)
			}
			wantGraph, err := ConsistentGraph(a, b)
			if err != nil {
				t.Fatalf("ConsistentGraph(%d,%d): %v", i, j, err)
			}
			if wantDeFacto != wantGraph {
				t.Errorf("pair (%d,%d): Consistent=%v, ConsistentGraph=%v", i, j, wantDeFacto, wantGraph)
			}
		}
	}
}
