// Package oracle implements the union-consistency predicate of spec
// §4.3: given two k-TSS descriptors A and B, decide whether the
// language accepted by the k-local acceptor built from A ∪ B equals
// the union of the languages A and B accept on their own, i.e.
// whether merging A and B would "cross-contaminate" via shared
// factors and admit strings neither operand alone would accept.
//
// Two equivalent formulations are provided: Consistent (the required
// de-facto, transitive-closure variant) and ConsistentGraph (the
// reference bipartite-reachability variant used only to cross-check
// Consistent in tests).
package oracle

import (
	"github.com/coregx/ktestable/internal/conv"
	"github.com/coregx/ktestable/internal/sparse"
	"github.com/coregx/ktestable/ktest"
)

// Consistent decides is_union_consistent_with(A, B) using the de-facto
// (transitive-closure) variant of spec §4.3.2: it is linear in
// |I_A ∪ I_B| and is the variant Learn uses to drive merges.
func Consistent(a, b *ktest.Descriptor) (bool, error) {
	if a.K() != b.K() {
		return false, &ktest.IncompatibleKError{A: a.K(), B: b.K()}
	}
	k := a.K()

	pa, sa, ia, _ := a.RawFactors()
	pb, sb, ib, _ := b.RawFactors()

	redInfixes := difference(ia, ib)
	redStart := difference(pa, pb)
	addHeads(redStart, redInfixes)
	redStop := difference(sa, sb)
	addTails(redStop, redInfixes)

	blueInfixes := difference(ib, ia)
	blueStart := difference(pb, pa)
	addHeads(blueStart, blueInfixes)
	blueStop := difference(sb, sa)
	addTails(blueStop, blueInfixes)

	// Early reject: the two colors meet at a single factor boundary.
	if intersects(redStart, blueStop) || intersects(blueStart, redStop) {
		return false, nil
	}

	white := intersection(ia, ib)

	redReached := closure(redStart, white, k)
	blueReached := closure(blueStart, white, k)

	redEnd := tailsOf(redReached)
	blueEnd := tailsOf(blueReached)

	return !intersects(redEnd, blueStop) && !intersects(blueEnd, redStop), nil
}

// difference returns the elements of a not present in b.
func difference(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(a))
	for e := range a {
		if _, ok := b[e]; !ok {
			out[e] = struct{}{}
		}
	}
	return out
}

// intersection returns the elements present in both a and b.
func intersection(a, b map[string]struct{}) map[string]struct{} {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	out := make(map[string]struct{}, len(small))
	for e := range small {
		if _, ok := large[e]; ok {
			out[e] = struct{}{}
		}
	}
	return out
}

func intersects(a, b map[string]struct{}) bool {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for e := range small {
		if _, ok := large[e]; ok {
			return true
		}
	}
	return false
}

// addHeads adds inf[1:] (the start a RED/BLUE-tainted walk can resume
// from) for every infix in infixes, into dst.
func addHeads(dst, infixes map[string]struct{}) {
	for inf := range infixes {
		dst[inf[1:]] = struct{}{}
	}
}

// addTails adds inf[:len(inf)-1] (the point a RED/BLUE-tainted walk can
// stop at) for every infix in infixes, into dst.
func addTails(dst, infixes map[string]struct{}) {
	for inf := range infixes {
		dst[inf[:len(inf)-1]] = struct{}{}
	}
}

func tailsOf(infixes []string) map[string]struct{} {
	out := make(map[string]struct{}, len(infixes))
	for _, inf := range infixes {
		out[inf[1:]] = struct{}{}
	}
	return out
}

// closure computes the set of white infixes reachable by starting at
// any u ∈ seeds and following u → inf iff inf ∈ white ∧ inf[:k-1] == u,
// then iteratively inf → inf' iff inf'[:k-1] == inf[1:] (spec §4.3.2
// step 5). White infixes are indexed by head into a multimap, and each
// head's bucket is removed from it on first use, so no bucket is
// scanned twice. Infixes are interned to small integers so that "visit
// each infix at most once" can be tracked with a sparse.SparseSet,
// giving the worklist the same amortized-linear discipline as NFA
// epsilon-closure over interned state IDs, instead of a map[string]bool.
func closure(seeds, white map[string]struct{}, k int) []string {
	list := make([]string, 0, len(white))
	headIndex := make(map[string][]int, len(white))
	for inf := range white {
		id := len(list)
		list = append(list, inf)
		head := inf[:k-1]
		headIndex[head] = append(headIndex[head], id)
	}

	visited := sparse.NewSparseSet(conv.IntToUint32(len(list)))
	var worklist []int
	enqueue := func(head string) {
		for _, id := range headIndex[head] {
			v := conv.IntToUint32(id)
			if !visited.Contains(v) {
				visited.Insert(v)
				worklist = append(worklist, id)
			}
		}
		delete(headIndex, head)
	}

	for seed := range seeds {
		enqueue(seed)
	}

	result := make([]string, 0, len(list))
	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		inf := list[id]
		result = append(result, inf)
		enqueue(inf[1:])
	}
	return result
}
