// Package learner implements the agglomerative merge loop of spec
// §4.4: starting from one k-TSS descriptor per example, it repeatedly
// finds the globally closest pair of alive descriptors whose union is
// consistency-preserving and merges them, until no such pair remains.
// The result is a partition of the input examples into clusters, each
// summarized by one descriptor and one provenance tree.
package learner

import (
	"context"
	"fmt"
	"sort"

	"github.com/coregx/ktestable/ktest"
)

// OracleFunc decides whether merging a and b is consistency-preserving.
// oracle.Consistent and oracle.ConsistentGraph both satisfy this type;
// Learn takes it as a parameter so callers (the CLI's --oracle flag)
// can pick either implementation without learner importing oracle.
type OracleFunc func(a, b *ktest.Descriptor) (bool, error)

// Result pairs a surviving cluster's descriptor with the provenance
// tree identifying its member examples.
type Result struct {
	Descriptor *ktest.Descriptor
	Provenance Provenance
}

// neighbour is one candidate merge partner: the distance to it and its
// index in the vectors slice.
type neighbour struct {
	dist  int
	right int
}

func lessNeighbour(a, b neighbour) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.right < b.right
}

// chainRecord is one "source" index's sorted list of merge candidates,
// per spec §4.4's distance chain: the higher indices for an initial
// record (buildChain), the lower alive indices for a merged record
// (neighboursFor).
type chainRecord struct {
	left       int
	neighbours []neighbour
}

// Learn runs the agglomerative merge loop of spec §4.4 over examples
// under window size k, using oracleFn as the consistency predicate.
// ctx is checked between merge iterations only (spec §5); the
// algorithm itself never blocks or yields.
func Learn(ctx context.Context, examples []string, k int, oracleFn OracleFunc) ([]Result, error) {
	n := len(examples)
	vectors := make([]*ktest.Descriptor, 0, n)
	provenance := make([]Provenance, 0, n)
	for i, ex := range examples {
		d, err := ktest.Extract(ex, k)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, d)
		provenance = append(provenance, Leaf{Index: i})
	}
	alive := make([]bool, n)
	for i := range alive {
		alive[i] = true
	}

	chain, err := buildChain(vectors, 0, len(vectors))
	if err != nil {
		return nil, err
	}
	sortChain(chain)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if len(chain) == 0 {
			return collectResults(vectors, provenance, alive), nil
		}

		head := chain[0]
		left := head.left
		cand := head.neighbours[0]
		right := cand.right

		if alive[right] {
			ok, err := oracleFn(vectors[left], vectors[right])
			if err != nil {
				return nil, fmt.Errorf("consistency check on pair (%d, %d): %w", left, right, err)
			}
			if ok {
				merged, err := vectors[left].Union(vectors[right])
				if err != nil {
					return nil, fmt.Errorf("merging pair (%d, %d): %w", left, right, err)
				}

				vectors = append(vectors, merged)
				provenance = append(provenance, Node{Left: provenance[left], Right: provenance[right]})
				alive = append(alive, true)
				alive[left] = false
				alive[right] = false
				m := len(vectors) - 1

				chain = dropRecord(chain[1:], right)

				neighbours, err := neighboursFor(vectors, alive, m)
				if err != nil {
					return nil, err
				}
				// A record with no neighbours names no candidate pair
				// and has no place in the chain (spec §4.4: one
				// record per alive source that still has at least one
				// un-pruned alive neighbour to its right).
				if len(neighbours) > 0 {
					chain = append(chain, chainRecord{left: m, neighbours: neighbours})
				}
				sortChain(chain)
				continue
			}
		}

		// Candidate rejected: either right is already merged, or the
		// union would not be consistency-preserving. Drop it and
		// retry with the next-best candidate.
		head.neighbours = head.neighbours[1:]
		if len(head.neighbours) == 0 {
			chain = chain[1:]
		} else {
			chain[0] = head
		}
		sortChain(chain)
	}
}

// buildChain computes the initial O(N^2) distance chain: for every
// left in [lo, hi), the sorted list of (distance, right) pairs to
// every right in (left, hi).
func buildChain(vectors []*ktest.Descriptor, lo, hi int) ([]chainRecord, error) {
	var chain []chainRecord
	for left := lo; left < hi-1; left++ {
		neighbours := make([]neighbour, 0, hi-left-1)
		for right := left + 1; right < hi; right++ {
			d, err := vectors[left].Distance(vectors[right])
			if err != nil {
				return nil, err
			}
			neighbours = append(neighbours, neighbour{dist: d, right: right})
		}
		sort.Slice(neighbours, func(i, j int) bool { return lessNeighbour(neighbours[i], neighbours[j]) })
		chain = append(chain, chainRecord{left: left, neighbours: neighbours})
	}
	return chain, nil
}

// neighboursFor builds the sorted neighbour list for a freshly merged
// descriptor at index m, over every alive index below m (spec §4.4
// step 7: only i < m is considered, since the new record's source is
// m and every other alive index necessarily acts as a right-neighbour).
func neighboursFor(vectors []*ktest.Descriptor, alive []bool, m int) ([]neighbour, error) {
	var neighbours []neighbour
	for i := 0; i < m; i++ {
		if !alive[i] {
			continue
		}
		d, err := vectors[m].Distance(vectors[i])
		if err != nil {
			return nil, err
		}
		neighbours = append(neighbours, neighbour{dist: d, right: i})
	}
	sort.Slice(neighbours, func(i, j int) bool { return lessNeighbour(neighbours[i], neighbours[j]) })
	return neighbours, nil
}

// dropRecord removes the (at most one) chain record whose source index
// equals right; it is called after the head record (merged left's
// source) has already been dropped by the caller.
func dropRecord(chain []chainRecord, right int) []chainRecord {
	for idx, rec := range chain {
		if rec.left == right {
			return append(chain[:idx], chain[idx+1:]...)
		}
	}
	return chain
}

// sortChain orders the chain so the record whose first neighbour has
// the smallest (dist, right) sits at position 0, breaking ties on the
// source index (spec §4.4 tie-breaking rules).
func sortChain(chain []chainRecord) {
	sort.Slice(chain, func(i, j int) bool {
		a, b := chain[i], chain[j]
		an, bn := a.neighbours[0], b.neighbours[0]
		if an.dist != bn.dist {
			return an.dist < bn.dist
		}
		if an.right != bn.right {
			return an.right < bn.right
		}
		return a.left < b.left
	})
}

func collectResults(vectors []*ktest.Descriptor, provenance []Provenance, alive []bool) []Result {
	var out []Result
	for i, isAlive := range alive {
		if isAlive {
			out = append(out, Result{Descriptor: vectors[i], Provenance: provenance[i]})
		}
	}
	return out
}
