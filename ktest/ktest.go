// Package ktest implements the k-testable-in-the-strict-sense (k-TSS)
// descriptor: the four-set factor tuple (prefixes, suffixes, infixes,
// short strings) that finitely summarizes the language a k-local
// acceptor would recognize from a set of example strings, together
// with the validity invariant and the set-theoretic combinators
// (union, intersection, symmetric difference) used to merge
// descriptors.
//
// A Descriptor is immutable once constructed: every combinator returns
// a new value rather than mutating its receiver.
package ktest

import "sort"

// stringSet is an unordered collection of distinct strings. It is the
// set representation used for every factor collection (P, S, I, T).
type stringSet map[string]struct{}

func newStringSet(elems ...string) stringSet {
	s := make(stringSet, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

func cloneStringSet(s stringSet) stringSet {
	out := make(stringSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func unionSet(a, b stringSet) stringSet {
	out := make(stringSet, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

func intersectSet(a, b stringSet) stringSet {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	out := make(stringSet, len(small))
	for k := range small {
		if _, ok := large[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func symDiffSet(a, b stringSet) stringSet {
	out := make(stringSet, len(a)+len(b))
	for k := range a {
		if _, ok := b[k]; !ok {
			out[k] = struct{}{}
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func equalSet(a, b stringSet) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func sortedKeys(s stringSet) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Descriptor is the k-TSS vector (P, S, I, T, k) of spec §3: the set
// of prefixes of length k-1, suffixes of length k-1, infixes of length
// k, and short strings of length strictly less than k, seen across one
// or more example strings.
type Descriptor struct {
	k int
	p stringSet
	s stringSet
	i stringSet
	t stringSet
}

// K returns the window size this descriptor was built with.
func (d *Descriptor) K() int { return d.k }

// Prefixes returns the descriptor's prefix set as a sorted slice.
func (d *Descriptor) Prefixes() []string { return sortedKeys(d.p) }

// Suffixes returns the descriptor's suffix set as a sorted slice.
func (d *Descriptor) Suffixes() []string { return sortedKeys(d.s) }

// Infixes returns the descriptor's infix set as a sorted slice.
func (d *Descriptor) Infixes() []string { return sortedKeys(d.i) }

// Shorts returns the descriptor's short-string set as a sorted slice.
func (d *Descriptor) Shorts() []string { return sortedKeys(d.t) }

// RawFactors exposes the descriptor's four factor sets as read-only
// maps, for the oracle and learner packages' set algebra over raw
// factors (membership tests, set differences) where a sorted-slice
// view would force needless re-hashing. Callers must treat the
// returned maps as immutable.
func (d *Descriptor) RawFactors() (p, s, i, t map[string]struct{}) {
	return map[string]struct{}(d.p), map[string]struct{}(d.s), map[string]struct{}(d.i), map[string]struct{}(d.t)
}

// New constructs a Descriptor from explicit factor slices, verifying
// the validity invariant (V1, V2). If k <= 0, k is inferred from the
// length of any element of infixes; if infixes is also empty,
// New returns an *EmptyInfixesForInferenceError.
func New(prefixes, suffixes, infixes, shorts []string, k int) (*Descriptor, error) {
	p := newStringSet(prefixes...)
	s := newStringSet(suffixes...)
	in := newStringSet(infixes...)
	t := newStringSet(shorts...)

	if k <= 0 {
		if len(in) == 0 {
			return nil, &EmptyInfixesForInferenceError{}
		}
		for inf := range in {
			k = len(inf)
			break
		}
	}

	d := &Descriptor{k: k, p: p, s: s, i: in, t: t}
	if violations := d.violations(); len(violations) > 0 {
		return nil, &InvalidDescriptorError{Violations: violations}
	}
	return d, nil
}

// newUnchecked builds a Descriptor without re-running validation; it is
// used internally by Extract and the combinators, which construct
// their result sets in a way that is known by construction to satisfy
// V1/V2, and by code paths that validate explicitly right afterward.
func newUnchecked(k int, p, s, in, t stringSet) *Descriptor {
	return &Descriptor{k: k, p: p, s: s, i: in, t: t}
}

// violations returns every clause of the validity invariant (V1, V2)
// that this descriptor fails, or nil if it is valid.
func (d *Descriptor) violations() []string {
	var errs []string

	sameLength := func(set stringSet, want int) bool {
		for e := range set {
			if len(e) != want {
				return false
			}
		}
		return true
	}

	if !sameLength(d.p, d.k-1) {
		errs = append(errs, "incorrect prefix length")
	}
	if !sameLength(d.s, d.k-1) {
		errs = append(errs, "incorrect suffix length")
	}
	if !sameLength(d.i, d.k) {
		errs = append(errs, "incorrect infix length")
	}
	for e := range d.t {
		if len(e) >= d.k {
			errs = append(errs, "incorrect short string length")
			break
		}
	}

	presuffixes := intersectSet(d.p, d.s)
	shortsLenKMinus1 := make(stringSet)
	for e := range d.t {
		if len(e) == d.k-1 {
			shortsLenKMinus1[e] = struct{}{}
		}
	}
	if !equalSet(presuffixes, shortsLenKMinus1) {
		errs = append(errs, "short strings conditions not satisfied")
	}

	return errs
}

// Len returns the descriptor's cardinality: |P| + |S| + |I| plus the
// count of short strings strictly shorter than k-1 (short strings of
// length exactly k-1 are already counted via P ∩ S, per V2).
func (d *Descriptor) Len() int {
	n := len(d.p) + len(d.s) + len(d.i)
	for e := range d.t {
		if len(e) < d.k-1 {
			n++
		}
	}
	return n
}

// Equal reports whether two descriptors describe exactly the same four
// factor sets and window size.
func (d *Descriptor) Equal(other *Descriptor) bool {
	if d.k != other.k {
		return false
	}
	return equalSet(d.p, other.p) && equalSet(d.s, other.s) &&
		equalSet(d.i, other.i) && equalSet(d.t, other.t)
}

// Distance returns the symmetric-difference distance d(A,B) = |A △ B|.
// It is a metric on descriptors: symmetric, non-negative, zero iff
// equal, and triangle-inequality-respecting, since set symmetric
// difference is itself a metric.
func (d *Descriptor) Distance(other *Descriptor) (int, error) {
	diff, err := d.SymDiff(other)
	if err != nil {
		return 0, err
	}
	return diff.Len(), nil
}

func ensureCompatible(a, b *Descriptor) error {
	if a.k != b.k {
		return &IncompatibleKError{A: a.k, B: b.k}
	}
	return nil
}
