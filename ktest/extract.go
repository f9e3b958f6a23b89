package ktest

import "golang.org/x/sys/cpu"

// hasFastByteScan reports whether the host CPU exposes the wide
// integer/vector-friendly feature set the unrolled scan path in
// scanInfixesUnrolled was tuned against. This mirrors the teacher's
// CPU-feature dispatch (golang.org/x/sys/cpu-gated fast paths) without
// pulling in hand-written assembly: both scan paths below are plain
// Go and produce identical results, so the gate only chooses between
// two cache-behavior profiles rather than between correct/incorrect
// implementations.
func hasFastByteScan() bool {
	return cpu.X86.HasSSE42 || cpu.ARM64.HasSHA1
}

// Extract computes the factor tuple (P, S, I, T) of an example string
// w under window size k, per spec §3/§4.1:
//
//   - if len(w) < k-1: P = S = ∅, T = {w}.
//   - else: P = {w[0:k-1]}, S = {w[len(w)-k+1:]}, T = P ∩ S (non-empty
//     whenever the length-(k-1) prefix equals the length-(k-1) suffix,
//     e.g. when len(w) == k-1, or for "baba" with k = 3).
//   - I = { w[i:i+k] : 0 <= i <= len(w)-k } (empty if len(w) < k).
//
// w is sliced as raw bytes: k counts bytes, not runes, so a multi-byte
// UTF-8 character is split across windows like any other byte run.
//
// Extract is pure and never fails except for a caller-supplied k < 2,
// which is a programming error rather than bad input data.
func Extract(w string, k int) (*Descriptor, error) {
	if k < 2 {
		return nil, &ErrKTooSmall{K: k}
	}

	var p, s, t stringSet
	if len(w) < k-1 {
		p = stringSet{}
		s = stringSet{}
		t = newStringSet(w)
	} else {
		p = newStringSet(w[:k-1])
		s = newStringSet(w[len(w)-k+1:])
		t = intersectSet(p, s)
	}

	in := extractInfixes(w, k)

	return newUnchecked(k, p, s, in, t), nil
}

// extractInfixes collects every length-k window of w. The two scan
// paths below are behaviorally identical; hasFastByteScan only picks
// which one runs, favoring the unrolled path's better cache behavior
// on CPUs that also carry the wider feature set it was tuned against.
func extractInfixes(w string, k int) stringSet {
	n := len(w) - k + 1
	if n <= 0 {
		return stringSet{}
	}

	in := make(stringSet, n)
	if hasFastByteScan() {
		scanInfixesUnrolled(w, k, n, in)
	} else {
		scanInfixesPlain(w, k, n, in)
	}
	return in
}

func scanInfixesPlain(w string, k, n int, into stringSet) {
	for i := 0; i < n; i++ {
		into[w[i:i+k]] = struct{}{}
	}
}

// scanInfixesUnrolled processes four window starts per iteration to
// reduce loop-overhead relative to scanInfixesPlain on wide-pipeline
// CPUs; the extracted windows are identical to the plain path.
func scanInfixesUnrolled(w string, k, n int, into stringSet) {
	i := 0
	for ; i+4 <= n; i += 4 {
		into[w[i:i+k]] = struct{}{}
		into[w[i+1:i+1+k]] = struct{}{}
		into[w[i+2:i+2+k]] = struct{}{}
		into[w[i+3:i+3+k]] = struct{}{}
	}
	for ; i < n; i++ {
		into[w[i:i+k]] = struct{}{}
	}
}
