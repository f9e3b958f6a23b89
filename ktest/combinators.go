package ktest

// Union returns A ∪ B, per spec §4.2:
//
//	P' = P_A ∪ P_B
//	S' = S_A ∪ S_B
//	I' = I_A ∪ I_B
//	T' = T_A ∪ T_B ∪ (P_A ∩ S_B) ∪ (S_A ∩ P_B)
//
// The last two terms of T' enforce V2: a string that is a prefix of
// one operand and a suffix of the other becomes, in the union, a
// length-(k-1) string that is simultaneously prefix and suffix of the
// merged language, so it must be remembered as a short string.
func (d *Descriptor) Union(other *Descriptor) (*Descriptor, error) {
	if err := ensureCompatible(d, other); err != nil {
		return nil, err
	}
	p := unionSet(d.p, other.p)
	s := unionSet(d.s, other.s)
	in := unionSet(d.i, other.i)
	t := unionSet(d.t, other.t)
	t = unionSet(t, intersectSet(d.p, other.s))
	t = unionSet(t, intersectSet(d.s, other.p))

	res := newUnchecked(d.k, p, s, in, t)
	if violations := res.violations(); len(violations) > 0 {
		return nil, &InvalidDescriptorError{Violations: violations}
	}
	return res, nil
}

// Intersect returns A ∩ B, per spec §4.2: every component intersected
// pointwise, with no extra short-string term (V2 cannot be violated by
// a subset of two already-valid descriptors' factors).
func (d *Descriptor) Intersect(other *Descriptor) (*Descriptor, error) {
	if err := ensureCompatible(d, other); err != nil {
		return nil, err
	}
	p := intersectSet(d.p, other.p)
	s := intersectSet(d.s, other.s)
	in := intersectSet(d.i, other.i)
	t := intersectSet(d.t, other.t)

	res := newUnchecked(d.k, p, s, in, t)
	if violations := res.violations(); len(violations) > 0 {
		return nil, &InvalidDescriptorError{Violations: violations}
	}
	return res, nil
}

// SymDiff returns A △ B, per spec §4.2:
//
//	P' = P_A △ P_B
//	S' = S_A △ S_B
//	I' = I_A △ I_B
//	T' = T_A △ T_B △ (P_A ∩ S_B) △ (S_A ∩ P_B)
//
// SymDiff underlies Descriptor.Distance.
func (d *Descriptor) SymDiff(other *Descriptor) (*Descriptor, error) {
	if err := ensureCompatible(d, other); err != nil {
		return nil, err
	}
	p := symDiffSet(d.p, other.p)
	s := symDiffSet(d.s, other.s)
	in := symDiffSet(d.i, other.i)
	t := symDiffSet(d.t, other.t)
	t = symDiffSet(t, intersectSet(d.p, other.s))
	t = symDiffSet(t, intersectSet(d.s, other.p))

	res := newUnchecked(d.k, p, s, in, t)
	if violations := res.violations(); len(violations) > 0 {
		return nil, &InvalidDescriptorError{Violations: violations}
	}
	return res, nil
}
