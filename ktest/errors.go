package ktest

import (
	"fmt"
	"strings"
)

// InvalidDescriptorError reports which clauses of the k-TSS validity
// invariant (V1, V2) were violated when constructing a Descriptor.
type InvalidDescriptorError struct {
	Violations []string
}

func (e *InvalidDescriptorError) Error() string {
	msg := strings.Join(e.Violations, ", ")
	if msg == "" {
		return "invalid descriptor"
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// IncompatibleKError reports that a combinator or oracle call was given
// two descriptors built with different window sizes.
type IncompatibleKError struct {
	A, B int
}

func (e *IncompatibleKError) Error() string {
	return fmt.Sprintf("incompatible k-test vectors: length mismatch (%d != %d)", e.A, e.B)
}

// EmptyInfixesForInferenceError reports that k was omitted from New and
// could not be inferred because the infix set is empty.
type EmptyInfixesForInferenceError struct{}

func (e *EmptyInfixesForInferenceError) Error() string {
	return "k was not supplied and cannot be inferred from an empty infix set"
}

// ErrKTooSmall is returned by Extract when k < 2.
type ErrKTooSmall struct {
	K int
}

func (e *ErrKTooSmall) Error() string {
	return fmt.Sprintf("k must be >= 2, got %d", e.K)
}
