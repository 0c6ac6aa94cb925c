// Package lowering implements the complex-number lowering pass: the
// Type Classifier, Cast Synthesizer, Operator Rewriter, Element-Access
// Rewriter, Type Remapper, and the Pass Driver that runs them in order
// (spec.md §4.A).
package lowering

import "dspcc/internal/types"

// RequiresRemapping decides whether T is complex, or a vector/array whose
// element requires remapping (spec §4.A.1). Arrays are checked one level
// deep; since vectors recurse into their own element, array-of-vector and
// array-of-complex are both covered by the same recursive rule.
func RequiresRemapping(t types.Type) bool {
	switch {
	case t.IsComplex():
		return true
	case t.IsVector():
		return RequiresRemapping(*t.Element())
	case t.IsArray():
		return RequiresRemapping(*t.Element())
	default:
		return false
	}
}

// SpecializationKey is the (precision, vectorSize) pair identifying one
// generated complex_lib specialization (spec §4.A.5).
type SpecializationKey struct {
	Precision  int
	VectorSize int
}

// KeyFor computes the specialization key for a type that RequiresRemapping
// reports true for. Per the Open Question in spec §9, an array's key is
// computed from its element: a scalar-complex array element yields vector
// size 1, a vector-of-complex element yields that vector's width.
func KeyFor(t types.Type) SpecializationKey {
	leaf := t
	if leaf.IsArray() {
		leaf = *leaf.Element()
	}
	if leaf.IsVector() {
		return SpecializationKey{Precision: leaf.Element().Precision(), VectorSize: leaf.VectorWidth()}
	}
	return SpecializationKey{Precision: leaf.Precision(), VectorSize: 1}
}

// IsVectorOfComplex reports whether t is specifically a vector whose
// element is complex (used by the Element-Access Rewriter to distinguish
// getElement/setElement targets from plain array indexing).
func IsVectorOfComplex(t types.Type) bool {
	return t.IsVector() && t.Element() != nil && t.Element().IsComplex()
}
