// Package gocrdt provides the Conflict-free Replicated Data Types backing a
// collaborative notebook: a document made of cells, each cell a sequence of
// characters, replicated peer-to-peer with deterministic, order-independent
// merge.
//
// This package implements state-based CRDTs (CvRDTs): GrowCounter and
// GrowSet as the monotonic building blocks, Sequence as the ordered-
// collection CRDT built from an OpId/Operation/ObjectTree trio, and Cell /
// Notebook as thin Sequence compositions (a sequence of characters; a
// sequence of cells).
package gocrdt

// CRDT documents the convergence contract every type in this package
// upholds, whether or not it implements the interface literally — Go's
// lack of higher-kinded generics means Sequence[T]'s Merge can't accept a
// plain CRDT and stay type-safe, so it and Cell/Notebook/GrowSet satisfy
// the same laws through typed Merge methods instead of this interface.
//
// Implementing types must ensure that their internal state can be merged
// commutatively, associatively, and idempotently to satisfy the
// mathematical properties of a join-semilattice:
//
// 1. Commutative: The order of merging doesn't matter.
//    A.Merge(B) converges to the same state as B.Merge(A).
//
// 2. Associative: The grouping of merges doesn't matter.
//    (A.Merge(B)).Merge(C) converges to the same state as A.Merge(B.Merge(C)).
//
// 3. Idempotent: merging the same state more than once has no effect
//    beyond the first merge. A.Merge(A) converges to A.
type CRDT interface {
	// Value returns the current consolidated state of the CRDT.
	//
	// For GrowCounter this is a uint64. For Sequence/Cell/Notebook this is
	// the visible, linearized view (a slice of payloads, a string, or a
	// slice of cell texts).
	Value() any
}
