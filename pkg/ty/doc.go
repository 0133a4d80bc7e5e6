// Package ty implements the tyflow type algebra: the Ty variants the
// analyzer computes for bindings and expressions, the canonical
// kind-partitioned UnionType, the escalating UnionBuilder that folds
// arbitrary member streams into canonical form, and the pass-scoped Arena
// that owns every compound node. Types are built once, read many times,
// and never mutated after they escape; the arena is dropped wholesale when
// an analysis pass ends.
package ty
