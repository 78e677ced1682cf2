// Package normalize implements the per-stage normalizers.
//
// Each normalizer takes one raw fragment (or nil for absence) and returns a
// cleaned, partially-validated representation plus every local violation it
// found. Normalizers never short-circuit: all fields are checked and all
// problems collected in one pass. Absence of a fragment produces an empty
// result with no violations; absence of data is not a lie, it is just
// tracked.
//
// Normalized fragments are pass-through artifacts: they are returned to the
// caller even when the snapshot fails certification, so downstream
// consumers can inspect the cleaned data regardless of outcome.
package normalize
