// Package snapshot defines the input contract of the governance engine.
//
// A PipelineSnapshot is one immutable observation of the data-quality
// pipeline: up to five optional fragments, each emitted independently by an
// upstream stage (profiling, rule library, rule execution, dashboard,
// incident creation). Any fragment may be absent. Absence is not an error;
// it only limits which cross-stage checks can run.
//
// The wire schema lives in contract.cue and is enforced before decoding.
// The CUE contract checks shape only (field names, types, closedness).
// Domain invariants (ratio bounds, conservation laws, referential and
// causal integrity) are deliberately NOT expressed in the contract: they
// must flow through the engine as collected violations so that a single
// pass reports every problem, not just the first malformed field.
//
// Snapshots are consumed exactly once and never mutated. The engine holds
// no state across calls.
package snapshot
