// Package engine assembles the governance truth-enforcement pipeline:
// per-stage normalization, cross-stage consistency checks, trust scoring,
// the certification decision, and the final report.
//
// Certify is a pure, synchronous function over one immutable snapshot. It
// performs no I/O, holds no state across calls, and returns a freshly
// allocated report per call, so concurrent invocations need no
// coordination. Calling it twice with the same snapshot produces identical
// output.
//
// Two independent axes are surfaced and never conflated: the binary
// certification outcome, driven solely by the presence of critical
// violations, and the continuous trust score, which summarizes how much of
// the snapshot should be believed. A snapshot can be certified with a low
// score (sparse data, many warnings) or refused with a high one (a single
// critical lie in otherwise pristine data).
package engine
