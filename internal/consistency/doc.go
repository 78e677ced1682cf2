// Package consistency implements the cross-stage checkers: the referential
// check between execution results and the rule library, and the causal
// check between incidents and failed rules.
//
// Each checker operates over normalized fragments and is skipped entirely
// when a fragment it requires is absent. Checkers are pure functions; they
// collect every violation they find and never short-circuit.
package consistency
